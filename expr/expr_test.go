package expr

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalArithmetic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tests := []struct {
		in   string
		x    float64
		want float64
	}{
		{"1+2*3", 0, 7},
		{"(1+2)*3", 0, 9},
		{"2^3^2", 0, 512},
		{"-2^2", 0, -4},
		{"2^-1", 0, 0.5},
		{"7-3-2", 0, 2},
		{"8/4/2", 0, 1},
		{"2pi", 0, 2 * math.Pi},
		{"3x", 2, 6},
		{"2x^2", 3, 18},
		{"x(x+1)", 2, 6},
		{"(x+1)(x-1)", 3, 8},
		{"2(x+1)", 1, 4},
		{"2e", 0, 2 * math.E},
		{"1e3", 0, 1000},
		{"1.5E-1", 0, 0.15},
		{".5", 0, 0.5},
		{"sin(pi/2)", 0, 1},
		{"log(e)", 0, 1},
		{"log10(1000)", 0, 3},
		{"abs(x)", -4, 4},
		{"max(1, x)", 5, 5},
		{"mod(-1, 3)", 0, 2},
		{"atan2(1, 1)", 0, math.Pi / 4},
		{"[x+1]*2", 1, 4},
		{"6÷2×3", 0, 9},
		{"−x", 2, -2},
		{"2π", 0, 2 * math.Pi},
		{"sqrt(x)", 0, 0},
	}
	for _, tt := range tests {
		e, err := Parse(tt.in, "x")
		require.NoError(t, err, "Parse(%q)", tt.in)
		got, err := e.Eval(tt.x)
		require.NoError(t, err, "Eval(%q)", tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "%q at x=%g", tt.in, tt.x)
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tests := []struct {
		in   string
		pos  int
		near string
	}{
		{"x +* 2", 3, "*"},
		{"(x+1", 4, ""},
		{"x+1)", 3, ")"},
		{"foo(x)", 0, "foo"},
		{"z", 0, "z"},
		{"sin", 0, "sin"},
		{"sin(1, 2)", 0, "sin"},
		{"", 0, ""},
		{"2 3", 2, "3"},
		{"x = 2", 2, "="},
		{"x $ 2", 2, "$"},
		{"1..2", 2, ".2"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in, "x")
		require.Error(t, err, "Parse(%q)", tt.in)
		assert.True(t, errors.Is(err, ErrParse), "%q: %v", tt.in, err)
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, tt.pos, perr.Pos, "offset for %q: %v", tt.in, err)
		assert.Equal(t, tt.near, perr.Near, "offending text for %q", tt.in)
	}
}

func TestParseRejectsIllegalVariables(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, vars := range [][]string{{"pi"}, {"sin"}, {"2x"}, {"x", "x"}, {""}} {
		_, err := Parse("1", vars...)
		assert.ErrorIs(t, err, ErrParse, "vars %v", vars)
	}
}

func TestEvalDomainErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tests := []struct {
		in string
		x  float64
	}{
		{"1/x", 0},
		{"sqrt(x)", -1},
		{"log(x)", 0},
		{"ln(x)", -2},
		{"exp(x)", 1000},
		{"asin(x)", 2},
		{"x^0.5", -4},
		{"x^-1", 0},
		{"mod(1, x)", 0},
	}
	for _, tt := range tests {
		e := MustParse(tt.in, "x")
		_, err := e.Eval(tt.x)
		require.Error(t, err, "%q at %g", tt.in, tt.x)
		assert.ErrorIs(t, err, ErrEval)
		var eerr *EvalError
		assert.True(t, errors.As(err, &eerr))
		// the expression stays usable
		_, err = e.Eval(1)
		assert.NoError(t, err, "%q at 1", tt.in)
	}
}

func TestEvaluateBindings(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	e := MustParse("x^2 + y^2", "x", "y", "t")
	v, err := e.Evaluate(map[string]float64{"x": 3, "y": 4})
	require.NoError(t, err)
	assert.Equal(t, 25.0, v)

	_, err = e.Evaluate(map[string]float64{"x": 3})
	assert.ErrorIs(t, err, ErrUnboundVariable)
	assert.ErrorIs(t, err, ErrEval)

	_, err = e.Eval(3)
	assert.ErrorIs(t, err, ErrUnboundVariable)

	assert.True(t, e.uses("y"))
	assert.False(t, e.uses("t"))
	assert.Equal(t, []string{"x", "y", "t"}, e.Vars())
}

func TestConstant(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	v, err := Constant("12pi")
	require.NoError(t, err)
	assert.InDelta(t, 12*math.Pi, v, 1e-12)
	v, err = Constant(" -sqrt(2)/2 ")
	require.NoError(t, err)
	assert.InDelta(t, -math.Sqrt2/2, v, 1e-12)
	_, err = Constant("2t")
	assert.ErrorIs(t, err, ErrParse)
}

func TestString(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	e := MustParse("-2x^2 + sin(theta)/pi", "x", "theta")
	assert.Equal(t, "(((-2) * (x ^ 2)) + (sin(theta) / pi))", e.String())
	assert.Equal(t, "-2x^2 + sin(theta)/pi", e.Text())
	// re-parsing the rendition yields the same tree
	again := MustParse(e.String(), "x", "theta")
	assert.Equal(t, e.String(), again.String())
}

func TestConcurrentEval(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	e := MustParse("sin(x)*cos(x)", "x")
	before := e.String()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				x := float64(g*1000+i) / 100
				v, err := e.Eval(x)
				if assert.NoError(t, err) {
					assert.InDelta(t, math.Sin(2*x)/2, v, 1e-12)
				}
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, before, e.String())
}

func TestNames(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, []string{"r", "theta", "sin", "theta"}, Names("r = 2θ + sin(theta)"))
	assert.Equal(t, []string{"x", "y"}, Names("x^2 + y^2 = 25 $"))
	assert.Nil(t, Names("1 + 2"))
}

func TestSplit(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	lhs, rhs, ok := Split("x^2+y^2=25")
	assert.True(t, ok)
	assert.Equal(t, "x^2+y^2", lhs)
	assert.Equal(t, "25", rhs)

	lhs, rhs, ok = Split(" = x^2")
	assert.True(t, ok)
	assert.Equal(t, "y", lhs)
	assert.Equal(t, " x^2", rhs)

	_, rhs, ok = Split("sin(x)")
	assert.False(t, ok)
	assert.Equal(t, "sin(x)", rhs)
}
