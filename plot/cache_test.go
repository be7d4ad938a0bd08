package plot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/simplygraph/curve"
	"github.com/npillmayer/simplygraph/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveCacheReuse(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cc := newCurveCache(2)
	a, err := cc.compile(curve.NewSpec("sin(x)"))
	require.NoError(t, err)
	again, err := cc.compile(curve.NewSpec("sin(x)"))
	require.NoError(t, err)
	assert.Same(t, a, again)

	spec := curve.NewSpec("sin(x)")
	spec.TEnd = "2" // a different spec, even if unused by explicit curves
	other, err := cc.compile(spec)
	require.NoError(t, err)
	assert.NotSame(t, a, other)
	assert.Equal(t, 2, cc.len())

	_, err = cc.compile(curve.NewSpec("x +* 2"))
	assert.ErrorIs(t, err, expr.ErrParse)
	assert.Equal(t, 2, cc.len(), "malformed specs are not cached")
}

func TestCurveCacheEvictsOldest(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cc := newCurveCache(2)
	first, _ := cc.compile(curve.NewSpec("x"))
	second, _ := cc.compile(curve.NewSpec("x^2"))
	_, _ = cc.compile(curve.NewSpec("x^3"))
	assert.Equal(t, 2, cc.len())
	again, _ := cc.compile(curve.NewSpec("x^2"))
	assert.Same(t, second, again)
	recompiled, _ := cc.compile(curve.NewSpec("x"))
	assert.NotSame(t, first, recompiled)
}

func TestCurveCacheDisabled(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cc := newCurveCache(0)
	a, err := cc.compile(curve.NewSpec("x"))
	require.NoError(t, err)
	b, _ := cc.compile(curve.NewSpec("x"))
	assert.NotSame(t, a, b)
	assert.Equal(t, 0, cc.len())
}
