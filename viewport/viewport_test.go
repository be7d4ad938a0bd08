package viewport

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/simplygraph"
	"github.com/stretchr/testify/assert"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var views = []Transform{
	{Width: 100, Height: 100, XWidth: 10},
	{Width: 1080, Height: 1920, XWidth: 10, XOffset: 37.5, YOffset: -212},
	{Width: 333, Height: 71, XWidth: 0.001, XOffset: -1e4, YOffset: 3},
	{Width: 640, Height: 480, XWidth: 1e5, XOffset: 0.25, YOffset: 0.75},
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, v := range views {
		yw := v.YWidth()
		for i := 0.0; i <= v.Width; i++ {
			x := PixelToMathX(i, v.Width, v.XWidth, v.XOffset)
			assert.InDelta(t, i, MathToPixelX(x, v.Width, v.XWidth, v.XOffset), 1e-6, "%v column %g", v, i)
		}
		for j := 0.0; j <= v.Height; j++ {
			y := PixelToMathY(j, v.Height, yw, v.YOffset)
			assert.InDelta(t, j, MathToPixelY(y, v.Height, yw, v.YOffset), 1e-6, "%v row %g", v, j)
		}
	}
}

func TestCentreAndOrientation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	v := Transform{Width: 100, Height: 50, XWidth: 10}
	assert.Equal(t, 5.0, v.YWidth())
	c := v.ToMath(50, 25)
	assert.Equal(t, 0.0, c.X())
	assert.Equal(t, 0.0, c.Y())
	// screen rows grow downwards, math y upwards
	assert.Greater(t, v.ToMath(50, 0).Y(), 0.0)
	assert.Less(t, v.ToMath(50, 50).Y(), 0.0)
	assert.Equal(t, -5.0, v.ToMath(0, 0).X())

	panned := v.Panned(10, -5)
	c = panned.ToMath(60, 20)
	assert.InDelta(t, 0.0, c.X(), 1e-12)
	assert.InDelta(t, 0.0, c.Y(), 1e-12)
}

func TestMatrixAgreesWithMapping(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, v := range views {
		m := v.Matrix()
		for _, x := range []float64{-3, 0, 0.5, 17} {
			for _, y := range []float64{-2, 0, 4.25} {
				got := m.Transform(simplygraph.P(x, y))
				assert.InDelta(t, MathToPixelX(x, v.Width, v.XWidth, v.XOffset), got.X(), 1e-6)
				assert.InDelta(t, MathToPixelY(y, v.Height, v.YWidth(), v.YOffset), got.Y(), 1e-6)
				diff(t, got, v.ToPixel(x, y))
			}
		}
		p := v.ToPixel(1.5, -2.5)
		m2 := v.ToMath(p.X(), p.Y())
		assert.InDelta(t, 1.5, m2.X(), 1e-6)
		assert.InDelta(t, -2.5, m2.Y(), 1e-6)
	}
}

func TestValid(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.True(t, New(10, 10).Valid())
	for _, v := range []Transform{
		{},
		{Width: 0, Height: 10, XWidth: 10},
		{Width: 10, Height: -1, XWidth: 10},
		{Width: 10, Height: 10, XWidth: 0},
		{Width: 10, Height: 10, XWidth: math.NaN()},
		{Width: math.Inf(1), Height: 10, XWidth: 1},
		{Width: 10, Height: 10, XWidth: 1, XOffset: math.Inf(-1)},
		{Width: 1e20, Height: 100, XWidth: 10},
		{Width: 100, Height: 1e10, XWidth: 10},
		{Width: MaxCanvas + 1, Height: 100, XWidth: 10},
	} {
		assert.False(t, v.Valid(), "%v", v)
		assert.True(t, errors.Is(v.Check(), ErrDegenerateView))
	}
	assert.NoError(t, New(1, 1).Check())
	assert.NoError(t, New(MaxCanvas, MaxCanvas).Check())
}

func TestModifiers(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	v := New(200, 100)
	diff(t, Transform{Width: 200, Height: 100, XWidth: 10}, v)

	z := v.Zoomed(2, 0, 0)
	diff(t, Transform{Width: 200, Height: 100, XWidth: 5}, z)
	diff(t, Transform{Width: 200, Height: 100, XWidth: 10}, v) // unchanged

	diff(t, v, v.Zoomed(0, 0, 0))
	diff(t, v, v.Zoomed(-1, 0, 0))
	diff(t, v, v.Zoomed(math.NaN(), 0, 0))
	assert.Equal(t, 1.0, v.Zoomed(100, 1, 0).XWidth)
	assert.Equal(t, 20.0, v.Zoomed(0.01, 0, 20).XWidth)

	moved := v.Panned(3, 4).Panned(1, 1).Zoomed(4, 0, 0).Resized(300, 300)
	diff(t, Transform{Width: 300, Height: 300, XWidth: 2.5, XOffset: 4, YOffset: 5}, moved)
	diff(t, Transform{Width: 300, Height: 300, XWidth: DefaultXWidth}, moved.Reset(DefaultXWidth))
}

func TestCanvas(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	v := Transform{Width: 100, Height: 50, XWidth: 10}
	c := v.Canvas()
	assert.Equal(t, 100.0, c.Max.X)
	assert.Equal(t, 50.0, c.Max.Y)
	assert.Equal(t, 0.0, c.Min.X)
	assert.Equal(t, 0.0, c.Min.Y)
}
