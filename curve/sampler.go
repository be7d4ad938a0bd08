// Package curve samples plotted curves into pixel-space point sets.
//
// There are four strategies, selected by the kind of a curve:
//
//   - Explicit curves y = f(x) are sampled once per pixel column.
//   - Implicit curves lhs(x,y) = rhs(x,y) are found by testing every pixel of
//     the canvas. This is by far the most expensive strategy.
//   - Parametric curves (x(t), y(t)) and polar curves r = f(theta) are sampled
//     at evenly spaced parameter values, two per pixel column.
//
// Samples at which an expression cannot be evaluated are skipped; only
// malformed curve text (at compile time) or a degenerate view fails a curve
// as a whole. Sampling polls its context at least once per pixel column and
// returns the context's error, never a partial point set, when cancelled.
package curve

import (
	"context"
	"math"
	"runtime"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/simplygraph"
	"github.com/npillmayer/simplygraph/viewport"
)

// tracer writes to trace with key 'curve'
func tracer() tracing.Trace {
	return tracing.Select("curve")
}

// Tolerance is the relative tolerance for the two sides of an implicit
// curve to be considered equal.
const Tolerance = 0.01

// DefaultPointCap bounds the number of points of an implicit curve.
const DefaultPointCap = 1000000

// Sampler computes the point set of a compiled curve for a view.
type Sampler interface {
	Sample(ctx context.Context, c *Curve, view viewport.Transform) (PointSet, error)
}

// Engine is the Sampler of this package.
type Engine struct {
	PointCap int // maximum number of implicit points, 0 for DefaultPointCap
	Workers  int // goroutines for the implicit scan, 0 for GOMAXPROCS
}

var _ Sampler = Engine{}

// Sample runs the strategy for the kind of c. It fails with
// viewport.ErrDegenerateView for an invalid view and with ctx.Err() if
// cancelled.
func (e Engine) Sample(ctx context.Context, c *Curve, view viewport.Transform) (PointSet, error) {
	if err := view.Check(); err != nil {
		return PointSet{}, err
	}
	if err := ctx.Err(); err != nil {
		return PointSet{}, err
	}
	var pts []simplygraph.Pair
	var err error
	m := view.Matrix()
	switch c.kind {
	case Explicit:
		pts, err = explicit(ctx, c, view)
	case Implicit:
		pts, err = implicit(ctx, c, view, e.pointCap(), e.workers())
	case Parametric:
		pts, err = sweep(ctx, c.from, c.to, samples(view), func(t float64) (simplygraph.Pair, bool) {
			x, err1 := c.f.Eval(t)
			y, err2 := c.g.Eval(t)
			if err1 != nil || err2 != nil {
				return 0, false
			}
			return m.Transform(simplygraph.P(x, y)), true
		})
	case Polar:
		pts, err = sweep(ctx, c.from, c.to, samples(view), func(theta float64) (simplygraph.Pair, bool) {
			r, err := c.f.Eval(theta)
			if err != nil {
				return 0, false
			}
			return m.Transform(simplygraph.P(r*math.Cos(theta), r*math.Sin(theta))), true
		})
	}
	if err != nil {
		return PointSet{}, err
	}
	ps := NewPointSet(c.kind, pts)
	ps.OnCanvas = ps.Overlaps(view.Canvas())
	tracer().Debugf("%s curve %q: %d points for %v", c.kind, c.spec.Text, len(pts), view)
	if !ps.IsEmpty() && !ps.OnCanvas {
		tracer().Debugf("%s curve %q lies off the canvas", c.kind, c.spec.Text)
	}
	return ps, nil
}

func (e Engine) pointCap() int {
	if e.PointCap > 0 {
		return e.PointCap
	}
	return DefaultPointCap
}

func (e Engine) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// approxEqual compares a and b relative to a, with an exact comparison for
// a = 0.
func approxEqual(a, b, eps float64) bool {
	if a != 0 {
		return math.Abs((a-b)/a) < eps
	}
	return a == b
}
