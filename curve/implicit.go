package curve

import (
	"context"
	"sync/atomic"

	"github.com/npillmayer/simplygraph"
	"github.com/npillmayer/simplygraph/viewport"
	"golang.org/x/sync/errgroup"
)

// implicit tests every pixel (i, j) of the canvas, accepting it if both sides
// of the relation are approximately equal there.
//
// Columns are handed out in ascending order to a group of workers. A worker
// always completes a column it has taken and stops taking new ones once the
// cap is reached; merging the columns in order and truncating at the cap
// therefore gives the same result for any number of workers.
func implicit(ctx context.Context, c *Curve, v viewport.Transform, limit, workers int) ([]simplygraph.Pair, error) {
	w, h := int(v.Width), int(v.Height)
	yw := v.YWidth()
	cols := make([][]simplygraph.Pair, w+1)
	var next, found atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for k := 0; k < workers; k++ {
		g.Go(func() error {
			vals := make([]float64, 2)
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				if found.Load() >= int64(limit) {
					return nil
				}
				i := int(next.Add(1) - 1)
				if i > w {
					return nil
				}
				vals[0] = viewport.PixelToMathX(float64(i), v.Width, v.XWidth, v.XOffset)
				var col []simplygraph.Pair
				for j := 0; j <= h; j++ {
					vals[1] = viewport.PixelToMathY(float64(j), v.Height, yw, v.YOffset)
					lhs, err := c.f.Eval(vals...)
					if err != nil {
						continue
					}
					rhs, err := c.g.Eval(vals...)
					if err != nil {
						continue
					}
					if approxEqual(lhs, rhs, Tolerance) {
						col = append(col, simplygraph.P(float64(i), float64(j)))
					}
				}
				cols[i] = col
				found.Add(int64(len(col)))
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	n := 0
	for _, col := range cols {
		n += len(col)
	}
	if n > limit {
		tracer().Infof("implicit curve %q: dropping %d points beyond cap %d", c.spec.Text, n-limit, limit)
		n = limit
	}
	pts := make([]simplygraph.Pair, 0, n)
	for _, col := range cols {
		if len(pts)+len(col) > limit {
			pts = append(pts, col[:limit-len(pts)]...)
			break
		}
		pts = append(pts, col...)
	}
	return pts, nil
}
