package curve

import (
	"context"

	"github.com/npillmayer/simplygraph"
	"github.com/npillmayer/simplygraph/viewport"
)

// samples is the number of parameter steps for a view: two per pixel column.
func samples(v viewport.Transform) int {
	return 2 * int(v.Width)
}

// sweep calls at for n+1 evenly spaced parameter values from…to, in
// increasing order. An interval with to < from is empty, a point interval
// yields a single sample. Samples that at rejects, or that map to a
// non-finite pixel, are skipped.
func sweep(ctx context.Context, from, to float64, n int, at func(float64) (simplygraph.Pair, bool)) ([]simplygraph.Pair, error) {
	if to < from {
		return nil, nil
	}
	if to == from || n < 1 {
		n = 0
	}
	pts := make([]simplygraph.Pair, 0, n+1)
	for k := 0; k <= n; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s := from
		if n > 0 {
			s = from + (to-from)*float64(k)/float64(n)
		}
		p, ok := at(s)
		if !ok || !p.Finite() {
			continue
		}
		pts = append(pts, p)
	}
	return pts, nil
}
