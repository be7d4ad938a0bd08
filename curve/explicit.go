package curve

import (
	"context"

	"github.com/npillmayer/simplygraph"
	"github.com/npillmayer/simplygraph/viewport"
)

// explicit evaluates f once per pixel column 0…Width. Columns where f is
// undefined leave a gap.
func explicit(ctx context.Context, c *Curve, v viewport.Transform) ([]simplygraph.Pair, error) {
	w := int(v.Width)
	yw := v.YWidth()
	pts := make([]simplygraph.Pair, 0, w+1)
	for i := 0; i <= w; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x := viewport.PixelToMathX(float64(i), v.Width, v.XWidth, v.XOffset)
		y, err := c.f.Eval(x)
		if err != nil {
			tracer().Debugf("skip column %d, x = %g: %v", i, x, err)
			continue
		}
		j := viewport.MathToPixelY(y, v.Height, yw, v.YOffset)
		if !simplygraph.Finite(j) {
			continue
		}
		pts = append(pts, simplygraph.P(float64(i), j))
	}
	return pts, nil
}
