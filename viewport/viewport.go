// Package viewport maps between pixel indices of a canvas and mathematical
// coordinates.
//
// The origin of the math plane sits at the canvas centre, shifted by a pan
// offset given in pixels. The visible math width XWidth defines the zoom
// level; the visible math height is derived from it so that both axes share
// the same scale. Screen rows grow downwards while math y grows upwards.
package viewport

import (
	"errors"
	"fmt"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/simplygraph"
)

// tracer writes to trace with key 'viewport'
func tracer() tracing.Trace {
	return tracing.Select("viewport")
}

// DefaultXWidth is the math width visible after a view reset.
const DefaultXWidth = 10.0

// MaxCanvas is the largest canvas dimension in pixels. Samplers allocate per
// pixel column, so larger canvases are treated as degenerate.
const MaxCanvas = 1 << 16

// ErrDegenerateView indicates a transform with a non-positive or oversized
// canvas, or a non-positive visible width, for which no mapping exists.
var ErrDegenerateView = errors.New("degenerate view transform")

// === Mapping functions =====================================================

// PixelToMathX maps pixel column i to math x.
func PixelToMathX(i, width, xWidth, xOffset float64) float64 {
	return ((i - width/2 - xOffset) / width) * xWidth
}

// PixelToMathY maps pixel row j to math y.
func PixelToMathY(j, height, yWidth, yOffset float64) float64 {
	return -((j - height/2 - yOffset) / height) * yWidth
}

// MathToPixelX is the inverse of PixelToMathX.
func MathToPixelX(x, width, xWidth, xOffset float64) float64 {
	return (x/xWidth)*width + width/2 + xOffset
}

// MathToPixelY is the inverse of PixelToMathY.
func MathToPixelY(y, height, yWidth, yOffset float64) float64 {
	return -(y/yWidth)*height + height/2 + yOffset
}

// === Transform ============================================================

// Transform is the view geometry: canvas size in pixels, visible math width
// and pan offset in pixels. Transforms are values; the modifiers return new
// transforms.
type Transform struct {
	Width, Height    float64 // canvas size in pixels
	XWidth           float64 // visible math width
	XOffset, YOffset float64 // pan offset in pixels
}

// New creates a transform for a canvas of w × h pixels, centred at the
// origin, showing DefaultXWidth.
func New(w, h float64) Transform {
	return Transform{Width: w, Height: h, XWidth: DefaultXWidth}
}

// YWidth is the visible math height, keeping x- and y-scale uniform.
func (t Transform) YWidth() float64 {
	return t.XWidth * t.Height / t.Width
}

// Valid reports whether the mapping is defined for t.
func (t Transform) Valid() bool {
	return t.Width > 0 && t.Height > 0 && t.XWidth > 0 &&
		t.Width <= MaxCanvas && t.Height <= MaxCanvas &&
		simplygraph.Finite(t.XWidth) &&
		simplygraph.Finite(t.XOffset) && simplygraph.Finite(t.YOffset)
}

// Check returns ErrDegenerateView if t is not Valid.
func (t Transform) Check() error {
	if !t.Valid() {
		tracer().Infof("degenerate view %v", t)
		return fmt.Errorf("%w: %v", ErrDegenerateView, t)
	}
	return nil
}

// ToMath maps pixel (i, j) to math coordinates.
func (t Transform) ToMath(i, j float64) simplygraph.Pair {
	return simplygraph.P(
		PixelToMathX(i, t.Width, t.XWidth, t.XOffset),
		PixelToMathY(j, t.Height, t.YWidth(), t.YOffset),
	)
}

// ToPixel maps math (x, y) to pixel coordinates. Mapping many points is
// cheaper with a single Matrix.
func (t Transform) ToPixel(x, y float64) simplygraph.Pair {
	return t.Matrix().Transform(simplygraph.P(x, y))
}

// Matrix returns the math-to-pixel mapping as an affine transform:
// scale by (Width/XWidth, -Height/YWidth), then move the origin to the
// panned canvas centre.
func (t Transform) Matrix() simplygraph.AT {
	scale := simplygraph.Scaling(simplygraph.P(t.Width/t.XWidth, -t.Height/t.YWidth()))
	shift := simplygraph.Translation(simplygraph.P(t.Width/2+t.XOffset, t.Height/2+t.YOffset))
	return scale.Combine(shift)
}

// Canvas returns the pixel rectangle [0,Width] × [0,Height].
func (t Transform) Canvas() polyclip.Rectangle {
	return polyclip.Rectangle{
		Min: polyclip.Point{X: 0, Y: 0},
		Max: polyclip.Point{X: t.Width, Y: t.Height},
	}
}

// Resized returns t for a canvas of w × h pixels.
func (t Transform) Resized(w, h float64) Transform {
	t.Width, t.Height = w, h
	return t
}

// Panned returns t moved by (dx, dy) pixels.
func (t Transform) Panned(dx, dy float64) Transform {
	t.XOffset += dx
	t.YOffset += dy
	return t
}

// Zoomed returns t with the visible width divided by scale, i.e. scale > 1
// zooms in. The result is clamped to [minWidth, maxWidth]; a non-positive
// bound disables that side of the clamp.
func (t Transform) Zoomed(scale, minWidth, maxWidth float64) Transform {
	if !(scale > 0) || !simplygraph.Finite(scale) {
		return t
	}
	w := t.XWidth / scale
	if minWidth > 0 && w < minWidth {
		w = minWidth
	}
	if maxWidth > 0 && w > maxWidth {
		w = maxWidth
	}
	t.XWidth = w
	return t
}

// Reset returns t with the pan offset cleared and the visible width set to
// xWidth. The canvas size is kept.
func (t Transform) Reset(xWidth float64) Transform {
	t.XOffset, t.YOffset = 0, 0
	t.XWidth = xWidth
	return t
}

func (t Transform) String() string {
	return fmt.Sprintf("view[%gx%g px, xwidth=%g, offset=(%g,%g)]",
		t.Width, t.Height, t.XWidth, t.XOffset, t.YOffset)
}
