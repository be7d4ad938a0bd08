package curve

import (
	"errors"
	"strings"
	"unicode"

	"github.com/npillmayer/simplygraph/expr"
)

// Default parameter intervals, as strings since bounds are expressions.
const (
	DefaultTStart     = "0"
	DefaultTEnd       = "1"
	DefaultThetaStart = "0"
	DefaultThetaEnd   = "12pi"
)

// Spec is the raw description of a curve: the function text and the
// interval bounds for parametric (t) and polar (theta) curves.
type Spec struct {
	Text       string
	TStart     string
	TEnd       string
	ThetaStart string
	ThetaEnd   string
}

// NewSpec creates a Spec for text with the default intervals.
func NewSpec(text string) Spec {
	return Spec{
		Text:       text,
		TStart:     DefaultTStart,
		TEnd:       DefaultTEnd,
		ThetaStart: DefaultThetaStart,
		ThetaEnd:   DefaultThetaEnd,
	}
}

// Kind classifies the function text, see Classify.
func (s Spec) Kind() Kind {
	return Classify(s.Text)
}

// Curve is a compiled Spec, ready for sampling. It is immutable.
type Curve struct {
	spec Spec
	kind Kind
	// explicit: f(x); implicit: f = lhs(x,y), g = rhs(x,y);
	// parametric: f = x(t), g = y(t); polar: f = r(theta)
	f, g     *expr.Expression
	from, to float64 // parameter interval for parametric and polar curves
}

// Spec returns the description c was compiled from.
func (c *Curve) Spec() Spec { return c.spec }

// Kind returns the sampling strategy of c.
func (c *Curve) Kind() Kind { return c.kind }

// Interval returns the parameter interval of a parametric or polar curve.
func (c *Curve) Interval() (from, to float64) { return c.from, c.to }

// Compile parses the expressions of spec according to its kind. All errors
// are *expr.ParseError.
func Compile(spec Spec) (*Curve, error) {
	c := &Curve{spec: spec, kind: Classify(spec.Text)}
	text := spec.Text
	var err error
	switch c.kind {
	case Explicit:
		c.f, err = expr.Parse(text, "x")
	case Implicit:
		eq := strings.IndexByte(text, '=')
		lhs, rhs, _ := expr.Split(text)
		if c.f, err = expr.Parse(lhs, "x", "y"); err != nil {
			err = relocate(err, text, 0)
			break
		}
		c.g, err = expr.Parse(rhs, "x", "y")
		err = relocate(err, text, eq+1)
	case Parametric:
		off := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
		s := strings.TrimSpace(text)
		comma, _ := splitPair(s)
		if c.f, err = expr.Parse(s[1:comma], "t"); err != nil {
			err = relocate(err, text, off+1)
			break
		}
		if c.g, err = expr.Parse(s[comma+1:len(s)-1], "t"); err != nil {
			err = relocate(err, text, off+comma+1)
			break
		}
		c.from, c.to, err = interval(spec.TStart, spec.TEnd)
	case Polar:
		eq := strings.IndexByte(text, '=')
		if c.f, err = expr.Parse(text[eq+1:], "theta"); err != nil {
			err = relocate(err, text, eq+1)
			break
		}
		c.from, c.to, err = interval(spec.ThetaStart, spec.ThetaEnd)
	}
	if err != nil {
		tracer().Infof("cannot compile %s curve %q: %v", c.kind, text, err)
		return nil, err
	}
	return c, nil
}

func interval(start, end string) (float64, float64, error) {
	from, err := expr.Constant(start)
	if err != nil {
		return 0, 0, err
	}
	to, err := expr.Constant(end)
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

// relocate makes the offset of a parse error of a sub-expression relative to
// the full function text.
func relocate(err error, text string, offset int) error {
	var perr *expr.ParseError
	if err == nil || !errors.As(err, &perr) {
		return err
	}
	moved := *perr
	moved.Input = text
	moved.Pos += offset
	return &moved
}
