package plot

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/simplygraph/curve"
)

// curveCache keeps the compiled curves of recently plotted specs, so that
// switching back to an earlier function text does not parse it again.
// When full, the entry compiled first is evicted. Malformed specs are not
// cached. A curveCache is not safe for concurrent use.
type curveCache struct {
	size   int
	curves *linkedhashmap.Map // curve.Spec → *curve.Curve, in insertion order
}

func newCurveCache(size int) *curveCache {
	return &curveCache{size: size, curves: linkedhashmap.New()}
}

func (cc *curveCache) compile(spec curve.Spec) (*curve.Curve, error) {
	if c, ok := cc.curves.Get(spec); ok {
		tracer().Debugf("compiled curve for %q from cache", spec.Text)
		return c.(*curve.Curve), nil
	}
	c, err := curve.Compile(spec)
	if err != nil || cc.size == 0 {
		return c, err
	}
	if cc.curves.Size() >= cc.size {
		it := cc.curves.Iterator()
		if it.First() {
			cc.curves.Remove(it.Key())
		}
	}
	cc.curves.Put(spec, c)
	return c, nil
}

func (cc *curveCache) len() int {
	return cc.curves.Size()
}
