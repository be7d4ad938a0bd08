package curve

import (
	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/simplygraph"
)

// PointSet is the result of sampling a curve: pixel-space points plus a hint
// for the renderer whether to join them into a polyline or draw a scatter
// cloud. OnCanvas is set by the sampler if the bounding box of the points
// meets the canvas; a renderer may skip sets which do not. Revision orders
// published point sets; larger is newer.
type PointSet struct {
	Points        []simplygraph.Pair
	Kind          Kind
	ConnectAsLine bool
	OnCanvas      bool
	Revision      uint64
}

// NewPointSet wraps points sampled for a curve of kind k and derives the
// rendering hint: implicit curves are scattered, explicit and parametric
// curves are joined if there is more than one point, polar curves are
// always joined.
func NewPointSet(k Kind, points []simplygraph.Pair) PointSet {
	connect := true
	switch k {
	case Implicit:
		connect = false
	case Explicit, Parametric:
		connect = len(points) > 1
	}
	return PointSet{Points: points, Kind: k, ConnectAsLine: connect}
}

// Len returns the number of points.
func (ps PointSet) Len() int {
	return len(ps.Points)
}

// IsEmpty is a predicate: are there no points?
func (ps PointSet) IsEmpty() bool {
	return len(ps.Points) == 0
}

// Bounds returns the bounding box of the points. It is the zero rectangle
// for an empty set.
func (ps PointSet) Bounds() polyclip.Rectangle {
	if ps.IsEmpty() {
		return polyclip.Rectangle{}
	}
	c := make(polyclip.Contour, len(ps.Points))
	for i, p := range ps.Points {
		c[i] = polyclip.Point{X: p.X(), Y: p.Y()}
	}
	return c.BoundingBox()
}

// Overlaps reports whether any part of the bounding box of the points lies
// within r, e.g. the canvas rectangle of a view.
func (ps PointSet) Overlaps(r polyclip.Rectangle) bool {
	if ps.IsEmpty() {
		return false
	}
	return ps.Bounds().Overlaps(r)
}

// Decimate thins out a point set to at most limit points by repeatedly
// dropping every other point. Order is kept and the first point always
// survives. limit ≤ 0 means no limit. The receiver is not modified.
func (ps PointSet) Decimate(limit int) PointSet {
	if limit <= 0 || len(ps.Points) <= limit {
		return ps
	}
	pts := ps.Points
	for len(pts) > limit {
		thinned := make([]simplygraph.Pair, 0, (len(pts)+1)/2)
		for i := 0; i < len(pts); i += 2 {
			thinned = append(thinned, pts[i])
		}
		pts = thinned
	}
	tracer().Debugf("decimated %d points to %d", len(ps.Points), len(pts))
	ps.Points = pts
	return ps
}
