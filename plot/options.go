package plot

import (
	"fmt"
	"time"

	"github.com/npillmayer/simplygraph"
	"github.com/npillmayer/simplygraph/curve"
	"github.com/npillmayer/simplygraph/viewport"
)

// Defaults for a Plotter.
const (
	DefaultThrottle    = 16 * time.Millisecond // about one job start per frame at 60 Hz
	DefaultRenderLimit = 100000                // points handed to the renderer
	DefaultMinXWidth   = 1e-6
	DefaultMaxXWidth   = 1e6
	DefaultCacheSize   = 32 // compiled curves kept for reuse
)

type config struct {
	throttle      time.Duration
	defaultXWidth float64
	minXWidth     float64
	maxXWidth     float64
	sampler       curve.Sampler
	pointCap      int
	workers       int
	renderLimit   int
	cacheSize     int
}

func defaults() config {
	return config{
		throttle:      DefaultThrottle,
		defaultXWidth: viewport.DefaultXWidth,
		minXWidth:     DefaultMinXWidth,
		maxXWidth:     DefaultMaxXWidth,
		renderLimit:   DefaultRenderLimit,
		cacheSize:     DefaultCacheSize,
	}
}

// Option configures a Plotter. Option constructors panic on meaningless
// arguments.
type Option func(*config)

// WithThrottle sets the minimum interval between two job starts. Zero
// starts every request immediately.
func WithThrottle(d time.Duration) Option {
	if d < 0 {
		panic(fmt.Sprintf("plot: WithThrottle(%v)", d))
	}
	return func(c *config) {
		c.throttle = d
	}
}

// WithDefaultXWidth sets the visible math width of a fresh or reset view.
func WithDefaultXWidth(w float64) Option {
	if !(w > 0) || !simplygraph.Finite(w) {
		panic(fmt.Sprintf("plot: WithDefaultXWidth(%g)", w))
	}
	return func(c *config) {
		c.defaultXWidth = w
	}
}

// WithXWidthLimits bounds the visible math width reachable by zooming.
func WithXWidthLimits(min, max float64) Option {
	if !(min > 0) || !(max >= min) || !simplygraph.Finite(max) {
		panic(fmt.Sprintf("plot: WithXWidthLimits(%g, %g)", min, max))
	}
	return func(c *config) {
		c.minXWidth, c.maxXWidth = min, max
	}
}

// WithSampler replaces the sampling engine, e.g. by an accelerated
// implementation. WithPointCap and WithWorkers have no effect then.
func WithSampler(s curve.Sampler) Option {
	if s == nil {
		panic("plot: WithSampler(nil)")
	}
	return func(c *config) {
		c.sampler = s
	}
}

// WithPointCap bounds the number of points of an implicit curve.
func WithPointCap(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("plot: WithPointCap(%d)", n))
	}
	return func(c *config) {
		c.pointCap = n
	}
}

// WithWorkers sets the number of goroutines scanning implicit curves.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("plot: WithWorkers(%d)", n))
	}
	return func(c *config) {
		c.workers = n
	}
}

// WithRenderLimit sets the number of points above which published point
// sets are decimated. Zero disables decimation.
func WithRenderLimit(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("plot: WithRenderLimit(%d)", n))
	}
	return func(c *config) {
		c.renderLimit = n
	}
}

// WithCacheSize sets the number of compiled curves kept for reuse. Zero
// disables caching.
func WithCacheSize(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("plot: WithCacheSize(%d)", n))
	}
	return func(c *config) {
		c.cacheSize = n
	}
}

func (c config) engine() curve.Sampler {
	if c.sampler != nil {
		return c.sampler
	}
	return curve.Engine{PointCap: c.pointCap, Workers: c.workers}
}
