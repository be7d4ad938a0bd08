/*
Package plot schedules the recomputation of a plotted curve.

A Plotter receives edit events from an interactive front end: new function
text, interval edits, canvas resizes and pan/zoom gestures. Every event
replaces the plotter's state snapshot, cancels the sampling job in flight
and requests a new one. Job starts are throttled; requests arriving within
the throttle window are coalesced into a single trailing start which reads
the latest snapshot.

Jobs run one at a time on a background goroutine. A job's point set is
published only if the job ran to completion and no newer request has been
made since, so the published point set never lags behind a superseded
state. Curves which cannot be sampled at all (malformed text, degenerate
canvas) publish an empty point set immediately, without a job.

	p := plot.New()
	defer p.Close()
	p.OnCanvasResized(800, 600)
	p.OnFunctionTextChanged("x^2 + y^2 = 25")
	for ps := range p.Updates() {
		draw(ps)
	}

None of the On… methods returns an error; the last curve-level error is
available from Err.
*/
package plot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/simplygraph"
	"github.com/npillmayer/simplygraph/curve"
	"github.com/npillmayer/simplygraph/viewport"
)

// tracer writes to trace with key 'plot'
func tracer() tracing.Trace {
	return tracing.Select("plot")
}

// ErrClosed is returned by Err after Close.
var ErrClosed = errors.New("plotter closed")

// Param selects the interval of a curve parameter.
type Param int

// Curve parameters with an editable interval.
const (
	T Param = iota
	Theta
)

func (p Param) String() string {
	switch p {
	case T:
		return "t"
	case Theta:
		return "theta"
	}
	return "unknown"
}

// Bound selects one end of an interval.
type Bound int

// Interval ends.
const (
	Start Bound = iota
	End
)

func (b Bound) String() string {
	switch b {
	case Start:
		return "start"
	case End:
		return "end"
	}
	return "unknown"
}

// state is the snapshot a job is computed from. It is replaced as a whole.
type state struct {
	spec  curve.Spec
	curve *curve.Curve // nil if the text is empty or malformed
	view  viewport.Transform
	err   error
}

func (st state) sampleable() bool {
	return st.curve != nil && st.view.Valid()
}

type job struct {
	ctx   context.Context
	rev   uint64
	curve *curve.Curve
	view  viewport.Transform
}

// Plotter owns the state of a single plotted curve and recomputes its point
// set on every edit. All methods are safe for concurrent use.
type Plotter struct {
	conf    config
	sampler curve.Sampler

	edit  sync.Mutex  // serializes compiling edits
	cache *curveCache // guarded by edit

	mu       sync.Mutex // guards the fields below
	st       state
	rev      uint64             // newest request
	cancel   context.CancelFunc // cancels the newest job
	pending  *job               // started, not yet picked up by the worker
	started  time.Time          // last job start
	trailing *time.Timer        // coalesced start at the end of the throttle window
	tick     uint64             // invalidates a trailing start
	closed   bool

	current atomic.Pointer[curve.PointSet]
	updates chan curve.PointSet
	wake    chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// New creates a Plotter and starts its worker. The canvas is empty until the
// first call to OnCanvasResized, and there is no curve until the first call
// to OnFunctionTextChanged. Call Close to stop the worker.
func New(opts ...Option) *Plotter {
	conf := defaults()
	for _, opt := range opts {
		opt(&conf)
	}
	p := &Plotter{
		conf:    conf,
		sampler: conf.engine(),
		cache:   newCurveCache(conf.cacheSize),
		updates: make(chan curve.PointSet, 1),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	p.st.spec = curve.NewSpec("")
	p.st.view = viewport.Transform{XWidth: conf.defaultXWidth}
	p.current.Store(&curve.PointSet{})
	p.wg.Add(1)
	go p.work()
	return p
}

// Close cancels the running job and stops the worker. The Updates channel is
// closed; further edits are ignored.
func (p *Plotter) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.stopTrailingLocked()
		if p.cancel != nil {
			p.cancel()
			p.cancel = nil
		}
		p.pending = nil
		p.mu.Unlock()
		close(p.done)
		p.wg.Wait()
		close(p.updates)
		tracer().Debugf("plotter closed")
	})
}

// === Inputs ================================================================

// OnFunctionTextChanged sets the curve's function text. Malformed text
// publishes an empty point set; the parse error is reported by Err.
func (p *Plotter) OnFunctionTextChanged(text string) {
	p.edit.Lock()
	defer p.edit.Unlock()
	spec := p.Spec()
	spec.Text = text
	p.recompile(spec)
}

// OnIntervalEdited sets one bound of the t or theta interval to an
// expression such as "2pi".
func (p *Plotter) OnIntervalEdited(which Param, bound Bound, value string) {
	p.edit.Lock()
	defer p.edit.Unlock()
	spec := p.Spec()
	switch {
	case which == T && bound == Start:
		spec.TStart = value
	case which == T && bound == End:
		spec.TEnd = value
	case which == Theta && bound == Start:
		spec.ThetaStart = value
	case which == Theta && bound == End:
		spec.ThetaEnd = value
	default:
		tracer().Infof("ignoring edit of interval bound %s/%s", which, bound)
		return
	}
	p.recompile(spec)
}

// OnCanvasResized sets the canvas size in pixels.
func (p *Plotter) OnCanvasResized(w, h float64) {
	p.updateView(func(v viewport.Transform) viewport.Transform {
		return v.Resized(w, h)
	})
}

// OnPanZoom moves the view by (dx, dy) pixels and divides the visible math
// width by scale, within the configured limits. A scale which is not a
// positive number leaves the zoom unchanged; non-finite offsets count as 0.
func (p *Plotter) OnPanZoom(dx, dy, scale float64) {
	if !simplygraph.Finite(dx) || !simplygraph.Finite(dy) {
		dx, dy = 0, 0
	}
	p.updateView(func(v viewport.Transform) viewport.Transform {
		return v.Panned(dx, dy).Zoomed(scale, p.conf.minXWidth, p.conf.maxXWidth)
	})
}

// ResetView clears the pan offset and restores the default visible width.
func (p *Plotter) ResetView() {
	p.updateView(func(v viewport.Transform) viewport.Transform {
		return v.Reset(p.conf.defaultXWidth)
	})
}

// recompile compiles spec outside of the state lock and installs the result.
// The caller holds p.edit.
func (p *Plotter) recompile(spec curve.Spec) {
	var c *curve.Curve
	var err error
	if strings.TrimSpace(spec.Text) != "" {
		c, err = p.cache.compile(spec)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.st.spec, p.st.curve, p.st.err = spec, c, err
	p.refreshLocked()
}

func (p *Plotter) updateView(f func(viewport.Transform) viewport.Transform) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.st.view = f(p.st.view)
	p.refreshLocked()
}

// === Scheduling ============================================================

// refreshLocked is called after every change of state. It cancels the
// newest job and either publishes an empty point set or requests a job for
// the new state.
func (p *Plotter) refreshLocked() {
	p.rev++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.pending = nil
	if !p.st.sampleable() {
		if p.st.curve != nil {
			tracer().Infof("nothing to sample for %v", p.st.view)
		}
		p.stopTrailingLocked()
		p.publishLocked(curve.NewPointSet(p.st.spec.Kind(), nil))
		return
	}
	if p.trailing != nil {
		return // coalesced
	}
	now := time.Now()
	if wait := p.conf.throttle - now.Sub(p.started); !p.started.IsZero() && wait > 0 {
		gen := p.tick
		p.trailing = time.AfterFunc(wait, func() { p.fire(gen) })
		return
	}
	p.startLocked(now)
}

// fire is the trailing start of a throttle window.
func (p *Plotter) fire(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || gen != p.tick {
		return
	}
	p.trailing = nil
	p.tick++
	if p.st.sampleable() {
		p.startLocked(time.Now())
	}
}

func (p *Plotter) stopTrailingLocked() {
	if p.trailing != nil {
		p.trailing.Stop()
		p.trailing = nil
	}
	p.tick++
}

// startLocked hands a job for the current snapshot to the worker.
func (p *Plotter) startLocked(now time.Time) {
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.started = now
	p.pending = &job{ctx: ctx, rev: p.rev, curve: p.st.curve, view: p.st.view}
	tracer().Debugf("start job #%d for %q", p.rev, p.st.spec.Text)
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Plotter) work() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case <-p.wake:
		}
		p.mu.Lock()
		j := p.pending
		p.pending = nil
		p.mu.Unlock()
		if j != nil {
			p.execute(j)
		}
	}
}

// execute runs a job without holding the state lock and publishes its result
// if the job is still the newest one.
func (p *Plotter) execute(j *job) {
	if j.ctx.Err() != nil {
		return
	}
	ps, err := p.sampler.Sample(j.ctx, j.curve, j.view)
	if j.ctx.Err() != nil {
		tracer().Debugf("job #%d superseded", j.rev)
		return
	}
	if err != nil {
		tracer().Infof("sampling %q failed: %v", j.curve.Spec().Text, err)
		ps = curve.NewPointSet(j.curve.Kind(), nil)
	}
	ps = ps.Decimate(p.conf.renderLimit)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || j.rev != p.rev || j.ctx.Err() != nil {
		tracer().Debugf("dropping result of job #%d", j.rev)
		return
	}
	p.cancel()
	p.cancel = nil
	p.publishLocked(ps)
}

// publishLocked makes ps the current point set for the newest request and
// offers it on the updates channel, replacing an unread value.
func (p *Plotter) publishLocked(ps curve.PointSet) {
	ps.Revision = p.rev
	p.current.Store(&ps)
	select {
	case <-p.updates:
	default:
	}
	p.updates <- ps
}

// === Outputs ===============================================================

// CurrentPointSet returns the last published point set. Its points must not
// be modified.
func (p *Plotter) CurrentPointSet() curve.PointSet {
	return *p.current.Load()
}

// Updates delivers published point sets. Only the latest unread point set
// is kept; a slow reader skips intermediate ones. The channel is closed by
// Close.
func (p *Plotter) Updates() <-chan curve.PointSet {
	return p.updates
}

// View returns the current view transform.
func (p *Plotter) View() viewport.Transform {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st.view
}

// Spec returns the current curve spec.
func (p *Plotter) Spec() curve.Spec {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st.spec
}

// Err returns the error which makes the current curve unplottable: an
// *expr.ParseError for malformed text, viewport.ErrDegenerateView for an
// empty canvas, or ErrClosed after Close. It is nil for a plottable curve
// and for empty text.
func (p *Plotter) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.closed:
		return ErrClosed
	case p.st.err != nil:
		return p.st.err
	case p.st.curve != nil && !p.st.view.Valid():
		return fmt.Errorf("%w: %v", viewport.ErrDegenerateView, p.st.view)
	}
	return nil
}
