// Package universe binds the life engine to the render pipeline behind the
// per-frame contract a host drives: Tick, Paint, pan/zoom and Destroy.
package universe

import (
	"log/slog"

	"lifegl/internal/core"
	"lifegl/internal/gpu"
	"lifegl/internal/render"
	"lifegl/internal/sims/life"

	"github.com/pkg/errors"
)

// FrameObserver is notified around each Frame, e.g. to measure frame time.
type FrameObserver interface {
	Begin()
	End()
}

type options struct {
	logger   *slog.Logger
	workers  int
	pattern  core.Pattern
	seed     int64
	observer FrameObserver
}

// Option configures a Universe.
type Option func(*options)

// WithLogger sets the sink for GPU diagnostics.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithWorkers steps the grid in n parallel row bands.
func WithWorkers(n int) Option { return func(o *options) { o.workers = n } }

// WithPattern selects the initial population.
func WithPattern(p core.Pattern, seed int64) Option {
	return func(o *options) { o.pattern, o.seed = p, seed }
}

// WithObserver attaches an optional frame observer. nil disables it.
func WithObserver(obs FrameObserver) Option { return func(o *options) { o.observer = obs } }

// Universe is one running game instance.
type Universe struct {
	sim      *life.Life
	pipeline *render.Pipeline
	observer FrameObserver
	logger   *slog.Logger
	done     bool
}

// New validates the grid size and surface, seeds the grid and builds the
// render pipeline. On error nothing is left allocated on the surface.
func New(surface gpu.Surface, width, height int, opts ...Option) (*Universe, error) {
	o := options{logger: slog.Default(), pattern: core.PatternAlternating}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	if !(core.Size{W: width, H: height}).Valid() {
		return nil, errors.Wrapf(core.ErrInvalidSize, "[universe.New] %dx%d", width, height)
	}
	if surface == nil {
		return nil, errors.Wrap(core.ErrNoSurface, "[universe.New]")
	}

	sim, err := life.New(width, height, life.WithPattern(o.pattern, o.seed), life.WithWorkers(o.workers))
	if err != nil {
		return nil, errors.Wrap(err, "[universe.New]")
	}
	pipeline, err := render.Initialize(surface, o.logger)
	if err != nil {
		return nil, errors.Wrap(err, "[universe.New]")
	}

	o.logger.Info("universe created", "width", width, "height", height, "pattern", o.pattern, "population", sim.Population())
	return &Universe{sim: sim, pipeline: pipeline, observer: o.observer, logger: o.logger}, nil
}

// Tick advances the simulation one generation.
func (u *Universe) Tick() {
	if u.done {
		return
	}
	u.sim.Step()
}

// Paint redraws the current generation.
func (u *Universe) Paint() {
	if u.done {
		return
	}
	size := u.sim.Size()
	u.pipeline.Draw(u.sim.Cells(), size.W, size.H)
}

// Frame runs one observed Tick+Paint.
func (u *Universe) Frame() {
	if u.observer != nil {
		u.observer.Begin()
		defer u.observer.End()
	}
	u.Tick()
	u.Paint()
}

// Redraw runs one observed Paint without advancing, for paused hosts.
func (u *Universe) Redraw() {
	if u.observer != nil {
		u.observer.Begin()
		defer u.observer.End()
	}
	u.Paint()
}

// SetOffset pans the view by x, y surface pixels.
func (u *Universe) SetOffset(x, y float64) { u.pipeline.SetOffset(x, y) }

// Offset returns the current pan.
func (u *Universe) Offset() (float64, float64) { return u.pipeline.Offset() }

// SetZoom sets the zoom factor verbatim.
func (u *Universe) SetZoom(z float64) { u.pipeline.SetZoom(z) }

// Zoom returns the zoom factor.
func (u *Universe) Zoom() float64 { return u.pipeline.Zoom() }

// Reset reapplies the initial pattern.
func (u *Universe) Reset() { u.sim.Reset() }

// Reseed replaces the population with a random one.
func (u *Universe) Reseed(seed int64) { u.sim.Reseed(seed) }

// Generation returns the number of ticks since the last reset.
func (u *Universe) Generation() int { return u.sim.Generation() }

// Population counts live cells.
func (u *Universe) Population() int { return u.sim.Population() }

// Cells exposes the current generation.
func (u *Universe) Cells() []core.Cell { return u.sim.Cells() }

// Degraded reports whether the pipeline lost its program or buffer.
func (u *Universe) Degraded() bool { return u.pipeline.Degraded() }

// Destroy releases GPU resources. Later calls, and Tick/Paint after it, are
// no-ops.
func (u *Universe) Destroy() {
	if u == nil || u.done {
		return
	}
	u.done = true
	u.pipeline.Dispose()
	u.logger.Debug("universe destroyed", "generation", u.sim.Generation())
}
