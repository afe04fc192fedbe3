// Package tween implements the default curve-driven interpolation engine:
// a timed transition whose progress is shaped by an easing curve. It is
// registered in the method registry as "tween" and installed as the default
// method at init.
package tween

import (
	"time"

	"github.com/amp-labs/amp-motion/curve"
	"github.com/amp-labs/amp-motion/engine"
	"github.com/amp-labs/amp-motion/registry"
	"github.com/amp-labs/amp-motion/state"
)

// Constructor identifies the tween engine in the method registry. It drives
// composite values of any size natively by interpolating element-wise.
var Constructor = &engine.Constructor{ //nolint:gochecknoglobals
	Name:     "tween",
	Multiple: engine.Unlimited,
	New:      func() engine.Engine { return New() },
}

//nolint:gochecknoinits // the default method must be available without setup
func init() {
	registry.Register(Constructor.Name, Constructor)
	registry.SetDefault(Constructor)
}

// slopeDelta is the normalized-time step for finite-difference velocity.
const slopeDelta = 1e-4

// Tween interpolates between a start and end value over a fixed duration.
// It is pull-driven: time only advances when Get observes a timestamp. The
// engine remembers the last timestamp it saw, so a chained transition
// started from inside a completing Get begins exactly at that instant
// rather than at the wall clock.
type Tween struct {
	now  func() time.Time
	last time.Time

	value    state.Value
	velocity state.Value

	start      state.Value
	end        state.Value
	curveFn    curve.Func
	duration   time.Duration
	startTime  time.Time
	onComplete func()
	active     bool

	paused   bool
	pausedAt time.Time
}

// Option configures a Tween.
type Option func(*Tween)

// WithClock overrides the wall clock, used when no timestamp has been
// observed yet. Tests inject a manual clock here.
func WithClock(now func() time.Time) Option {
	return func(tw *Tween) {
		tw.now = now
	}
}

// New creates an idle tween engine.
func New(opts ...Option) *Tween {
	tw := &Tween{now: time.Now}

	for _, opt := range opts {
		opt(tw)
	}

	return tw
}

// UseClock satisfies engine.ClockAware.
func (tw *Tween) UseClock(now func() time.Time) {
	tw.now = now
}

// Reset discards any transition in flight and repositions the engine.
func (tw *Tween) Reset(s, velocity state.Value) {
	tw.value = s.Clone()
	tw.velocity = velocity.Clone()
	tw.active = false
	tw.paused = false
	tw.onComplete = nil
}

// Set begins a transition from the engine's current value toward end.
// The curve resolves in order: spec.Curve, spec.CurveName via the curve
// registry, then linear. A seeded spec.Velocity is reported by Velocity
// until the first Get samples the actual slope.
func (tw *Tween) Set(end state.Value, spec engine.Spec, onComplete func()) {
	tw.start = tw.value.Clone()
	tw.end = end.Clone()
	tw.duration = spec.Duration
	tw.curveFn = resolveCurve(spec)
	tw.onComplete = onComplete
	tw.startTime = tw.currentTime()
	tw.active = true
	tw.paused = false

	if !spec.Velocity.IsZero() {
		tw.velocity = spec.Velocity.Clone()
	}
}

// Get returns the interpolated value at the given time. A zero time means
// the clock's "now". When the transition's end is observed, the completion
// callback fires from inside this call, exactly once.
func (tw *Tween) Get(at time.Time) state.Value {
	if at.IsZero() {
		at = tw.now()
	}

	tw.last = at

	if !tw.active || tw.paused {
		return tw.value.Clone()
	}

	elapsed := at.Sub(tw.startTime)
	if elapsed >= tw.duration {
		tw.value = tw.end.Clone()
		tw.velocity = tw.velocityAt(1)
		tw.active = false

		// The callback may immediately Reset and reuse this instance for
		// the next chained transition, so snapshot the completed value
		// before handing over control.
		done := tw.value.Clone()

		if cb := tw.onComplete; cb != nil {
			tw.onComplete = nil
			cb()
		}

		return done
	}

	t := float64(elapsed) / float64(tw.duration)
	progress := tw.curveFn(t)

	tw.value = state.Combine(tw.end, tw.start, func(e, s float64) float64 {
		return s + progress*(e-s)
	})
	tw.velocity = tw.velocityAt(t)

	return tw.value.Clone()
}

// Velocity satisfies engine.VelocityReporter. Units are value change per
// millisecond, matching the duration granularity of transition specs.
func (tw *Tween) Velocity() state.Value {
	return tw.velocity.Clone()
}

// Pause freezes the transition at the last observed timestamp.
func (tw *Tween) Pause() {
	if !tw.active || tw.paused {
		return
	}

	tw.pausedAt = tw.currentTime()
	tw.paused = true
}

// Resume continues a paused transition, shifting its start time by the
// paused interval so no progress is lost or skipped.
func (tw *Tween) Resume() {
	if !tw.paused {
		return
	}

	tw.startTime = tw.startTime.Add(tw.currentTime().Sub(tw.pausedAt))
	tw.paused = false
}

// IsPaused reports whether the transition is frozen.
func (tw *Tween) IsPaused() bool {
	return tw.paused
}

// currentTime is the engine's notion of "now": the last timestamp observed
// through Get, or the clock when none has been seen yet.
func (tw *Tween) currentTime() time.Time {
	if !tw.last.IsZero() {
		return tw.last
	}

	return tw.now()
}

// velocityAt samples the curve slope at normalized time t by finite
// difference and scales it to value units per millisecond.
func (tw *Tween) velocityAt(t float64) state.Value {
	durMs := float64(tw.duration.Milliseconds())
	if durMs <= 0 {
		return state.Combine(tw.end, tw.start, func(_, _ float64) float64 { return 0 })
	}

	lo, hi := t, t+slopeDelta
	if hi > 1 {
		lo, hi = 1-slopeDelta, 1
	}

	slope := (tw.curveFn(hi) - tw.curveFn(lo)) / slopeDelta

	return state.Combine(tw.end, tw.start, func(e, s float64) float64 {
		return slope * (e - s) / durMs
	})
}

func resolveCurve(spec engine.Spec) curve.Func {
	if spec.Curve != nil {
		return spec.Curve
	}

	if spec.CurveName != "" {
		if fn, ok := curve.Lookup(spec.CurveName); ok {
			return fn
		}
	}

	return curve.Linear
}

var (
	_ engine.Engine           = (*Tween)(nil)
	_ engine.VelocityReporter = (*Tween)(nil)
	_ engine.ClockAware       = (*Tween)(nil)
)
