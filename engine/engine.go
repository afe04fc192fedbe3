// Package engine defines the capability interface an interpolation engine
// must satisfy to be driven by a transition machine, plus the constructor
// metadata (multiplicity, factory) the machine uses to pick and instantiate
// engines.
package engine

import (
	"time"

	"github.com/amp-labs/amp-motion/curve"
	"github.com/amp-labs/amp-motion/state"
)

// Engine interpolates between two state values over time. Engines are
// pull-driven: they own no timer and only advance when Get is called.
// An engine must invoke onComplete (passed to Set) at most once, from
// inside a Get call that observes the transition's end.
type Engine interface {
	// Reset discards any transition in flight and repositions the engine
	// at the given state, optionally seeded with a velocity (zero Value
	// means none).
	Reset(s, velocity state.Value)

	// Set begins a transition toward end under the given spec. onComplete
	// may be nil.
	Set(end state.Value, spec Spec, onComplete func())

	// Get returns the interpolated state at the given time. A zero time
	// means the engine's own notion of "now".
	Get(at time.Time) state.Value

	Pause()
	Resume()
	IsPaused() bool
}

// VelocityReporter is an optional engine capability. Engines that can
// report their instantaneous rate of change implement it, which enables
// velocity carry-over between chained actions.
type VelocityReporter interface {
	Velocity() state.Value
}

// ClockAware is an optional engine capability. The machine injects its own
// clock into engines that implement it, so a host with a synthetic clock
// drives the whole chain deterministically.
type ClockAware interface {
	UseClock(now func() time.Time)
}

// Multiplicity declares how many components of a composite value an
// engine's instances can drive natively. ScalarOnly engines are wrapped in
// a fan-out adapter for any composite value; a positive cap N means
// composites up to N components are handled natively.
type Multiplicity int

// Multiplicity sentinels.
const (
	ScalarOnly Multiplicity = 0
	Unlimited  Multiplicity = -1
)

// Supports reports whether an engine with this multiplicity can drive v
// directly. Non-composite values are always supported.
func (m Multiplicity) Supports(v state.Value) bool {
	if !v.Composite() {
		return true
	}

	if m == Unlimited {
		return true
	}

	return int(m) >= v.Len()
}

// Constructor is the registered identity of an engine implementation:
// a stable name, declared multiplicity, and a factory. Constructors are
// compared by pointer, which is what lets the machine reuse a live engine
// instance across consecutive actions that resolve to the same constructor.
type Constructor struct {
	Name     string
	Multiple Multiplicity
	New      func() Engine
}

// Spec configures a single transition.
type Spec struct {
	// Duration of the transition. Required for timed transitions.
	Duration time.Duration

	// Curve shapes progress over normalized time. When nil, CurveName is
	// resolved against the curve registry; when both are empty the engine
	// default applies (linear for the tween engine).
	Curve     curve.Func
	CurveName string

	// Method selects the engine: a direct constructor reference, or a
	// name resolved against the method registry. Empty means the default
	// method.
	Method     *Constructor
	MethodName string

	// Velocity seeds the transition's initial rate of change. The machine
	// injects the carried-over velocity here when chaining actions;
	// callers normally leave it zero.
	Velocity state.Value
}
