// Package transition implements a pull-based value-interpolation scheduler.
// A Machine holds a mutable current state (scalar, sequence, or keyed
// numeric value) and a FIFO queue of transitions toward future end states,
// each executed by a pluggable interpolation engine.
//
// The machine owns no timer or event loop. All progress — interpolation,
// action completion, callback invocation, queue advancement — happens
// synchronously inside calls to Get, Set, Reset, Delay, Halt, Pause, or
// Resume. The host (a render loop, a test harness) owns the query cadence,
// which keeps behavior deterministic under synthetic timestamps.
package transition

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/amp-labs/amp-motion/curve"
	"github.com/amp-labs/amp-motion/engine"
	"github.com/amp-labs/amp-motion/fanout"
	"github.com/amp-labs/amp-motion/registry"
	"github.com/amp-labs/amp-motion/state"
	"github.com/amp-labs/amp-motion/tween"
)

// action is one queued transition. Immutable once enqueued: Set copies the
// caller's spec, and the only later mutation is the machine injecting the
// carried-over velocity after dequeue.
type action struct {
	end      state.Value
	spec     engine.Spec
	callback func()
}

// Machine is the transition state machine. It is single-threaded by
// design: all methods must be called from one goroutine (or be externally
// synchronized).
type Machine struct {
	id            string
	log           *slog.Logger
	clock         func() time.Time
	traceCtx      context.Context
	defaultMethod *engine.Constructor

	// Most recent snapshot. Always available, even when idle.
	state    state.Value
	velocity state.Value

	queue []action

	// Active action context: at most one action in flight. current and
	// spec are non-nil exactly while an action occupies the engine; method
	// remembers the last resolved constructor so consecutive actions with
	// the same method reuse the live engine instance.
	current         *action
	eng             engine.Engine
	method          *engine.Constructor
	spec            *engine.Spec
	pendingCallback func()

	span    trace.Span
	started time.Time
}

// New creates an idle machine positioned at the given initial state.
func New(initial state.Value, opts ...Option) *Machine {
	m := &Machine{
		id:       uuid.New().String(),
		clock:    time.Now,
		traceCtx: context.Background(),
		state:    initial.Clone(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.log == nil {
		m.log = slog.Default()
	}

	return m
}

// ID returns the machine's instance id, as used in logs and span attributes.
func (m *Machine) ID() string {
	return m.id
}

// Set enqueues a transition toward end under the given spec, with an
// optional completion callback. A nil spec is the instantaneous jump: the
// machine resets to end — silently dropping the queue and any in-flight
// action — and the callback, if any, runs synchronously.
//
// If the machine is idle the action starts immediately; otherwise it runs
// after everything already queued, in FIFO order. Returns the machine for
// chaining.
func (m *Machine) Set(end state.Value, spec *engine.Spec, callback func()) *Machine {
	if spec == nil {
		m.Reset(end)

		if callback != nil {
			callback()
		}

		return m
	}

	m.queue = append(m.queue, action{end: end.Clone(), spec: *spec, callback: callback})

	actionsEnqueuedTotal.WithLabelValues(sanitizeMachineID(m.id)).Inc()
	queueDepth.WithLabelValues(sanitizeMachineID(m.id)).Set(float64(len(m.queue)))

	if m.current == nil && m.spec == nil {
		m.drain()
	}

	return m
}

// Reset unconditionally cancels all activity: the live engine, the active
// action, and every queued action are dropped without invoking any pending
// callback. The snapshot becomes the given state and optional velocity.
func (m *Machine) Reset(start state.Value, velocity ...state.Value) *Machine {
	dropped := len(m.queue)
	if m.current != nil {
		dropped++
	}

	if dropped > 0 {
		actionsCancelledTotal.WithLabelValues(sanitizeMachineID(m.id)).Add(float64(dropped))
		m.log.Debug("reset dropped pending actions",
			"machine_id", m.id,
			"dropped", dropped,
		)
	}

	cancelActionSpan(m.span)

	m.span = nil
	m.method = nil
	m.eng = nil
	m.current = nil
	m.spec = nil
	m.pendingCallback = nil
	m.queue = nil

	m.state = start.Clone()

	m.velocity = state.Value{}
	if len(velocity) > 0 {
		m.velocity = velocity[0].Clone()
	}

	queueDepth.WithLabelValues(sanitizeMachineID(m.id)).Set(0)

	return m
}

// Delay enqueues a timed no-op: the state holds its effective end value —
// the last queued end state, else the in-flight end state, else the live
// snapshot — for the given duration before the callback fires and the
// queue advances. Delays share the ordinary queue-draining machinery.
func (m *Machine) Delay(duration time.Duration, callback func()) *Machine {
	var end state.Value

	switch {
	case len(m.queue) > 0:
		end = m.queue[len(m.queue)-1].end
	case m.current != nil:
		end = m.current.end
	default:
		end = m.Get(time.Time{})
	}

	return m.Set(end, &engine.Spec{Duration: duration, Curve: curve.Flat}, callback)
}

// Get returns the interpolated state at the given time (zero means the
// machine clock's "now") and caches it, along with the engine's velocity
// when the engine reports one. Get is the sole driver of progress: if the
// active action's end is observed, its callback fires and the queue
// advances inside this call, never asynchronously.
func (m *Machine) Get(at time.Time) state.Value {
	if at.IsZero() {
		at = m.clock()
	}

	// Completion drains the queue from inside eng.Get, which may replace
	// or clear the engine; hold the instance we asked so a reentrant reset
	// is not clobbered by a stale result.
	if eng := m.eng; eng != nil {
		if vr, ok := eng.(engine.VelocityReporter); ok {
			m.velocity = vr.Velocity()
		}

		s := eng.Get(at)
		if m.eng == eng {
			m.state = s.Clone()
		}
	}

	return m.state
}

// IsActive reports whether a transition is in flight.
func (m *Machine) IsActive() bool {
	return m.spec != nil
}

// Halt cancels all pending and active actions and snaps the machine to the
// currently interpolated value. Pending callbacks are dropped silently.
func (m *Machine) Halt() *Machine {
	return m.Set(m.Get(time.Time{}), nil, nil)
}

// Pause freezes the active engine, if any. A no-op when idle.
func (m *Machine) Pause() *Machine {
	if m.eng != nil {
		m.eng.Pause()
	}

	return m
}

// Resume continues a paused engine, if any. A no-op when idle.
func (m *Machine) Resume() *Machine {
	if m.eng != nil {
		m.eng.Resume()
	}

	return m
}

// IsPaused reports whether the active engine is paused. False when idle.
func (m *Machine) IsPaused() bool {
	if m.eng == nil {
		return false
	}

	return m.eng.IsPaused()
}

// drain advances the queue. It runs when Set transitions the machine out
// of idle and as the completion continuation handed to every engine.
func (m *Machine) drain() {
	if m.current != nil {
		m.finishCurrent()
	}

	// Clear the stored callback before invoking it: a callback that
	// re-enters Set, Reset, or Halt must never retrigger itself.
	if cb := m.pendingCallback; cb != nil {
		m.pendingCallback = nil
		cb()
	}

	m.current = nil

	if len(m.queue) == 0 {
		// Out of work: a silent no-op reset to the live snapshot leaves
		// the machine idle. No callback fires for running dry.
		m.Set(m.Get(time.Time{}), nil, nil)

		return
	}

	next := m.queue[0]
	m.queue = m.queue[1:]

	queueDepth.WithLabelValues(sanitizeMachineID(m.id)).Set(float64(len(m.queue)))

	m.start(&next)
}

// finishCurrent records the completion of the in-flight action: the
// snapshot snaps to its end state, and the engine's velocity at the moment
// of completion is cached for carry-over into the next action.
func (m *Machine) finishCurrent() {
	m.state = m.current.end.Clone()

	if vr, ok := m.eng.(engine.VelocityReporter); ok {
		m.velocity = vr.Velocity()
	}

	methodName := "unknown"
	if m.method != nil {
		methodName = m.method.Name
	}

	elapsed := m.clock().Sub(m.started)

	actionsCompletedTotal.WithLabelValues(sanitizeMachineID(m.id), sanitizeMethod(methodName)).Inc()
	actionDuration.WithLabelValues(sanitizeMethod(methodName)).Observe(elapsed.Seconds())

	endActionSpan(m.span, elapsed)
	m.span = nil

	m.log.Debug("action completed",
		"machine_id", m.id,
		"method", methodName,
		"state", m.state,
	)
}

// start resolves the next action's engine and commands it toward the end
// state, wiring drain as the completion continuation.
func (m *Machine) start(next *action) {
	ctor := m.resolveMethod(&next.spec)

	if next.spec.Curve == nil && next.spec.CurveName != "" {
		fn, ok := curve.Lookup(next.spec.CurveName)
		if !ok {
			panic(unknownCurve(next.spec.CurveName))
		}

		next.spec.Curve = fn
	}

	// Reuse the live engine instance across consecutive actions that
	// resolve to the same constructor; otherwise instantiate fresh,
	// wrapping in the fan-out adapter when the end state exceeds the
	// engine's native multiplicity.
	if m.method != ctor || m.eng == nil {
		if ctor.Multiple.Supports(next.end) {
			m.eng = ctor.New()
		} else {
			m.eng = fanout.Wrap(ctor).New()
		}

		if ca, ok := m.eng.(engine.ClockAware); ok {
			ca.UseClock(m.clock)
		}

		m.method = ctor
	}

	m.eng.Reset(m.state, m.velocity)

	// Velocity carry-over: the previous action's closing velocity seeds
	// the next one.
	if !m.velocity.IsZero() {
		next.spec.Velocity = m.velocity.Clone()
	}

	m.current = next
	m.pendingCallback = next.callback
	m.spec = &next.spec
	m.started = m.clock()
	m.span = startActionSpan(m.traceCtx, m.id, ctor.Name, next.spec.Duration, next.end.Len())

	m.log.Debug("action started",
		"machine_id", m.id,
		"method", ctor.Name,
		"end", next.end,
		"duration", next.spec.Duration,
		"queued", len(m.queue),
	)

	m.eng.Set(next.end, next.spec, m.drain)
}

// resolveMethod picks the constructor for a spec: direct reference, then
// registry lookup by name, then the machine default, then the registry
// default. An unresolvable name panics with ErrUnknownMethod.
func (m *Machine) resolveMethod(spec *engine.Spec) *engine.Constructor {
	switch {
	case spec.Method != nil:
		return spec.Method
	case spec.MethodName != "":
		ctor, ok := registry.Lookup(spec.MethodName)
		if !ok {
			panic(unknownMethod(spec.MethodName))
		}

		return ctor
	case m.defaultMethod != nil:
		return m.defaultMethod
	default:
		if ctor := registry.Default(); ctor != nil {
			return ctor
		}

		return tween.Constructor
	}
}
