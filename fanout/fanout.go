// Package fanout adapts a scalar-capable engine constructor to composite
// values. The adapter holds one sub-engine per component (sequence index or
// map key), fans every capability call out to all sub-engines, and fans Get
// and Velocity results back into a composite value preserving index/key
// correspondence.
package fanout

import (
	"time"

	"github.com/amp-labs/amp-motion/engine"
	"github.com/amp-labs/amp-motion/state"
)

// Wrap returns a constructor whose engines drive composite values by
// delegating element-wise to engines built from ctor.
func Wrap(ctor *engine.Constructor) *engine.Constructor {
	return &engine.Constructor{
		Name:     ctor.Name + "+fanout",
		Multiple: engine.Unlimited,
		New: func() engine.Engine {
			return &Adapter{ctor: ctor, now: time.Now}
		},
	}
}

// Adapter is the composite fan-out engine. Its sub-engine set is rebuilt on
// Reset to match the shape of the value it is handed.
type Adapter struct {
	ctor *engine.Constructor
	now  func() time.Time

	kind state.Kind
	keys []string // component order for map-shaped values
	subs []engine.Engine
}

// UseClock satisfies engine.ClockAware, forwarding the clock to every
// clock-aware sub-engine (including ones built by later Resets).
func (a *Adapter) UseClock(now func() time.Time) {
	a.now = now

	for _, sub := range a.subs {
		if ca, ok := sub.(engine.ClockAware); ok {
			ca.UseClock(now)
		}
	}
}

// Reset rebuilds the sub-engine set to match the shape of s and resets each
// sub-engine with its component of the state and velocity.
func (a *Adapter) Reset(s, velocity state.Value) {
	a.kind = s.Kind()
	a.keys = s.Keys()

	n := s.Len()
	a.subs = make([]engine.Engine, n)

	for i := range a.subs {
		sub := a.ctor.New()
		if ca, ok := sub.(engine.ClockAware); ok {
			ca.UseClock(a.now)
		}

		sub.Reset(a.component(s, i), a.component(velocity, i))
		a.subs[i] = sub
	}
}

// Set fans the transition out element-wise. onComplete fires once, after
// every sub-engine has reported completion.
func (a *Adapter) Set(end state.Value, spec engine.Spec, onComplete func()) {
	remaining := len(a.subs)

	allDone := func() {
		remaining--
		if remaining == 0 && onComplete != nil {
			onComplete()
		}
	}

	for i, sub := range a.subs {
		subSpec := spec
		subSpec.Velocity = a.component(spec.Velocity, i)

		sub.Set(a.component(end, i), subSpec, allDone)
	}
}

// Get queries every sub-engine and assembles the results back into the
// composite shape observed at Reset.
func (a *Adapter) Get(at time.Time) state.Value {
	vals := make([]float64, len(a.subs))
	for i, sub := range a.subs {
		vals[i] = sub.Get(at).Float()
	}

	return a.assemble(vals)
}

// Velocity satisfies engine.VelocityReporter when the wrapped engine does;
// otherwise it returns the absent value.
func (a *Adapter) Velocity() state.Value {
	vals := make([]float64, len(a.subs))

	for i, sub := range a.subs {
		vr, ok := sub.(engine.VelocityReporter)
		if !ok {
			return state.Value{}
		}

		v := vr.Velocity()
		if v.IsZero() {
			return state.Value{}
		}

		vals[i] = v.Float()
	}

	return a.assemble(vals)
}

// Pause freezes every sub-engine.
func (a *Adapter) Pause() {
	for _, sub := range a.subs {
		sub.Pause()
	}
}

// Resume continues every sub-engine.
func (a *Adapter) Resume() {
	for _, sub := range a.subs {
		sub.Resume()
	}
}

// IsPaused reports whether the adapter is frozen. Sub-engines pause and
// resume in lockstep, so the first one speaks for all.
func (a *Adapter) IsPaused() bool {
	if len(a.subs) == 0 {
		return false
	}

	return a.subs[0].IsPaused()
}

// component extracts the i-th scalar component of v, following the shape
// established at Reset. Absent values stay absent.
func (a *Adapter) component(v state.Value, i int) state.Value {
	if v.IsZero() {
		return state.Value{}
	}

	switch a.kind {
	case state.KindMap:
		if i < len(a.keys) {
			return state.Scalar(v.Key(a.keys[i]))
		}

		return state.Scalar(0)
	case state.KindSequence:
		return state.Scalar(v.At(i))
	default:
		return state.Scalar(v.Float())
	}
}

// assemble packs per-component scalars back into the composite shape.
func (a *Adapter) assemble(vals []float64) state.Value {
	switch a.kind {
	case state.KindMap:
		m := make(map[string]float64, len(vals))
		for i, k := range a.keys {
			m[k] = vals[i]
		}

		return state.Map(m)
	case state.KindSequence:
		return state.Sequence(vals...)
	default:
		if len(vals) == 0 {
			return state.Value{}
		}

		return state.Scalar(vals[0])
	}
}

var (
	_ engine.Engine           = (*Adapter)(nil)
	_ engine.VelocityReporter = (*Adapter)(nil)
	_ engine.ClockAware       = (*Adapter)(nil)
)
