package fanout_test

import (
	"testing"
	"time"

	"github.com/amp-labs/amp-motion/curve"
	"github.com/amp-labs/amp-motion/engine"
	"github.com/amp-labs/amp-motion/fanout"
	"github.com/amp-labs/amp-motion/state"
	"github.com/amp-labs/amp-motion/tween"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBase = time.Unix(1_700_000_000, 0) //nolint:gochecknoglobals

// scalarStub is a minimal scalar-only engine that completes on the first
// Get after Set. It records what it was handed.
type scalarStub struct {
	value      state.Value
	velocity   state.Value
	end        state.Value
	spec       engine.Spec
	onComplete func()
	paused     bool
}

func (s *scalarStub) Reset(st, velocity state.Value) {
	s.value = st
	s.velocity = velocity
	s.onComplete = nil
}

func (s *scalarStub) Set(end state.Value, spec engine.Spec, onComplete func()) {
	s.end = end
	s.spec = spec
	s.onComplete = onComplete
}

func (s *scalarStub) Get(_ time.Time) state.Value {
	if cb := s.onComplete; cb != nil {
		s.onComplete = nil
		s.value = s.end

		cb()
	}

	return s.value
}

func (s *scalarStub) Pause()         { s.paused = true }
func (s *scalarStub) Resume()        { s.paused = false }
func (s *scalarStub) IsPaused() bool { return s.paused }

func stubConstructor(made *[]*scalarStub) *engine.Constructor {
	return &engine.Constructor{
		Name:     "stub",
		Multiple: engine.ScalarOnly,
		New: func() engine.Engine {
			stub := &scalarStub{}
			*made = append(*made, stub)

			return stub
		},
	}
}

func TestWrapNaming(t *testing.T) {
	t.Parallel()

	var made []*scalarStub

	wrapped := fanout.Wrap(stubConstructor(&made))

	assert.Equal(t, "stub+fanout", wrapped.Name)
	assert.Equal(t, engine.Unlimited, wrapped.Multiple)
}

func TestSequenceFanOut(t *testing.T) {
	t.Parallel()

	var made []*scalarStub

	adapter := fanout.Wrap(stubConstructor(&made)).New()

	adapter.Reset(state.Sequence(1, 2, 3), state.Sequence(0.1, 0.2, 0.3))
	require.Len(t, made, 3, "one sub-engine per component")

	// Each sub-engine sees its own scalar slice of state and velocity.
	assert.True(t, made[1].value.Equal(state.Scalar(2)))
	assert.True(t, made[1].velocity.Equal(state.Scalar(0.2)))

	fired := 0
	adapter.Set(state.Sequence(10, 20, 30), engine.Spec{
		Duration: 100 * time.Millisecond,
		Velocity: state.Sequence(1, 2, 3),
	}, func() { fired++ })

	assert.True(t, made[2].end.Equal(state.Scalar(30)))
	assert.True(t, made[2].spec.Velocity.Equal(state.Scalar(3)))

	got := adapter.Get(testBase)
	assert.True(t, got.Equal(state.Sequence(10, 20, 30)))
	assert.Equal(t, 1, fired, "completion fires once, after every component")
}

func TestMapFanOutPreservesKeys(t *testing.T) {
	t.Parallel()

	var made []*scalarStub

	adapter := fanout.Wrap(stubConstructor(&made)).New()

	adapter.Reset(state.Map(map[string]float64{"x": 1, "y": 2}), state.Value{})
	require.Len(t, made, 2)

	adapter.Set(state.Map(map[string]float64{"x": 10, "y": 20}), engine.Spec{}, nil)

	got := adapter.Get(testBase)
	assert.True(t, got.Equal(state.Map(map[string]float64{"x": 10, "y": 20})))
}

func TestAbsentVelocityStaysAbsent(t *testing.T) {
	t.Parallel()

	var made []*scalarStub

	adapter := fanout.Wrap(stubConstructor(&made)).New()
	adapter.Reset(state.Sequence(1, 2), state.Value{})

	assert.True(t, made[0].velocity.IsZero())
	assert.True(t, made[1].velocity.IsZero())
}

func TestPauseResumeFanOut(t *testing.T) {
	t.Parallel()

	var made []*scalarStub

	adapter := fanout.Wrap(stubConstructor(&made)).New()
	adapter.Reset(state.Sequence(1, 2), state.Value{})

	assert.False(t, adapter.IsPaused())

	adapter.Pause()
	assert.True(t, adapter.IsPaused())
	assert.True(t, made[0].paused)
	assert.True(t, made[1].paused)

	adapter.Resume()
	assert.False(t, adapter.IsPaused())
}

func TestFanOutOverTween(t *testing.T) {
	t.Parallel()

	adapter := fanout.Wrap(tween.Constructor).New()

	ca, ok := adapter.(engine.ClockAware)
	require.True(t, ok)
	ca.UseClock(func() time.Time { return testBase })

	adapter.Reset(state.Sequence(0, 100), state.Value{})

	fired := 0
	adapter.Set(state.Sequence(10, 200), engine.Spec{
		Duration: 100 * time.Millisecond,
		Curve:    curve.Linear,
	}, func() { fired++ })

	got := adapter.Get(testBase.Add(50 * time.Millisecond))
	assert.InDelta(t, 5.0, got.At(0), 1e-9)
	assert.InDelta(t, 150.0, got.At(1), 1e-9)

	vr, ok := adapter.(engine.VelocityReporter)
	require.True(t, ok)

	vel := vr.Velocity()
	assert.InDelta(t, 0.1, vel.At(0), 1e-6)
	assert.InDelta(t, 1.0, vel.At(1), 1e-6)

	got = adapter.Get(testBase.Add(100 * time.Millisecond))
	assert.True(t, got.Equal(state.Sequence(10, 200)))
	assert.Equal(t, 1, fired)
}
