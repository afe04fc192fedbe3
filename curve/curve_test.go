package curve_test

import (
	"testing"

	"github.com/amp-labs/amp-motion/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveEndpoints(t *testing.T) {
	t.Parallel()

	// Every shipped curve must start at 0 and finish at 1, except Flat,
	// which never leaves 0.
	for _, tc := range []struct {
		name string
		fn   curve.Func
	}{
		{"linear", curve.Linear},
		{"easeIn", curve.EaseIn},
		{"easeOut", curve.EaseOut},
		{"easeInOut", curve.EaseInOut},
		{"outBounce", curve.OutBounce},
		{"spring", curve.Spring},
	} {
		assert.InDelta(t, 0.0, tc.fn(0), 1e-9, "%s at t=0", tc.name)
		assert.InDelta(t, 1.0, tc.fn(1), 1e-9, "%s at t=1", tc.name)
	}

	assert.InDelta(t, 0.0, curve.Flat(0), 0)
	assert.InDelta(t, 0.0, curve.Flat(0.5), 0)
	assert.InDelta(t, 0.0, curve.Flat(1), 0)
}

func TestLinearMidpoint(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.5, curve.Linear(0.5), 0)
	assert.InDelta(t, 0.5, curve.EaseInOut(0.5), 1e-9)
}

func TestStandardCurvesRegistered(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		"linear", "flat", "easeIn", "easeOut", "easeInOut", "outBounce", "spring",
	} {
		_, ok := curve.Lookup(name)
		assert.True(t, ok, "curve %q should be registered", name)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	t.Parallel()

	require.True(t, curve.Register("test-dupe", curve.Linear))
	assert.False(t, curve.Register("test-dupe", curve.EaseIn))

	// The original registration must survive the rejected overwrite.
	fn, ok := curve.Lookup("test-dupe")
	require.True(t, ok)
	assert.InDelta(t, 0.5, fn(0.5), 0)

	assert.True(t, curve.Unregister("test-dupe"))
}

func TestUnregisterAbsent(t *testing.T) {
	t.Parallel()

	assert.False(t, curve.Unregister("never-registered"))
}
