package registry_test

import (
	"testing"

	"github.com/amp-labs/amp-motion/engine"
	"github.com/amp-labs/amp-motion/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	t.Parallel()

	ctor := &engine.Constructor{Name: "custom-a"}

	require.True(t, registry.Register("custom-a", ctor))

	got, ok := registry.Lookup("custom-a")
	require.True(t, ok)
	assert.Same(t, ctor, got)

	assert.True(t, registry.Unregister("custom-a"))

	_, ok = registry.Lookup("custom-a")
	assert.False(t, ok)
}

func TestDoubleRegistrationDoesNotOverwrite(t *testing.T) {
	t.Parallel()

	first := &engine.Constructor{Name: "custom-b"}
	second := &engine.Constructor{Name: "custom-b"}

	require.True(t, registry.Register("custom-b", first))
	assert.False(t, registry.Register("custom-b", second))

	got, ok := registry.Lookup("custom-b")
	require.True(t, ok)
	assert.Same(t, first, got)

	assert.True(t, registry.Unregister("custom-b"))
}

func TestUnregisterAbsent(t *testing.T) {
	t.Parallel()

	assert.False(t, registry.Unregister("custom-missing"))
}

func TestDefaultRoundTrip(t *testing.T) {
	// Not parallel: mutates the process-wide default slot.
	prev := registry.Default()
	defer registry.SetDefault(prev)

	ctor := &engine.Constructor{Name: "custom-default"}
	registry.SetDefault(ctor)

	assert.Same(t, ctor, registry.Default())
}
