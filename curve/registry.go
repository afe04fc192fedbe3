package curve

import "sync"

// The named-curve registry is process-wide mutable state. Registration is
// expected at init time; the mutex makes it safe from concurrent hosts.
var (
	registryMu sync.Mutex               //nolint:gochecknoglobals
	registry   = make(map[string]Func) //nolint:gochecknoglobals
)

//nolint:gochecknoinits // standard curves are part of the package contract
func init() {
	for name, fn := range map[string]Func{
		"linear":    Linear,
		"flat":      Flat,
		"easeIn":    EaseIn,
		"easeOut":   EaseOut,
		"easeInOut": EaseInOut,
		"outBounce": OutBounce,
		"spring":    Spring,
	} {
		Register(name, fn)
	}
}

// Register associates a curve function with a name. It returns false, and
// leaves the existing entry untouched, when the name is already registered.
func Register(name string, fn Func) bool {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		return false
	}

	registry[name] = fn

	return true
}

// Unregister removes a named curve. It returns false when the name is absent.
func Unregister(name string) bool {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; !exists {
		return false
	}

	delete(registry, name)

	return true
}

// Lookup resolves a curve by name.
func Lookup(name string) (Func, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	fn, ok := registry[name]

	return fn, ok
}
