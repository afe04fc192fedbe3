// Package registry holds the process-wide mapping from method name to
// engine constructor. It starts empty except for what engine packages
// register from their init functions (the tween engine registers itself as
// "tween" and installs itself as the default method).
//
// Registration is idempotent-guarded: registering an existing name fails
// without overwriting, and unregistering an absent name fails without
// error, both signaled by a boolean rather than an error value.
package registry

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/amp-labs/amp-motion/engine"
)

var (
	methodsMu sync.Mutex                             //nolint:gochecknoglobals
	methods   = make(map[string]*engine.Constructor) //nolint:gochecknoglobals

	// defaultMethod is read on every drain step, so it sits in an atomic
	// slot rather than behind the map mutex.
	defaultMethod atomic.Pointer[engine.Constructor] //nolint:gochecknoglobals
)

// Register associates a constructor with a name. It returns false, leaving
// the existing entry untouched, when the name is already registered.
func Register(name string, ctor *engine.Constructor) bool {
	methodsMu.Lock()
	defer methodsMu.Unlock()

	if _, exists := methods[name]; exists {
		return false
	}

	methods[name] = ctor

	return true
}

// Unregister removes a named method. It returns false when the name is
// absent.
func Unregister(name string) bool {
	methodsMu.Lock()
	defer methodsMu.Unlock()

	if _, exists := methods[name]; !exists {
		return false
	}

	delete(methods, name)

	return true
}

// Lookup resolves a method name to its constructor.
func Lookup(name string) (*engine.Constructor, bool) {
	methodsMu.Lock()
	defer methodsMu.Unlock()

	ctor, ok := methods[name]

	return ctor, ok
}

// SetDefault installs the constructor used when a transition spec names no
// method.
func SetDefault(ctor *engine.Constructor) {
	defaultMethod.Store(ctor)
}

// Default returns the default constructor, or nil when none is installed.
func Default() *engine.Constructor {
	return defaultMethod.Load()
}
