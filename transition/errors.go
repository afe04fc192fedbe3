package transition

import (
	"errors"
	"fmt"
)

// Predefined error types.
var (
	// ErrUnknownMethod indicates that a transition spec named a method
	// absent from the registry. Method resolution happens at drain time,
	// after the action was already accepted, so this is surfaced as a
	// panic rather than a return value: the queue cannot proceed and the
	// caller was expected to pre-validate or register the method.
	ErrUnknownMethod = errors.New("unknown transition method")

	// ErrUnknownCurve indicates that a transition spec named a curve
	// absent from the curve registry. Same fail-fast policy as
	// ErrUnknownMethod.
	ErrUnknownCurve = errors.New("unknown transition curve")

	// ErrPresetNotFound indicates that a preset name is not part of the
	// loaded configuration.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrPresetNameRequired indicates that a preset entry has no name.
	ErrPresetNameRequired = errors.New("preset name is required")
	// ErrPresetDurationRequired indicates that a preset entry has no duration.
	ErrPresetDurationRequired = errors.New("preset duration is required")
	// ErrDuplicatePresetName indicates that a preset name appears twice.
	ErrDuplicatePresetName = errors.New("duplicate preset name")

	// ErrNoConfigLoader indicates that no config loader is registered.
	ErrNoConfigLoader = errors.New("no config loader registered; use SetConfigLoader() or provide a file path")
)

// unknownMethod builds the panic value for a failed method lookup.
func unknownMethod(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// unknownCurve builds the panic value for a failed curve lookup.
func unknownCurve(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownCurve, name)
}
