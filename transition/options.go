package transition

import (
	"context"
	"log/slog"
	"time"

	"github.com/amp-labs/amp-motion/engine"
	"github.com/amp-labs/amp-motion/state"
)

// Option is a functional option for configuring a Machine via New.
type Option func(*Machine)

// WithClock overrides the machine's wall clock. The clock is used when Get
// is called with a zero timestamp and is injected into clock-aware engines,
// so a synthetic clock makes the whole chain deterministic.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.clock = now
	}
}

// WithLogger routes the machine's structured logs to the given logger
// instead of slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(m *Machine) {
		m.log = log
	}
}

// WithVelocity seeds the machine's initial velocity snapshot.
func WithVelocity(v state.Value) Option {
	return func(m *Machine) {
		m.velocity = v.Clone()
	}
}

// WithDefaultMethod overrides the registry default for this machine only.
func WithDefaultMethod(ctor *engine.Constructor) Option {
	return func(m *Machine) {
		m.defaultMethod = ctor
	}
}

// WithTraceContext parents the machine's action spans under the given
// context instead of the background context.
func WithTraceContext(ctx context.Context) Option {
	return func(m *Machine) {
		m.traceCtx = ctx
	}
}
