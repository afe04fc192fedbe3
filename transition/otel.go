package transition

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// startActionSpan creates a span covering one action from drain start to
// completion or cancellation. The caller is responsible for ending it via
// endActionSpan or cancelActionSpan.
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func startActionSpan(
	ctx context.Context,
	machineID string,
	method string,
	duration time.Duration,
	components int,
) trace.Span {
	tracer := otel.Tracer("transition")

	_, span := tracer.Start(ctx, "transition.action")
	span.SetAttributes(
		attribute.String("machine_id_hash", hashID(machineID)),
		attribute.String("method", method),
		attribute.Int64("spec_duration_ms", duration.Milliseconds()),
		attribute.Int("components", components),
	)

	return span
}

// endActionSpan closes an action span after its engine reported completion.
func endActionSpan(span trace.Span, elapsed time.Duration) {
	if span == nil {
		return
	}

	span.SetAttributes(attribute.Int64("duration_ms", elapsed.Milliseconds()))
	span.SetStatus(codes.Ok, "completed")
	span.End()
}

// cancelActionSpan closes an action span whose action was dropped by a
// reset or halt before completing.
func cancelActionSpan(span trace.Span) {
	if span == nil {
		return
	}

	span.AddEvent("cancelled")
	span.End()
}

// hashID creates a short hash of an id for span attributes (privacy).
func hashID(id string) string {
	if id == "" {
		return ""
	}

	h := sha256.Sum256([]byte(id))

	return hex.EncodeToString(h[:4]) // First 8 chars
}
