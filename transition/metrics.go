package transition

import (
	"crypto/sha1" //nolint:gosec // SHA1 used for non-cryptographic metric label hashing, not security
	"encoding/hex"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric definitions with appropriate labels. Machine ids are hashed so the
// label set stays bounded and opaque.
var (
	// actionsEnqueuedTotal tracks actions accepted into the queue.
	actionsEnqueuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transition_actions_enqueued_total",
		Help: "Total number of actions enqueued, by machine",
	}, []string{"machine_id_hash"})

	// actionsCompletedTotal tracks actions whose engine reported completion.
	actionsCompletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transition_actions_completed_total",
		Help: "Total number of actions completed, by machine and method",
	}, []string{"machine_id_hash", "method"})

	// actionsCancelledTotal tracks pending and in-flight actions dropped by
	// a reset or halt. Their callbacks never fire.
	actionsCancelledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transition_actions_cancelled_total",
		Help: "Total number of actions silently cancelled by reset or halt, by machine",
	}, []string{"machine_id_hash"})

	// actionDuration tracks observed wall time from action start to
	// completion. Durations depend on how often the host queries, not just
	// the configured spec duration.
	actionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "transition_action_duration_seconds",
		Help:    "Observed duration of actions from start to completion, by method",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"method"})

	// queueDepth tracks the pending action count per machine.
	queueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "transition_queue_depth",
		Help: "Number of pending actions in the queue, by machine",
	}, []string{"machine_id_hash"})
)

// sanitizeMachineID hashes a machine id for use as a metric label.
func sanitizeMachineID(id string) string {
	if id == "" {
		return "unknown"
	}

	hash := sha1.Sum([]byte(id)) //nolint:gosec // SHA1 used for non-cryptographic metric label hashing

	return hex.EncodeToString(hash[:])[:8]
}

// sanitizeMethod guards against empty method labels.
func sanitizeMethod(method string) string {
	if method == "" {
		return "unknown"
	}

	return method
}
