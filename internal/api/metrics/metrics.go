// Package metrics defines and registers all custom Prometheus metrics for the
// health-tracking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics register with the default Prometheus registry on package
// initialisation; /metrics serves them together with the echo request metrics.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/healthlog/health-backend/internal/core/domain"
)

const namespace = "healthlog"

// ── Operation metrics ─────────────────────────────────────────────────────────

// OperationsTotal counts facade mutations.
// Labels:
//   - op: the operation name (e.g. "add_water", "create_category")
//   - result: "ok" or a short failure reason (see Reason)
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of state-changing operations, by outcome.",
	},
	[]string{"op", "result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegisteredUsers tracks the number of accounts in the store.
var RegisteredUsers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "registered_users",
		Help:      "Current number of registered users.",
	},
)

// ── Persistence metrics ───────────────────────────────────────────────────────

// SnapshotSavesTotal counts snapshot writes to the primary backend.
// Labels:
//   - backend: "file", "sqlite", "redis" or "mongo"
//   - result: "ok" or "error"
var SnapshotSavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_saves_total",
		Help:      "Total number of snapshot writes, by backend and result.",
	},
	[]string{"backend", "result"},
)

// SnapshotSaveDuration measures a single snapshot write.
var SnapshotSaveDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "snapshot_save_duration_seconds",
		Help:      "Duration of snapshot writes to the primary backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"backend"},
)

// SnapshotSaveFailureStreak is the number of consecutive failed writes.
// Readiness turns unhealthy while it is above zero.
var SnapshotSaveFailureStreak = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_save_failure_streak",
		Help:      "Consecutive failed snapshot writes; reset on the next success.",
	},
	[]string{"backend"},
)

// ── Mirror metrics ────────────────────────────────────────────────────────────

// MirrorQueueDepth tracks pending snapshots per mirror worker.
// Label:
//   - mirror: the mirror backend name
var MirrorQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mirror_queue_depth",
		Help:      "Current number of snapshots waiting in each mirror worker channel.",
	},
	[]string{"mirror"},
)

// MirrorWritesTotal counts mirror writes.
// Labels:
//   - mirror: the mirror backend name
//   - result: "ok", "error" or "dropped" (superseded by a newer snapshot)
var MirrorWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mirror_writes_total",
		Help:      "Total number of mirrored snapshot writes, by result.",
	},
	[]string{"mirror", "result"},
)

// Reason maps an operation error to a low-cardinality label value.
func Reason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUserExists), errors.Is(err, domain.ErrCategoryExists):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}

// Collector feeds the service layer's measurements into the metrics above.
type Collector struct{}

func NewCollector() *Collector { return &Collector{} }

func (*Collector) RecordOperation(op string, err error) {
	OperationsTotal.WithLabelValues(op, Reason(err)).Inc()
}

func (*Collector) RecordLogin(success bool) {
	result := "rejected"
	if success {
		result = "success"
	}
	LoginsTotal.WithLabelValues(result).Inc()
}

func (*Collector) RecordSnapshotSave(backend string, took time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	SnapshotSavesTotal.WithLabelValues(backend, result).Inc()
	SnapshotSaveDuration.WithLabelValues(backend).Observe(took.Seconds())
}

func (*Collector) SetSaveFailureStreak(backend string, n int) {
	SnapshotSaveFailureStreak.WithLabelValues(backend).Set(float64(n))
}

func (*Collector) SetRegisteredUsers(n int) {
	RegisteredUsers.Set(float64(n))
}

// MirrorWrite records the outcome of one mirror write.
func (*Collector) MirrorWrite(mirror, result string) {
	MirrorWritesTotal.WithLabelValues(mirror, result).Inc()
}

// MirrorDepth sets the current queue depth of a mirror worker.
func (*Collector) MirrorDepth(mirror string, depth int) {
	MirrorQueueDepth.WithLabelValues(mirror).Set(float64(depth))
}
