// Package metrics is the single source of truth for the service's custom
// Prometheus metric names, labels, and help strings. Metrics register
// themselves with the default registry via promauto at package load; the
// /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskservice"

// UsersRegisteredTotal counts successful account registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts successfully registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests rejected by the identity middleware.
// Label:
//   - reason: "missing_credential", "invalid_token", or "malformed_identity"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected before reaching a handler, by reason.",
	},
	[]string{"reason"},
)

// TasksCreatedTotal counts newly created tasks.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// ActivityProcessedTotal counts activity entries persisted by the dispatcher
// workers.
// Label:
//   - action: "created", "updated", "completed", or "deleted"
var ActivityProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_processed_total",
		Help:      "Total number of task activity entries successfully persisted.",
	},
	[]string{"action"},
)

// ActivityErrorsTotal counts activity entries that failed persistence.
// Label:
//   - reason: short description of the failure (e.g. "insert_failed")
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of task activity entries that failed persistence.",
	},
	[]string{"reason"},
)

// ActivityQueueDepth tracks the number of entries waiting in each dispatcher
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityWriteDuration measures how long persisting one activity entry takes.
// Label:
//   - action: the activity action
var ActivityWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_write_duration_seconds",
		Help:      "Duration of a single activity entry write.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)

// CacheRequestsTotal counts owner task-list cache lookups.
// Label:
//   - result: "hit" or "miss"
var CacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Total number of task-list cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
