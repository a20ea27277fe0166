// Package metrics defines and registers all custom Prometheus metrics for the
// AgriConnect portal gateway. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Upstream (marketplace API) metrics ────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the marketplace backend.
// Labels:
//   - operation: the client operation (e.g. "login", "list_messages")
//   - result: "ok", "rejected" (non-2xx), or "transport_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the marketplace backend.",
	},
	[]string{"operation", "result"},
)

// UpstreamRequestDuration measures the wall time of each backend call.
// Label:
//   - operation: the client operation
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of marketplace backend calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Page metrics ──────────────────────────────────────────────────────────────

// PageRendersTotal counts rendered portal pages.
// Label:
//   - view: "home", "login", "register", "dashboard", or "admin"
var PageRendersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_renders_total",
		Help:      "Total number of portal pages rendered, by view.",
	},
	[]string{"view"},
)

// SessionsCreatedTotal counts freshly minted visitor sessions.
var SessionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of new visitor sessions created.",
	},
)
