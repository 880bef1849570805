// Package metrics defines all custom Prometheus metrics for the Stoq-Keep
// inventory console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package load time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stoqkeep"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session state machine transitions.
// Labels:
//   - from: status before the transition (e.g. "loading")
//   - to:   status after the transition (e.g. "authenticated")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions, by from/to status.",
	},
	[]string{"from", "to"},
)

// AuthAttemptsTotal counts credential-changing operations.
// Labels:
//   - operation: "login", "register", or "resolve"
//   - result:    "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login/register/resolve attempts, by result.",
	},
	[]string{"operation", "result"},
)

// ── Backend client metrics ────────────────────────────────────────────────────

// BackendRequestDuration measures round-trip time of backend API calls.
// Labels:
//   - endpoint: logical operation name (e.g. "login", "inventory_list")
//   - outcome:  "ok" or "error"
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the Stoq-Keep backend API.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"endpoint", "outcome"},
)

// ── Poller metrics ────────────────────────────────────────────────────────────

// PollCyclesTotal counts low-stock poll cycles.
// Label:
//   - result: "ok", "error", or "skipped" (session not authenticated)
var PollCyclesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "poll_cycles_total",
		Help:      "Total number of low-stock poll cycles, by result.",
	},
	[]string{"result"},
)

// LowStockItems tracks the item counts reported by the last successful poll.
// Label:
//   - kind: "low" (quantity above zero) or "out" (quantity zero)
var LowStockItems = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "low_stock_items",
		Help:      "Number of items currently low on or out of stock.",
	},
	[]string{"kind"},
)
