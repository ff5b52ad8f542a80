// Package metrics declares the Prometheus instruments for the ledger engine
// and the HTTP surface. All collectors are registered on the default
// registry and exposed through Handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RebuildsTotal counts balance rebuild passes by outcome.
	RebuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moneyshare_ledger_rebuilds_total",
		Help: "Balance rebuild passes, labelled by outcome.",
	}, []string{"status"})

	// RebuildDuration observes how long a full rebuild takes.
	RebuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "moneyshare_ledger_rebuild_duration_seconds",
		Help:    "Duration of balance rebuild passes.",
		Buckets: prometheus.DefBuckets,
	})

	// PlansTotal counts settlement plan computations.
	PlansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneyshare_settlement_plans_total",
		Help: "Settlement plans computed.",
	})

	// TransfersPerPlan observes how many transfers each plan emits.
	TransfersPerPlan = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "moneyshare_settlement_transfers_per_plan",
		Help:    "Number of transfers in each settlement plan.",
		Buckets: prometheus.LinearBuckets(0, 1, 12),
	})

	// HTTPRequests counts handled HTTP requests.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moneyshare_http_requests_total",
		Help: "HTTP requests, labelled by method, route and status code.",
	}, []string{"method", "path", "status"})

	// HTTPDuration observes request latency per route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "moneyshare_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// Handler returns the Prometheus exposition handler for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
