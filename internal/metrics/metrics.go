// Package metrics provides Prometheus metrics for subpage listings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Render outcomes.
const (
	OutcomeListed       = "listed"
	OutcomeEmpty        = "empty"
	OutcomeParentFailed = "parent_failed"
	OutcomeError        = "error"
)

var (
	// RendersTotal counts rendered listings by outcome.
	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splist_renders_total",
		Help: "Total number of subpage listings rendered, by outcome.",
	}, []string{"outcome"})

	// DiagnosticsTotal counts rejected option values by key.
	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splist_option_diagnostics_total",
		Help: "Total number of rejected option values, by option key.",
	}, []string{"key"})

	// ListingEntries observes how many subpages a query returned.
	ListingEntries = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "splist_listing_entries",
		Help:    "Number of subpages returned per listing query.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200, 500},
	})

	// QueryDuration observes subpage query latency in seconds.
	QueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "splist_query_duration_seconds",
		Help:    "Latency of subpage queries against the page index.",
		Buckets: prometheus.DefBuckets,
	})
)

// RecordRender counts one render with the given outcome.
func RecordRender(outcome string) {
	RendersTotal.WithLabelValues(outcome).Inc()
}

// RecordDiagnostic counts one rejected option value.
func RecordDiagnostic(key string) {
	DiagnosticsTotal.WithLabelValues(key).Inc()
}

// RecordQuery observes a completed subpage query.
func RecordQuery(entries int, seconds float64) {
	ListingEntries.Observe(float64(entries))
	QueryDuration.Observe(seconds)
}
