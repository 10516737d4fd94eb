package metrics

import "github.com/prometheus/client_golang/prometheus"

// Vector search Prometheus metrics. The "outcome" label distinguishes real
// results from degraded-mode fallbacks.
var (
	VectorSearchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobjedi",
			Name:      "vector_search_total",
			Help:      "Total vector search queries by outcome",
		},
		[]string{"outcome"}, // "ok", "fallback_disabled", "fallback_timeout", "fallback_error"
	)

	VectorSearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jobjedi",
			Name:      "vector_search_duration_seconds",
			Help:      "Vector search duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"outcome"},
	)
)

var vectorMetricsRegistered bool

// RegisterVectorMetrics registers Prometheus vector search metrics. Must be called once from main.
func RegisterVectorMetrics() {
	if vectorMetricsRegistered {
		return
	}
	prometheus.MustRegister(VectorSearchTotal)
	prometheus.MustRegister(VectorSearchDuration)
	vectorMetricsRegistered = true
}
