package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query pipeline Prometheus metrics.
var (
	InterpretationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalogai",
			Name:      "interpretations_total",
			Help:      "Query interpretations by provenance",
		},
		[]string{"provenance"},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalogai",
			Name:      "searches_total",
			Help:      "Searches by selected method",
		},
		[]string{"method"},
	)

	SearchResultsCount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "catalogai",
			Name:      "search_results_count",
			Help:      "Number of items returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalogai",
			Name:      "validations_total",
			Help:      "Field validations by field, provenance and verdict",
		},
		[]string{"field", "provenance", "valid"},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers the query pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(InterpretationsTotal)
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchResultsCount)
	prometheus.MustRegister(ValidationsTotal)
	pipelineMetricsRegistered = true
}
