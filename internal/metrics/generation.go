package metrics

import "github.com/prometheus/client_golang/prometheus"

// Model generation Prometheus metrics.
var (
	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalogai",
			Name:      "ai_requests_total",
			Help:      "Total number of model generation requests",
		},
		[]string{"provider", "model", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalogai",
			Name:      "ai_request_duration_seconds",
			Help:      "Model generation request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 15, 30},
		},
		[]string{"provider", "model"},
	)

	GenerationTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalogai",
			Name:      "ai_tokens_total",
			Help:      "Total model tokens consumed",
		},
		[]string{"provider", "model", "type"}, // "prompt" / "completion"
	)

	GenerationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalogai",
			Name:      "ai_failures_total",
			Help:      "Model generation failures by kind",
		},
		[]string{"provider", "kind"},
	)

	GenerationBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "catalogai",
			Name:      "ai_budget_tokens_remaining",
			Help:      "Remaining token budget",
		},
		[]string{"provider", "period"},
	)

	GenerationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalogai",
			Name:      "ai_cache_total",
			Help:      "Model response cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var genMetricsRegistered bool

// RegisterGenerationMetrics registers Prometheus generation metrics. Must be called once from main.
func RegisterGenerationMetrics() {
	if genMetricsRegistered {
		return
	}
	prometheus.MustRegister(GenerationRequestsTotal)
	prometheus.MustRegister(GenerationRequestDuration)
	prometheus.MustRegister(GenerationTokensTotal)
	prometheus.MustRegister(GenerationFailuresTotal)
	prometheus.MustRegister(GenerationBudgetTokensRemaining)
	prometheus.MustRegister(GenerationCacheTotal)
	genMetricsRegistered = true
}
