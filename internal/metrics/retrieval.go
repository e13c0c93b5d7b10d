package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval Prometheus metrics.
var (
	GuardrailBlocksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "answerd",
			Name:      "guardrail_blocks_total",
			Help:      "Total number of queries blocked by the guardrail",
		},
		[]string{"stage"}, // "literal" / "semantic"
	)

	LowConfidenceTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "answerd",
			Name:      "low_confidence_total",
			Help:      "Total number of retrievals flagged low confidence",
		},
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers Prometheus retrieval metrics. Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(GuardrailBlocksTotal)
	prometheus.MustRegister(LowConfidenceTotal)
	retrievalMetricsRegistered = true
}
