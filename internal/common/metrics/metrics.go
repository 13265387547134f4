// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BatchItemsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_batch_items_created_total",
			Help: "Total number of content records created by batch runs",
		},
	)

	BatchItemsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_batch_items_failed_total",
			Help: "Total number of batch items that failed",
		},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_batch_duration_seconds",
			Help:    "Duration of full batch runs in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_provider_calls_total",
			Help: "Total provider adapter calls by provider and outcome",
		},
		[]string{"provider", "operation", "status"},
	)

	ProviderFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_provider_fallbacks_total",
			Help: "Total times the router fell through to the local heuristic",
		},
		[]string{"operation"},
	)

	QualityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_quality_score",
			Help:    "Distribution of human-like quality scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	ImprovementsPersisted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_improvements_total",
			Help: "Improvement attempts by outcome (persisted, skipped, failed)",
		},
		[]string{"outcome"},
	)
)
