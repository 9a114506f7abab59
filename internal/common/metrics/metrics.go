// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineStageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_stage_total",
			Help: "Total number of pipeline stage executions",
		},
		[]string{"stage"},
	)

	PipelineStageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_stage_failures_total",
			Help: "Total number of degraded stage executions (fallback path taken)",
		},
		[]string{"stage", "error_code"},
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_stage_duration_seconds",
			Help: "Duration of pipeline stage execution in seconds",
		},
		[]string{"stage"},
	)

	RetrievalStrategyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retrieval_strategy_total",
			Help: "Which retrieval tier answered the query",
		},
		[]string{"strategy"},
	)

	GenerationCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_cache_total",
			Help: "Generation response cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
