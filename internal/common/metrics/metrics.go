// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_completed_total",
			Help: "Total number of company analyses completed, by risk level",
		},
		[]string{"risk_level"},
	)

	AnalysesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_failed_total",
			Help: "Total number of company analyses that failed",
		},
		[]string{"error_code"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "analysis_duration_seconds",
			Help: "Duration of a full company analysis in seconds",
		},
		[]string{"risk_level"},
	)

	CategoryFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "category_fetch_failures_total",
			Help: "Source fetches that timed out or errored, by category",
		},
		[]string{"category"},
	)

	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "source_fetch_duration_seconds",
			Help: "Duration of one category source fetch in seconds",
		},
		[]string{"category", "outcome"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)
