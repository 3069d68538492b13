// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total dealership jobs completed per task type",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total dealership jobs failed per task type and error code",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Job handling duration in seconds per task type",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Jobs currently being handled per task type",
		},
		[]string{"task_type"},
	)

	StoreCollectionSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_collection_records",
			Help: "Number of records currently held per store collection",
		},
		[]string{"collection"},
	)

	StoreTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_transitions_total",
			Help: "Total number of lifecycle transitions applied to the store",
		},
		[]string{"transition"},
	)
)
