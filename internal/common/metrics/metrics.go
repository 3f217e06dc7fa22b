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
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	MatchScoreDistribution = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_score_distribution",
			Help:    "Distribution of computed match scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	MatchPairsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_pairs_scored_total",
			Help: "Total number of rep/gig pairs scored",
		},
		[]string{"task_type"},
	)

	AssignmentsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assignments_recorded_total",
			Help: "Total number of assignments persisted",
		},
	)
)
