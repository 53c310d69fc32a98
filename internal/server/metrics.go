package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "firefly",
		Name:      "runs_started_total",
		Help:      "Optimization runs started, by problem.",
	}, []string{"problem"})

	runsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "firefly",
		Name:      "runs_finished_total",
		Help:      "Optimization runs finished, by problem and terminal status.",
	}, []string{"problem", "status"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "firefly",
		Name:      "run_duration_seconds",
		Help:      "Wall time of completed optimization runs.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
	}, []string{"problem"})

	runIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "firefly",
		Name:      "run_iterations",
		Help:      "Generations performed per completed run.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	})
)
