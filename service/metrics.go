package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	passesTotalCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "surfrank_ranking_passes_total",
		Help: "The total number of completed ranking passes",
	})

	passDurationGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "surfrank_last_pass_duration_seconds",
		Help: "The wall-clock duration of the most recent ranking pass",
	})

	divergenceGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "surfrank_estimator_divergence",
		Help: "The largest per-page difference between the sampled and iterated scores in the most recent ranking pass",
	})

	iterationPassesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "surfrank_iteration_passes",
		Help: "The number of update passes the iterative estimator needed to converge in the most recent ranking pass",
	})
)
