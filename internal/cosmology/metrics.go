package cosmology

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	computations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cosmocalc_computations_total",
			Help: "The total number of cosmological quantity evaluations",
		},
		[]string{"quantity", "method"},
	)
	computationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cosmocalc_computation_failures_total",
			Help: "The total number of evaluations that failed to converge",
		},
	)
)
