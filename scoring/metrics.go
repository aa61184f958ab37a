package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
)

var (
	evaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_evaluations_total",
			Help: "Evaluation upserts by outcome.",
		},
		[]string{"outcome"},
	)
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_calculations_total",
			Help: "Result calculations by scope and status.",
		},
		[]string{"scope", "status"},
	)
	calculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scoring_calculation_duration_seconds",
			Help:    "Time spent calculating and persisting results.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"scope"},
	)
	publicationRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_publication_rows_total",
			Help: "Result rows whose visibility was changed.",
		},
		[]string{"action"},
	)
)

// observeCalculation records the outcome and latency of one calculator run.
func observeCalculation(scope string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	calculationsTotal.WithLabelValues(scope, status).Inc()
	calculationDuration.WithLabelValues(scope).Observe(time.Since(start).Seconds())
}
