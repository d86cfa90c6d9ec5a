package reminder

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DispatchCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_dispatch_cycles_total",
			Help: "Dispatch cycles by result",
		},
		[]string{"result"},
	)
	DispatchOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_dispatch_outcomes_total",
			Help: "Reminders handled by dispatch cycles, by outcome",
		},
		[]string{"outcome"},
	)
	DispatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reminder_dispatch_cycle_duration_seconds",
			Help:    "Wall time of a dispatch cycle",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(DispatchCycles)
	prometheus.MustRegister(DispatchOutcomes)
	prometheus.MustRegister(DispatchDuration)
}
