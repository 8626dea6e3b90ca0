package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the orchestrator's Prometheus collectors.
type Metrics struct {
	// Per-slot fetch outcomes; outcome is "success" or "error".
	SlotRefreshTotal *prometheus.CounterVec

	// Fetch latency per slot, including decode time.
	SlotRefreshDuration *prometheus.HistogramVec

	// One-shot action outcomes; outcome is "success" or "error".
	ActionsTotal *prometheus.CounterVec

	// Firings of the polling timer.
	PollTicksTotal prometheus.Counter
}

// NewMetrics registers the collectors on reg. Passing nil uses a
// throwaway registry so tests don't collide on the default one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		SlotRefreshTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "agentdeck_slot_refresh_total",
			Help: "Total number of slot refresh attempts by outcome.",
		}, []string{"slot", "outcome"}),

		SlotRefreshDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agentdeck_slot_refresh_duration_seconds",
			Help:    "Histogram of slot fetch latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"slot"}),

		ActionsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "agentdeck_actions_total",
			Help: "Total number of triggered one-shot actions by outcome.",
		}, []string{"action", "outcome"}),

		PollTicksTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "agentdeck_poll_ticks_total",
			Help: "Total number of polling timer ticks.",
		}),
	}
}
