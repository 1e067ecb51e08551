package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects counters for side-effect failures and sweeper activity so
// swallowed errors stay queryable instead of only appearing in logs.
type Metrics struct {
	EventsPublished *prometheus.CounterVec
	HandlerFailures *prometheus.CounterVec
	SweepRuns       *prometheus.CounterVec
	SweepFailures   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "events_published_total",
			Help:      "Domain events published on the in-process bus.",
		}, []string{"event"}),
		HandlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "event_handler_failures_total",
			Help:      "Event handler errors swallowed by the bus.",
		}, []string{"event"}),
		SweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "sweep_runs_total",
			Help:      "Completed sweeper runs.",
		}, []string{"sweeper"}),
		SweepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "sweep_failures_total",
			Help:      "Sweeper runs that ended with an error.",
		}, []string{"sweeper"}),
	}
	reg.MustRegister(m.EventsPublished, m.HandlerFailures, m.SweepRuns, m.SweepFailures)
	return m
}

// Default registers on the global prometheus registry.
func Default() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
