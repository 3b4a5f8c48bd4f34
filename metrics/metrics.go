// Package metrics provides the built-in metrics sinks: "noop" for
// deployments without scraping, and "prometheus" exposing counters and
// timings on the application's /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"imgd/config"
	"imgd/core"
	"imgd/plugin"
)

func init() {
	plugin.Metrics.Register("noop", newNoop)
	plugin.Metrics.Register("prometheus", newPrometheus)
}

var (
	events = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imgd_events_total",
			Help: "Total number of service events by name",
		},
		[]string{"name"},
	)

	timings = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "imgd_event_duration_seconds",
			Help:    "Duration of timed service events by name",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"name"},
	)
)

func newNoop(_ *config.Config) (core.Metrics, error) {
	return noop{}, nil
}

type noop struct{}

func (noop) Incr(string, int)             {}
func (noop) Timing(string, time.Duration) {}

func newPrometheus(_ *config.Config) (core.Metrics, error) {
	return prom{}, nil
}

type prom struct{}

func (prom) Incr(name string, delta int) {
	events.WithLabelValues(name).Add(float64(delta))
}

func (prom) Timing(name string, d time.Duration) {
	timings.WithLabelValues(name).Observe(d.Seconds())
}
