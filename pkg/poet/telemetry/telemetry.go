// Package telemetry exposes Prometheus metrics for a running controller. A
// Metrics value implements poet.Observer; wire it through poet.Config.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects controller activity. Create with NewMetrics and pass as
// the Observer in poet.Config.
type Metrics struct {
	registry *prometheus.Registry

	applies     prometheus.Counter
	boundaryErr *prometheus.CounterVec
	windowRate  prometheus.Gauge
	windowPower prometheus.Gauge
	perfGoal    prometheus.Gauge
}

// NewMetrics builds and registers the controller metrics on its own registry,
// so multiple controllers (and tests) never collide.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		applies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poet_apply_control_total",
			Help: "Number of observation windows fed to the controller",
		}),
		boundaryErr: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "poet_boundary_errors_total",
			Help: "Failed native boundary crossings by operation",
		}, []string{"op"}),
		windowRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "poet_window_heartbeat_rate",
			Help: "Heartbeat rate observed in the most recent window",
		}),
		windowPower: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "poet_window_power_watts",
			Help: "Power draw observed in the most recent window",
		}),
		perfGoal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "poet_performance_goal",
			Help: "Heartbeat rate the controller currently steers toward",
		}),
	}

	m.registry.MustRegister(m.applies, m.boundaryErr, m.windowRate, m.windowPower, m.perfGoal)
	return m
}

// ObserveApply implements poet.Observer.
func (m *Metrics) ObserveApply(tag uint64, windowRate, windowPower float64) {
	m.applies.Inc()
	m.windowRate.Set(windowRate)
	m.windowPower.Set(windowPower)
}

// ObserveGoal implements poet.Observer.
func (m *Metrics) ObserveGoal(perfGoal float64) {
	m.perfGoal.Set(perfGoal)
}

// ObserveError implements poet.Observer.
func (m *Metrics) ObserveError(op string) {
	m.boundaryErr.WithLabelValues(op).Inc()
}

// Handler serves the metrics in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for callers that aggregate
// multiple sources into one endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
