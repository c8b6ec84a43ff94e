// Package monitoring exposes Prometheus metrics for the service.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

// Metrics holds the service's Prometheus collectors. All record methods are
// safe on a nil receiver so components can run without metrics in tests.
type Metrics struct {
	scheduledRuns *prometheus.CounterVec
	manualRuns    *prometheus.CounterVec
	publishes     *prometheus.CounterVec
}

// New creates and registers the service metrics.
func New(serviceName string) *Metrics {
	m := &Metrics{
		scheduledRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: serviceName + "_scheduled_runs_total",
				Help: "Scheduled pipeline runs by outcome",
			},
			[]string{"status"},
		),
		manualRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: serviceName + "_manual_runs_total",
				Help: "Manually triggered pipeline operations by outcome",
			},
			[]string{"operation", "status"},
		),
		publishes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: serviceName + "_publishes_total",
				Help: "Publish attempts by mode and outcome",
			},
			[]string{"mode", "status"},
		),
	}
	prometheus.MustRegister(m.scheduledRuns, m.manualRuns, m.publishes)
	return m
}

// ScheduledRun records one scheduled pipeline run outcome.
func (m *Metrics) ScheduledRun(status string) {
	if m == nil {
		return
	}
	m.scheduledRuns.WithLabelValues(status).Inc()
}

// ManualRun records one manually triggered operation outcome.
func (m *Metrics) ManualRun(operation, status string) {
	if m == nil {
		return
	}
	m.manualRuns.WithLabelValues(operation, status).Inc()
}

// Publish records one publish attempt.
func (m *Metrics) Publish(mode, status string) {
	if m == nil {
		return
	}
	m.publishes.WithLabelValues(mode, status).Inc()
}

// Handler returns the Prometheus scrape endpoint as a gin handler.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
