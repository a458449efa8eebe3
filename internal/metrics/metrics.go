// Package metrics exposes Prometheus metrics for document commands.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the command metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// commands counts command calls by tool and status (ok or error)
	commands *prometheus.CounterVec

	// duration tracks command latency
	duration *prometheus.HistogramVec

	// documentOpen is 1 while a document is open
	documentOpen prometheus.Gauge
}

// New creates the metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "docxedit_commands_total",
			Help: "Total document commands by tool and status",
		}, []string{"tool", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docxedit_command_duration_seconds",
			Help:    "Document command duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
		}, []string{"tool"}),
		documentOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "docxedit_document_open",
			Help: "Whether a document is currently open",
		}),
	}
}

// ObserveCommand records one command call.
func (m *Metrics) ObserveCommand(tool string, ok bool, d time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.commands.WithLabelValues(tool, status).Inc()
	m.duration.WithLabelValues(tool).Observe(d.Seconds())
}

// SetDocumentOpen updates the open-document gauge.
func (m *Metrics) SetDocumentOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.documentOpen.Set(1)
	} else {
		m.documentOpen.Set(0)
	}
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
