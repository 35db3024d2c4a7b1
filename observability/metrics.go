// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the validation engine.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the metric instruments for the validation engine,
// registered against the supplied Prometheus registerer.
type Metrics struct {
	ValidationsTotal  *prometheus.CounterVec
	ImageFetchesTotal *prometheus.CounterVec
	ImageFetchLatency prometheus.Histogram
	HistoryEntries    prometheus.Gauge
}

// NewMetrics creates and registers the engine's metric instruments.
// Pass prometheus.DefaultRegisterer for standalone usage, or a private
// registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ValidationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "posv2_validations_total",
			Help: "Validation calls by request type and outcome.",
		}, []string{"request_type", "outcome"}),
		ImageFetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "posv2_image_fetches_total",
			Help: "Image fetch-and-measure operations by outcome.",
		}, []string{"outcome"}),
		ImageFetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "posv2_image_fetch_latency_seconds",
			Help:    "Latency of image fetch-and-measure operations.",
			Buckets: prometheus.DefBuckets,
		}),
		HistoryEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "posv2_history_entries",
			Help: "Number of entries in the test history store.",
		}),
	}

	reg.MustRegister(m.ValidationsTotal, m.ImageFetchesTotal, m.ImageFetchLatency, m.HistoryEntries)
	return m
}

// RecordValidation records one validation call.
func (m *Metrics) RecordValidation(requestType string, valid bool) {
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	m.ValidationsTotal.WithLabelValues(requestType, outcome).Inc()
}

// RecordImageFetch records one image fetch-and-measure operation.
func (m *Metrics) RecordImageFetch(outcome string, latencySeconds float64) {
	m.ImageFetchesTotal.WithLabelValues(outcome).Inc()
	m.ImageFetchLatency.Observe(latencySeconds)
}

// SetHistoryEntries records the current size of the history store.
func (m *Metrics) SetHistoryEntries(n int) {
	m.HistoryEntries.Set(float64(n))
}
