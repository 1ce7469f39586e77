package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IngestMetrics records order-form ingestion outcomes.
type IngestMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewIngestMetrics registers the ingestion metrics on the provided registerer.
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	if reg == nil {
		return &IngestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderform_ingest_duration_seconds",
		Help:    "Duration of order-form ingests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderform_ingest_success",
		Help: "Successful order-form ingests.",
	}, []string{"mode"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderform_ingest_failure",
		Help: "Failed order-form ingests.",
	}, []string{"mode"})
	reg.MustRegister(duration, success, failure)
	return &IngestMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration of an ingest for the given mode (create/reupload).
func (m *IngestMetrics) ObserveDuration(mode string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(mode)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the given mode.
func (m *IngestMetrics) IncSuccess(mode string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(mode)).Inc()
}

// IncFailure increments the failure counter for the given mode.
func (m *IngestMetrics) IncFailure(mode string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(mode)).Inc()
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
