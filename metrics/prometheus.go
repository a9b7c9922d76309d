// Package metrics provides Prometheus metrics for document encoding and decoding
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsEncoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esd_documents_encoded_total",
			Help: "Total number of documents encoded",
		},
		[]string{"component", "document", "format"},
	)

	DocumentsDecoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esd_documents_decoded_total",
			Help: "Total number of documents decoded",
		},
		[]string{"component", "document", "format"},
	)

	RecordsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esd_records_processed_total",
			Help: "Total number of data records encoded or decoded",
		},
		[]string{"component", "document", "direction"},
	)

	BytesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esd_bytes_processed_total",
			Help: "Total payload bytes encoded or decoded",
		},
		[]string{"component", "document", "format", "direction"},
	)

	CodecDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "esd_codec_duration_seconds",
			Help:    "Time taken to encode or decode a document",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"component", "document", "format", "direction"},
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esd_errors_total",
			Help: "Total number of codec errors",
		},
		[]string{"component", "document", "format", "type"},
	)

	DataQualityIssues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esd_data_quality_issues_total",
			Help: "Total number of data quality issues found in decoded documents",
		},
		[]string{"component", "document", "issue"},
	)
)

// Directions used as label values
const (
	DirectionEncode = "encode"
	DirectionDecode = "decode"
)

// CodecMetrics provides a convenient interface for recording codec metrics
type CodecMetrics struct {
	component string
}

// NewCodecMetrics creates a new metrics recorder for a component
func NewCodecMetrics(component string) *CodecMetrics {
	return &CodecMetrics{component: component}
}

// RecordEncode records a successful document encode
func (m *CodecMetrics) RecordEncode(document, format string, records int, bytes int64, duration time.Duration) {
	DocumentsEncoded.WithLabelValues(m.component, document, format).Inc()
	RecordsProcessed.WithLabelValues(m.component, document, DirectionEncode).Add(float64(records))
	BytesProcessed.WithLabelValues(m.component, document, format, DirectionEncode).Add(float64(bytes))
	CodecDuration.WithLabelValues(m.component, document, format, DirectionEncode).Observe(duration.Seconds())
}

// RecordDecode records a successful document decode
func (m *CodecMetrics) RecordDecode(document, format string, records int, bytes int64, duration time.Duration) {
	DocumentsDecoded.WithLabelValues(m.component, document, format).Inc()
	RecordsProcessed.WithLabelValues(m.component, document, DirectionDecode).Add(float64(records))
	BytesProcessed.WithLabelValues(m.component, document, format, DirectionDecode).Add(float64(bytes))
	CodecDuration.WithLabelValues(m.component, document, format, DirectionDecode).Observe(duration.Seconds())
}

// RecordError records an error
func (m *CodecMetrics) RecordError(document, format, errorType string) {
	ErrorsTotal.WithLabelValues(m.component, document, format, errorType).Inc()
}

// RecordDataQualityIssue records one data quality finding
func (m *CodecMetrics) RecordDataQualityIssue(document, issue string) {
	DataQualityIssues.WithLabelValues(m.component, document, issue).Inc()
}

// WriteTextfile dumps the default registry for a node-exporter textfile collector.
// Batch runs call it once before exiting.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// Timer is a helper for measuring duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
