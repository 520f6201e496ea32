package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Pipeline metrics
	PipelineRequestsTotal   *prometheus.CounterVec
	PipelineDurationSeconds *prometheus.HistogramVec
	IntentConfidence        *prometheus.HistogramVec

	// Transcription metrics
	TranscriptionsTotal   *prometheus.CounterVec
	TranscriptionDuration prometheus.Histogram

	// History metrics
	HistoryOperationsTotal *prometheus.CounterVec
	HistoryPurgedTotal     prometheus.Counter

	// Knowledge metrics
	KnowledgeSearchesTotal  *prometheus.CounterVec
	KnowledgeSearchDuration prometheus.Histogram

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec

	// Snapshot metrics
	SnapshotExportsTotal *prometheus.CounterVec
	SnapshotDuration     prometheus.Histogram
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Pipeline metrics
		PipelineRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_pipeline_requests_total",
				Help: "Total number of pipeline requests by intent and input type",
			},
			[]string{"intent", "input_type"},
		),

		PipelineDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_pipeline_duration_seconds",
				Help:    "Pipeline processing duration in seconds by source",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}, // In-process pipeline, sub-second
			},
			[]string{"source"}, // source: text, voice
		),

		IntentConfidence: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_intent_confidence",
				Help:    "Classifier confidence distribution by intent",
				Buckets: []float64{0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 1.0},
			},
			[]string{"intent"},
		),

		// Transcription metrics
		TranscriptionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_transcriptions_total",
				Help: "Total number of audio transcriptions by status",
			},
			[]string{"status"}, // status: success, error
		),

		TranscriptionDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assistant_transcription_duration_seconds",
				Help:    "Audio transcription duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30}, // Remote API call, matches request timeout
			},
		),

		// History metrics
		HistoryOperationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_history_operations_total",
				Help: "Total number of chat history operations by operation and status",
			},
			[]string{"operation", "status"}, // operation: save, list, purge
		),

		HistoryPurgedTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "assistant_history_purged_rows_total",
				Help: "Total number of chat history rows removed by retention cleanup",
			},
		),

		// Knowledge metrics
		KnowledgeSearchesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_knowledge_searches_total",
				Help: "Total number of knowledge base searches by category and status",
			},
			[]string{"category", "status"}, // category: building, event, club, service, faq
		),

		KnowledgeSearchDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assistant_knowledge_search_duration_seconds",
				Help:    "Knowledge base search duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_http_errors_total",
				Help: "Total HTTP errors by type and endpoint",
			},
			[]string{"error_type", "endpoint"}, // error_type: bad_request, rate_limit, internal, etc.
		),

		// Rate limiter metrics
		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: client, global
		),

		// Snapshot metrics
		SnapshotExportsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_snapshot_exports_total",
				Help: "Total number of knowledge snapshot exports by status",
			},
			[]string{"status"}, // status: success, error
		),

		SnapshotDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assistant_snapshot_duration_seconds",
				Help:    "Knowledge snapshot export duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),
	}

	return m
}

// RecordPipelineRequest records one processed input with its duration
func (m *Metrics) RecordPipelineRequest(intent, inputType, source string, duration float64) {
	m.PipelineRequestsTotal.WithLabelValues(intent, inputType).Inc()
	m.PipelineDurationSeconds.WithLabelValues(source).Observe(duration)
}

// RecordIntentConfidence records the classifier confidence for an intent
func (m *Metrics) RecordIntentConfidence(intent string, confidence float64) {
	m.IntentConfidence.WithLabelValues(intent).Observe(confidence)
}

// RecordTranscription records an audio transcription attempt
func (m *Metrics) RecordTranscription(status string, duration float64) {
	m.TranscriptionsTotal.WithLabelValues(status).Inc()
	m.TranscriptionDuration.Observe(duration)
}

// RecordHistoryOperation records a chat history repository operation
func (m *Metrics) RecordHistoryOperation(operation, status string) {
	m.HistoryOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordHistoryPurged records rows removed by retention cleanup
func (m *Metrics) RecordHistoryPurged(rows int64) {
	m.HistoryPurgedTotal.Add(float64(rows))
}

// RecordKnowledgeSearch records a knowledge base search with its duration
func (m *Metrics) RecordKnowledgeSearch(category, status string, duration float64) {
	m.KnowledgeSearchesTotal.WithLabelValues(category, status).Inc()
	m.KnowledgeSearchDuration.Observe(duration)
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, endpoint string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}

// RecordSnapshotExport records a knowledge snapshot export
func (m *Metrics) RecordSnapshotExport(status string, duration float64) {
	m.SnapshotExportsTotal.WithLabelValues(status).Inc()
	m.SnapshotDuration.Observe(duration)
}
