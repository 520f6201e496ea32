package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Verify all metric fields are initialized
	if m.PipelineRequestsTotal == nil {
		t.Error("PipelineRequestsTotal is nil")
	}
	if m.PipelineDurationSeconds == nil {
		t.Error("PipelineDurationSeconds is nil")
	}
	if m.IntentConfidence == nil {
		t.Error("IntentConfidence is nil")
	}
	if m.TranscriptionsTotal == nil {
		t.Error("TranscriptionsTotal is nil")
	}
	if m.TranscriptionDuration == nil {
		t.Error("TranscriptionDuration is nil")
	}
	if m.HistoryOperationsTotal == nil {
		t.Error("HistoryOperationsTotal is nil")
	}
	if m.HistoryPurgedTotal == nil {
		t.Error("HistoryPurgedTotal is nil")
	}
	if m.KnowledgeSearchesTotal == nil {
		t.Error("KnowledgeSearchesTotal is nil")
	}
	if m.HTTPErrorsTotal == nil {
		t.Error("HTTPErrorsTotal is nil")
	}
	if m.RateLimiterDropped == nil {
		t.Error("RateLimiterDropped is nil")
	}
	if m.SnapshotExportsTotal == nil {
		t.Error("SnapshotExportsTotal is nil")
	}
}

func TestRecordPipelineRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordPipelineRequest("greeting", "statement", "text", 0.001)
	m.RecordPipelineRequest("greeting", "statement", "text", 0.002)
	m.RecordPipelineRequest("library_inquiry", "question", "voice", 0.003)

	got := testutil.ToFloat64(m.PipelineRequestsTotal.WithLabelValues("greeting", "statement"))
	if got != 2 {
		t.Errorf("pipeline requests counter = %v, want 2", got)
	}
}

func TestRecordHistoryPurged(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordHistoryPurged(7)
	m.RecordHistoryPurged(3)

	got := testutil.ToFloat64(m.HistoryPurgedTotal)
	if got != 10 {
		t.Errorf("purged rows counter = %v, want 10", got)
	}
}

func TestRecordHelpers(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordIntentConfidence("greeting", 0.95)
	m.RecordTranscription("success", 1.2)
	m.RecordTranscription("error", 0.1)
	m.RecordHistoryOperation("save", "success")
	m.RecordKnowledgeSearch("faq", "success", 0.02)
	m.RecordHTTPError("bad_request", "/api/text")
	m.RecordRateLimiterDrop("client")
	m.RecordSnapshotExport("success", 2.5)
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	New(registry)

	defer func() {
		if recover() == nil {
			t.Error("registering the same metrics twice should panic")
		}
	}()
	New(registry)
}
