package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/voicerag/campus-assistant-go/internal/knowledge"
	"github.com/voicerag/campus-assistant-go/internal/logger"
	"github.com/voicerag/campus-assistant-go/internal/storage"
)

func TestNewDisabledWithoutBucket(t *testing.T) {
	e, err := New(context.Background(), Config{}, logger.New("error"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if e != nil {
		t.Error("New() without bucket should return nil exporter (disabled)")
	}
	if e.IsEnabled() {
		t.Error("nil exporter should report disabled")
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(context.Background(), Config{Bucket: "snapshots"}, logger.New("error"))
	if err == nil {
		t.Error("New() with bucket but no credentials should fail")
	}
}

func TestNilExporterExportIsNoop(t *testing.T) {
	var e *Exporter
	if err := e.Export(context.Background(), &knowledge.Snapshot{}); err != nil {
		t.Errorf("nil exporter Export() error = %v, want nil", err)
	}
}

func TestCompressRoundTrip(t *testing.T) {
	snap := &knowledge.Snapshot{
		FAQs: []*storage.FAQ{
			{ID: "wifi", Question: "How do I connect to campus wifi?", Answer: "Use CampusNet."},
		},
		ExportedAt: "2026-08-29T00:00:00Z",
	}

	payload, err := compress(snap)
	if err != nil {
		t.Fatalf("compress() error = %v", err)
	}

	gz, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("payload is not valid gzip: %v", err)
	}
	raw, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("decompress error = %v", err)
	}

	var got knowledge.Snapshot
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if len(got.FAQs) != 1 || got.FAQs[0].ID != "wifi" {
		t.Errorf("round trip lost FAQ data: %+v", got.FAQs)
	}
	if got.ExportedAt != snap.ExportedAt {
		t.Errorf("ExportedAt = %q, want %q", got.ExportedAt, snap.ExportedAt)
	}
}
