// Package main provides the campus assistant server entry point.
package main

import (
	"context"
	"time"

	"github.com/voicerag/campus-assistant-go/internal/knowledge"
	"github.com/voicerag/campus-assistant-go/internal/logger"
	"github.com/voicerag/campus-assistant-go/internal/metrics"
	"github.com/voicerag/campus-assistant-go/internal/sentry"
	"github.com/voicerag/campus-assistant-go/internal/snapshot"
	"github.com/voicerag/campus-assistant-go/internal/storage"
)

const (
	// historyPurgeInitialDelay lets the server stabilize before the first purge.
	historyPurgeInitialDelay = 1 * time.Minute

	// historyPurgeInterval is how often old chat history is removed.
	historyPurgeInterval = 12 * time.Hour

	// snapshotInitialDelay lets the server stabilize before the first export.
	snapshotInitialDelay = 5 * time.Minute
)

// purgeHistoryLoop periodically removes chat history older than the
// retention window.
func purgeHistoryLoop(ctx context.Context, db *storage.DB, retention time.Duration, m *metrics.Metrics, log *logger.Logger) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(historyPurgeInitialDelay):
		purgeHistory(ctx, db, retention, m, log)
	}

	ticker := time.NewTicker(historyPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purgeHistory(ctx, db, retention, m, log)
		}
	}
}

func purgeHistory(ctx context.Context, db *storage.DB, retention time.Duration, m *metrics.Metrics, log *logger.Logger) {
	cutoff := time.Now().Add(-retention)

	deleted, err := db.PurgeHistoryBefore(ctx, cutoff)
	if err != nil {
		log.WithError(err).Error("Failed to purge old chat history")
		sentry.CaptureException(err)
		return
	}
	if deleted > 0 {
		m.RecordHistoryPurged(deleted)
	}

	remaining, _ := db.CountHistory(ctx)
	log.WithField("deleted", deleted).
		WithField("remaining", remaining).
		Info("Chat history purge complete")
}

// exportSnapshotLoop periodically exports the knowledge base to object
// storage.
func exportSnapshotLoop(ctx context.Context, kb *knowledge.KB, exporter *snapshot.Exporter, interval time.Duration, m *metrics.Metrics, log *logger.Logger) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(snapshotInitialDelay):
		exportSnapshot(ctx, kb, exporter, m, log)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			exportSnapshot(ctx, kb, exporter, m, log)
		}
	}
}

func exportSnapshot(ctx context.Context, kb *knowledge.KB, exporter *snapshot.Exporter, m *metrics.Metrics, log *logger.Logger) {
	start := time.Now()

	snap, err := kb.Export(ctx)
	if err != nil {
		m.RecordSnapshotExport("error", time.Since(start).Seconds())
		log.WithError(err).Error("Failed to export knowledge base")
		sentry.CaptureException(err)
		return
	}

	if err := exporter.Export(ctx, snap); err != nil {
		m.RecordSnapshotExport("error", time.Since(start).Seconds())
		log.WithError(err).Error("Failed to upload knowledge snapshot")
		sentry.CaptureException(err)
		return
	}

	m.RecordSnapshotExport("success", time.Since(start).Seconds())
	log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("Knowledge snapshot exported")
}
