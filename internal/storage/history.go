package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultHistoryLimit bounds ListHistory when the caller passes a
// non-positive limit.
const DefaultHistoryLimit = 50

// MaxHistoryLimit caps ListHistory regardless of the requested limit.
const MaxHistoryLimit = 500

// SaveHistory inserts one chat exchange. A missing ID or timestamp is
// filled in here so callers only provide what they know.
func (db *DB) SaveHistory(ctx context.Context, entry *HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO chat_history (id, client_id, source, input_text, response_text, follow_up, intent, confidence, input_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query,
		entry.ID, entry.ClientID, entry.Source, entry.InputText, entry.ResponseText,
		entry.FollowUp, entry.Intent, entry.Confidence, entry.InputType, entry.CreatedAt)
	if err != nil {
		slog.ErrorContext(ctx, "failed to save history entry",
			"entry_id", entry.ID,
			"error", err)
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	// Warn on slow queries (>100ms)
	if duration := time.Since(start); duration > 100*time.Millisecond {
		slog.WarnContext(ctx, "slow database operation",
			"operation", "SaveHistory",
			"duration_ms", duration.Milliseconds(),
			"entry_id", entry.ID)
	}
	return nil
}

// ListHistory returns recent exchanges, newest first. An empty clientID
// returns history across all clients.
func (db *DB) ListHistory(ctx context.Context, clientID string, limit int) ([]*HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	query := `
		SELECT id, client_id, source, input_text, response_text, follow_up, intent, confidence, input_type, created_at
		FROM chat_history
	`
	args := []any{}
	if clientID != "" {
		query += ` WHERE client_id = ?`
		args = append(args, clientID)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list history",
			"client_id", clientID,
			"error", err)
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.ClientID, &e.Source, &e.InputText, &e.ResponseText,
			&e.FollowUp, &e.Intent, &e.Confidence, &e.InputType, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}
	return entries, nil
}

// PurgeHistoryBefore deletes exchanges created before the cutoff and
// returns the number of rows removed.
func (db *DB) PurgeHistoryBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM chat_history WHERE created_at < ?`, cutoff.Unix())
	if err != nil {
		slog.ErrorContext(ctx, "failed to purge history",
			"cutoff", cutoff,
			"error", err)
		return 0, fmt.Errorf("failed to purge history: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read purge row count: %w", err)
	}
	return rows, nil
}

// CountHistory returns the total number of stored exchanges.
func (db *DB) CountHistory(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_history`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}
