package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all necessary tables and indexes.
// Note: WAL mode is configured in db.go's New function.
func InitSchema(db *sql.DB) error {
	// Create chat_history table
	if err := createChatHistoryTable(db); err != nil {
		return err
	}

	// Create buildings table
	if err := createBuildingsTable(db); err != nil {
		return err
	}

	// Create events table
	if err := createEventsTable(db); err != nil {
		return err
	}

	// Create clubs table
	if err := createClubsTable(db); err != nil {
		return err
	}

	// Create services table
	if err := createServicesTable(db); err != nil {
		return err
	}

	// Create faqs table for keyword-ranked FAQ lookup
	return createFAQsTable(db)
}

func createChatHistoryTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS chat_history (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		source TEXT CHECK(source IN ('text', 'voice')) NOT NULL,
		input_text TEXT NOT NULL,
		response_text TEXT NOT NULL,
		follow_up TEXT,
		intent TEXT NOT NULL,
		confidence REAL NOT NULL,
		input_type TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chat_history_client ON chat_history(client_id);
	CREATE INDEX IF NOT EXISTS idx_chat_history_created_at ON chat_history(created_at);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create chat_history table: %w", err)
	}

	return nil
}

func createBuildingsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS buildings (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT NOT NULL,
		hours TEXT,
		services TEXT,
		contact TEXT,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_buildings_name ON buildings(name);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create buildings table: %w", err)
	}

	return nil
}

func createEventsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT,
		location TEXT,
		description TEXT,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_events_name ON events(name);
	CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	return nil
}

func createClubsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS clubs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		meeting_time TEXT,
		location TEXT,
		description TEXT,
		contact TEXT,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_clubs_name ON clubs(name);
	CREATE INDEX IF NOT EXISTS idx_clubs_category ON clubs(category);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create clubs table: %w", err)
	}

	return nil
}

func createServicesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS services (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT,
		hours TEXT,
		description TEXT,
		contact TEXT,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_services_name ON services(name);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create services table: %w", err)
	}

	return nil
}

func createFAQsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS faqs (
		id TEXT PRIMARY KEY,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		category TEXT,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_faqs_category ON faqs(category);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create faqs table: %w", err)
	}

	return nil
}
