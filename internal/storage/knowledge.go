package storage

import (
	"context"
	"fmt"
	"time"
)

// SaveBuilding inserts or updates a building record
func (db *DB) SaveBuilding(ctx context.Context, b *Building) error {
	query := `
		INSERT INTO buildings (id, name, location, hours, services, contact, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			location = excluded.location,
			hours = excluded.hours,
			services = excluded.services,
			contact = excluded.contact,
			updated_at = excluded.updated_at
	`
	_, err := db.conn.ExecContext(ctx, query,
		b.ID, b.Name, b.Location, b.Hours, b.Services, b.Contact, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save building: %w", err)
	}
	return nil
}

// SearchBuildings returns buildings whose name or services match the query,
// or all buildings when the query is empty.
func (db *DB) SearchBuildings(ctx context.Context, q string) ([]*Building, error) {
	query := `SELECT id, name, location, hours, services, contact, updated_at FROM buildings`
	args := []any{}
	if q != "" {
		query += ` WHERE name LIKE ? COLLATE NOCASE OR services LIKE ? COLLATE NOCASE`
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY name`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search buildings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Building
	for rows.Next() {
		var b Building
		if err := rows.Scan(&b.ID, &b.Name, &b.Location, &b.Hours, &b.Services, &b.Contact, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan building row: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// SaveEvent inserts or updates an event record
func (db *DB) SaveEvent(ctx context.Context, e *Event) error {
	query := `
		INSERT INTO events (id, name, date, time, location, description, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			date = excluded.date,
			time = excluded.time,
			location = excluded.location,
			description = excluded.description,
			updated_at = excluded.updated_at
	`
	_, err := db.conn.ExecContext(ctx, query,
		e.ID, e.Name, e.Date, e.Time, e.Location, e.Description, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

// SearchEvents returns events matching the query by name or description,
// ordered by date.
func (db *DB) SearchEvents(ctx context.Context, q string) ([]*Event, error) {
	query := `SELECT id, name, date, time, location, description, updated_at FROM events`
	args := []any{}
	if q != "" {
		query += ` WHERE name LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE`
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY date, name`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Time, &e.Location, &e.Description, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// SaveClub inserts or updates a club record
func (db *DB) SaveClub(ctx context.Context, c *Club) error {
	query := `
		INSERT INTO clubs (id, name, category, meeting_time, location, description, contact, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			meeting_time = excluded.meeting_time,
			location = excluded.location,
			description = excluded.description,
			contact = excluded.contact,
			updated_at = excluded.updated_at
	`
	_, err := db.conn.ExecContext(ctx, query,
		c.ID, c.Name, c.Category, c.MeetingTime, c.Location, c.Description, c.Contact, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save club: %w", err)
	}
	return nil
}

// SearchClubs returns clubs matching the query by name, category, or
// description.
func (db *DB) SearchClubs(ctx context.Context, q string) ([]*Club, error) {
	query := `SELECT id, name, category, meeting_time, location, description, contact, updated_at FROM clubs`
	args := []any{}
	if q != "" {
		query += ` WHERE name LIKE ? COLLATE NOCASE OR category LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE`
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern, pattern)
	}
	query += ` ORDER BY name`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search clubs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Club
	for rows.Next() {
		var c Club
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.MeetingTime, &c.Location, &c.Description, &c.Contact, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan club row: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// SaveService inserts or updates a service record
func (db *DB) SaveService(ctx context.Context, s *Service) error {
	query := `
		INSERT INTO services (id, name, location, hours, description, contact, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			location = excluded.location,
			hours = excluded.hours,
			description = excluded.description,
			contact = excluded.contact,
			updated_at = excluded.updated_at
	`
	_, err := db.conn.ExecContext(ctx, query,
		s.ID, s.Name, s.Location, s.Hours, s.Description, s.Contact, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save service: %w", err)
	}
	return nil
}

// SearchServices returns services matching the query by name or description.
func (db *DB) SearchServices(ctx context.Context, q string) ([]*Service, error) {
	query := `SELECT id, name, location, hours, description, contact, updated_at FROM services`
	args := []any{}
	if q != "" {
		query += ` WHERE name LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE`
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY name`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search services: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.Hours, &s.Description, &s.Contact, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan service row: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// SaveFAQ inserts or updates a FAQ record
func (db *DB) SaveFAQ(ctx context.Context, f *FAQ) error {
	query := `
		INSERT INTO faqs (id, question, answer, category, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			question = excluded.question,
			answer = excluded.answer,
			category = excluded.category,
			updated_at = excluded.updated_at
	`
	_, err := db.conn.ExecContext(ctx, query,
		f.ID, f.Question, f.Answer, f.Category, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save faq: %w", err)
	}
	return nil
}

// ListFAQs returns all FAQ records ordered by id. The BM25 index is built
// from this set.
func (db *DB) ListFAQs(ctx context.Context) ([]*FAQ, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, question, answer, category, updated_at FROM faqs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*FAQ
	for rows.Next() {
		var f FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Category, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan faq row: %w", err)
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
