package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"eventattend/internal/model"
)

// EventRepository persists events in SQLite.
type EventRepository struct {
	db  *sql.DB
	log *zerolog.Logger
}

func NewEventRepository(db *sql.DB, log *zerolog.Logger) *EventRepository {
	return &EventRepository{db: db, log: log}
}

// CreateTableIfNotExists idempotently ensures the events table exists.
// maximum_capacity is nullable: NULL means unlimited.
func (r *EventRepository) CreateTableIfNotExists(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			description      TEXT NOT NULL,
			start_date_time  DATETIME NOT NULL,
			end_date_time    DATETIME NOT NULL,
			maximum_capacity INTEGER
		);
	`)
	if err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	return nil
}

// GetAll returns events. When includeHistoricEvents is false, only events
// whose end_date_time is still in the future at query time are returned;
// "historic" is a moving boundary, not a stored flag.
func (r *EventRepository) GetAll(ctx context.Context, includeHistoricEvents bool) ([]model.Event, error) {
	query := `
		SELECT id, description, start_date_time, end_date_time, maximum_capacity
		FROM events
	`
	args := []any{}
	if !includeHistoricEvents {
		query += ` WHERE end_date_time >= ?`
		args = append(args, time.Now().UTC())
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Description, &e.StartDateTime, &e.EndDateTime, &e.MaximumCapacity); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetByID returns (nil, nil) when no event matches.
func (r *EventRepository) GetByID(ctx context.Context, id int) (*model.Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, description, start_date_time, end_date_time, maximum_capacity
		FROM events
		WHERE id = ?
	`, id)

	var e model.Event
	if err := row.Scan(&e.ID, &e.Description, &e.StartDateTime, &e.EndDateTime, &e.MaximumCapacity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM events WHERE id = ?)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check event exists: %w", err)
	}
	return exists, nil
}

func (r *EventRepository) Create(ctx context.Context, e model.Event) (model.Event, error) {
	e.StartDateTime = e.StartDateTime.UTC()
	e.EndDateTime = e.EndDateTime.UTC()

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO events (description, start_date_time, end_date_time, maximum_capacity)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, e.Description, e.StartDateTime, e.EndDateTime, e.MaximumCapacity)

	if err := row.Scan(&e.ID); err != nil {
		return model.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return e, nil
}

// Update replaces all mutable fields of the row matching e.ID and fails with
// ErrEventNotFound when no row matches.
func (r *EventRepository) Update(ctx context.Context, e model.Event) (model.Event, error) {
	e.StartDateTime = e.StartDateTime.UTC()
	e.EndDateTime = e.EndDateTime.UTC()

	row := r.db.QueryRowContext(ctx, `
		UPDATE events
		SET description = ?, start_date_time = ?, end_date_time = ?, maximum_capacity = ?
		WHERE id = ?
		RETURNING id
	`, e.Description, e.StartDateTime, e.EndDateTime, e.MaximumCapacity, e.ID)

	var id int
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Event{}, ErrEventNotFound
		}
		return model.Event{}, fmt.Errorf("update event: %w", err)
	}
	return e, nil
}

// Delete removes the row if present; deleting a missing ID is a no-op.
// Attendance links cascade via the foreign keys.
func (r *EventRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// IsAtCapacity reports whether the event's attendance count has reached its
// maximum capacity. A NULL capacity means unlimited and always reports false,
// as does an event that does not exist (existence is the caller's check).
func (r *EventRepository) IsAtCapacity(ctx context.Context, eventID int) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT e.maximum_capacity,
		       (SELECT COUNT(*) FROM employee_events ee WHERE ee.event_id = e.id)
		FROM events e
		WHERE e.id = ?
	`, eventID)

	var capacity *int
	var count int
	if err := row.Scan(&capacity, &count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check event capacity: %w", err)
	}
	return capacity != nil && count >= *capacity, nil
}
