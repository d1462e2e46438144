package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEventNotFound         = errors.New("event not found")
	ErrEmployeeEventNotFound = errors.New("employee event not found")
	ErrEventAtCapacity       = errors.New("event has reached maximum capacity")
	ErrDuplicateAttendance   = errors.New("employee already attends this event")
)

// Open opens the SQLite store. WAL keeps readers off the writer's lock and
// foreign_keys=on is required for the cascade deletes on attendance links.
func Open(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// Repositories bundles the per-entity repositories over one connection pool.
// Construct it once at startup and pass it down; no repository holds a
// connection beyond a single statement or transaction.
type Repositories struct {
	Employees      *EmployeeRepository
	Events         *EventRepository
	EmployeeEvents *EmployeeEventRepository
}

func New(db *sql.DB, log *zerolog.Logger) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	return &Repositories{
		Employees:      NewEmployeeRepository(db, log),
		Events:         NewEventRepository(db, log),
		EmployeeEvents: NewEmployeeEventRepository(db, log),
	}, nil
}

// Bootstrap ensures the full schema exists. Table order matters: the
// attendance table references the other two.
func (r *Repositories) Bootstrap(ctx context.Context) error {
	if err := r.Employees.CreateTableIfNotExists(ctx); err != nil {
		return fmt.Errorf("bootstrap employee table: %w", err)
	}
	if err := r.Events.CreateTableIfNotExists(ctx); err != nil {
		return fmt.Errorf("bootstrap event table: %w", err)
	}
	if err := r.EmployeeEvents.CreateTableIfNotExists(ctx); err != nil {
		return fmt.Errorf("bootstrap employee_event table: %w", err)
	}
	return nil
}
