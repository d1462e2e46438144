package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"eventattend/internal/model"
)

// defaultLeaderboardTake bounds the leaderboard queries when the caller does
// not supply a positive take.
const defaultLeaderboardTake = 5

// EmployeeEventRepository persists attendance links and serves the joined
// projections derived from them.
type EmployeeEventRepository struct {
	db  *sql.DB
	log *zerolog.Logger
}

func NewEmployeeEventRepository(db *sql.DB, log *zerolog.Logger) *EmployeeEventRepository {
	return &EmployeeEventRepository{db: db, log: log}
}

// CreateTableIfNotExists idempotently ensures the attendance table exists.
// Both foreign keys cascade on delete and both are indexed for the join and
// filter paths.
func (r *EmployeeEventRepository) CreateTableIfNotExists(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS employee_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			employee_id INTEGER NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
			event_id    INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_employee_events_employee_id ON employee_events(employee_id);
		CREATE INDEX IF NOT EXISTS idx_employee_events_event_id    ON employee_events(event_id);
	`)
	if err != nil {
		return fmt.Errorf("create employee_events table: %w", err)
	}
	return nil
}

const employeeEventDetailColumns = `
	ee.id,
	evt.id, evt.description, evt.start_date_time, evt.end_date_time, evt.maximum_capacity,
	emp.id, emp.first_name, emp.last_name, emp.date_of_birth, emp.favourite_drink
`

func scanEmployeeEventDetail(row interface{ Scan(...any) error }) (model.EmployeeEventDetail, error) {
	var d model.EmployeeEventDetail
	err := row.Scan(
		&d.ID,
		&d.EventID, &d.EventDescription, &d.EventStartDateTime, &d.EventEndDateTime, &d.EventMaximumCapacity,
		&d.EmployeeID, &d.EmployeeFirstName, &d.EmployeeLastName, &d.EmployeeDateOfBirth, &d.EmployeeFavouriteDrink,
	)
	return d, err
}

// GetAll returns the joined projection for every attendance link, optionally
// filtered by event and/or employee. The WHERE clause is built from the
// filters that are actually present.
func (r *EmployeeEventRepository) GetAll(ctx context.Context, eventID, employeeID *int) ([]model.EmployeeEventDetail, error) {
	query := `
		SELECT ` + employeeEventDetailColumns + `
		FROM employee_events ee
		INNER JOIN employees emp ON ee.employee_id = emp.id
		INNER JOIN events evt ON ee.event_id = evt.id
	`
	args := []any{}
	clauses := []string{}
	if eventID != nil {
		args = append(args, *eventID)
		clauses = append(clauses, "ee.event_id = ?")
	}
	if employeeID != nil {
		args = append(args, *employeeID)
		clauses = append(clauses, "ee.employee_id = ?")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employee events: %w", err)
	}
	defer rows.Close()

	var details []model.EmployeeEventDetail
	for rows.Next() {
		d, err := scanEmployeeEventDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee event: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// GetOne returns the joined projection for a single attendance link. Unlike
// the GetByID lookups it fails with ErrEmployeeEventNotFound when the link
// does not exist: callers only ask for links they expect to be there.
func (r *EmployeeEventRepository) GetOne(ctx context.Context, id int) (model.EmployeeEventDetail, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+employeeEventDetailColumns+`
		FROM employee_events ee
		INNER JOIN employees emp ON ee.employee_id = emp.id
		INNER JOIN events evt ON ee.event_id = evt.id
		WHERE ee.id = ?
	`, id)

	d, err := scanEmployeeEventDetail(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.EmployeeEventDetail{}, ErrEmployeeEventNotFound
		}
		return model.EmployeeEventDetail{}, fmt.Errorf("scan employee event: %w", err)
	}
	return d, nil
}

func (r *EmployeeEventRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM employee_events WHERE id = ?)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check employee event exists: %w", err)
	}
	return exists, nil
}

// Create inserts an attendance link and returns the generated ID. It performs
// no capacity or existence checks; BookTx is the guarded path.
func (r *EmployeeEventRepository) Create(ctx context.Context, ee model.EmployeeEvent) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO employee_events (employee_id, event_id)
		VALUES (?, ?)
		RETURNING id
	`, ee.EmployeeID, ee.EventID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert employee event: %w", err)
	}
	return id, nil
}

// BookTx inserts an attendance link with the capacity and duplicate checks in
// the same transaction as the insert, so two concurrent bookings for the last
// seat cannot both pass the check. Returns ErrEventNotFound,
// ErrEventAtCapacity or ErrDuplicateAttendance as sentinel failures.
func (r *EmployeeEventRepository) BookTx(ctx context.Context, ee model.EmployeeEvent) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin booking transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var capacity *int
	var count int
	err = tx.QueryRowContext(ctx, `
		SELECT e.maximum_capacity,
		       (SELECT COUNT(*) FROM employee_events ee WHERE ee.event_id = e.id)
		FROM events e
		WHERE e.id = ?
	`, ee.EventID).Scan(&capacity, &count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrEventNotFound
		}
		return 0, fmt.Errorf("check event capacity: %w", err)
	}
	if capacity != nil && count >= *capacity {
		return 0, ErrEventAtCapacity
	}

	var duplicate bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM employee_events
			WHERE employee_id = ? AND event_id = ?
		)
	`, ee.EmployeeID, ee.EventID).Scan(&duplicate)
	if err != nil {
		return 0, fmt.Errorf("check duplicate attendance: %w", err)
	}
	if duplicate {
		return 0, ErrDuplicateAttendance
	}

	var id int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO employee_events (employee_id, event_id)
		VALUES (?, ?)
		RETURNING id
	`, ee.EmployeeID, ee.EventID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert employee event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit booking transaction: %w", err)
	}
	return id, nil
}

// Delete removes the link row if present; deleting a missing ID is a no-op.
func (r *EmployeeEventRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM employee_events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete employee event: %w", err)
	}
	return nil
}

// GetMostSocialEmployees returns up to take employees ranked by descending
// attendance-link count.
func (r *EmployeeEventRepository) GetMostSocialEmployees(ctx context.Context, take int) ([]model.EmployeeEventCount, error) {
	if take <= 0 {
		take = defaultLeaderboardTake
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT emp.id, emp.first_name, emp.last_name, COUNT(ee.employee_id) AS event_count
		FROM employee_events ee
		INNER JOIN employees emp ON ee.employee_id = emp.id
		GROUP BY emp.id, emp.first_name, emp.last_name
		ORDER BY event_count DESC
		LIMIT ?
	`, take)
	if err != nil {
		return nil, fmt.Errorf("query most social employees: %w", err)
	}
	defer rows.Close()

	var counts []model.EmployeeEventCount
	for rows.Next() {
		var c model.EmployeeEventCount
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.EventCount); err != nil {
			return nil, fmt.Errorf("scan employee event count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// GetEventsWithNoEmployees returns up to take events that have no attendance
// links at all.
func (r *EmployeeEventRepository) GetEventsWithNoEmployees(ctx context.Context, take int) ([]model.Event, error) {
	if take <= 0 {
		take = defaultLeaderboardTake
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT e.id, e.description, e.start_date_time, e.end_date_time, e.maximum_capacity
		FROM events e
		LEFT JOIN employee_events ee ON e.id = ee.event_id
		WHERE ee.employee_id IS NULL
		LIMIT ?
	`, take)
	if err != nil {
		return nil, fmt.Errorf("query events with no employees: %w", err)
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

// GetAllEmployeesNotInEvent returns employees without an attendance link for
// the given event. A non-empty searchTerm narrows the result to employees
// whose "FirstName LastName" starts with the term (store collation applies).
func (r *EmployeeEventRepository) GetAllEmployeesNotInEvent(ctx context.Context, eventID int, searchTerm string) ([]model.Employee, error) {
	query := `
		SELECT emp.id, emp.first_name, emp.last_name, emp.date_of_birth, emp.favourite_drink
		FROM employees emp
		WHERE NOT EXISTS (
			SELECT 1
			FROM employee_events ee
			WHERE ee.employee_id = emp.id
			AND ee.event_id = ?
		)
	`
	args := []any{eventID}
	if searchTerm != "" {
		args = append(args, searchTerm+"%")
		query += " AND (emp.first_name || ' ' || emp.last_name) LIKE ?"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees not in event: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.DateOfBirth, &e.FavouriteDrink); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
