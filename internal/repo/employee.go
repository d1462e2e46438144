package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"eventattend/internal/model"
)

// EmployeeRepository persists employees in SQLite.
type EmployeeRepository struct {
	db  *sql.DB
	log *zerolog.Logger
}

func NewEmployeeRepository(db *sql.DB, log *zerolog.Logger) *EmployeeRepository {
	return &EmployeeRepository{db: db, log: log}
}

// CreateTableIfNotExists idempotently ensures the employees table exists.
func (r *EmployeeRepository) CreateTableIfNotExists(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS employees (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name      TEXT NOT NULL,
			last_name       TEXT NOT NULL,
			date_of_birth   DATE NOT NULL,
			favourite_drink TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return fmt.Errorf("create employees table: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]model.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, date_of_birth, favourite_drink
		FROM employees
	`)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
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

// GetByID returns (nil, nil) when no employee matches: absence is an expected
// outcome for lookups, not an error.
func (r *EmployeeRepository) GetByID(ctx context.Context, id int) (*model.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, date_of_birth, favourite_drink
		FROM employees
		WHERE id = ?
	`, id)

	var e model.Employee
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.DateOfBirth, &e.FavouriteDrink); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM employees WHERE id = ?)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check employee exists: %w", err)
	}
	return exists, nil
}

// Create inserts the employee, ignoring any caller-supplied ID, and returns
// the record with its store-assigned ID.
func (r *EmployeeRepository) Create(ctx context.Context, e model.Employee) (model.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO employees (first_name, last_name, date_of_birth, favourite_drink)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, e.FirstName, e.LastName, e.DateOfBirth.Format(model.DateOnlyFormat), e.FavouriteDrink)

	if err := row.Scan(&e.ID); err != nil {
		return model.Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	return e, nil
}

// Update replaces all mutable fields of the row matching e.ID. Unlike GetByID
// it fails with ErrEmployeeNotFound when no row matches.
func (r *EmployeeRepository) Update(ctx context.Context, e model.Employee) (model.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE employees
		SET first_name = ?, last_name = ?, date_of_birth = ?, favourite_drink = ?
		WHERE id = ?
		RETURNING id
	`, e.FirstName, e.LastName, e.DateOfBirth.Format(model.DateOnlyFormat), e.FavouriteDrink, e.ID)

	var id int
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Employee{}, ErrEmployeeNotFound
		}
		return model.Employee{}, fmt.Errorf("update employee: %w", err)
	}
	return e, nil
}

// Delete removes the row if present; deleting a missing ID is a no-op.
func (r *EmployeeRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}
