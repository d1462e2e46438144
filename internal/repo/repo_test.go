package repo

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"eventattend/internal/model"
)

// newTestRepos opens a private in-memory store per test. A single connection
// keeps the shared-cache database alive for the test's whole lifetime.
func newTestRepos(t *testing.T) *Repositories {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	log := zerolog.Nop()
	repos, err := New(db, &log)
	require.NoError(t, err)
	require.NoError(t, repos.Bootstrap(context.Background()))
	return repos
}

func mustCreateEmployee(t *testing.T, repos *Repositories, firstName, lastName string) model.Employee {
	t.Helper()
	e, err := repos.Employees.Create(context.Background(), model.Employee{
		FirstName:      firstName,
		LastName:       lastName,
		DateOfBirth:    time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		FavouriteDrink: "Coffee",
	})
	require.NoError(t, err)
	return e
}

func mustCreateEvent(t *testing.T, repos *Repositories, description string, capacity *int) model.Event {
	t.Helper()
	e, err := repos.Events.Create(context.Background(), model.Event{
		Description:     description,
		StartDateTime:   time.Date(2030, 1, 2, 15, 0, 0, 0, time.UTC),
		EndDateTime:     time.Date(2030, 1, 2, 18, 0, 0, 0, time.UTC),
		MaximumCapacity: capacity,
	})
	require.NoError(t, err)
	return e
}

func intPtr(v int) *int {
	return &v
}
