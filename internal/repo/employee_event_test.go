package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventattend/internal/model"
)

func TestBookTxFillsLastSeat(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repos, "One seat only", intPtr(1))
	ada := mustCreateEmployee(t, repos, "Ada", "Lovelace")
	grace := mustCreateEmployee(t, repos, "Grace", "Hopper")

	id, err := repos.EmployeeEvents.BookTx(ctx, model.EmployeeEvent{EmployeeID: ada.ID, EventID: event.ID})
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	atCapacity, err := repos.Events.IsAtCapacity(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, atCapacity)

	_, err = repos.EmployeeEvents.BookTx(ctx, model.EmployeeEvent{EmployeeID: grace.ID, EventID: event.ID})
	assert.ErrorIs(t, err, ErrEventAtCapacity)

	// The rejected booking must not have inserted anything.
	details, err := repos.EmployeeEvents.GetAll(ctx, &event.ID, nil)
	require.NoError(t, err)
	assert.Len(t, details, 1)
}

func TestBookTxRejectsDuplicate(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repos, "Unlimited", nil)
	ada := mustCreateEmployee(t, repos, "Ada", "Lovelace")

	_, err := repos.EmployeeEvents.BookTx(ctx, model.EmployeeEvent{EmployeeID: ada.ID, EventID: event.ID})
	require.NoError(t, err)

	_, err = repos.EmployeeEvents.BookTx(ctx, model.EmployeeEvent{EmployeeID: ada.ID, EventID: event.ID})
	assert.ErrorIs(t, err, ErrDuplicateAttendance)
}

func TestBookTxMissingEvent(t *testing.T) {
	repos := newTestRepos(t)

	ada := mustCreateEmployee(t, repos, "Ada", "Lovelace")

	_, err := repos.EmployeeEvents.BookTx(context.Background(), model.EmployeeEvent{
		EmployeeID: ada.ID,
		EventID:    4242,
	})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEmployeeEventGetAllFilters(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	eventA := mustCreateEvent(t, repos, "Event A", nil)
	eventB := mustCreateEvent(t, repos, "Event B", nil)
	ada := mustCreateEmployee(t, repos, "Ada", "Lovelace")
	grace := mustCreateEmployee(t, repos, "Grace", "Hopper")

	_, err := repos.EmployeeEvents.Create(ctx, model.EmployeeEvent{EmployeeID: ada.ID, EventID: eventA.ID})
	require.NoError(t, err)
	_, err = repos.EmployeeEvents.Create(ctx, model.EmployeeEvent{EmployeeID: ada.ID, EventID: eventB.ID})
	require.NoError(t, err)
	_, err = repos.EmployeeEvents.Create(ctx, model.EmployeeEvent{EmployeeID: grace.ID, EventID: eventA.ID})
	require.NoError(t, err)

	all, err := repos.EmployeeEvents.GetAll(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byEvent, err := repos.EmployeeEvents.GetAll(ctx, &eventA.ID, nil)
	require.NoError(t, err)
	assert.Len(t, byEvent, 2)
	for _, d := range byEvent {
		assert.Equal(t, eventA.ID, d.EventID)
	}

	byEmployee, err := repos.EmployeeEvents.GetAll(ctx, nil, &ada.ID)
	require.NoError(t, err)
	assert.Len(t, byEmployee, 2)

	both, err := repos.EmployeeEvents.GetAll(ctx, &eventB.ID, &ada.ID)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Event B", both[0].EventDescription)
	assert.Equal(t, "Ada", both[0].EmployeeFirstName)
}

func TestEmployeeEventGetOne(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repos, "Event A", intPtr(10))
	ada := mustCreateEmployee(t, repos, "Ada", "Lovelace")

	id, err := repos.EmployeeEvents.Create(ctx, model.EmployeeEvent{EmployeeID: ada.ID, EventID: event.ID})
	require.NoError(t, err)

	detail, err := repos.EmployeeEvents.GetOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, detail.ID)
	assert.Equal(t, event.ID, detail.EventID)
	assert.Equal(t, "Event A", detail.EventDescription)
	assert.Equal(t, ada.ID, detail.EmployeeID)
	assert.Equal(t, "Lovelace", detail.EmployeeLastName)
	require.NotNil(t, detail.EventMaximumCapacity)
	assert.Equal(t, 10, *detail.EventMaximumCapacity)

	_, err = repos.EmployeeEvents.GetOne(ctx, id+1000)
	assert.ErrorIs(t, err, ErrEmployeeEventNotFound)
}

func TestEmployeeEventDelete(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repos, "Event A", nil)
	ada := mustCreateEmployee(t, repos, "Ada", "Lovelace")

	id, err := repos.EmployeeEvents.Create(ctx, model.EmployeeEvent{EmployeeID: ada.ID, EventID: event.ID})
	require.NoError(t, err)

	require.NoError(t, repos.EmployeeEvents.Delete(ctx, id))
	_, err = repos.EmployeeEvents.GetOne(ctx, id)
	assert.ErrorIs(t, err, ErrEmployeeEventNotFound)

	// Deleting a missing ID is a no-op.
	require.NoError(t, repos.EmployeeEvents.Delete(ctx, id))
}

func TestAttendanceCascadesOnEmployeeDelete(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repos, "Event A", nil)
	ada := mustCreateEmployee(t, repos, "Ada", "Lovelace")

	id, err := repos.EmployeeEvents.Create(ctx, model.EmployeeEvent{EmployeeID: ada.ID, EventID: event.ID})
	require.NoError(t, err)

	require.NoError(t, repos.Employees.Delete(ctx, ada.ID))

	exists, err := repos.EmployeeEvents.Exists(ctx, id)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAttendanceCascadesOnEventDelete(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repos, "Event A", nil)
	ada := mustCreateEmployee(t, repos, "Ada", "Lovelace")

	id, err := repos.EmployeeEvents.Create(ctx, model.EmployeeEvent{EmployeeID: ada.ID, EventID: event.ID})
	require.NoError(t, err)

	require.NoError(t, repos.Events.Delete(ctx, event.ID))

	exists, err := repos.EmployeeEvents.Exists(ctx, id)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetMostSocialEmployees(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	ada := mustCreateEmployee(t, repos, "Ada", "Lovelace")
	grace := mustCreateEmployee(t, repos, "Grace", "Hopper")
	mustCreateEmployee(t, repos, "Alan", "Turing") // attends nothing

	eventA := mustCreateEvent(t, repos, "Event A", nil)
	eventB := mustCreateEvent(t, repos, "Event B", nil)

	for _, link := range []model.EmployeeEvent{
		{EmployeeID: ada.ID, EventID: eventA.ID},
		{EmployeeID: ada.ID, EventID: eventB.ID},
		{EmployeeID: grace.ID, EventID: eventA.ID},
	} {
		_, err := repos.EmployeeEvents.Create(ctx, link)
		require.NoError(t, err)
	}

	counts, err := repos.EmployeeEvents.GetMostSocialEmployees(ctx, 0)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, ada.ID, counts[0].ID)
	assert.Equal(t, 2, counts[0].EventCount)
	assert.Equal(t, grace.ID, counts[1].ID)
	assert.Equal(t, 1, counts[1].EventCount)

	top, err := repos.EmployeeEvents.GetMostSocialEmployees(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, ada.ID, top[0].ID)
}

func TestGetEventsWithNoEmployees(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	attended := mustCreateEvent(t, repos, "Attended", nil)
	empty := mustCreateEvent(t, repos, "Empty", nil)
	ada := mustCreateEmployee(t, repos, "Ada", "Lovelace")

	_, err := repos.EmployeeEvents.Create(ctx, model.EmployeeEvent{EmployeeID: ada.ID, EventID: attended.ID})
	require.NoError(t, err)

	events, err := repos.EmployeeEvents.GetEventsWithNoEmployees(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, empty.ID, events[0].ID)
}

func TestGetAllEmployeesNotInEvent(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repos, "Event A", nil)
	attending := mustCreateEmployee(t, repos, "Ada", "Lovelace")
	john := mustCreateEmployee(t, repos, "John", "Smith")
	joan := mustCreateEmployee(t, repos, "Joan", "Clarke")
	mustCreateEmployee(t, repos, "Grace", "Hopper")

	_, err := repos.EmployeeEvents.Create(ctx, model.EmployeeEvent{EmployeeID: attending.ID, EventID: event.ID})
	require.NoError(t, err)

	eligible, err := repos.EmployeeEvents.GetAllEmployeesNotInEvent(ctx, event.ID, "")
	require.NoError(t, err)
	assert.Len(t, eligible, 3)
	for _, e := range eligible {
		assert.NotEqual(t, attending.ID, e.ID)
	}

	// Prefix search over "FirstName LastName".
	matched, err := repos.EmployeeEvents.GetAllEmployeesNotInEvent(ctx, event.ID, "Jo")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	ids := []int{matched[0].ID, matched[1].ID}
	assert.ElementsMatch(t, []int{john.ID, joan.ID}, ids)

	matched, err = repos.EmployeeEvents.GetAllEmployeesNotInEvent(ctx, event.ID, "John S")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, john.ID, matched[0].ID)
}
