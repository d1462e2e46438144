package model

import "time"

// DateOnlyFormat is the storage and wire format for calendar dates
// (DateOfBirth has no time component).
const DateOnlyFormat = "2006-01-02"

type Employee struct {
	ID             int       `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	DateOfBirth    time.Time `db:"date_of_birth" json:"date_of_birth"`
	FavouriteDrink string    `db:"favourite_drink,omitempty" json:"favourite_drink,omitempty"`
}

// FullName is the display form used by the employee search widget.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type Event struct {
	ID              int       `db:"id" json:"id"`
	Description     string    `db:"description" json:"description"`
	StartDateTime   time.Time `db:"start_date_time" json:"start_date_time"`
	EndDateTime     time.Time `db:"end_date_time" json:"end_date_time"`
	MaximumCapacity *int      `db:"maximum_capacity" json:"maximum_capacity"`
}

// EmployeeEvent is an attendance link: one employee attending one event.
type EmployeeEvent struct {
	ID         int `db:"id" json:"id"`
	EmployeeID int `db:"employee_id" json:"employee_id"`
	EventID    int `db:"event_id" json:"event_id"`
}

// EmployeeEventDetail is the denormalized join of an attendance link with its
// employee and event. Never persisted, always derived.
type EmployeeEventDetail struct {
	ID int `json:"id"`

	EventID              int       `json:"event_id"`
	EventDescription     string    `json:"event_description"`
	EventStartDateTime   time.Time `json:"event_start_date_time"`
	EventEndDateTime     time.Time `json:"event_end_date_time"`
	EventMaximumCapacity *int      `json:"event_maximum_capacity"`

	EmployeeID             int       `json:"employee_id"`
	EmployeeFirstName      string    `json:"employee_first_name"`
	EmployeeLastName       string    `json:"employee_last_name"`
	EmployeeDateOfBirth    time.Time `json:"employee_date_of_birth"`
	EmployeeFavouriteDrink string    `json:"employee_favourite_drink,omitempty"`
}

// EmployeeEventCount backs the "most social employees" leaderboard.
type EmployeeEventCount struct {
	ID         int    `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	EventCount int    `json:"event_count"`
}

// SelectOption is the option pair consumed by search-select widgets.
type SelectOption struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}
