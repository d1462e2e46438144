package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"

	"eventattend/internal/model"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	EmployeeNotFound    = "EMPLOYEE_NOT_FOUND"
	EventNotFound       = "EVENT_NOT_FOUND"
	AttendanceNotFound  = "ATTENDANCE_NOT_FOUND"
	EventAtCapacity     = "EVENT_AT_CAPACITY"
	AttendanceDuplicate = "ATTENDANCE_DUPLICATE"

	// EventAtCapacityMessage is the user-visible rejection text for a full event.
	EventAtCapacityMessage = "Event has reached maximum capacity."
)

type CreateEmployeeRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=255"`
	LastName       string `json:"last_name" validate:"required,max=255"`
	DateOfBirth    string `json:"date_of_birth" validate:"required"`
	FavouriteDrink string `json:"favourite_drink"`
}

type CreateEventRequest struct {
	Description     string    `json:"description" validate:"required"`
	StartDateTime   time.Time `json:"start_date_time" validate:"required"`
	EndDateTime     time.Time `json:"end_date_time" validate:"required,gtefield=StartDateTime"`
	MaximumCapacity *int      `json:"maximum_capacity" validate:"omitempty,gt=0"`
}

type CreateEmployeeEventRequest struct {
	EmployeeID int `json:"employee_id" validate:"required,gt=0"`
	EventID    int `json:"event_id" validate:"required,gt=0"`
}

type EmployeeResponse struct {
	ID             int    `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    string `json:"date_of_birth"`
	FavouriteDrink string `json:"favourite_drink,omitempty"`
}

func NewEmployeeResponse(e model.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		DateOfBirth:    e.DateOfBirth.Format(model.DateOnlyFormat),
		FavouriteDrink: e.FavouriteDrink,
	}
}

type EventResponse struct {
	ID              int       `json:"id"`
	Description     string    `json:"description"`
	StartDateTime   time.Time `json:"start_date_time"`
	EndDateTime     time.Time `json:"end_date_time"`
	MaximumCapacity *int      `json:"maximum_capacity"`
}

func NewEventResponse(e model.Event) EventResponse {
	return EventResponse{
		ID:              e.ID,
		Description:     e.Description,
		StartDateTime:   e.StartDateTime,
		EndDateTime:     e.EndDateTime,
		MaximumCapacity: e.MaximumCapacity,
	}
}

// EmployeeEventResponse is the wire form of the joined attendance projection.
type EmployeeEventResponse struct {
	ID int `json:"id"`

	EventID              int       `json:"event_id"`
	EventDescription     string    `json:"event_description"`
	EventStartDateTime   time.Time `json:"event_start_date_time"`
	EventEndDateTime     time.Time `json:"event_end_date_time"`
	EventMaximumCapacity *int      `json:"event_maximum_capacity"`

	EmployeeID             int    `json:"employee_id"`
	EmployeeFirstName      string `json:"employee_first_name"`
	EmployeeLastName       string `json:"employee_last_name"`
	EmployeeDateOfBirth    string `json:"employee_date_of_birth"`
	EmployeeFavouriteDrink string `json:"employee_favourite_drink,omitempty"`
}

func NewEmployeeEventResponse(d model.EmployeeEventDetail) EmployeeEventResponse {
	return EmployeeEventResponse{
		ID:                   d.ID,
		EventID:              d.EventID,
		EventDescription:     d.EventDescription,
		EventStartDateTime:   d.EventStartDateTime,
		EventEndDateTime:     d.EventEndDateTime,
		EventMaximumCapacity: d.EventMaximumCapacity,

		EmployeeID:             d.EmployeeID,
		EmployeeFirstName:      d.EmployeeFirstName,
		EmployeeLastName:       d.EmployeeLastName,
		EmployeeDateOfBirth:    d.EmployeeDateOfBirth.Format(model.DateOnlyFormat),
		EmployeeFavouriteDrink: d.EmployeeFavouriteDrink,
	}
}

// BookingResponse is the attendance-creation payload: the caller needs the
// created projection and the post-insert capacity flag in one response so it
// can disable further additions the moment the event fills up.
type BookingResponse struct {
	Success           bool                  `json:"success"`
	Data              EmployeeEventResponse `json:"data"`
	EventIsAtCapacity bool                  `json:"event_is_at_capacity"`
}

// AttendanceOperateMessage is published to the notification exchange when an
// attendance link is created or deleted.
type AttendanceOperateMessage struct {
	AttendanceID     int       `json:"attendance_id"`
	EventID          int       `json:"event_id"`
	EventDescription string    `json:"event_description"`
	EmployeeName     string    `json:"employee_name"`
	Action           string    `json:"action"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type Response struct {
	Success bool   `json:"success"`
	Error   *Error `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func BadResponseError(c *ginext.Context, code, desc string) {
	c.JSON(400, Response{
		Success: false,
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func NotFoundResponseError(c *ginext.Context, code, desc string) {
	c.JSON(404, Response{
		Success: false,
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, Response{
		Success: false,
		Error: &Error{
			Code: ServiceUnavailable,
			Desc: InternalError,
		},
	})
}

func EmployeeNotFoundError(c *ginext.Context) {
	NotFoundResponseError(c, EmployeeNotFound, "Employee not found")
}

func EventNotFoundError(c *ginext.Context) {
	NotFoundResponseError(c, EventNotFound, "Event not found")
}

func AttendanceNotFoundError(c *ginext.Context) {
	NotFoundResponseError(c, AttendanceNotFound, "Attendance record not found")
}

func EventAtCapacityError(c *ginext.Context) {
	BadResponseError(c, EventAtCapacity, EventAtCapacityMessage)
}

func AttendanceDuplicateError(c *ginext.Context) {
	BadResponseError(c, AttendanceDuplicate, "Employee is already attending this event")
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Success: true,
		Data:    data,
	})
}
