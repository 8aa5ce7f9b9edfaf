package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Timesheet is a single logged-hours entry.
type Timesheet struct {
	ID          *int     `json:"id"`
	UserID      *int     `json:"userId"`
	ProjectID   *int     `json:"projectId"`
	TicketID    *int     `json:"ticketId,omitempty"`
	Hours       *float64 `json:"hours"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"date"`
}

// Validate implements validation.Validatable
func (t Timesheet) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.NotNil),
		validation.Field(&t.UserID, validation.NotNil),
		validation.Field(&t.ProjectID, validation.NotNil),
		validation.Field(&t.Hours, validation.NotNil),
		validation.Field(&t.Date, validation.NotNil),
	)
}
