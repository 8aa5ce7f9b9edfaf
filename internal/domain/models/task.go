package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Task is a Leantime ticket. Leantime calls tasks "tickets" on the wire.
type Task struct {
	ID          *int     `json:"id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description,omitempty"`
	ProjectID   *int     `json:"projectId"`
	Status      *string  `json:"status,omitempty"`
	Priority    *string  `json:"priority,omitempty"`
	AssignedTo  *int     `json:"assignedTo,omitempty"`
	StartDate   *string  `json:"startDate,omitempty"`
	DueDate     *string  `json:"dueDate,omitempty"`
	StoryPoints *int     `json:"storyPoints,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Validate implements validation.Validatable
func (t Task) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.NotNil),
		validation.Field(&t.Title, validation.NotNil),
		validation.Field(&t.ProjectID, validation.NotNil),
	)
}
