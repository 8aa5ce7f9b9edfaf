package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Project is a Leantime project record as returned by /api/projects.
type Project struct {
	ID          *int    `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description,omitempty"`
	ClientID    *int    `json:"clientId,omitempty"`
	State       *string `json:"state,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
}

// Validate implements validation.Validatable
func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.NotNil),
		validation.Field(&p.Name, validation.NotNil),
	)
}
