package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Milestone is a project milestone. Leantime stores milestones as tickets with
// type "milestone", so the title lives in Headline and the range in EditFrom/EditTo.
type Milestone struct {
	ID        *int    `json:"id"`
	Headline  *string `json:"headline"`
	ProjectID *int    `json:"projectId,omitempty"`
	Status    *string `json:"status,omitempty"`
	EditFrom  *string `json:"editFrom,omitempty"`
	EditTo    *string `json:"editTo,omitempty"`
}

// Validate implements validation.Validatable
func (m Milestone) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.NotNil),
		validation.Field(&m.Headline, validation.NotNil),
	)
}
