package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// User is a Leantime user account.
type User struct {
	ID        *int    `json:"id"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Firstname *string `json:"firstname,omitempty"`
	Lastname  *string `json:"lastname,omitempty"`
	Role      *string `json:"role,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// Validate implements validation.Validatable
func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.NotNil),
		validation.Field(&u.Username, validation.NotNil),
		validation.Field(&u.Email, validation.NotNil),
	)
}
