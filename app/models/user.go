package models

import (
	"errors"
	"time"
)

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return err
	}

	if u.CreatedAt.IsZero() {
		return errors.New("createdAt cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (u *User) BeforeCreate(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
}
