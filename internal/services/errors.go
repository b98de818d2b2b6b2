package services

import "errors"

var (
	// ErrHabitNotFound is returned when the referenced habit does not exist.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrForbidden is returned when the habit belongs to a different user.
	ErrForbidden = errors.New("habit does not belong to user")
	// ErrInvalidInput is returned for out-of-range check-in values.
	ErrInvalidInput = errors.New("invalid input")
)
