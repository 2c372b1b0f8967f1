package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Specific validation errors below wrap it, so callers can check
	// errors.Is(err, ErrValidation) to map any of them to a 400.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTaskID is returned when a task has no ID.
	ErrEmptyTaskID = fmtValidation("task ID cannot be empty")

	// ErrEmptyTaskText is returned when a task has no text.
	ErrEmptyTaskText = fmtValidation("task text cannot be empty")

	// ErrInvalidStatus is returned when a status is not pending or done.
	ErrInvalidStatus = fmtValidation("invalid task status")

	// ErrInvalidPriority is returned when a priority is not High, Medium or Low.
	ErrInvalidPriority = fmtValidation("invalid task priority")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

func fmtValidation(msg string) error {
	return &validationError{msg: msg}
}
