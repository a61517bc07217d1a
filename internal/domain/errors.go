package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidDeadline is returned when a deadline does not parse as a timestamp.
	ErrInvalidDeadline = errors.New("invalid deadline format")
)

// ValidationError describes a validation failure on a specific field.
// It wraps ErrValidation so callers can check with errors.Is while the
// API layer can surface the offending field name.
type ValidationError struct {
	Field   string // The field that failed validation (e.g., "title", "deadline")
	Message string // Human-readable description of the failure
	Err     error  // Underlying cause, if any
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap returns ErrValidation so errors.Is(err, ErrValidation) holds.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
