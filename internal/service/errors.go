package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for
// with errors.Is().
//
// Error handling principles:
// 1. Store sentinels (not found, duplicate) pass through wrapped with %w
// 2. Unexpected errors are wrapped in ServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNotifierFailure indicates a notification could not be delivered.
	// Delivery is best-effort: this error is logged by services and never
	// propagated to API callers.
	ErrNotifierFailure = errors.New("notifier failure")

	// ErrIDGenerationExhausted indicates the identity generator could not
	// produce a collision-free external identifier within its retry budget.
	ErrIDGenerationExhausted = errors.New("external ID generation exhausted retries")
)

// ServiceError wraps errors from a service with operation context.
type ServiceError struct {
	// Service is the service that failed (e.g., "task_service")
	Service string
	// Operation is the operation that failed (e.g., "create_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError wrapping err.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
