package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrGroupNotFound):
		return "Group not found"

	case errors.Is(err, store.ErrMembershipNotFound):
		return "Membership not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrTitleExists):
		return "A task with this title already exists in the group"

	case errors.Is(err, store.ErrMembershipExists):
		return "User is already a member of this group"

	case store.IsDuplicateError(err):
		return "Resource already exists"

	// Validation errors carry user-actionable messages by construction.
	case errors.Is(err, domain.ErrValidation):
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return vErr.Message
		}
		return "Invalid request data"

	case isDomainValidationError(err):
		return err.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return "Referenced resource does not exist"

	default:
		return "An unexpected error occurred"
	}
}

// isDomainValidationError reports whether err is one of the domain
// entity validation sentinels (empty name, bad email, and so on). Those
// are safe to surface: they describe the request, not the system.
func isDomainValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrEmptyUserName,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrEmptyPassword,
		domain.ErrEmptyGroupName,
		domain.ErrEmptyMembershipRole,
		domain.ErrEmptyTaskTitle,
		domain.ErrNegativeTaskStatus,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
