package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrUserNotFound, ErrTaskNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or when it references a parent that does not exist.
	// Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned by RunInTransaction when the
	// transaction itself fails to begin, commit, or roll back. Errors
	// from the function running inside the transaction pass through
	// unwrapped.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrGroupNotFound indicates that the requested group does not exist in the store.
	ErrGroupNotFound = fmt.Errorf("%w: group", ErrNotFound)

	// ErrMembershipNotFound indicates that no membership exists for the
	// requested (user, group) pair.
	ErrMembershipNotFound = fmt.Errorf("%w: membership", ErrNotFound)

	// ErrTaskNotFound indicates that the requested task does not exist in
	// the store, or exists but is not owned by the addressed group.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrExternalIDExists indicates that the generated external identifier
	// collided with an existing one.
	ErrExternalIDExists = fmt.Errorf("%w: external ID", ErrDuplicate)

	// ErrTitleExists indicates that a task with the same title already
	// exists within the owning group.
	ErrTitleExists = fmt.Errorf("%w: task title in group", ErrDuplicate)

	// ErrMembershipExists indicates that a membership already exists for
	// the (user, group) pair.
	ErrMembershipExists = fmt.Errorf("%w: membership", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
