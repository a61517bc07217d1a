package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// The caller must provide a user whose password has already been hashed.
	// Returns ErrEmailExists if the email is already taken and
	// ErrExternalIDExists on an external-ID collision.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their internal ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByExternalID retrieves a user by their public external identifier.
	// Returns ErrUserNotFound if the user does not exist.
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]*domain.User, error)

	// Update modifies an existing user's details. The caller must provide
	// a complete user object including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their internal ID.
	// The user's memberships are removed by the store's cascade rules;
	// tasks are unaffected (tasks belong to groups, not users).
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExternalIDExists reports whether a user with the given external
	// identifier already exists. Used by identifier generation.
	ExternalIDExists(ctx context.Context, externalID string) (bool, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
