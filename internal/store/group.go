package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

// GroupStore defines the interface for group data persistence.
type GroupStore interface {
	// Create saves a new group to the store.
	// Returns ErrExternalIDExists on an external-ID collision.
	Create(ctx context.Context, group *domain.Group) error

	// GetByID retrieves a group by its internal ID.
	// Returns ErrGroupNotFound if the group does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)

	// GetByExternalID retrieves a group by its public external identifier.
	// Returns ErrGroupNotFound if the group does not exist.
	GetByExternalID(ctx context.Context, externalID string) (*domain.Group, error)

	// List returns all groups ordered by creation time.
	List(ctx context.Context) ([]*domain.Group, error)

	// Update modifies an existing group's details.
	// Returns ErrGroupNotFound if the group does not exist.
	Update(ctx context.Context, group *domain.Group) error

	// Delete removes a group from the store by its internal ID.
	// The group's memberships and tasks are removed atomically by the
	// store's cascade rules; no orphans remain.
	// Returns ErrGroupNotFound if the group does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExternalIDExists reports whether a group with the given external
	// identifier already exists. Used by identifier generation.
	ExternalIDExists(ctx context.Context, externalID string) (bool, error)

	// WithTx returns a new GroupStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) GroupStore
}
