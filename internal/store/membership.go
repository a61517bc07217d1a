package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

// MembershipStore defines the interface for membership data persistence.
// A (user, group) pair holds at most one membership; the unique
// constraint lives in the store, not in caller-side checks.
type MembershipStore interface {
	// Create saves a new membership to the store.
	// Returns ErrMembershipExists if the (user, group) pair already has one.
	// Returns ErrInvalidEntity if the referenced user or group does not exist.
	Create(ctx context.Context, membership *domain.Membership) error

	// GetByUserAndGroup retrieves the membership for a (user, group) pair.
	// Returns ErrMembershipNotFound if the pair has no membership.
	GetByUserAndGroup(ctx context.Context, userID, groupID uuid.UUID) (*domain.Membership, error)

	// UpdateRole overwrites the role of an existing membership.
	// Returns ErrMembershipNotFound if the pair has no membership.
	UpdateRole(ctx context.Context, userID, groupID uuid.UUID, role string) (*domain.Membership, error)

	// Delete removes the membership for a (user, group) pair. Removing a
	// membership never deletes the user or the group.
	// Returns ErrMembershipNotFound if the pair has no membership.
	Delete(ctx context.Context, userID, groupID uuid.UUID) error

	// ListByGroup returns all memberships for a group joined with user
	// display data, ordered by enrollment time.
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupMember, error)

	// WithTx returns a new MembershipStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) MembershipStore
}
