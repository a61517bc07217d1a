package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// MembershipService manages enrollments of users into groups.
// A (user, group) pair holds at most one membership: absent → present
// on enroll, present → present on role update, present → absent on
// removal.
type MembershipService interface {
	// Enroll adds a user to a group with the given role. The role is
	// required; there is no default.
	// Returns store.ErrGroupNotFound / store.ErrUserNotFound if either
	// parent is absent and store.ErrMembershipExists if the pair already
	// holds a membership.
	Enroll(ctx context.Context, groupExternalID, userExternalID, role string) (*domain.Membership, error)

	// UpdateRole overwrites the role of an existing membership.
	// Returns store.ErrMembershipNotFound if the pair has no membership.
	UpdateRole(ctx context.Context, groupExternalID, userExternalID, role string) (*domain.Membership, error)

	// Remove deletes the membership. The user and group themselves are
	// never touched.
	// Returns store.ErrMembershipNotFound if the pair has no membership.
	Remove(ctx context.Context, groupExternalID, userExternalID string) error

	// ListMembers returns the group's memberships joined with user
	// display data.
	// Returns store.ErrGroupNotFound if the group does not exist.
	ListMembers(ctx context.Context, groupExternalID string) ([]*domain.GroupMember, error)
}

// MembershipServiceImpl implements the MembershipService interface.
type MembershipServiceImpl struct {
	db              *sql.DB
	membershipStore store.MembershipStore
	userStore       store.UserStore
	groupStore      store.GroupStore
	logger          *slog.Logger
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(
	db *sql.DB,
	membershipStore store.MembershipStore,
	userStore store.UserStore,
	groupStore store.GroupStore,
	logger *slog.Logger,
) *MembershipServiceImpl {
	if db == nil {
		panic("db cannot be nil")
	}
	if membershipStore == nil {
		panic("membershipStore cannot be nil")
	}
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if groupStore == nil {
		panic("groupStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MembershipServiceImpl{
		db:              db,
		membershipStore: membershipStore,
		userStore:       userStore,
		groupStore:      groupStore,
		logger:          logger.With("component", "membership_service"),
	}
}

// Ensure MembershipServiceImpl implements MembershipService
var _ MembershipService = (*MembershipServiceImpl)(nil)

// Enroll implements MembershipService.Enroll
// Parent existence is resolved inside the transaction; the uniqueness of
// the (user, group) pair is enforced by the store constraint, so two
// concurrent enrollments cannot both succeed.
func (s *MembershipServiceImpl) Enroll(
	ctx context.Context,
	groupExternalID, userExternalID, role string,
) (*domain.Membership, error) {
	var membership *domain.Membership

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		group, err := s.groupStore.WithTx(tx).GetByExternalID(ctx, groupExternalID)
		if err != nil {
			return fmt.Errorf("retrieving group for enrollment: %w", err)
		}

		user, err := s.userStore.WithTx(tx).GetByExternalID(ctx, userExternalID)
		if err != nil {
			return fmt.Errorf("retrieving user for enrollment: %w", err)
		}

		membership, err = domain.NewMembership(user.ID, group.ID, role)
		if err != nil {
			return err
		}

		if err := s.membershipStore.WithTx(tx).Create(ctx, membership); err != nil {
			return fmt.Errorf("creating membership: %w", err)
		}
		return nil
	})

	if err != nil {
		if !store.IsNotFoundError(err) && !store.IsDuplicateError(err) {
			s.logger.Error("failed to enroll user",
				"error", err,
				"group_external_id", groupExternalID,
				"user_external_id", userExternalID)
		}
		return nil, err
	}

	s.logger.Info("user enrolled successfully",
		"group_external_id", groupExternalID,
		"user_external_id", userExternalID,
		"role", membership.Role)
	return membership, nil
}

// UpdateRole implements MembershipService.UpdateRole
func (s *MembershipServiceImpl) UpdateRole(
	ctx context.Context,
	groupExternalID, userExternalID, role string,
) (*domain.Membership, error) {
	var membership *domain.Membership

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		group, err := s.groupStore.WithTx(tx).GetByExternalID(ctx, groupExternalID)
		if err != nil {
			return fmt.Errorf("retrieving group for role update: %w", err)
		}

		user, err := s.userStore.WithTx(tx).GetByExternalID(ctx, userExternalID)
		if err != nil {
			return fmt.Errorf("retrieving user for role update: %w", err)
		}

		membership, err = s.membershipStore.WithTx(tx).UpdateRole(ctx, user.ID, group.ID, role)
		if err != nil {
			return fmt.Errorf("updating membership role: %w", err)
		}
		return nil
	})

	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to update membership role",
				"error", err,
				"group_external_id", groupExternalID,
				"user_external_id", userExternalID)
		}
		return nil, err
	}

	s.logger.Info("membership role updated successfully",
		"group_external_id", groupExternalID,
		"user_external_id", userExternalID,
		"role", membership.Role)
	return membership, nil
}

// Remove implements MembershipService.Remove
func (s *MembershipServiceImpl) Remove(
	ctx context.Context,
	groupExternalID, userExternalID string,
) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		group, err := s.groupStore.WithTx(tx).GetByExternalID(ctx, groupExternalID)
		if err != nil {
			return fmt.Errorf("retrieving group for membership removal: %w", err)
		}

		user, err := s.userStore.WithTx(tx).GetByExternalID(ctx, userExternalID)
		if err != nil {
			return fmt.Errorf("retrieving user for membership removal: %w", err)
		}

		if err := s.membershipStore.WithTx(tx).Delete(ctx, user.ID, group.ID); err != nil {
			return fmt.Errorf("deleting membership: %w", err)
		}
		return nil
	})

	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to remove membership",
				"error", err,
				"group_external_id", groupExternalID,
				"user_external_id", userExternalID)
		}
		return err
	}

	s.logger.Info("membership removed successfully",
		"group_external_id", groupExternalID,
		"user_external_id", userExternalID)
	return nil
}

// ListMembers implements MembershipService.ListMembers
func (s *MembershipServiceImpl) ListMembers(
	ctx context.Context,
	groupExternalID string,
) ([]*domain.GroupMember, error) {
	group, err := s.groupStore.GetByExternalID(ctx, groupExternalID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve group for member listing",
				"error", err,
				"group_external_id", groupExternalID)
		}
		return nil, fmt.Errorf("retrieving group for member listing: %w", err)
	}

	members, err := s.membershipStore.ListByGroup(ctx, group.ID)
	if err != nil {
		s.logger.Error("failed to list group members",
			"error", err,
			"group_external_id", groupExternalID)
		return nil, fmt.Errorf("listing group members: %w", err)
	}

	return members, nil
}
