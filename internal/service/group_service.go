package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// GroupService provides group-related operations. Groups are addressed
// by their public external identifier.
type GroupService interface {
	// CreateGroup creates a new group and enrolls its creator as "admin"
	// in the same transaction.
	// Returns store.ErrUserNotFound if the creator does not exist.
	CreateGroup(ctx context.Context, name, creatorExternalID string) (*domain.Group, error)

	// GetGroup retrieves a group by external ID.
	// Returns store.ErrGroupNotFound if the group does not exist.
	GetGroup(ctx context.Context, externalID string) (*domain.Group, error)

	// ListGroups returns all groups ordered by creation time.
	ListGroups(ctx context.Context) ([]*domain.Group, error)

	// UpdateGroup renames the group.
	// Returns store.ErrGroupNotFound if the group does not exist.
	UpdateGroup(ctx context.Context, externalID, name string) (*domain.Group, error)

	// DeleteGroup removes a group. Its memberships and tasks are removed
	// atomically in the same transaction by the store's cascade rules.
	// Returns store.ErrGroupNotFound if the group does not exist.
	DeleteGroup(ctx context.Context, externalID string) error
}

// GroupServiceImpl implements the GroupService interface.
type GroupServiceImpl struct {
	db              *sql.DB
	groupStore      store.GroupStore
	userStore       store.UserStore
	membershipStore store.MembershipStore
	logger          *slog.Logger
}

// NewGroupService creates a new GroupService.
func NewGroupService(
	db *sql.DB,
	groupStore store.GroupStore,
	userStore store.UserStore,
	membershipStore store.MembershipStore,
	logger *slog.Logger,
) *GroupServiceImpl {
	if db == nil {
		panic("db cannot be nil")
	}
	if groupStore == nil {
		panic("groupStore cannot be nil")
	}
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if membershipStore == nil {
		panic("membershipStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GroupServiceImpl{
		db:              db,
		groupStore:      groupStore,
		userStore:       userStore,
		membershipStore: membershipStore,
		logger:          logger.With("component", "group_service"),
	}
}

// Ensure GroupServiceImpl implements GroupService
var _ GroupService = (*GroupServiceImpl)(nil)

// CreateGroup implements GroupService.CreateGroup
// The group row and the creator's admin membership are written in one
// transaction so a half-created group can never be observed.
func (s *GroupServiceImpl) CreateGroup(
	ctx context.Context,
	name, creatorExternalID string,
) (*domain.Group, error) {
	externalID, err := GenerateExternalID(ctx, s.groupStore.ExternalIDExists)
	if err != nil {
		s.logger.Error("failed to generate group external ID", "error", err)
		return nil, NewServiceError("group_service", "create_group", "failed to generate external ID", err)
	}

	group, err := domain.NewGroup(externalID, name)
	if err != nil {
		s.logger.Warn("group validation failed during create", "error", err)
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		creator, err := s.userStore.WithTx(tx).GetByExternalID(ctx, creatorExternalID)
		if err != nil {
			return fmt.Errorf("retrieving group creator: %w", err)
		}

		if err := s.groupStore.WithTx(tx).Create(ctx, group); err != nil {
			return fmt.Errorf("creating group: %w", err)
		}

		membership, err := domain.NewMembership(creator.ID, group.ID, domain.RoleAdmin)
		if err != nil {
			return err
		}
		if err := s.membershipStore.WithTx(tx).Create(ctx, membership); err != nil {
			return fmt.Errorf("enrolling group creator: %w", err)
		}

		return nil
	})

	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to create group",
				"error", err,
				"creator_external_id", creatorExternalID)
		}
		return nil, err
	}

	s.logger.Info("group created successfully",
		"group_id", group.ID,
		"external_id", group.ExternalID,
		"creator_external_id", creatorExternalID)
	return group, nil
}

// GetGroup implements GroupService.GetGroup
func (s *GroupServiceImpl) GetGroup(ctx context.Context, externalID string) (*domain.Group, error) {
	group, err := s.groupStore.GetByExternalID(ctx, externalID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve group",
				"error", err,
				"external_id", externalID)
		}
		return nil, fmt.Errorf("retrieving group: %w", err)
	}
	return group, nil
}

// ListGroups implements GroupService.ListGroups
func (s *GroupServiceImpl) ListGroups(ctx context.Context) ([]*domain.Group, error) {
	groups, err := s.groupStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list groups", "error", err)
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	return groups, nil
}

// UpdateGroup implements GroupService.UpdateGroup
func (s *GroupServiceImpl) UpdateGroup(
	ctx context.Context,
	externalID, name string,
) (*domain.Group, error) {
	var updated *domain.Group

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.groupStore.WithTx(tx)

		group, err := txStore.GetByExternalID(ctx, externalID)
		if err != nil {
			return fmt.Errorf("retrieving group for update: %w", err)
		}

		group.Name = name
		group.UpdatedAt = time.Now().UTC()

		if err := txStore.Update(ctx, group); err != nil {
			return fmt.Errorf("saving group update: %w", err)
		}

		updated = group
		return nil
	})

	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to update group",
				"error", err,
				"external_id", externalID)
		}
		return nil, err
	}

	s.logger.Info("group updated successfully",
		"group_id", updated.ID,
		"external_id", updated.ExternalID)
	return updated, nil
}

// DeleteGroup implements GroupService.DeleteGroup
func (s *GroupServiceImpl) DeleteGroup(ctx context.Context, externalID string) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.groupStore.WithTx(tx)

		group, err := txStore.GetByExternalID(ctx, externalID)
		if err != nil {
			return fmt.Errorf("retrieving group for delete: %w", err)
		}

		// Memberships and tasks cascade with the group row, atomically
		// within this transaction.
		return txStore.Delete(ctx, group.ID)
	})

	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to delete group",
				"error", err,
				"external_id", externalID)
		}
		return err
	}

	s.logger.Info("group deleted successfully", "external_id", externalID)
	return nil
}
