package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// PostgresMembershipStore implements the store.MembershipStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMembershipStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMembershipStore creates a new PostgreSQL implementation of the
// MembershipStore interface. If logger is nil, a default logger will be used.
func NewPostgresMembershipStore(db store.DBTX, logger *slog.Logger) *PostgresMembershipStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMembershipStore{
		db:     db,
		logger: logger.With(slog.String("component", "membership_store")),
	}
}

// Ensure PostgresMembershipStore implements store.MembershipStore interface
var _ store.MembershipStore = (*PostgresMembershipStore)(nil)

// WithTx implements store.MembershipStore.WithTx
func (s *PostgresMembershipStore) WithTx(tx *sql.Tx) store.MembershipStore {
	return &PostgresMembershipStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.MembershipStore.Create
// Returns store.ErrMembershipExists if the (user, group) pair already
// holds a membership, and store.ErrInvalidEntity if the referenced user
// or group does not exist (foreign key violation).
func (s *PostgresMembershipStore) Create(ctx context.Context, membership *domain.Membership) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := membership.Validate(); err != nil {
		log.Warn("membership validation failed during create",
			slog.String("error", err.Error()),
			slog.String("membership_id", membership.ID.String()))
		return err
	}

	query := `
		INSERT INTO memberships (id, user_id, group_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		membership.ID,
		membership.UserID,
		membership.GroupID,
		membership.Role,
		membership.CreatedAt,
	)

	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			log.Warn("membership already exists",
				slog.String("user_id", membership.UserID.String()),
				slog.String("group_id", membership.GroupID.String()))
			return mapped
		}

		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during membership creation",
				slog.String("error", err.Error()),
				slog.String("user_id", membership.UserID.String()),
				slog.String("group_id", membership.GroupID.String()))
			return fmt.Errorf("%w: referenced user or group not found",
				store.ErrInvalidEntity)
		}

		log.Error("failed to create membership",
			slog.String("error", err.Error()),
			slog.String("membership_id", membership.ID.String()))
		return err
	}

	log.Info("membership created successfully",
		slog.String("membership_id", membership.ID.String()),
		slog.String("user_id", membership.UserID.String()),
		slog.String("group_id", membership.GroupID.String()),
		slog.String("role", membership.Role))
	return nil
}

// GetByUserAndGroup implements store.MembershipStore.GetByUserAndGroup
// Returns store.ErrMembershipNotFound if the pair has no membership.
func (s *PostgresMembershipStore) GetByUserAndGroup(
	ctx context.Context,
	userID, groupID uuid.UUID,
) (*domain.Membership, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, group_id, role, created_at
		FROM memberships
		WHERE user_id = $1 AND group_id = $2
	`

	var membership domain.Membership
	err := s.db.QueryRowContext(ctx, query, userID, groupID).Scan(
		&membership.ID,
		&membership.UserID,
		&membership.GroupID,
		&membership.Role,
		&membership.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("membership not found",
				slog.String("user_id", userID.String()),
				slog.String("group_id", groupID.String()))
			return nil, store.ErrMembershipNotFound
		}
		log.Error("failed to get membership",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("group_id", groupID.String()))
		return nil, err
	}

	return &membership, nil
}

// UpdateRole implements store.MembershipStore.UpdateRole
// Returns store.ErrMembershipNotFound if the pair has no membership.
func (s *PostgresMembershipStore) UpdateRole(
	ctx context.Context,
	userID, groupID uuid.UUID,
	role string,
) (*domain.Membership, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if role == "" {
		return nil, domain.ErrEmptyMembershipRole
	}

	query := `
		UPDATE memberships
		SET role = $1
		WHERE user_id = $2 AND group_id = $3
		RETURNING id, user_id, group_id, role, created_at
	`

	var membership domain.Membership
	err := s.db.QueryRowContext(ctx, query, role, userID, groupID).Scan(
		&membership.ID,
		&membership.UserID,
		&membership.GroupID,
		&membership.Role,
		&membership.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("membership not found for role update",
				slog.String("user_id", userID.String()),
				slog.String("group_id", groupID.String()))
			return nil, store.ErrMembershipNotFound
		}
		log.Error("failed to update membership role",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("group_id", groupID.String()))
		return nil, err
	}

	log.Info("membership role updated successfully",
		slog.String("membership_id", membership.ID.String()),
		slog.String("role", membership.Role))
	return &membership, nil
}

// Delete implements store.MembershipStore.Delete
// Deleting a membership never touches the user or group rows.
// Returns store.ErrMembershipNotFound if the pair has no membership.
func (s *PostgresMembershipStore) Delete(ctx context.Context, userID, groupID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM memberships WHERE user_id = $1 AND group_id = $2`

	result, err := s.db.ExecContext(ctx, query, userID, groupID)
	if err != nil {
		log.Error("failed to delete membership",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("group_id", groupID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("group_id", groupID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("membership not found for delete",
			slog.String("user_id", userID.String()),
			slog.String("group_id", groupID.String()))
		return store.ErrMembershipNotFound
	}

	log.Info("membership deleted successfully",
		slog.String("user_id", userID.String()),
		slog.String("group_id", groupID.String()))
	return nil
}

// ListByGroup implements store.MembershipStore.ListByGroup
// Joins memberships with users so listings carry display data.
func (s *PostgresMembershipStore) ListByGroup(
	ctx context.Context,
	groupID uuid.UUID,
) ([]*domain.GroupMember, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT u.external_id, u.name, u.email, m.role
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.group_id = $1
		ORDER BY m.created_at
	`

	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		log.Error("failed to query group members",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	members := []*domain.GroupMember{}
	for rows.Next() {
		var member domain.GroupMember
		err := rows.Scan(
			&member.UserExternalID,
			&member.Name,
			&member.Email,
			&member.Role,
		)
		if err != nil {
			log.Error("failed to scan member row", slog.String("error", err.Error()))
			return nil, err
		}
		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed group members",
		slog.String("group_id", groupID.String()),
		slog.Int("count", len(members)))
	return members, nil
}
