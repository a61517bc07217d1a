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

// PostgresGroupStore implements the store.GroupStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGroupStore creates a new PostgreSQL implementation of the GroupStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresGroupStore(db store.DBTX, logger *slog.Logger) *PostgresGroupStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "group_store")),
	}
}

// Ensure PostgresGroupStore implements store.GroupStore interface
var _ store.GroupStore = (*PostgresGroupStore)(nil)

// WithTx implements store.GroupStore.WithTx
func (s *PostgresGroupStore) WithTx(tx *sql.Tx) store.GroupStore {
	return &PostgresGroupStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.GroupStore.Create
// Returns store.ErrExternalIDExists on an external-ID collision.
func (s *PostgresGroupStore) Create(ctx context.Context, group *domain.Group) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		log.Warn("group validation failed during create",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	query := `
		INSERT INTO groups (id, external_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		group.ID,
		group.ExternalID,
		group.Name,
		group.CreatedAt,
		group.UpdatedAt,
	)

	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			log.Warn("unique constraint violation during group creation",
				slog.String("error", err.Error()),
				slog.String("group_id", group.ID.String()))
			return mapped
		}

		log.Error("failed to create group",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	log.Info("group created successfully",
		slog.String("group_id", group.ID.String()),
		slog.String("external_id", group.ExternalID))
	return nil
}

// GetByID implements store.GroupStore.GetByID
// Returns store.ErrGroupNotFound if the group does not exist.
func (s *PostgresGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, external_id, name, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	group, err := s.scanGroup(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("group not found", slog.String("group_id", id.String()))
			return nil, store.ErrGroupNotFound
		}
		log.Error("failed to get group by ID",
			slog.String("error", err.Error()),
			slog.String("group_id", id.String()))
		return nil, err
	}

	return group, nil
}

// GetByExternalID implements store.GroupStore.GetByExternalID
// Returns store.ErrGroupNotFound if the group does not exist.
func (s *PostgresGroupStore) GetByExternalID(ctx context.Context, externalID string) (*domain.Group, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, external_id, name, created_at, updated_at
		FROM groups
		WHERE external_id = $1
	`

	group, err := s.scanGroup(s.db.QueryRowContext(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("group not found", slog.String("external_id", externalID))
			return nil, store.ErrGroupNotFound
		}
		log.Error("failed to get group by external ID",
			slog.String("error", err.Error()),
			slog.String("external_id", externalID))
		return nil, err
	}

	return group, nil
}

// List implements store.GroupStore.List
func (s *PostgresGroupStore) List(ctx context.Context) ([]*domain.Group, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, external_id, name, created_at, updated_at
		FROM groups
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query groups", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	groups := []*domain.Group{}
	for rows.Next() {
		var group domain.Group
		err := rows.Scan(
			&group.ID,
			&group.ExternalID,
			&group.Name,
			&group.CreatedAt,
			&group.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan group row", slog.String("error", err.Error()))
			return nil, err
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed groups", slog.Int("count", len(groups)))
	return groups, nil
}

// Update implements store.GroupStore.Update
// Returns store.ErrGroupNotFound if the group does not exist.
func (s *PostgresGroupStore) Update(ctx context.Context, group *domain.Group) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		log.Warn("group validation failed during update",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	query := `
		UPDATE groups
		SET name = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, group.Name, group.UpdatedAt, group.ID)
	if err != nil {
		log.Error("failed to update group",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("group not found for update", slog.String("group_id", group.ID.String()))
		return store.ErrGroupNotFound
	}

	log.Info("group updated successfully", slog.String("group_id", group.ID.String()))
	return nil
}

// Delete implements store.GroupStore.Delete
// The group's memberships and tasks are removed by the ON DELETE CASCADE
// rules in the same statement, so no orphans survive the delete.
// Returns store.ErrGroupNotFound if the group does not exist.
func (s *PostgresGroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM groups WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete group",
			slog.String("error", err.Error()),
			slog.String("group_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("group_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("group not found for delete", slog.String("group_id", id.String()))
		return store.ErrGroupNotFound
	}

	log.Info("group deleted successfully", slog.String("group_id", id.String()))
	return nil
}

// ExternalIDExists implements store.GroupStore.ExternalIDExists
func (s *PostgresGroupStore) ExternalIDExists(ctx context.Context, externalID string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS (SELECT 1 FROM groups WHERE external_id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, externalID).Scan(&exists); err != nil {
		log.Error("failed to check group external ID",
			slog.String("error", err.Error()),
			slog.String("external_id", externalID))
		return false, fmt.Errorf("checking group external ID: %w", err)
	}

	return exists, nil
}

func (s *PostgresGroupStore) scanGroup(row *sql.Row) (*domain.Group, error) {
	var group domain.Group
	err := row.Scan(
		&group.ID,
		&group.ExternalID,
		&group.Name,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &group, nil
}
