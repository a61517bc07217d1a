package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
// Returns store.ErrTitleExists if the owning group already has a task
// with the same title, store.ErrExternalIDExists on an external-ID
// collision, and store.ErrInvalidEntity if the group does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, external_id, group_id, title, description, status, deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.ExternalID,
		task.GroupID,
		task.Title,
		task.Description,
		task.Status,
		task.Deadline,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			log.Warn("unique constraint violation during task creation",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()),
				slog.String("group_id", task.GroupID.String()))
			return mapped
		}

		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()),
				slog.String("group_id", task.GroupID.String()))
			return fmt.Errorf("%w: group with ID %s not found",
				store.ErrInvalidEntity, task.GroupID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("external_id", task.ExternalID),
		slog.String("group_id", task.GroupID.String()))
	return nil
}

// GetByExternalID implements store.TaskStore.GetByExternalID
// The lookup is scoped to the owning group; a task addressed through
// the wrong group is reported as not found.
func (s *PostgresTaskStore) GetByExternalID(
	ctx context.Context,
	groupID uuid.UUID,
	externalID string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, external_id, group_id, title, description, status, deadline, created_at, updated_at
		FROM tasks
		WHERE group_id = $1 AND external_id = $2
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, groupID, externalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found",
				slog.String("group_id", groupID.String()),
				slog.String("external_id", externalID))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by external ID",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()),
			slog.String("external_id", externalID))
		return nil, err
	}

	return task, nil
}

// ListByGroup implements store.TaskStore.ListByGroup
func (s *PostgresTaskStore) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, external_id, group_id, title, description, status, deadline, created_at, updated_at
		FROM tasks
		WHERE group_id = $1
		ORDER BY created_at
	`

	tasks, err := s.queryTasks(ctx, query, groupID)
	if err != nil {
		log.Error("failed to list tasks by group",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()))
		return nil, err
	}

	log.Debug("listed tasks",
		slog.String("group_id", groupID.String()),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// ListDueBetween implements store.TaskStore.ListDueBetween
// Returns tasks whose deadline falls in [from, to], open or done.
// The deadline-check job filters out done tasks itself.
func (s *PostgresTaskStore) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, external_id, group_id, title, description, status, deadline, created_at, updated_at
		FROM tasks
		WHERE deadline IS NOT NULL AND deadline >= $1 AND deadline <= $2
		ORDER BY deadline
	`

	tasks, err := s.queryTasks(ctx, query, from, to)
	if err != nil {
		log.Error("failed to list tasks due between",
			slog.String("error", err.Error()),
			slog.Time("from", from),
			slog.Time("to", to))
		return nil, err
	}

	log.Debug("listed tasks due in window",
		slog.Time("from", from),
		slog.Time("to", to),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update
// Returns store.ErrTaskNotFound if the task does not exist and
// store.ErrTitleExists if the new title collides within the group.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, deadline = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		task.Deadline,
		task.UpdatedAt,
		task.ID,
	)

	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			log.Warn("unique constraint violation during task update",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
			return mapped
		}

		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("task not found for update", slog.String("task_id", task.ID.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()),
		slog.Int("status", task.Status))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist or belongs
// to a different group.
func (s *PostgresTaskStore) Delete(ctx context.Context, groupID uuid.UUID, externalID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE group_id = $1 AND external_id = $2`

	result, err := s.db.ExecContext(ctx, query, groupID, externalID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()),
			slog.String("external_id", externalID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("external_id", externalID))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("task not found for delete",
			slog.String("group_id", groupID.String()),
			slog.String("external_id", externalID))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully",
		slog.String("group_id", groupID.String()),
		slog.String("external_id", externalID))
	return nil
}

// ExternalIDExists implements store.TaskStore.ExternalIDExists
func (s *PostgresTaskStore) ExternalIDExists(ctx context.Context, externalID string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS (SELECT 1 FROM tasks WHERE external_id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, externalID).Scan(&exists); err != nil {
		log.Error("failed to check task external ID",
			slog.String("error", err.Error()),
			slog.String("external_id", externalID))
		return false, fmt.Errorf("checking task external ID: %w", err)
	}

	return exists, nil
}

// queryTasks runs a multi-row task query and scans the results.
func (s *PostgresTaskStore) queryTasks(
	ctx context.Context,
	query string,
	args ...interface{},
) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		var task domain.Task
		var deadline sql.NullTime
		err := rows.Scan(
			&task.ID,
			&task.ExternalID,
			&task.GroupID,
			&task.Title,
			&task.Description,
			&task.Status,
			&deadline,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if deadline.Valid {
			t := deadline.Time.UTC()
			task.Deadline = &t
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// scanTask scans a single task row, normalizing the nullable deadline.
func scanTask(row *sql.Row) (*domain.Task, error) {
	var task domain.Task
	var deadline sql.NullTime
	err := row.Scan(
		&task.ID,
		&task.ExternalID,
		&task.GroupID,
		&task.Title,
		&task.Description,
		&task.Status,
		&deadline,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if deadline.Valid {
		t := deadline.Time.UTC()
		task.Deadline = &t
	}
	return &task, nil
}
