package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Tasks are owned directly by groups; all scoped lookups take the
// owning group's internal ID.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrTitleExists if the owning group already has a task with
	// the same title, and ErrExternalIDExists on an external-ID collision.
	// Returns ErrInvalidEntity if the referenced group does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByExternalID retrieves a task by its external identifier, scoped
	// to the owning group. Returns ErrTaskNotFound if the task does not
	// exist or belongs to a different group.
	GetByExternalID(ctx context.Context, groupID uuid.UUID, externalID string) (*domain.Task, error)

	// ListByGroup returns all tasks owned by the group, ordered by creation time.
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Task, error)

	// ListDueBetween returns all tasks whose deadline falls in [from, to].
	// Used by the deadline-reminder batch job.
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Task, error)

	// Update modifies an existing task. The caller must provide a
	// complete task object; UpdatedAt is persisted as given.
	// Returns ErrTaskNotFound if the task does not exist and
	// ErrTitleExists if the new title collides within the group.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its external identifier, scoped to the
	// owning group. Returns ErrTaskNotFound if the task does not exist
	// or belongs to a different group.
	Delete(ctx context.Context, groupID uuid.UUID, externalID string) error

	// ExternalIDExists reports whether a task with the given external
	// identifier already exists. Used by identifier generation.
	ExternalIDExists(ctx context.Context, externalID string) (bool, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
