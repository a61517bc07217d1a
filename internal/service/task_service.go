package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/events"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// TaskInput carries the fields for task creation.
type TaskInput struct {
	Title       string
	Description string
	Status      int
	Deadline    *time.Time
}

// TaskService manages the group-scoped task lifecycle. Tasks are
// addressed by (group external ID, task external ID); a task reached
// through the wrong group is reported as not found.
type TaskService interface {
	// CreateTask creates a task owned by the group.
	// Returns store.ErrGroupNotFound if the group is absent and
	// store.ErrTitleExists on a duplicate title within the group.
	CreateTask(ctx context.Context, groupExternalID string, input TaskInput) (*domain.Task, error)

	// GetTask retrieves a task scoped to its owning group.
	// Returns store.ErrGroupNotFound / store.ErrTaskNotFound accordingly.
	GetTask(ctx context.Context, groupExternalID, taskExternalID string) (*domain.Task, error)

	// ListTasks returns all tasks owned by the group.
	// Returns store.ErrGroupNotFound if the group is absent.
	ListTasks(ctx context.Context, groupExternalID string) ([]*domain.Task, error)

	// UpdateTask applies a partial update. After a successful commit it
	// emits, best-effort:
	//   - a completion event when the status transitioned into done
	//   - a deadline reminder when a deadline was set within the
	//     reminder window
	// Event failures are logged and never fail the update.
	UpdateTask(ctx context.Context, groupExternalID, taskExternalID string, update domain.TaskUpdate) (*domain.Task, error)

	// DeleteTask removes a task scoped to its owning group.
	DeleteTask(ctx context.Context, groupExternalID, taskExternalID string) error

	// SendDeadlineReminders scans for open tasks whose deadline falls
	// within the reminder window of now and emits a reminder event for
	// each. Returns the number of reminders emitted.
	SendDeadlineReminders(ctx context.Context, now time.Time) (int, error)
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	db           *sql.DB
	taskStore    store.TaskStore
	groupStore   store.GroupStore
	eventEmitter events.EventEmitter
	recipient    string
	logger       *slog.Logger
}

// NewTaskService creates a new TaskService. recipient is the address
// notification events are delivered to.
func NewTaskService(
	db *sql.DB,
	taskStore store.TaskStore,
	groupStore store.GroupStore,
	eventEmitter events.EventEmitter,
	recipient string,
	logger *slog.Logger,
) *TaskServiceImpl {
	if db == nil {
		panic("db cannot be nil")
	}
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if groupStore == nil {
		panic("groupStore cannot be nil")
	}
	if eventEmitter == nil {
		panic("eventEmitter cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskServiceImpl{
		db:           db,
		taskStore:    taskStore,
		groupStore:   groupStore,
		eventEmitter: eventEmitter,
		recipient:    recipient,
		logger:       logger.With("component", "task_service"),
	}
}

// Ensure TaskServiceImpl implements TaskService
var _ TaskService = (*TaskServiceImpl)(nil)

// CreateTask implements TaskService.CreateTask
func (s *TaskServiceImpl) CreateTask(
	ctx context.Context,
	groupExternalID string,
	input TaskInput,
) (*domain.Task, error) {
	externalID, err := GenerateExternalID(ctx, s.taskStore.ExternalIDExists)
	if err != nil {
		s.logger.Error("failed to generate task external ID", "error", err)
		return nil, NewServiceError("task_service", "create_task", "failed to generate external ID", err)
	}

	var task *domain.Task

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		group, err := s.groupStore.WithTx(tx).GetByExternalID(ctx, groupExternalID)
		if err != nil {
			return fmt.Errorf("retrieving group for task creation: %w", err)
		}

		task, err = domain.NewTask(
			group.ID,
			externalID,
			input.Title,
			input.Description,
			input.Status,
			input.Deadline,
		)
		if err != nil {
			return err
		}

		if err := s.taskStore.WithTx(tx).Create(ctx, task); err != nil {
			return fmt.Errorf("creating task: %w", err)
		}
		return nil
	})

	if err != nil {
		if !store.IsNotFoundError(err) && !store.IsDuplicateError(err) {
			s.logger.Error("failed to create task",
				"error", err,
				"group_external_id", groupExternalID)
		}
		return nil, err
	}

	s.logger.Info("task created successfully",
		"task_id", task.ID,
		"external_id", task.ExternalID,
		"group_external_id", groupExternalID)
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *TaskServiceImpl) GetTask(
	ctx context.Context,
	groupExternalID, taskExternalID string,
) (*domain.Task, error) {
	group, err := s.groupStore.GetByExternalID(ctx, groupExternalID)
	if err != nil {
		return nil, fmt.Errorf("retrieving group for task lookup: %w", err)
	}

	task, err := s.taskStore.GetByExternalID(ctx, group.ID, taskExternalID)
	if err != nil {
		return nil, fmt.Errorf("retrieving task: %w", err)
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *TaskServiceImpl) ListTasks(
	ctx context.Context,
	groupExternalID string,
) ([]*domain.Task, error) {
	group, err := s.groupStore.GetByExternalID(ctx, groupExternalID)
	if err != nil {
		return nil, fmt.Errorf("retrieving group for task listing: %w", err)
	}

	tasks, err := s.taskStore.ListByGroup(ctx, group.ID)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"group_external_id", groupExternalID)
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask
// The read-modify-write runs inside one transaction. Notification
// events are emitted only after the commit succeeds, so a rolled-back
// update can never notify anyone.
func (s *TaskServiceImpl) UpdateTask(
	ctx context.Context,
	groupExternalID, taskExternalID string,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	// An empty update has nothing to write and nothing to notify about.
	if update.Empty() {
		return s.GetTask(ctx, groupExternalID, taskExternalID)
	}

	var (
		task      *domain.Task
		group     *domain.Group
		completed bool
	)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		group, err = s.groupStore.WithTx(tx).GetByExternalID(ctx, groupExternalID)
		if err != nil {
			return fmt.Errorf("retrieving group for task update: %w", err)
		}

		txTasks := s.taskStore.WithTx(tx)
		task, err = txTasks.GetByExternalID(ctx, group.ID, taskExternalID)
		if err != nil {
			return fmt.Errorf("retrieving task for update: %w", err)
		}

		completed, _ = task.Apply(update, time.Now())

		if err := txTasks.Update(ctx, task); err != nil {
			return fmt.Errorf("saving task update: %w", err)
		}
		return nil
	})

	if err != nil {
		if !store.IsNotFoundError(err) && !store.IsDuplicateError(err) {
			s.logger.Error("failed to update task",
				"error", err,
				"group_external_id", groupExternalID,
				"task_external_id", taskExternalID)
		}
		return nil, err
	}

	s.logger.Info("task updated successfully",
		"task_id", task.ID,
		"status", task.Status,
		"group_external_id", groupExternalID)

	if completed {
		s.emitCompletion(ctx, task, group)
	}
	if task.Deadline != nil && update.Deadline != nil &&
		domain.DeadlineApproaching(*task.Deadline, time.Now()) {
		s.emitReminder(ctx, task, time.Now())
	}

	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *TaskServiceImpl) DeleteTask(
	ctx context.Context,
	groupExternalID, taskExternalID string,
) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		group, err := s.groupStore.WithTx(tx).GetByExternalID(ctx, groupExternalID)
		if err != nil {
			return fmt.Errorf("retrieving group for task delete: %w", err)
		}

		if err := s.taskStore.WithTx(tx).Delete(ctx, group.ID, taskExternalID); err != nil {
			return fmt.Errorf("deleting task: %w", err)
		}
		return nil
	})

	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to delete task",
				"error", err,
				"group_external_id", groupExternalID,
				"task_external_id", taskExternalID)
		}
		return err
	}

	s.logger.Info("task deleted successfully",
		"group_external_id", groupExternalID,
		"task_external_id", taskExternalID)
	return nil
}

// SendDeadlineReminders implements TaskService.SendDeadlineReminders
// Done tasks are skipped: a completed task needs no reminder.
func (s *TaskServiceImpl) SendDeadlineReminders(ctx context.Context, now time.Time) (int, error) {
	from := now.AddDate(0, 0, -1) // deadline may be later today but earlier on the clock
	to := now.AddDate(0, 0, domain.DeadlineReminderWindowDays+1)

	tasks, err := s.taskStore.ListDueBetween(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to scan tasks for deadline reminders", "error", err)
		return 0, fmt.Errorf("scanning tasks for reminders: %w", err)
	}

	sent := 0
	for _, task := range tasks {
		if task.Status == domain.StatusDone || task.Deadline == nil {
			continue
		}
		if !domain.DeadlineApproaching(*task.Deadline, now) {
			continue
		}
		s.emitReminder(ctx, task, now)
		sent++
	}

	s.logger.Info("deadline reminder scan complete",
		"scanned", len(tasks),
		"reminders", sent)
	return sent, nil
}

// emitCompletion emits a completion event. Failures are logged and
// swallowed: notification delivery must never fail the mutation that
// triggered it.
func (s *TaskServiceImpl) emitCompletion(ctx context.Context, task *domain.Task, group *domain.Group) {
	subject := fmt.Sprintf("Task '%s' is completed!", task.Title)
	body := fmt.Sprintf(
		"The task '%s' in group %s has been marked as done.",
		task.Title, group.Name,
	)

	event, err := events.NewNotificationEvent(events.TypeTaskCompleted, s.recipient, subject, body)
	if err != nil {
		s.logger.Warn("failed to create completion event",
			"error", fmt.Errorf("%w: %v", ErrNotifierFailure, err),
			"task_id", task.ID)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Warn("completion notification failed",
			"error", fmt.Errorf("%w: %v", ErrNotifierFailure, err),
			"task_id", task.ID,
			"event_id", event.ID)
	}
}

// emitReminder emits a deadline reminder event, best-effort.
func (s *TaskServiceImpl) emitReminder(ctx context.Context, task *domain.Task, now time.Time) {
	days := domain.DaysUntilDeadline(*task.Deadline, now)
	subject := fmt.Sprintf("Reminder: Deadline for '%s' is due in %d day(s)", task.Title, days)
	body := fmt.Sprintf(
		"The task '%s' is due on %s.",
		task.Title, task.Deadline.Format("2006-01-02"),
	)

	event, err := events.NewNotificationEvent(events.TypeDeadlineReminder, s.recipient, subject, body)
	if err != nil {
		s.logger.Warn("failed to create reminder event",
			"error", fmt.Errorf("%w: %v", ErrNotifierFailure, err),
			"task_id", task.ID)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Warn("deadline reminder failed",
			"error", fmt.Errorf("%w: %v", ErrNotifierFailure, err),
			"task_id", task.ID,
			"event_id", event.ID)
	}
}
