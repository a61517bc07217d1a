package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	ErrEmptyTaskID         = errors.New("task ID cannot be empty")
	ErrEmptyTaskExternalID = errors.New("task external ID cannot be empty")
	ErrEmptyTaskGroupID    = errors.New("task group ID cannot be empty")
	ErrEmptyTaskTitle      = errors.New("task title cannot be empty")
	ErrNegativeTaskStatus  = errors.New("task status cannot be negative")
)

// StatusDone is the status sentinel marking a task as completed.
// Transitioning into it triggers a completion notification.
const StatusDone = 1

// DeadlineReminderWindowDays is the number of calendar days ahead
// within which a deadline triggers a reminder notification.
const DeadlineReminderWindowDays = 3

// Task is a unit of work owned by exactly one Group. Its title is
// unique within the owning group, not globally. UpdatedAt is bumped on
// every mutation.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	ExternalID  string     `json:"external_id"`
	GroupID     uuid.UUID  `json:"group_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      int        `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task owned by the given group. It generates a
// new UUID for the internal ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewTask(
	groupID uuid.UUID,
	externalID, title, description string,
	status int,
	deadline *time.Time,
) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		ExternalID:  externalID,
		GroupID:     groupID,
		Title:       title,
		Description: description,
		Status:      status,
		Deadline:    deadline,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.ExternalID == "" {
		return ErrEmptyTaskExternalID
	}

	if t.GroupID == uuid.Nil {
		return ErrEmptyTaskGroupID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if t.Status < 0 {
		return ErrNegativeTaskStatus
	}

	return nil
}

// TaskUpdate carries a partial update for a task. Nil fields are left
// untouched; non-nil fields are applied.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *int
	Deadline    *time.Time
}

// Empty reports whether the update touches no fields.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.Deadline == nil
}

// Apply applies the partial update to the task and bumps UpdatedAt to
// now. It reports whether the status transitioned into StatusDone from
// some other value, and whether a deadline was set by this update.
// Both drive notification side effects at the service layer.
func (t *Task) Apply(u TaskUpdate, now time.Time) (completed bool, deadlineSet bool) {
	if u.Title != nil {
		t.Title = *u.Title
	}

	if u.Description != nil {
		t.Description = *u.Description
	}

	if u.Status != nil {
		// No-op transitions (done -> done) must not re-trigger the
		// completion notification.
		completed = t.Status != StatusDone && *u.Status == StatusDone
		t.Status = *u.Status
	}

	if u.Deadline != nil {
		deadline := *u.Deadline
		t.Deadline = &deadline
		deadlineSet = true
	}

	t.UpdatedAt = now.UTC()
	return completed, deadlineSet
}

// DaysUntilDeadline returns the calendar-date difference in days
// between the deadline and now. A deadline at 00:01 tomorrow and one at
// 23:59 tomorrow both report 1.
func DaysUntilDeadline(deadline, now time.Time) int {
	dy, dm, dd := deadline.Date()
	ny, nm, nd := now.Date()
	d := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(d.Sub(n).Hours() / 24)
}

// DeadlineApproaching reports whether the deadline falls within the
// reminder window: zero to DeadlineReminderWindowDays calendar days
// from now, inclusive.
func DeadlineApproaching(deadline, now time.Time) bool {
	days := DaysUntilDeadline(deadline, now)
	return days >= 0 && days <= DeadlineReminderWindowDays
}
