package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the task service.
const (
	// TypeTaskCompleted is emitted when a task transitions into the done status.
	TypeTaskCompleted = "task_completed"

	// TypeDeadlineReminder is emitted when a task's deadline is approaching.
	TypeDeadlineReminder = "deadline_reminder"
)

// ErrEmptyRecipient is returned when an event is created without a recipient.
var ErrEmptyRecipient = errors.New("event recipient cannot be empty")

// NotificationEvent represents a notification that should reach a recipient.
// It carries the fully rendered message so handlers need no knowledge of
// tasks or groups.
type NotificationEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates what happened (TypeTaskCompleted, TypeDeadlineReminder)
	Type string `json:"type"`

	// Recipient is the email address the notification is addressed to
	Recipient string `json:"recipient"`

	// Subject is the rendered notification subject line
	Subject string `json:"subject"`

	// Body is the rendered notification body
	Body string `json:"body"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewNotificationEvent creates a new NotificationEvent with the specified
// type, recipient and rendered message.
func NewNotificationEvent(eventType, recipient, subject, body string) (*NotificationEvent, error) {
	if recipient == "" {
		return nil, ErrEmptyRecipient
	}

	return &NotificationEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *NotificationEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *NotificationEvent) error
}
