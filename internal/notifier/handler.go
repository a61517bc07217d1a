package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/taskhub-api/internal/events"
)

// EventNotificationHandler bridges notification events to a Notifier.
// It implements events.EventHandler so the task service can stay
// ignorant of how notifications are delivered.
type EventNotificationHandler struct {
	notifier Notifier
	timeout  time.Duration
	logger   *slog.Logger
}

// NewEventNotificationHandler creates a handler that forwards events to
// the given notifier. Each delivery is bounded by timeout so a slow
// email service cannot stall event dispatch.
func NewEventNotificationHandler(
	n Notifier,
	timeout time.Duration,
	logger *slog.Logger,
) *EventNotificationHandler {
	if n == nil {
		panic("notifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &EventNotificationHandler{
		notifier: n,
		timeout:  timeout,
		logger:   logger.With(slog.String("component", "event_notification_handler")),
	}
}

// Ensure EventNotificationHandler implements events.EventHandler
var _ events.EventHandler = (*EventNotificationHandler)(nil)

// HandleEvent implements events.EventHandler.
func (h *EventNotificationHandler) HandleEvent(ctx context.Context, event *events.NotificationEvent) error {
	sendCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	err := h.notifier.Send(sendCtx, Notification{
		Recipient: event.Recipient,
		Subject:   event.Subject,
		Body:      event.Body,
	})
	if err != nil {
		h.logger.Warn("notification delivery failed",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.Type))
		return err
	}

	h.logger.Info("notification delivered",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type))
	return nil
}
