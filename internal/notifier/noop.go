package notifier

import "context"

// NoopNotifier discards notifications. Used in tests and when no email
// service is configured.
type NoopNotifier struct{}

// NewNoopNotifier returns a Notifier that discards all notifications.
func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

// Send implements Notifier.
func (n *NoopNotifier) Send(ctx context.Context, notification Notification) error {
	return nil
}

var _ Notifier = (*NoopNotifier)(nil)
