package notifier

import "context"

// Notification is the message handed to the email service.
type Notification struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Notifier sends a notification to its recipient.
type Notifier interface {
	// Send delivers the notification. Returns an error if the delivery
	// could not be confirmed; callers decide whether that is fatal.
	Send(ctx context.Context, notification Notification) error
}
