// Package notifier delivers notification messages to an external email
// service. The service is reached over HTTP; delivery failures are
// reported to callers but are never allowed to abort the mutation that
// triggered the notification.
package notifier
