package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPNotifier delivers notifications to an email service via POST JSON.
type HTTPNotifier struct {
	client  *http.Client
	url     string
	headers map[string]string
}

// HTTPNotifierOption configures HTTPNotifier.
type HTTPNotifierOption func(*HTTPNotifier)

// WithClient sets the HTTP client (default: 5s timeout).
func WithClient(c *http.Client) HTTPNotifierOption {
	return func(n *HTTPNotifier) {
		n.client = c
	}
}

// WithHeader sets a header sent on every request (e.g. Authorization, X-API-Key).
func WithHeader(key, value string) HTTPNotifierOption {
	return func(n *HTTPNotifier) {
		if n.headers == nil {
			n.headers = make(map[string]string)
		}
		n.headers[key] = value
	}
}

// NewHTTPNotifier returns a Notifier that POSTs notifications as JSON to url.
func NewHTTPNotifier(url string, opts ...HTTPNotifierOption) *HTTPNotifier {
	n := &HTTPNotifier{
		client: &http.Client{Timeout: 5 * time.Second},
		url:    url,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Send implements Notifier.
func (n *HTTPNotifier) Send(ctx context.Context, notification Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range n.headers {
		req.Header.Set(k, v)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	if err := resp.Body.Close(); err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &sendError{status: resp.StatusCode}
	}
	return nil
}

type sendError struct {
	status int
}

func (e *sendError) Error() string {
	return fmt.Sprintf("email service returned status %d", e.status)
}

var _ Notifier = (*HTTPNotifier)(nil)
