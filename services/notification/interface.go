package notification

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when a notifier lacks the settings it needs to deliver.
var ErrNotConfigured = errors.New("notifier is not configured")

// Notifier delivers a single message to an address. It reports success or
// failure only and never retries.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
