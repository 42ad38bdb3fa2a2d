package webhook

import (
	"context"

	"invoice_reminder_bot/internal/domain/notification"
)

// Response is the part of the webhook reply callers inspect.
type Response struct {
	StatusCode int
	Body       string
}

// Client delivers a payload to the chat webhook.
// It decouples the notifier from the HTTP transport.
type Client interface {
	Send(ctx context.Context, payload notification.Payload) (Response, error)
}
