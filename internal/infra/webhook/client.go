// internal/infra/webhook/client.go
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"invoice_reminder_bot/internal/domain/notification"
	domainWebhook "invoice_reminder_bot/internal/domain/webhook"
)

// HTTPClient implements the webhook Client interface with a plain JSON POST.
type HTTPClient struct {
	url    string
	client *http.Client
}

// NewHTTPClient returns a client posting to url. A zero timeout waits indefinitely.
func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Send posts payload and returns the status code and body text.
// Non-2xx replies are not errors here; only failures to complete the exchange are.
func (c *HTTPClient) Send(ctx context.Context, payload notification.Payload) (domainWebhook.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return domainWebhook.Response{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return domainWebhook.Response{}, fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domainWebhook.Response{}, fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domainWebhook.Response{}, fmt.Errorf("failed to read webhook response: %w", err)
	}

	return domainWebhook.Response{StatusCode: resp.StatusCode, Body: string(respBody)}, nil
}
