// Package notify is the fire-and-forget HTTP client used by the hook
// binaries. Voice is a non-critical enhancement: a failed or refused
// connection must never fail or block the host application.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"voicebox/internal/models"
)

// Client posts notifications to the local server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client with a short, bounded timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Send posts one notification. The returned error is informational
// only; callers are expected to ignore it.
func (c *Client) Send(ctx context.Context, req models.NotificationRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notify", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
