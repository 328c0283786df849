package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Client talks to the remote order service: a single scripted HTTP endpoint
// that accepts {"action": ..., ...params} POST bodies. All storefront
// persistence except the session store lives behind it.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(url string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Error is a failure the remote service itself reported (success=false or
// status="error"). Its message is safe to surface to the user verbatim.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "remote service: " + e.Message
}

// call POSTs an action request and returns the normalized data payload.
// Transport-level failures (network, non-2xx, malformed JSON) come back as
// plain errors; service-reported failures come back as *Error.
func (c *Client) call(ctx context.Context, action string, params map[string]any) (json.RawMessage, error) {
	payload := map[string]any{"action": action}
	for k, v := range params {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("remote call failed", "action", action, "error", err)
		return nil, fmt.Errorf("call %s: %w", action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("remote call returned error status", "action", action, "status", resp.StatusCode)
		return nil, fmt.Errorf("remote service returned status %d for %s", resp.StatusCode, action)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", action, err)
	}

	data, err := normalize(raw)
	if err != nil {
		if svcErr, ok := err.(*Error); ok {
			c.logger.Info("remote call rejected", "action", action, "message", svcErr.Message)
		}
		return nil, err
	}

	return data, nil
}
