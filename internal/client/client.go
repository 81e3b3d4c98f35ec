// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client provides the outbound message-send collaborator.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// SENDER INTERFACE
// =============================================================================

// Sender is the outbound chat collaborator. The core calls it once per
// user-submitted message and treats it as a black box: reply text or error.
type Sender interface {
	Send(ctx context.Context, text, sessionID string) (string, error)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, text, sessionID string) (string, error)

// Send implements Sender.
func (f SenderFunc) Send(ctx context.Context, text, sessionID string) (string, error) {
	return f(ctx, text, sessionID)
}

// =============================================================================
// WEBHOOK CLIENT
// =============================================================================

// sendRequest is the outbound wire format.
type sendRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"sessionId"`
}

// sendResponse is the inbound wire format: reply text on success, an error
// message otherwise.
type sendResponse struct {
	Text         string `json:"text"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// WebhookClient sends user messages to a chat webhook endpoint and returns
// the reply text. Requests are rate limited so a burst of submits cannot
// hammer the endpoint.
type WebhookClient struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a WebhookClient.
type Option func(*WebhookClient)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *WebhookClient) {
		c.httpClient = hc
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *WebhookClient) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit overrides the outbound request rate.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *WebhookClient) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger overrides the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *WebhookClient) {
		c.logger = l
	}
}

// NewWebhookClient creates a client for the given webhook URL.
func NewWebhookClient(url string, opts ...Option) *WebhookClient {
	c := &WebhookClient{
		url:        url,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts the message and returns the reply text. Context cancellation
// aborts both the rate-limit wait and the request itself.
func (c *WebhookClient) Send(ctx context.Context, text, sessionID string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(sendRequest{Text: text, SessionID: sessionID})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("webhook returned non-OK status",
			"status", resp.StatusCode,
			"session", sessionID)
		return "", &SendError{Message: fmt.Sprintf("webhook status %d", resp.StatusCode)}
	}

	var parsed sendResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode reply: %w", err)
	}
	if parsed.ErrorMessage != "" {
		return "", &SendError{Message: parsed.ErrorMessage}
	}

	c.logger.Debug("webhook reply received",
		"session", sessionID,
		"elapsed", time.Since(start))
	return parsed.Text, nil
}

// =============================================================================
// ERRORS
// =============================================================================

// SendError is a reply-level failure reported by the webhook.
type SendError struct {
	Message string
}

// Error implements the error interface.
func (e *SendError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing send errors.
func (e *SendError) Is(target error) bool {
	t, ok := target.(*SendError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}
