// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider implements the HTTP gateway to OpenAI-compatible
// completion backends.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/gpterm-tui/internal/model"
)

// =============================================================================
// KIND
// =============================================================================

// Kind selects which request variant a client speaks.
type Kind int

const (
	// KindMultiTurn sends the whole conversation to /v1/chat/completions.
	KindMultiTurn Kind = iota
	// KindSingleTurn sends only the latest query to /v1/completions.
	KindSingleTurn
)

// String returns the config-file spelling of the kind.
func (k Kind) String() string {
	if k == KindSingleTurn {
		return "text"
	}
	return "chat"
}

// ParseKind maps a config mode string to a Kind.
func ParseKind(mode string) (Kind, bool) {
	switch mode {
	case "chat":
		return KindMultiTurn, true
	case "text":
		return KindSingleTurn, true
	}
	return KindMultiTurn, false
}

// =============================================================================
// FALLBACK BODIES
// =============================================================================

// Fixed bodies for the synthesized answer turn when a request fails.
// Fixed per variant so failures are deterministic and testable.
const (
	chatFallbackBody = "Some error occurred fetching the api, please try again"
	textFallbackBody = "something went wrong in the request (probably problem parsing the response), try again"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// Config holds construction options for the completion client.
type Config struct {
	// Kind selects the request variant.
	Kind Kind

	// BaseURL of the backend (default: https://api.openai.com).
	BaseURL string

	// APIKey sent as a Bearer token.
	APIKey string

	// Model identifier sent with every request.
	Model string

	// Temperature and MaxTokens apply to the single-turn variant only,
	// matching the upstream API surface.
	Temperature float64
	MaxTokens   int

	// Timeout for the full request round trip (default: 60s).
	Timeout time.Duration

	// RequestsPerMinute paces outgoing requests; 0 disables pacing.
	RequestsPerMinute int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		Kind:        KindMultiTurn,
		BaseURL:     "https://api.openai.com",
		Model:       "gpt-3.5-turbo",
		Temperature: 0.0,
		MaxTokens:   1000,
		Timeout:     60 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client performs completion requests against one backend with one
// fixed variant. Safe for concurrent use, though the session layer
// allows only one request in flight at a time.
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a completion client, filling zero values with
// defaults.
func NewClient(config Config) *Client {
	def := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = def.BaseURL
	}
	if config.Model == "" {
		config.Model = def.Model
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = def.MaxTokens
	}
	if config.Timeout == 0 {
		config.Timeout = def.Timeout
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(config.RequestsPerMinute)/60.0), 1)
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    limiter,
	}
}

// Kind returns the client's request variant.
func (c *Client) Kind() Kind {
	return c.config.Kind
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.config.Model
}

// =============================================================================
// COMPLETE
// =============================================================================

// Complete performs one completion attempt and always returns an
// answer turn. snapshot is the full conversation including the just-
// appended query turn; query is that turn's body. On any failure the
// technical error is logged and a fallback turn with a fixed body is
// returned instead, so callers never branch on errors.
func (c *Client) Complete(ctx context.Context, snapshot []model.Turn, query string) model.Turn {
	turn, err := c.complete(ctx, snapshot, query)
	if err != nil {
		slog.Error("completion request failed",
			"kind", c.config.Kind.String(),
			"model", c.config.Model,
			"error", err)
		return model.FallbackTurn(c.fallbackBody())
	}
	return turn
}

func (c *Client) fallbackBody() string {
	if c.config.Kind == KindSingleTurn {
		return textFallbackBody
	}
	return chatFallbackBody
}

// complete is the fallible core: build, send, decode.
func (c *Client) complete(ctx context.Context, snapshot []model.Turn, query string) (model.Turn, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return model.Turn{}, transportError("rate limiter interrupted", err)
	}

	switch c.config.Kind {
	case KindSingleTurn:
		return c.completeText(ctx, query)
	default:
		return c.completeChat(ctx, snapshot)
	}
}

// completeChat sends the whole conversation as role-tagged messages.
func (c *Client) completeChat(ctx context.Context, snapshot []model.Turn) (model.Turn, error) {
	messages := make([]chatMessage, 0, len(snapshot))
	for _, t := range snapshot {
		messages = append(messages, chatMessage{Role: t.Role.String(), Content: t.Body})
	}

	req := chatRequest{Model: c.config.Model, Messages: messages}
	body, err := c.post(ctx, "/v1/chat/completions", req)
	if err != nil {
		return model.Turn{}, err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.Turn{}, decodeError("failed to parse chat response", err)
	}
	if len(resp.Choices) == 0 {
		return model.Turn{}, decodeError("chat response has no choices", nil)
	}

	// Only the first choice is used; the rest are ignored.
	return model.NewAnswerTurn(c.config.Model, resp.Choices[0].Message.Content), nil
}

// completeText sends only the latest query as a bare prompt.
func (c *Client) completeText(ctx context.Context, query string) (model.Turn, error) {
	req := textRequest{
		Model:       c.config.Model,
		Prompt:      query,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	}
	body, err := c.post(ctx, "/v1/completions", req)
	if err != nil {
		return model.Turn{}, err
	}

	var resp textResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.Turn{}, decodeError("failed to parse completion response", err)
	}
	if len(resp.Choices) == 0 {
		return model.Turn{}, decodeError("completion response has no choices", nil)
	}

	// The response's model field labels the answer, falling back to
	// the configured model when the backend omits it.
	sender := resp.Model
	if sender == "" {
		sender = c.config.Model
	}
	return model.NewAnswerTurn(sender, resp.Choices[0].Text), nil
}

// post sends a JSON request and returns the raw response body.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, transportError("failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, transportError("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError("request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, decodeError("failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, transportError("backend returned "+resp.Status, nil)
	}
	return body, nil
}
