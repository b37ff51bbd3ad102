// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider implements the HTTP gateway to OpenAI-compatible
// completion backends.
package provider

// =============================================================================
// CHAT COMPLETIONS WIRE FORMAT (/v1/chat/completions)
// =============================================================================

// chatMessage is a single role-tagged message in a chat request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for the multi-turn variant.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// chatResponse is the response body for the multi-turn variant. Only
// the first choice is consumed.
type chatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// =============================================================================
// COMPLETIONS WIRE FORMAT (/v1/completions)
// =============================================================================

// textRequest is the request body for the single-turn variant.
type textRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// textResponse is the response body for the single-turn variant. Only
// the first choice is consumed.
type textResponse struct {
	Model   string       `json:"model"`
	Choices []textChoice `json:"choices"`
}

type textChoice struct {
	Text string `json:"text"`
}
