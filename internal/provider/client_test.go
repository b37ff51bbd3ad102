// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/gpterm-tui/internal/model"
)

func newTestClient(t *testing.T, kind Kind, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		Kind:    kind,
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "gpt-3.5-turbo",
	})
}

func TestCompleteChatSuccess(t *testing.T) {
	var gotReq chatRequest
	client := newTestClient(t, KindMultiTurn, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(chatResponse{
			ID:     "chatcmpl-1",
			Object: "chat.completion",
			Choices: []chatChoice{
				{Index: 0, Message: chatMessage{Role: "assistant", Content: "first"}, FinishReason: "stop"},
				{Index: 1, Message: chatMessage{Role: "assistant", Content: "second"}},
			},
		})
	})

	snapshot := []model.Turn{
		model.NewSystemTurn("be terse"),
		model.NewQueryTurn("alice", "hi"),
	}
	turn := client.Complete(context.Background(), snapshot, "hi")

	// Only the first choice is consumed.
	assert.Equal(t, "first", turn.Body)
	assert.Equal(t, model.RoleAssistant, turn.Role)
	assert.Equal(t, "gpt-3.5-turbo", turn.Sender)

	// The whole snapshot goes out, system turns included, in order.
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "be terse", gotReq.Messages[0].Content)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, "gpt-3.5-turbo", gotReq.Model)
}

func TestCompleteTextSuccess(t *testing.T) {
	var gotReq textRequest
	client := newTestClient(t, KindSingleTurn, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(textResponse{
			Model:   "text-davinci-003",
			Choices: []textChoice{{Text: "an answer"}},
		})
	})

	snapshot := []model.Turn{model.NewQueryTurn("alice", "what is go?")}
	turn := client.Complete(context.Background(), snapshot, "what is go?")

	assert.Equal(t, "an answer", turn.Body)
	// Single-turn answers are labeled with the model the backend reports.
	assert.Equal(t, "text-davinci-003", turn.Sender)

	// Only the query travels; history stays local.
	assert.Equal(t, "what is go?", gotReq.Prompt)
	assert.Equal(t, 1000, gotReq.MaxTokens)
	assert.Equal(t, 0.0, gotReq.Temperature)
}

func TestCompleteTransportFailureFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		wantBody string
	}{
		{"chat", KindMultiTurn, chatFallbackBody},
		{"text", KindSingleTurn, textFallbackBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Point at a server that is already gone.
			srv := httptest.NewServer(http.NotFoundHandler())
			srv.Close()
			client := NewClient(Config{Kind: tt.kind, BaseURL: srv.URL})

			turn := client.Complete(context.Background(), nil, "q")

			assert.Equal(t, tt.wantBody, turn.Body)
			assert.Equal(t, model.FallbackSender, turn.Sender)
			assert.Equal(t, model.RoleAssistant, turn.Role)
			assert.True(t, turn.IsVisible())
		})
	}
}

func TestCompleteDecodeFailureFallsBack(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "welcome to the error page"},
		{"empty choices", `{"choices":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, KindMultiTurn, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			turn := client.Complete(context.Background(), nil, "q")
			assert.Equal(t, chatFallbackBody, turn.Body)
			assert.Equal(t, model.FallbackSender, turn.Sender)
		})
	}
}

func TestCompleteHTTPErrorStatusFallsBack(t *testing.T) {
	client := newTestClient(t, KindMultiTurn, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	})

	turn := client.Complete(context.Background(), nil, "q")
	assert.Equal(t, chatFallbackBody, turn.Body)
}

func TestCompleteDeterministicUnderRepeatedFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(Config{Kind: KindMultiTurn, BaseURL: srv.URL})

	first := client.Complete(context.Background(), nil, "q")
	second := client.Complete(context.Background(), nil, "q")
	assert.Equal(t, first.Body, second.Body)
	assert.Equal(t, first.Sender, second.Sender)
}

func TestErrorClassification(t *testing.T) {
	terr := transportError("boom", nil)
	derr := decodeError("bad json", nil)

	assert.True(t, IsTransport(terr))
	assert.False(t, IsDecode(terr))
	assert.True(t, IsDecode(derr))
	assert.False(t, IsTransport(derr))
	assert.False(t, IsTransport(context.Canceled))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		mode string
		want Kind
		ok   bool
	}{
		{"chat", KindMultiTurn, true},
		{"text", KindSingleTurn, true},
		{"stream", KindMultiTurn, false},
		{"", KindMultiTurn, false},
	}

	for _, tt := range tests {
		got, ok := ParseKind(tt.mode)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKind(%q) = (%v, %v), want (%v, %v)", tt.mode, got, ok, tt.want, tt.ok)
		}
	}
}
