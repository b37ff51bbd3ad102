// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// TURN TESTS
// =============================================================================

func TestNewTurnOrigins(t *testing.T) {
	tests := []struct {
		name   string
		turn   Turn
		role   Role
		origin Origin
	}{
		{"query", NewQueryTurn("alice", "hi"), RoleUser, OriginQuery},
		{"answer", NewAnswerTurn("gpt-3.5-turbo", "hello"), RoleAssistant, OriginAnswer},
		{"system", NewSystemTurn("be terse"), RoleSystem, OriginQuery},
		{"fallback", FallbackTurn("try again"), RoleAssistant, OriginAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.turn.Role != tt.role {
				t.Errorf("Role = %q, want %q", tt.turn.Role, tt.role)
			}
			if tt.turn.Origin != tt.origin {
				t.Errorf("Origin = %v, want %v", tt.turn.Origin, tt.origin)
			}
			if tt.turn.ID == "" {
				t.Error("expected generated ID")
			}
		})
	}
}

func TestFallbackTurnSender(t *testing.T) {
	turn := FallbackTurn("something went wrong")
	if turn.Sender != FallbackSender {
		t.Errorf("Sender = %q, want %q", turn.Sender, FallbackSender)
	}
	if !turn.IsVisible() {
		t.Error("fallback turns must be visible")
	}
}

func TestTurnPreview(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		maxLen int
		want   string
	}{
		{"short", "hi", 10, "hi"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"tiny", "hello", 2, "he"},
		{"unicode", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turn := NewQueryTurn("u", tt.body)
			if got := turn.Preview(tt.maxLen); got != tt.want {
				t.Errorf("Preview(%d) = %q, want %q", tt.maxLen, got, tt.want)
			}
		})
	}
}

// =============================================================================
// CONVERSATION LOG TESTS
// =============================================================================

func TestAppendPreservesOrder(t *testing.T) {
	log := NewConversationLog()
	bodies := []string{"first", "second", "third", "fourth"}
	for _, b := range bodies {
		log.Append(NewQueryTurn("u", b))
	}

	if log.Len() != len(bodies) {
		t.Fatalf("Len = %d, want %d", log.Len(), len(bodies))
	}
	for i, turn := range log.Snapshot() {
		if turn.Body != bodies[i] {
			t.Errorf("turn %d body = %q, want %q", i, turn.Body, bodies[i])
		}
	}
}

func TestVisibleTurnsHidesSystem(t *testing.T) {
	log := NewConversationLog()
	log.Append(NewSystemTurn("you are a helpful assistant"))
	log.Append(NewQueryTurn("u", "hi"))
	log.Append(NewAnswerTurn("m", "hello"))
	log.Append(NewSystemTurn("mid-session directive"))
	log.Append(NewQueryTurn("u", "bye"))

	visible := log.VisibleTurns()
	if len(visible) != 3 {
		t.Fatalf("VisibleTurns len = %d, want 3", len(visible))
	}
	wantBodies := []string{"hi", "hello", "bye"}
	for i, turn := range visible {
		if turn.Role == RoleSystem {
			t.Errorf("visible turn %d has system role", i)
		}
		if turn.Body != wantBodies[i] {
			t.Errorf("visible turn %d body = %q, want %q", i, turn.Body, wantBodies[i])
		}
	}

	// Snapshot still carries everything.
	if len(log.Snapshot()) != 5 {
		t.Errorf("Snapshot len = %d, want 5", len(log.Snapshot()))
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	log := NewConversationLog()
	log.Append(NewQueryTurn("u", "original"))

	snap := log.Snapshot()
	snap[0].Body = "mutated"

	if log.Snapshot()[0].Body != "original" {
		t.Error("mutating a snapshot leaked into the log")
	}
}

func TestLastAnswer(t *testing.T) {
	log := NewConversationLog()
	if _, ok := log.LastAnswer(); ok {
		t.Error("empty log should have no last answer")
	}

	log.Append(NewQueryTurn("u", "q1"))
	log.Append(NewAnswerTurn("m", "a1"))
	log.Append(NewQueryTurn("u", "q2"))
	log.Append(NewAnswerTurn("m", "a2"))

	got, ok := log.LastAnswer()
	if !ok || got.Body != "a2" {
		t.Errorf("LastAnswer = %q/%v, want a2/true", got.Body, ok)
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscriptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.json")

	log := NewConversationLog()
	log.Append(NewSystemTurn("system prompt"))
	log.Append(NewQueryTurn("alice", "what is go?"))
	log.Append(NewAnswerTurn("gpt-3.5-turbo", "a language"))

	if err := log.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := NewConversationLog()
	if err := loaded.Load(path, "alice"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	orig := log.Snapshot()
	got := loaded.Snapshot()
	if len(got) != len(orig) {
		t.Fatalf("round trip len = %d, want %d", len(got), len(orig))
	}
	for i := range got {
		if got[i].Role != orig[i].Role || got[i].Body != orig[i].Body {
			t.Errorf("turn %d = {%s %q}, want {%s %q}",
				i, got[i].Role, got[i].Body, orig[i].Role, orig[i].Body)
		}
	}

	// System turns persist even though they are hidden from display.
	if got[0].Role != RoleSystem {
		t.Error("system turn lost in round trip")
	}
	if got[0].IsVisible() {
		t.Error("loaded system turn should stay hidden")
	}
	// Origin is derived from role on load.
	if got[2].Origin != OriginAnswer {
		t.Error("loaded assistant turn should have answer origin")
	}
}

func TestLoadMissingFile(t *testing.T) {
	log := NewConversationLog()
	err := log.Load(filepath.Join(t.TempDir(), "nope.json"), "u")
	if !errors.Is(err, ErrTranscriptNotFound) {
		t.Errorf("err = %v, want ErrTranscriptNotFound", err)
	}
}

func TestLoadMalformedLeavesLogUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")

	tests := []struct {
		name string
		data string
	}{
		{"not json", "not json at all"},
		{"wrong shape", `{"role":"user","content":"hi"}`},
		{"bad role", `[{"role":"wizard","content":"hi"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}

			log := NewConversationLog()
			log.Append(NewQueryTurn("u", "keep me"))

			err := log.Load(path, "u")
			if !errors.Is(err, ErrTranscriptMalformed) {
				t.Errorf("err = %v, want ErrTranscriptMalformed", err)
			}
			if log.Len() != 1 || log.Snapshot()[0].Body != "keep me" {
				t.Error("failed load must leave the log untouched")
			}
		})
	}
}

func TestDecodeTranscriptSenders(t *testing.T) {
	data := []byte(`[
		{"role":"system","content":"s"},
		{"role":"user","content":"q"},
		{"role":"assistant","content":"a"}
	]`)

	turns, err := DecodeTranscript(data, "alice")
	if err != nil {
		t.Fatalf("DecodeTranscript: %v", err)
	}
	if turns[0].Sender != "system" {
		t.Errorf("system sender = %q", turns[0].Sender)
	}
	if turns[1].Sender != "alice" {
		t.Errorf("user sender = %q, want alice", turns[1].Sender)
	}
	if turns[2].Sender != "assistant" {
		t.Errorf("assistant sender = %q", turns[2].Sender)
	}
}
