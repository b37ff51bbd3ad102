// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// FallbackSender is the sender label attached to turns the gateway
// synthesizes when a completion request fails.
const FallbackSender = "YAS - your average system"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the protocol-facing role of a turn. These values go
// out on the wire and into transcripts verbatim.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// =============================================================================
// ORIGIN TYPE
// =============================================================================

// Origin is the display-facing classification of a turn. It drives
// styling (separator color, label) and nothing else; the protocol only
// sees Role.
type Origin int

const (
	// OriginQuery marks turns typed by the operator.
	OriginQuery Origin = iota
	// OriginAnswer marks turns produced by the backend, including
	// synthesized fallback turns.
	OriginAnswer
)

// String returns a human-readable name for the origin.
func (o Origin) String() string {
	if o == OriginAnswer {
		return "answer"
	}
	return "query"
}

// originFor derives the display origin from a protocol role. Used when
// loading transcripts, where only the role is persisted.
func originFor(role Role) Origin {
	if role == RoleAssistant {
		return OriginAnswer
	}
	return OriginQuery
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is a single conversational step. Turns are immutable once
// created; the log only ever appends them.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Origin    Origin    `json:"-"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurn creates a turn with a generated ID and the origin derived
// from the role.
func NewTurn(role Role, sender, body string) Turn {
	return Turn{
		ID:        generateTurnID(),
		Role:      role,
		Origin:    originFor(role),
		Sender:    sender,
		Body:      body,
		Timestamp: time.Now(),
	}
}

// NewQueryTurn creates an operator turn.
func NewQueryTurn(sender, body string) Turn {
	return NewTurn(RoleUser, sender, body)
}

// NewAnswerTurn creates a backend turn.
func NewAnswerTurn(sender, body string) Turn {
	return NewTurn(RoleAssistant, sender, body)
}

// NewSystemTurn creates a system turn. System turns participate in
// protocol context and persistence but are never rendered.
func NewSystemTurn(body string) Turn {
	return NewTurn(RoleSystem, "system", body)
}

// FallbackTurn creates the answer turn the gateway substitutes when a
// completion attempt fails. It is indistinguishable from a normal
// answer except for its fixed sender label.
func FallbackTurn(body string) Turn {
	return NewTurn(RoleAssistant, FallbackSender, body)
}

// IsVisible reports whether the turn is shown in the transcript view.
func (t Turn) IsVisible() bool {
	return t.Role != RoleSystem
}

// Preview returns a truncated preview of the turn body. Rune-based so
// multi-byte characters are never split.
func (t Turn) Preview(maxLen int) string {
	runes := []rune(t.Body)
	if len(runes) <= maxLen {
		return t.Body
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateTurnID creates a unique turn ID.
func generateTurnID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "turn_" + hex.EncodeToString(bytes)
}
