// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
package model

// =============================================================================
// CONVERSATION LOG
// =============================================================================

// ConversationLog is the append-only ordered sequence of turns in a
// session. Order is insertion order and is never rearranged; turns are
// never mutated or removed except by a wholesale Replace/Load.
type ConversationLog struct {
	turns []Turn
}

// NewConversationLog creates an empty log.
func NewConversationLog() *ConversationLog {
	return &ConversationLog{turns: make([]Turn, 0)}
}

// Append adds a turn at the tail. O(1); cannot fail.
func (l *ConversationLog) Append(t Turn) {
	l.turns = append(l.turns, t)
}

// Len returns the total number of turns, system turns included.
func (l *ConversationLog) Len() int {
	return len(l.turns)
}

// Snapshot returns a copy of all turns in order, system turns included.
// The gateway builds protocol context from this.
func (l *ConversationLog) Snapshot() []Turn {
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// VisibleTurns returns the turns shown in the transcript view: every
// turn except system turns, in original order. Recomputed on each call
// so it always reflects the current log.
func (l *ConversationLog) VisibleTurns() []Turn {
	out := make([]Turn, 0, len(l.turns))
	for _, t := range l.turns {
		if t.IsVisible() {
			out = append(out, t)
		}
	}
	return out
}

// LastAnswer returns the most recent answer turn, or false if there is
// none yet.
func (l *ConversationLog) LastAnswer() (Turn, bool) {
	for i := len(l.turns) - 1; i >= 0; i-- {
		if l.turns[i].Role == RoleAssistant {
			return l.turns[i], true
		}
	}
	return Turn{}, false
}

// Replace swaps the entire sequence for the given turns. Used by the
// transcript loader and the :clear command; normal conversation flow
// only appends.
func (l *ConversationLog) Replace(turns []Turn) {
	l.turns = make([]Turn, len(turns))
	copy(l.turns, turns)
}

// Clear discards all turns.
func (l *ConversationLog) Clear() {
	l.turns = l.turns[:0]
}
