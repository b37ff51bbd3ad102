// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the gpterm TUI.
package chat

import "github.com/jeranaias/gpterm-tui/internal/model"

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// completionMsg carries the turn a completion request produced. Always
// delivered, success or fallback alike.
type completionMsg struct {
	turn model.Turn
}

// transcriptChangedMsg reports an external modification to the active
// transcript file.
type transcriptChangedMsg struct{}

// transcriptReloadedMsg reports the outcome of reloading the
// transcript after an external change.
type transcriptReloadedMsg struct {
	err error
}
