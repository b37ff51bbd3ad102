// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the gpterm TUI.
//
// The package is a thin translation layer: key presses become session
// events, session actions become viewport and program commands. All
// conversational state lives in the session controller; all layout
// arithmetic lives in the layout package. What remains here is wiring
// and rendering.
//
// File layout follows the usual split:
//
//   - model.go: the Model struct, construction, Init
//   - keys.go: key bindings
//   - messages.go: Bubble Tea message types
//   - update.go: Update and the tea.Cmd constructors
//   - view.go: View and rendering helpers
package chat
