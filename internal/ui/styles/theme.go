// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the gpterm TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// THEME
// =============================================================================

// Theme bundles every style the chat view needs. One Theme is built at
// startup and threaded through the UI; views never construct styles
// inline.
type Theme struct {
	// Transcript
	QueryRule   lipgloss.Style // separator above an operator turn
	AnswerRule  lipgloss.Style // separator above a backend turn
	QueryLabel  lipgloss.Style // operator sender label
	AnswerLabel lipgloss.Style // backend sender label
	Body        lipgloss.Style // turn body rows

	// Input pane
	InputActive  lipgloss.Style // insert mode border
	InputIdle    lipgloss.Style // normal/command mode border
	Placeholder  lipgloss.Style
	ModeIndicator lipgloss.Style

	// Command and status line
	CommandOK    lipgloss.Style
	CommandError lipgloss.Style
	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style
	Waiting      lipgloss.Style
}

// Default returns the standard theme.
func Default() Theme {
	return Theme{
		QueryRule:   lipgloss.NewStyle().Foreground(Blue),
		AnswerRule:  lipgloss.NewStyle().Foreground(Magenta),
		QueryLabel:  lipgloss.NewStyle().Foreground(Blue).Bold(true),
		AnswerLabel: lipgloss.NewStyle().Foreground(Magenta).Bold(true),
		Body:        lipgloss.NewStyle().Foreground(TextPrimary),

		InputActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Cyan),
		InputIdle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Overlay),
		Placeholder:   lipgloss.NewStyle().Foreground(TextMuted),
		ModeIndicator: lipgloss.NewStyle().Foreground(Cyan).Bold(true),

		CommandOK:    lipgloss.NewStyle().Foreground(Emerald),
		CommandError: lipgloss.NewStyle().Foreground(Rose).Bold(true),
		StatusBar:    lipgloss.NewStyle().Foreground(TextSecondary),
		StatusKey:    lipgloss.NewStyle().Foreground(TextMuted),
		Waiting:      lipgloss.NewStyle().Foreground(Amber),
	}
}
