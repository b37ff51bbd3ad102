// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the gpterm TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/gpterm-tui/internal/layout"
	"github.com/jeranaias/gpterm-tui/internal/model"
	"github.com/jeranaias/gpterm-tui/internal/session"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full screen: header, transcript, input pane,
// command line, status bar.
func (m Model) View() string {
	if !m.ready {
		return "starting gpterm..."
	}
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteByte('\n')
	b.WriteString(m.viewport.View())
	b.WriteByte('\n')
	b.WriteString(m.renderInput())
	b.WriteByte('\n')
	b.WriteString(m.renderCommandLine())
	b.WriteByte('\n')
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderTranscript renders the visible turns as rows. The row count
// per turn matches the layout arithmetic exactly: one separator rule,
// one sender label, then the wrapped body rows.
func (m Model) renderTranscript(turns []model.Turn) string {
	width := m.viewport.Width
	if width < 1 {
		width = 1
	}

	var rows []string
	for _, t := range turns {
		rule := strings.Repeat("─", width)
		label := t.Sender

		if t.Origin == model.OriginAnswer {
			rows = append(rows, m.theme.AnswerRule.Render(rule))
			rows = append(rows, m.theme.AnswerLabel.Render(label))
		} else {
			rows = append(rows, m.theme.QueryRule.Render(rule))
			rows = append(rows, m.theme.QueryLabel.Render(label))
		}
		for _, row := range layout.WrapRows(t.Body, width) {
			rows = append(rows, m.theme.Body.Render(row))
		}
	}
	return strings.Join(rows, "\n")
}

// =============================================================================
// CHROME
// =============================================================================

func (m Model) renderHeader() string {
	title := " gpterm"
	detail := m.client.Model() + " · " + m.client.Kind().String() + " "
	pad := m.width - runewidth.StringWidth(title) - runewidth.StringWidth(detail)
	if pad < 1 {
		pad = 1
	}
	return m.theme.StatusBar.Render(title + strings.Repeat(" ", pad) + detail)
}

// renderInput draws the compose pane. The border color tracks the
// mode so it is obvious where keystrokes go.
func (m Model) renderInput() string {
	style := m.theme.InputIdle
	if m.ctl.Mode() == session.ModeInsert {
		style = m.theme.InputActive
	}

	content := m.ctl.Compose()
	if content == "" && m.ctl.Mode() != session.ModeInsert {
		content = m.theme.Placeholder.Render("press i to compose")
	}
	return style.Width(m.width - 2).MaxHeight(3).Render(content)
}

// renderCommandLine draws the colon buffer while it is being edited,
// or the last dispatch feedback afterward.
func (m Model) renderCommandLine() string {
	if m.ctl.Mode() == session.ModeCommand {
		return m.theme.CommandOK.Render(m.ctl.CommandBuffer())
	}

	feedback := m.ctl.Feedback()
	if feedback == "" {
		return ""
	}
	if m.ctl.CommandStatus() == session.StatusError {
		return m.theme.CommandError.Render(feedback)
	}
	return m.theme.CommandOK.Render(feedback)
}

// renderStatusBar draws the mode indicator on the left and key help
// or the waiting spinner on the right.
func (m Model) renderStatusBar() string {
	left := m.theme.ModeIndicator.Render(" " + m.ctl.Mode().String() + " ")

	var right string
	if m.ctl.InFlight() {
		right = m.theme.Waiting.Render(m.spinner.View() + "waiting ")
	} else {
		right = m.theme.StatusKey.Render(m.keyHelp() + " ")
	}

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func (m Model) keyHelp() string {
	switch m.ctl.Mode() {
	case session.ModeInsert:
		return "enter send · esc normal"
	case session.ModeCommand:
		return "enter run · esc cancel"
	default:
		return "i insert · : command · j/k scroll · q quit"
	}
}
