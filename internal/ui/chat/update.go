// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the gpterm TUI.
package chat

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/gpterm-tui/internal/layout"
	"github.com/jeranaias/gpterm-tui/internal/model"
	"github.com/jeranaias/gpterm-tui/internal/provider"
	"github.com/jeranaias/gpterm-tui/internal/session"
	"github.com/jeranaias/gpterm-tui/internal/storage"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages: key presses through the session controller,
// everything else to the owning component.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - chromeHeight
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.syncViewport(false)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case completionMsg:
		if m.ctl.Resolve(msg.turn) == session.ActionResolved {
			m.syncViewport(true)
		}
		return m, nil

	case transcriptChangedMsg:
		return m, tea.Batch(
			m.reloadTranscript(),
			waitForTranscriptChange(m.watcher),
		)

	case transcriptReloadedMsg:
		if msg.err != nil {
			slog.Warn("transcript reload failed", "path", m.transcriptPath, "error", msg.err)
			return m, nil
		}
		m.syncViewport(true)
		return m, nil

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

// =============================================================================
// KEY TRANSLATION
// =============================================================================

// handleKey turns a key press into a session event and performs the
// resulting action.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	events := m.translate(msg)
	var cmds []tea.Cmd
	for _, ev := range events {
		switch m.ctl.Handle(ev) {
		case session.ActionScrollUp:
			m.scrollOffset = layout.ScrollUp(m.scrollOffset, m.maxOffset)
			m.syncViewport(false)
		case session.ActionScrollDown:
			m.scrollOffset = layout.ScrollDown(m.scrollOffset)
			m.syncViewport(false)
		case session.ActionSubmit:
			m.syncViewport(true)
			cmds = append(cmds, completeCmd(m.client, m.ctl.Log().Snapshot(), m.ctl.PendingQuery()))
		case session.ActionResolved:
			m.syncViewport(true)
		case session.ActionQuit:
			m.quitting = true
			cmds = append(cmds, tea.Quit)
		}
	}
	m.syncTranscriptTarget()
	return m, tea.Batch(cmds...)
}

// syncTranscriptTarget re-points disk reloads and the watcher after
// :load switches the active transcript file. Without this a watcher
// notification would reload the old file over the loaded conversation.
func (m *Model) syncTranscriptTarget() {
	path := m.ctl.TranscriptPath()
	if path == "" || path == m.transcriptPath {
		return
	}
	m.transcriptPath = path
	if m.watcher != nil {
		if err := m.watcher.Retarget(path); err != nil {
			slog.Warn("transcript watcher retarget failed", "path", path, "error", err)
		}
	}
}

// translate maps a key press to session events for the current mode.
// Printable keys produce one event per rune.
func (m Model) translate(msg tea.KeyMsg) []session.Event {
	if m.ctl.Mode() == session.ModeNormal {
		switch {
		case key.Matches(msg, m.keys.Insert):
			return []session.Event{{Kind: session.EventEnterInsert}}
		case key.Matches(msg, m.keys.Command):
			return []session.Event{{Kind: session.EventEnterCommand}}
		case key.Matches(msg, m.keys.ScrollUp):
			return []session.Event{{Kind: session.EventScrollUp}}
		case key.Matches(msg, m.keys.ScrollDown):
			return []session.Event{{Kind: session.EventScrollDown}}
		case key.Matches(msg, m.keys.Quit):
			return []session.Event{{Kind: session.EventQuit}}
		}
		return nil
	}

	// Insert and command mode share the editing vocabulary.
	switch msg.Type {
	case tea.KeyEscape:
		return []session.Event{{Kind: session.EventCancel}}
	case tea.KeyEnter:
		return []session.Event{{Kind: session.EventSubmit}}
	case tea.KeyBackspace:
		return []session.Event{{Kind: session.EventBackspace}}
	case tea.KeySpace:
		return []session.Event{{Kind: session.EventRune, Rune: ' '}}
	case tea.KeyRunes:
		events := make([]session.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, session.Event{Kind: session.EventRune, Rune: r})
		}
		return events
	}
	return nil
}

// =============================================================================
// COMMANDS
// =============================================================================

// completeCmd runs the completion request off the event loop. It
// always delivers a completionMsg; failures were already converted to
// a fallback turn by the gateway.
func completeCmd(client *provider.Client, snapshot []model.Turn, query string) tea.Cmd {
	return func() tea.Msg {
		return completionMsg{turn: client.Complete(context.Background(), snapshot, query)}
	}
}

// waitForTranscriptChange blocks until the watcher reports a change.
func waitForTranscriptChange(w *storage.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		return transcriptChangedMsg{}
	}
}

// reloadTranscript reloads the conversation from disk. Skipped while a
// request is in flight; the pending answer would race the reload.
func (m *Model) reloadTranscript() tea.Cmd {
	if m.transcriptPath == "" || m.ctl.InFlight() {
		return nil
	}
	path, username := m.transcriptPath, m.ctl.Username()
	log := m.ctl.Log()
	return func() tea.Msg {
		return transcriptReloadedMsg{err: log.Load(path, username)}
	}
}

// =============================================================================
// VIEWPORT SYNC
// =============================================================================

// syncViewport re-renders the transcript and re-establishes the scroll
// clamp, optionally snapping to the bottom.
func (m *Model) syncViewport(toBottom bool) {
	if !m.ready {
		return
	}

	turns := m.ctl.Log().VisibleTurns()
	m.viewport.SetContent(m.renderTranscript(turns))

	requested := m.scrollOffset
	if toBottom {
		requested = 0
	}
	m.maxOffset, m.scrollOffset = layout.RecomputeScroll(turns, m.viewport.Width, m.viewport.Height, requested)

	// The layout offset counts rows up from the bottom; the viewport
	// counts down from the top.
	m.viewport.SetYOffset(m.maxOffset - m.scrollOffset)
}
