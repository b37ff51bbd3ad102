// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the gpterm TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gpterm-tui/internal/provider"
	"github.com/jeranaias/gpterm-tui/internal/session"
	"github.com/jeranaias/gpterm-tui/internal/storage"
	"github.com/jeranaias/gpterm-tui/internal/ui/styles"
)

// Fixed vertical chrome around the transcript viewport: header, input
// pane (3 rows with border), command line, status bar.
const chromeHeight = 6

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat session.
type Model struct {
	ctl    *session.Controller
	client *provider.Client

	viewport viewport.Model
	spinner  spinner.Model
	keys     KeyMap
	theme    styles.Theme

	// Scroll state in transcript rows, measured from the bottom.
	scrollOffset int
	maxOffset    int

	width  int
	height int
	ready  bool

	// Optional transcript watching.
	watcher        *storage.Watcher
	transcriptPath string

	quitting bool
}

// Options configures the chat model.
type Options struct {
	Controller *session.Controller
	Client     *provider.Client

	// TranscriptPath, when set together with Watcher, enables reload
	// on external modification.
	TranscriptPath string
	Watcher        *storage.Watcher
}

// New creates the chat model.
func New(opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Amber)

	return Model{
		ctl:            opts.Controller,
		client:         opts.Client,
		spinner:        sp,
		keys:           DefaultKeyMap(),
		theme:          styles.Default(),
		watcher:        opts.Watcher,
		transcriptPath: opts.TranscriptPath,
	}
}

// Init starts the spinner tick and, when configured, the transcript
// watch loop.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.watcher != nil {
		cmds = append(cmds, waitForTranscriptChange(m.watcher))
	}
	return tea.Batch(cmds...)
}
