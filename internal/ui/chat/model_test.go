// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/gpterm-tui/internal/commands"
	"github.com/jeranaias/gpterm-tui/internal/layout"
	"github.com/jeranaias/gpterm-tui/internal/model"
	"github.com/jeranaias/gpterm-tui/internal/provider"
	"github.com/jeranaias/gpterm-tui/internal/session"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	log := model.NewConversationLog()
	ctx := &commands.Context{Log: log, Username: "alice"}
	ctl := session.NewController(log, commands.NewRegistry(), ctx, "alice")
	client := provider.NewClient(provider.Config{Kind: provider.KindMultiTurn})

	m := New(Options{Controller: ctl, Client: client})
	m.viewport = viewport.New(20, 5)
	m.width = 20
	m.height = 11
	m.ready = true
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func pressKeys(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.handleKey(msg)
		m = updated.(Model)
	}
	return m
}

func writeTranscript(t *testing.T, path, body string) {
	t.Helper()
	data := `[{"role": "user", "content": ` + strconv.Quote(body) + `}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTranslateNormalMode(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want session.EventKind
	}{
		{"i enters insert", runeKey('i'), session.EventEnterInsert},
		{"colon enters command", runeKey(':'), session.EventEnterCommand},
		{"k scrolls up", runeKey('k'), session.EventScrollUp},
		{"j scrolls down", runeKey('j'), session.EventScrollDown},
		{"q quits", runeKey('q'), session.EventQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := m.translate(tt.msg)
			if len(events) != 1 || events[0].Kind != tt.want {
				t.Errorf("translate = %v, want one %v", events, tt.want)
			}
		})
	}

	// Unbound normal-mode keys map to nothing.
	if events := m.translate(runeKey('x')); events != nil {
		t.Errorf("unbound key produced %v", events)
	}
}

func TestTranslateInsertMode(t *testing.T) {
	m := newTestModel(t)
	m.ctl.Handle(session.Event{Kind: session.EventEnterInsert})

	// In insert mode, 'i' and 'q' are ordinary text.
	for _, r := range []rune{'i', 'q', 'é'} {
		events := m.translate(runeKey(r))
		if len(events) != 1 || events[0].Kind != session.EventRune || events[0].Rune != r {
			t.Errorf("translate(%q) = %v, want rune event", r, events)
		}
	}

	if events := m.translate(tea.KeyMsg{Type: tea.KeyEnter}); len(events) != 1 || events[0].Kind != session.EventSubmit {
		t.Errorf("enter = %v, want submit", events)
	}
	if events := m.translate(tea.KeyMsg{Type: tea.KeyEscape}); len(events) != 1 || events[0].Kind != session.EventCancel {
		t.Errorf("esc = %v, want cancel", events)
	}
	if events := m.translate(tea.KeyMsg{Type: tea.KeySpace}); len(events) != 1 || events[0].Rune != ' ' {
		t.Errorf("space = %v, want space rune", events)
	}
	if events := m.translate(tea.KeyMsg{Type: tea.KeyBackspace}); len(events) != 1 || events[0].Kind != session.EventBackspace {
		t.Errorf("backspace = %v, want backspace", events)
	}
}

func TestRenderTranscriptRowCountMatchesLayout(t *testing.T) {
	m := newTestModel(t)
	turns := []model.Turn{
		model.NewQueryTurn("alice", "hello world, this wraps a few times at width twenty"),
		model.NewAnswerTurn("gpt-3.5-turbo", "short"),
		model.NewAnswerTurn("gpt-3.5-turbo", "multi\nline\nanswer"),
	}

	rendered := m.renderTranscript(turns)
	gotRows := len(strings.Split(rendered, "\n"))
	wantRows := layout.TotalHeight(turns, m.viewport.Width)
	if gotRows != wantRows {
		t.Errorf("rendered %d rows, layout arithmetic says %d", gotRows, wantRows)
	}
}

func TestSyncViewportClampsAfterShrink(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 10; i++ {
		m.ctl.Log().Append(model.NewQueryTurn("alice", "some transcript content"))
	}
	m.syncViewport(false)

	// Scroll to the top, then empty the log: the offset must re-clamp.
	m.scrollOffset = m.maxOffset
	m.ctl.Log().Clear()
	m.syncViewport(false)

	if m.maxOffset != 0 || m.scrollOffset != 0 {
		t.Errorf("offsets = (%d, %d) after clearing, want (0, 0)", m.maxOffset, m.scrollOffset)
	}
}

// TestLoadCommandRepointsReload checks that :load moves disk reloads
// to the newly loaded file. A reload against the startup path would
// overwrite the conversation the user just loaded.
func TestLoadCommandRepointsReload(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.json")
	newPath := filepath.Join(dir, "new.json")
	writeTranscript(t, oldPath, "old question")
	writeTranscript(t, newPath, "new question")

	log := model.NewConversationLog()
	ctx := &commands.Context{Log: log, Username: "alice", TranscriptPath: oldPath}
	ctl := session.NewController(log, commands.NewRegistry(), ctx, "alice")
	client := provider.NewClient(provider.Config{Kind: provider.KindMultiTurn})

	m := New(Options{Controller: ctl, Client: client, TranscriptPath: oldPath})
	m.viewport = viewport.New(20, 5)
	m.ready = true

	m = pressKeys(t, m,
		runeKey(':'),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("load " + newPath)},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	if m.transcriptPath != newPath {
		t.Fatalf("transcript path = %q, want %q", m.transcriptPath, newPath)
	}

	msg := m.reloadTranscript()()
	reloaded, ok := msg.(transcriptReloadedMsg)
	if !ok || reloaded.err != nil {
		t.Fatalf("reload = %#v", msg)
	}
	snap := ctl.Log().Snapshot()
	if len(snap) != 1 || snap[0].Body != "new question" {
		t.Fatalf("log after reload = %+v, want the loaded transcript", snap)
	}
}

func TestCompletionMsgResolves(t *testing.T) {
	m := newTestModel(t)
	m.ctl.Handle(session.Event{Kind: session.EventEnterInsert})
	for _, r := range "hi" {
		m.ctl.Handle(session.Event{Kind: session.EventRune, Rune: r})
	}
	m.ctl.Handle(session.Event{Kind: session.EventSubmit})

	updated, _ := m.Update(completionMsg{turn: model.NewAnswerTurn("m", "hello")})
	m = updated.(Model)

	if m.ctl.InFlight() {
		t.Error("completion message must clear the in-flight gate")
	}
	if m.ctl.Log().Len() != 2 {
		t.Errorf("log len = %d, want 2", m.ctl.Log().Len())
	}
}
