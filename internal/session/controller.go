// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the modal state machine that drives a
// chat session.
package session

import (
	"errors"

	"github.com/jeranaias/gpterm-tui/internal/commands"
	"github.com/jeranaias/gpterm-tui/internal/model"
)

// =============================================================================
// MODE TYPES
// =============================================================================

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal  Mode = iota // Navigation and mode switches
	ModeInsert              // Compose buffer editing
	ModeCommand             // Colon command editing
)

// String returns the display string for the mode.
func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

// CommandStatus reports how the last command attempt went. It colors
// the command line until the next mode change.
type CommandStatus int

const (
	StatusOK CommandStatus = iota
	StatusError
)

// =============================================================================
// EVENTS AND ACTIONS
// =============================================================================

// EventKind identifies an abstract input event. The UI translates key
// presses into these; the controller never sees raw keys.
type EventKind int

const (
	EventRune        EventKind = iota // printable rune, carries Rune
	EventBackspace                    // delete last rune
	EventSubmit                       // enter
	EventCancel                       // escape
	EventScrollUp                     // toward older turns
	EventScrollDown                   // toward newer turns
	EventEnterInsert                  // 'i' in normal mode
	EventEnterCommand                 // ':' in normal mode
	EventQuit                         // 'q' in normal mode
)

// Event is one abstract input event.
type Event struct {
	Kind EventKind
	Rune rune
}

// Action is what the UI should do after the controller consumed an
// event. Anything not listed here is internal state change only.
type Action int

const (
	ActionNone       Action = iota
	ActionScrollUp          // move the transcript one row toward the top
	ActionScrollDown        // move the transcript one row toward the bottom
	ActionSubmit            // run the completion request, then call Resolve
	ActionResolved          // a turn landed; re-render and scroll to bottom
	ActionQuit              // shut the session down
)

// errCommandNotFoundDisplay is what the command line shows for an
// unknown command.
const errCommandNotFoundDisplay = "Error: Command not found"

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the session state machine. Not safe for concurrent
// use; it lives on the UI event loop and is only touched from there.
type Controller struct {
	mode          Mode
	compose       []rune
	command       []rune
	feedback      string
	commandStatus CommandStatus

	log      *model.ConversationLog
	registry *commands.Registry
	cmdCtx   *commands.Context

	inFlight     bool
	pendingQuery string
	username     string
}

// NewController creates a controller in normal mode with the given
// conversation log and command context. cmdCtx.Log must be the same
// log.
func NewController(log *model.ConversationLog, registry *commands.Registry, cmdCtx *commands.Context, username string) *Controller {
	if username == "" {
		username = "you"
	}
	return &Controller{
		mode:     ModeNormal,
		log:      log,
		registry: registry,
		cmdCtx:   cmdCtx,
		username: username,
	}
}

// Mode returns the current input mode.
func (c *Controller) Mode() Mode { return c.mode }

// Compose returns the compose buffer contents.
func (c *Controller) Compose() string { return string(c.compose) }

// CommandBuffer returns the command line contents, including the
// leading colon while editing. Dispatch clears it.
func (c *Controller) CommandBuffer() string { return string(c.command) }

// Feedback returns the outcome of the last command dispatch, shown on
// the command line until the next command starts.
func (c *Controller) Feedback() string { return c.feedback }

// CommandStatus reports how the last command attempt went.
func (c *Controller) CommandStatus() CommandStatus { return c.commandStatus }

// TranscriptPath returns the active transcript file. It tracks :load,
// so callers that reload from disk must consult it rather than cache
// the startup path.
func (c *Controller) TranscriptPath() string {
	if c.cmdCtx == nil {
		return ""
	}
	return c.cmdCtx.TranscriptPath
}

// InFlight reports whether a completion request is outstanding.
func (c *Controller) InFlight() bool { return c.inFlight }

// Log returns the conversation log the controller owns.
func (c *Controller) Log() *model.ConversationLog { return c.log }

// PendingQuery returns the query frozen by the last accepted submit.
func (c *Controller) PendingQuery() string { return c.pendingQuery }

// Username returns the sender label for operator turns.
func (c *Controller) Username() string { return c.username }

// =============================================================================
// EVENT HANDLING
// =============================================================================

// Handle consumes one event in the current mode and returns the action
// the UI should perform. Every (mode, event) pair is defined;
// unrecognized combinations are no-ops.
func (c *Controller) Handle(ev Event) Action {
	switch c.mode {
	case ModeInsert:
		return c.handleInsert(ev)
	case ModeCommand:
		return c.handleCommand(ev)
	default:
		return c.handleNormal(ev)
	}
}

func (c *Controller) handleNormal(ev Event) Action {
	switch ev.Kind {
	case EventEnterInsert:
		c.mode = ModeInsert
	case EventEnterCommand:
		c.mode = ModeCommand
		c.command = []rune{':'}
		c.feedback = ""
		c.commandStatus = StatusOK
	case EventScrollUp:
		return ActionScrollUp
	case EventScrollDown:
		return ActionScrollDown
	case EventQuit:
		return ActionQuit
	}
	return ActionNone
}

func (c *Controller) handleInsert(ev Event) Action {
	switch ev.Kind {
	case EventRune:
		c.compose = append(c.compose, ev.Rune)
	case EventBackspace:
		if len(c.compose) > 0 {
			c.compose = c.compose[:len(c.compose)-1]
		}
	case EventCancel:
		// Leaving insert mode keeps the draft.
		c.mode = ModeNormal
	case EventSubmit:
		return c.beginSubmit()
	}
	return ActionNone
}

func (c *Controller) handleCommand(ev Event) Action {
	switch ev.Kind {
	case EventRune:
		c.command = append(c.command, ev.Rune)
	case EventBackspace:
		if len(c.command) > 1 {
			c.command = c.command[:len(c.command)-1]
		} else {
			// Deleting the colon abandons the command.
			c.command = nil
			c.mode = ModeNormal
		}
	case EventCancel:
		c.command = nil
		c.mode = ModeNormal
	case EventSubmit:
		return c.dispatchCommand()
	}
	return ActionNone
}

// =============================================================================
// SUBMISSION
// =============================================================================

// beginSubmit freezes the compose buffer, appends the operator turn,
// returns the session to normal mode, and gates further submissions
// until Resolve. Empty drafts and submissions while a request is
// outstanding are no-ops that stay in insert mode.
func (c *Controller) beginSubmit() Action {
	if c.inFlight || len(c.compose) == 0 {
		return ActionNone
	}

	query := string(c.compose)
	c.compose = nil
	c.pendingQuery = query
	c.inFlight = true
	c.mode = ModeNormal
	c.log.Append(model.NewQueryTurn(c.username, query))
	return ActionSubmit
}

// Resolve appends the turn a completion request produced and reopens
// submission. The turn is appended unconditionally: a synthesized
// fallback turn takes the same path as a real answer, so every query
// turn is always followed by exactly one answer turn.
func (c *Controller) Resolve(turn model.Turn) Action {
	if !c.inFlight {
		return ActionNone
	}
	c.log.Append(turn)
	c.inFlight = false
	c.pendingQuery = ""
	return ActionResolved
}

// =============================================================================
// COMMAND DISPATCH
// =============================================================================

// dispatchCommand runs the command buffer through the registry. The
// buffer is cleared and the session returns to normal mode either way;
// the outcome surfaces as feedback on the command line, never further.
func (c *Controller) dispatchCommand() Action {
	line := commands.StripColon(string(c.command))
	c.command = nil
	c.mode = ModeNormal

	result, err := c.registry.Dispatch(c.cmdCtx, line)
	if err != nil {
		if errors.Is(err, commands.ErrCommandNotFound) {
			c.feedback = errCommandNotFoundDisplay
		} else {
			c.feedback = "Error: " + err.Error()
		}
		c.commandStatus = StatusError
		return ActionNone
	}

	c.feedback = result.Message
	c.commandStatus = StatusOK
	if result.Quit {
		return ActionQuit
	}
	// :load and :clear replace the transcript wholesale.
	return ActionResolved
}
