// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the colon command system for the TUI.
package commands

import (
	"errors"
	"fmt"

	"github.com/jeranaias/gpterm-tui/internal/model"
	"github.com/jeranaias/gpterm-tui/internal/storage"
)

// ErrCommandNotFound indicates the typed name matches no registered
// command. Recovered locally; never crashes a session.
var ErrCommandNotFound = errors.New("Command not found")

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a colon command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "load")
	Name string

	// Aliases are alternative names (e.g., "save" for "w")
	Aliases []string

	// Description is shown in help listings
	Description string

	// Usage shows argument syntax (e.g., ":load <path>")
	Usage string

	// Handler executes the command
	Handler func(ctx *Context, args []string) (Result, error)
}

// Context carries the session state commands operate on.
type Context struct {
	// Log is the live conversation.
	Log *model.ConversationLog

	// Archive stores named transcripts.
	Archive *storage.ArchiveStore

	// TranscriptPath is the active transcript file, if one was loaded
	// or configured. ":w" with no name writes here when set.
	TranscriptPath string

	// Username labels operator turns reconstructed by :load.
	Username string
}

// Result is what a successful command reports back to the session.
type Result struct {
	// Quit requests session shutdown.
	Quit bool

	// Message is shown on the command line, if non-empty.
	Message string
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	return cmds
}

// Dispatch parses and executes a command line. The leading colon is
// expected to be stripped already. An unknown name returns
// ErrCommandNotFound; handler failures come back wrapped.
func (r *Registry) Dispatch(ctx *Context, line string) (Result, error) {
	name, args := splitName(line)
	if name == "" {
		return Result{}, ErrCommandNotFound
	}

	cmd := r.Get(name)
	if cmd == nil {
		return Result{}, ErrCommandNotFound
	}
	return cmd.Handler(ctx, args)
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "w",
		Aliases:     []string{"write", "save"},
		Description: "Archive the current transcript",
		Usage:       ":w [name]",
		Handler:     handleWrite,
	})

	r.Register(&Command{
		Name:        "q",
		Aliases:     []string{"quit"},
		Description: "Quit the session",
		Usage:       ":q",
		Handler: func(ctx *Context, args []string) (Result, error) {
			return Result{Quit: true}, nil
		},
	})

	r.Register(&Command{
		Name:        "wq",
		Description: "Archive the transcript, then quit",
		Usage:       ":wq [name]",
		Handler: func(ctx *Context, args []string) (Result, error) {
			res, err := handleWrite(ctx, args)
			if err != nil {
				return Result{}, err
			}
			res.Quit = true
			return res, nil
		},
	})

	r.Register(&Command{
		Name:        "load",
		Aliases:     []string{"open"},
		Description: "Replace the conversation from a transcript file",
		Usage:       ":load <path>",
		Handler:     handleLoad,
	})

	r.Register(&Command{
		Name:        "clear",
		Aliases:     []string{"new"},
		Description: "Start an empty conversation",
		Usage:       ":clear",
		Handler: func(ctx *Context, args []string) (Result, error) {
			ctx.Log.Clear()
			return Result{Message: "cleared"}, nil
		},
	})
}

// handleWrite archives the transcript: to the active transcript path
// when no name is given and a path is configured, otherwise into the
// archive store.
func handleWrite(ctx *Context, args []string) (Result, error) {
	if len(args) == 0 && ctx.TranscriptPath != "" {
		if err := ctx.Log.Save(ctx.TranscriptPath); err != nil {
			return Result{}, fmt.Errorf("write failed: %w", err)
		}
		return Result{Message: "wrote " + ctx.TranscriptPath}, nil
	}

	if ctx.Archive == nil {
		return Result{}, errors.New("no archive configured")
	}
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	meta, err := ctx.Archive.Save(ctx.Log, name)
	if err != nil {
		return Result{}, fmt.Errorf("archive failed: %w", err)
	}
	return Result{Message: "saved " + meta.ID}, nil
}

// handleLoad replaces the conversation wholesale. On failure the live
// log is untouched; the error surfaces on the command line.
func handleLoad(ctx *Context, args []string) (Result, error) {
	if len(args) != 1 {
		return Result{}, errors.New("usage: :load <path>")
	}
	if err := ctx.Log.Load(args[0], ctx.Username); err != nil {
		return Result{}, err
	}
	ctx.TranscriptPath = args[0]
	return Result{Message: "loaded " + args[0]}, nil
}
