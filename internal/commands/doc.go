// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the colon command system for the TUI.
//
// Command mode is entered from normal mode with ':'. The buffer always
// begins with the colon; submitting parses the rest as a command name
// plus arguments (quoted arguments supported) and dispatches through
// the registry.
//
// # Built-in Commands
//
//   - :w [name]   archive the current transcript
//   - :q          quit
//   - :wq [name]  archive, then quit
//   - :load <path> replace the conversation from a transcript file
//   - :clear      start an empty conversation
//
// An unknown command is never fatal: dispatch reports
// ErrCommandNotFound and the session surfaces it on the command line.
package commands
