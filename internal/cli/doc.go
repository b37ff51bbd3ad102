// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides argument parsing and the non-TUI command
// handlers for gpterm.
//
// The TUI is the default entry point; everything else is a small
// subcommand:
//
//	gpterm                      start the TUI
//	gpterm ask <query...>       one-shot completion to stdout
//	gpterm ask -i               interactive plain REPL
//	gpterm sessions [list|show|delete]
//	gpterm config [show|init]
//	gpterm version
package cli
