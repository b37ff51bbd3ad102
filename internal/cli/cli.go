// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing for gpterm.
package cli

import (
	"fmt"
	"os"
	"runtime"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdSessions
	CmdConfig
	CmdVersion
	CmdHelp
)

// Parse inspects os.Args and returns the command plus its remaining
// arguments. No arguments means the TUI.
func Parse() (Command, *ArgParser) {
	if len(os.Args) < 2 {
		return CmdTUI, NewArgParser(nil)
	}

	switch os.Args[1] {
	case "ask":
		return CmdAsk, NewArgParser(os.Args[2:])
	case "sessions":
		return CmdSessions, NewArgParser(os.Args[2:])
	case "config":
		return CmdConfig, NewArgParser(os.Args[2:])
	case "version", "--version", "-v":
		return CmdVersion, NewArgParser(nil)
	case "help", "--help", "-h":
		return CmdHelp, NewArgParser(nil)
	default:
		// Flags without a subcommand still mean the TUI
		// (e.g. gpterm --transcript chat.json).
		return CmdTUI, NewArgParser(os.Args[1:])
	}
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("gpterm %s (%s, %s, %s/%s)\n",
		Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}

// HandleHelp prints usage.
func HandleHelp() {
	fmt.Print(`gpterm - terminal chat client for OpenAI-compatible backends

Usage:
  gpterm [--transcript <path>]     Start the TUI
  gpterm ask <query...>            One-shot completion to stdout
  gpterm ask -i                    Interactive plain REPL
  gpterm sessions [list]           List archived transcripts
  gpterm sessions show <id>        Print an archived transcript
  gpterm sessions delete <id>      Delete an archived transcript
  gpterm config show               Print the effective configuration
  gpterm config init               Write a default config file
  gpterm version                   Print version information

Keys (TUI):
  i        insert mode (compose)
  enter    send (insert mode) / run command (command mode)
  esc      back to normal mode
  j / k    scroll the transcript
  :        command mode  (:w, :q, :wq, :load <path>, :clear)
  q        quit

Configuration: ~/.gpterm/config.toml  (env: OPENAI_API_KEY, GPTERM_MODE,
GPTERM_MODEL, GPTERM_BASE_URL, GPTERM_TRANSCRIPT)
`)
}
