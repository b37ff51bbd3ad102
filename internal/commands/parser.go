// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the colon command system for the TUI.
package commands

import (
	"strings"
	"unicode"
)

// StripColon removes the leading colon from a command buffer, if
// present. The command line editor always keeps the colon as the first
// rune; dispatch works on what follows it.
func StripColon(buffer string) string {
	return strings.TrimPrefix(buffer, ":")
}

// splitName separates the command name from its argument tokens.
func splitName(line string) (string, []string) {
	parts := splitCommandLine(line)
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

// splitCommandLine splits a command line into tokens, respecting
// quotes. Supports both single and double quotes for arguments with
// spaces.
func splitCommandLine(input string) []string {
	var tokens []string
	var current strings.Builder
	var inSingleQuote, inDoubleQuote bool

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, char := range input {
		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote

		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote

		case unicode.IsSpace(char) && !inSingleQuote && !inDoubleQuote:
			flush()

		default:
			current.WriteRune(char)
		}
	}
	flush()

	return tokens
}
