// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"reflect"
	"testing"
)

func TestArgParserFlags(t *testing.T) {
	args := NewArgParser([]string{"show", "--transcript", "a.json", "--watch=true", "-i", "--mode=text"})

	if args.Subcommand() != "show" {
		t.Errorf("Subcommand = %q, want show", args.Subcommand())
	}
	if got := args.Flag("transcript"); got != "a.json" {
		t.Errorf("Flag(transcript) = %q", got)
	}
	if got := args.Flag("mode"); got != "text" {
		t.Errorf("Flag(mode) = %q", got)
	}
	if !args.BoolFlag("watch") {
		t.Error("BoolFlag(watch) = false")
	}
	if !args.BoolFlag("i") {
		t.Error("BoolFlag(i) = false")
	}
	if args.BoolFlag("absent") {
		t.Error("BoolFlag(absent) = true")
	}
}

func TestArgParserFlagWithDashes(t *testing.T) {
	args := NewArgParser([]string{"--model", "gpt-3.5-turbo"})
	if got := args.Flag("--model"); got != "gpt-3.5-turbo" {
		t.Errorf("Flag(--model) = %q", got)
	}
	if !args.HasFlag("model") {
		t.Error("HasFlag(model) = false")
	}
}

func TestArgParserPositionals(t *testing.T) {
	args := NewArgParser([]string{"what", "is", "go", "--mode", "chat"})

	if got := args.PositionalFrom(0); !reflect.DeepEqual(got, []string{"what", "is", "go"}) {
		t.Errorf("PositionalFrom(0) = %v", got)
	}
	if got := args.Positional(2); got != "go" {
		t.Errorf("Positional(2) = %q", got)
	}
	if got := args.Positional(99); got != "" {
		t.Errorf("Positional(99) = %q, want empty", got)
	}
	if got := args.PositionalFrom(99); len(got) != 0 {
		t.Errorf("PositionalFrom(99) = %v, want empty", got)
	}
}

func TestArgParserBooleanDefault(t *testing.T) {
	// A flag at the end of the line with no value is boolean.
	args := NewArgParser([]string{"--verbose"})
	if !args.BoolFlag("verbose") {
		t.Error("trailing flag should parse as boolean")
	}
}

func TestArgParserEmpty(t *testing.T) {
	args := NewArgParser(nil)
	if args.Subcommand() != "" {
		t.Errorf("Subcommand = %q, want empty", args.Subcommand())
	}
}
