// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot and REPL completion handlers for gpterm CLI.
//
// Handles the "gpterm ask" command: a single query printed to stdout,
// or with -i a readline-style REPL that keeps conversation context for
// the duration of the process.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/gpterm-tui/internal/config"
	"github.com/jeranaias/gpterm-tui/internal/model"
	"github.com/jeranaias/gpterm-tui/internal/provider"
	"github.com/jeranaias/gpterm-tui/internal/ui/styles"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	answerStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	senderStyle = lipgloss.NewStyle().Foreground(styles.Magenta).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
)

// HandleAsk runs a one-shot completion, or the REPL with -i.
func HandleAsk(args *ArgParser) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}

	if mode := args.Flag("mode"); mode != "" {
		cfg.Provider.Mode = mode
	}
	if m := args.Flag("model"); m != "" {
		cfg.Provider.Model = m
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}

	client := newClient(cfg)

	if args.BoolFlag("i") || args.BoolFlag("interactive") {
		runRepl(client, cfg)
		return
	}

	query := strings.Join(args.PositionalFrom(0), " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(os.Stderr, "usage: gpterm ask <query...>  (or gpterm ask -i)")
		os.Exit(2)
	}

	log := model.NewConversationLog()
	log.Append(model.NewQueryTurn(cfg.UI.Username, query))
	turn := client.Complete(context.Background(), log.Snapshot(), query)
	fmt.Println(turn.Body)
}

// newClient builds a provider client from the loaded config.
func newClient(cfg *config.Config) *provider.Client {
	kind, _ := provider.ParseKind(cfg.Provider.Mode)
	return provider.NewClient(provider.Config{
		Kind:              kind,
		BaseURL:           cfg.Provider.BaseURL,
		APIKey:            cfg.Provider.APIKey,
		Model:             cfg.Provider.Model,
		Temperature:       cfg.Provider.Temperature,
		MaxTokens:         cfg.Provider.MaxTokens,
		RequestsPerMinute: cfg.Provider.RequestsPerMinute,
	})
}

// =============================================================================
// REPL
// =============================================================================

// runRepl is the plain line-oriented alternative to the TUI. History
// is kept across runs; the conversation context is per-process.
func runRepl(client *provider.Client, cfg *config.Config) {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile := askHistoryPath()
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		saveHistory(line, historyFile)
		line.Close()
	}()

	fmt.Printf("%s %s · %s (exit with ctrl+d)\n",
		senderStyle.Render("gpterm"), client.Model(), client.Kind().String())

	log := model.NewConversationLog()
	for {
		input, err := line.Prompt(promptStyle.Render("gpterm> "))
		if err != nil {
			// Ctrl+C, Ctrl+D, or a closed terminal all end the REPL.
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		log.Append(model.NewQueryTurn(cfg.UI.Username, input))
		turn := client.Complete(context.Background(), log.Snapshot(), input)
		log.Append(turn)

		fmt.Printf("%s\n%s\n", senderStyle.Render(turn.Sender), answerStyle.Render(turn.Body))
	}
}

func askHistoryPath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "ask_history")
}

// saveHistory persists REPL history with owner-only permissions.
func saveHistory(line *liner.State, path string) {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
