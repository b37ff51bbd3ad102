// gpterm - a vim-modal terminal chat client for OpenAI-compatible backends.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jeranaias/gpterm-tui/internal/cli"
	"github.com/jeranaias/gpterm-tui/internal/commands"
	"github.com/jeranaias/gpterm-tui/internal/config"
	"github.com/jeranaias/gpterm-tui/internal/model"
	"github.com/jeranaias/gpterm-tui/internal/provider"
	"github.com/jeranaias/gpterm-tui/internal/session"
	"github.com/jeranaias/gpterm-tui/internal/storage"
	"github.com/jeranaias/gpterm-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdSessions:
		cli.HandleSessions(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	}
}

// =============================================================================
// TUI BOOTSTRAP
// =============================================================================

// runTUI wires the session together and runs the Bubble Tea program.
// Everything that can fail here fails before the session starts, and
// loudly; once the TUI is up, nothing below it is allowed to crash.
func runTUI(args *cli.ArgParser) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fatal("gpterm requires an interactive terminal (try `gpterm ask` for scripted use)")
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config: %v", err)
	}
	if path := args.Flag("transcript"); path != "" {
		cfg.Transcript.Path = path
	}

	initLogger(cfg.Log)
	slog.Info("gpterm starting",
		"version", Version,
		"mode", cfg.Provider.Mode,
		"model", cfg.Provider.Model,
		"color_profile", termenv.ColorProfile().Name())

	kind, _ := provider.ParseKind(cfg.Provider.Mode)
	client := provider.NewClient(provider.Config{
		Kind:              kind,
		BaseURL:           cfg.Provider.BaseURL,
		APIKey:            cfg.Provider.APIKey,
		Model:             cfg.Provider.Model,
		Temperature:       cfg.Provider.Temperature,
		MaxTokens:         cfg.Provider.MaxTokens,
		RequestsPerMinute: cfg.Provider.RequestsPerMinute,
	})

	log := model.NewConversationLog()
	if cfg.Transcript.Path != "" {
		// A transcript that was asked for but cannot be loaded is a
		// hard error; silently starting empty would look like data loss.
		if err := log.Load(cfg.Transcript.Path, cfg.UI.Username); err != nil {
			fatal("transcript: %v", err)
		}
	}

	archive, err := storage.NewArchiveStore()
	if err != nil {
		fatal("archive: %v", err)
	}

	var watcher *storage.Watcher
	if cfg.Transcript.Watch && cfg.Transcript.Path != "" {
		watcher, err = storage.NewWatcher(cfg.Transcript.Path)
		if err != nil {
			fatal("transcript watcher: %v", err)
		}
		defer watcher.Close()
	}

	cmdCtx := &commands.Context{
		Log:            log,
		Archive:        archive,
		TranscriptPath: cfg.Transcript.Path,
		Username:       cfg.UI.Username,
	}
	ctl := session.NewController(log, commands.NewRegistry(), cmdCtx, cfg.UI.Username)

	m := chat.New(chat.Options{
		Controller:     ctl,
		Client:         client,
		TranscriptPath: cfg.Transcript.Path,
		Watcher:        watcher,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal("%v", err)
	}
	slog.Info("gpterm exiting")
}

// =============================================================================
// LOGGING
// =============================================================================

// initLogger routes slog to a rotated file. The TUI owns the
// terminal, so nothing may log to stdout or stderr after this.
func initLogger(cfg config.LogConfig) {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	writer := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})))
}

func fatal(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", a...)
	os.Exit(1)
}
