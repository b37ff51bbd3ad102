// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration inspection for gpterm CLI.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/gpterm-tui/internal/config"
)

// HandleConfig routes the config subcommands.
func HandleConfig(args *ArgParser) {
	switch args.Subcommand() {
	case "", "show":
		showConfig()
	case "init":
		initConfig()
	default:
		fmt.Fprintf(os.Stderr, "unknown config subcommand %q\n", args.Subcommand())
		os.Exit(2)
	}
}

func showConfig() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}

	path, _ := config.ConfigPath()
	fmt.Printf("config file:  %s\n", path)
	fmt.Printf("mode:         %s\n", cfg.Provider.Mode)
	fmt.Printf("base_url:     %s\n", cfg.Provider.BaseURL)
	fmt.Printf("model:        %s\n", cfg.Provider.Model)
	fmt.Printf("api_key:      %s\n", maskKey(cfg.Provider.APIKey))
	fmt.Printf("temperature:  %g\n", cfg.Provider.Temperature)
	fmt.Printf("max_tokens:   %d\n", cfg.Provider.MaxTokens)
	fmt.Printf("username:     %s\n", cfg.UI.Username)
	fmt.Printf("transcript:   %s (watch: %v)\n", cfg.Transcript.Path, cfg.Transcript.Watch)
	fmt.Printf("log file:     %s (%s)\n", cfg.Log.File, cfg.Log.Level)
}

func initConfig() {
	path, err := config.ConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "config already exists at %s\n", path)
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.SetDefaults()
	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", path)
}

// maskKey hides all but the tail of an API key.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	runes := []rune(key)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}
