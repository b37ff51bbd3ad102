// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// sessions.go - Archived transcript management for gpterm CLI.
//
// Handles "gpterm sessions": listing, printing, and deleting the
// transcripts saved from the TUI with :w.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/gpterm-tui/internal/config"
	"github.com/jeranaias/gpterm-tui/internal/model"
	"github.com/jeranaias/gpterm-tui/internal/storage"
)

// HandleSessions routes the sessions subcommands.
func HandleSessions(args *ArgParser) {
	store, err := storage.NewArchiveStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}

	switch args.Subcommand() {
	case "", "list":
		listSessions(store)
	case "show":
		showSession(store, args.Positional(1))
	case "delete", "rm":
		deleteSession(store, args.Positional(1))
	default:
		fmt.Fprintf(os.Stderr, "unknown sessions subcommand %q\n", args.Subcommand())
		os.Exit(2)
	}
}

func listSessions(store *storage.ArchiveStore) {
	metas, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
	if len(metas) == 0 {
		fmt.Println("no archived transcripts")
		return
	}

	for _, meta := range metas {
		fmt.Printf("%-38s %3d turns  %s  %s\n",
			meta.ID, meta.TurnCount,
			meta.UpdatedAt.Format("2006-01-02 15:04"),
			meta.Preview)
	}
}

func showSession(store *storage.ArchiveStore, id string) {
	if id == "" {
		fmt.Fprintln(os.Stderr, "usage: gpterm sessions show <id>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	username := "you"
	if err == nil {
		username = cfg.UI.Username
	}

	turns, err := store.Load(id, username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}

	for _, t := range turns {
		if t.Role == model.RoleSystem {
			continue
		}
		fmt.Printf("%s\n%s\n\n", senderStyle.Render(t.Sender), t.Body)
	}
}

func deleteSession(store *storage.ArchiveStore, id string) {
	if id == "" {
		fmt.Fprintln(os.Stderr, "usage: gpterm sessions delete <id>")
		os.Exit(2)
	}
	if err := store.Delete(id); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
	fmt.Printf("deleted %s\n", id)
}
