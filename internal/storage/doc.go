// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides transcript archiving and change watching.
//
// The archive is a directory of flat transcript files, one per saved
// session, in the same format the live session reads and writes. A
// separate Watcher observes the active transcript file and reports
// external modifications so the TUI can offer a reload.
package storage
