// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
//
// This package defines the core domain types used throughout the
// application for representing a chat session: individual turns and the
// append-only log that orders them, plus the flat transcript format used
// to persist a session to disk.
//
// # Key Types
//
//   - Turn: a single conversational step (query or answer) with role,
//     sender label, body, and timestamp
//   - ConversationLog: append-only ordered sequence of turns
//   - Role: protocol-facing role enumeration (user, assistant, system)
//   - Origin: display-facing classification (query vs. answer)
//
// # Usage
//
// Build up a session:
//
//	log := model.NewConversationLog()
//	log.Append(model.NewQueryTurn("alice", "Hello!"))
//
// Persist and restore:
//
//	if err := log.Save("messages.json"); err != nil { ... }
//	if err := log.Load("messages.json"); err != nil { ... }
package model
