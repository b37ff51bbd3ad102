// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the modal state machine that drives a
// chat session.
//
// The Controller owns the conversation log, the compose and command
// buffers, and the current mode (normal, insert, command). It consumes
// abstract input events and returns the action the UI should perform;
// it knows nothing about terminals or rendering, which keeps every
// (mode, event) pair testable as a plain function call.
//
// Submission is a two-phase handshake: handling a submit event appends
// the operator's turn and parks the session in an in-flight state, the
// UI performs the completion request off the event loop, and Resolve
// appends whatever turn comes back. The in-flight gate refuses new
// submissions until then, so answer N always lands directly after
// query N.
package session
