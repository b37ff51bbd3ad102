// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider implements the HTTP gateway to OpenAI-compatible
// completion backends.
//
// Two request variants are supported, selected at construction time:
//
//   - KindMultiTurn talks to /v1/chat/completions and sends the entire
//     conversation as role-tagged messages
//   - KindSingleTurn talks to /v1/completions and sends only the latest
//     query as a bare prompt
//
// The central method, Complete, never returns an error: any transport
// or decode failure is logged and converted into a synthesized answer
// turn with a fixed body, so the conversation loop upstream has exactly
// one shape to handle.
package provider
