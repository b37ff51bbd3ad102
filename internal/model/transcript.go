// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jeranaias/gpterm-tui/internal/util"
)

// =============================================================================
// TRANSCRIPT ERRORS
// =============================================================================

// ErrTranscriptNotFound indicates the transcript file does not exist.
var ErrTranscriptNotFound = errors.New("transcript not found")

// ErrTranscriptMalformed indicates the transcript file exists but does
// not parse as a flat turn array.
var ErrTranscriptMalformed = errors.New("transcript malformed")

// =============================================================================
// TRANSCRIPT FORMAT
// =============================================================================

// transcriptRecord is the persisted shape of a single turn. The
// transcript is a flat JSON array of these records; IDs, timestamps,
// and sender labels are session-local and deliberately not persisted.
type transcriptRecord struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// DecodeTranscript parses raw transcript bytes into turns. Sender
// labels are reconstructed from roles: user turns get the given
// username, everything else keeps its role name.
func DecodeTranscript(data []byte, username string) ([]Turn, error) {
	var records []transcriptRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscriptMalformed, err)
	}

	turns := make([]Turn, 0, len(records))
	for i, rec := range records {
		if !rec.Role.Valid() {
			return nil, fmt.Errorf("%w: record %d has unknown role %q", ErrTranscriptMalformed, i, rec.Role)
		}
		sender := rec.Role.String()
		if rec.Role == RoleUser && username != "" {
			sender = username
		}
		turns = append(turns, NewTurn(rec.Role, sender, rec.Content))
	}
	return turns, nil
}

// EncodeTranscript serializes turns to the flat transcript format.
// System turns are included so a round trip preserves protocol context.
func EncodeTranscript(turns []Turn) ([]byte, error) {
	records := make([]transcriptRecord, 0, len(turns))
	for _, t := range turns {
		records = append(records, transcriptRecord{Role: t.Role, Content: t.Body})
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode transcript: %w", err)
	}
	return data, nil
}

// =============================================================================
// LOG PERSISTENCE
// =============================================================================

// Load reads the transcript at path and replaces the log wholesale.
// All-or-nothing: on any error the in-memory log is left untouched.
func (l *ConversationLog) Load(path, username string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrTranscriptNotFound, path)
		}
		return fmt.Errorf("failed to read transcript %s: %w", path, err)
	}

	turns, err := DecodeTranscript(data, username)
	if err != nil {
		return err
	}

	l.Replace(turns)
	return nil
}

// Save writes the whole log to path atomically.
func (l *ConversationLog) Save(path string) error {
	data, err := EncodeTranscript(l.turns)
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write transcript %s: %w", path, err)
	}
	return nil
}
