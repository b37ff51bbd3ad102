// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides transcript archiving and change watching.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/gpterm-tui/internal/model"
	"github.com/jeranaias/gpterm-tui/internal/util"
)

// ErrArchiveNotFound indicates the requested archive entry does not exist.
var ErrArchiveNotFound = errors.New("archived transcript not found")

// =============================================================================
// ARCHIVE METADATA
// =============================================================================

// ArchiveMeta describes one archived transcript for listings.
type ArchiveMeta struct {
	// ID is the filename stem; it doubles as the load/delete handle.
	ID string `json:"id"`

	// UpdatedAt is the file modification time.
	UpdatedAt time.Time `json:"updated_at"`

	// TurnCount is the number of persisted turns.
	TurnCount int `json:"turn_count"`

	// Preview is the first user turn, truncated.
	Preview string `json:"preview"`
}

// =============================================================================
// ARCHIVE STORE
// =============================================================================

// ArchiveStore persists transcripts as flat files under one directory.
type ArchiveStore struct {
	// BaseDir is the archive directory.
	// Default: ~/.gpterm/transcripts/
	BaseDir string

	// MaxEntries limits stored transcripts (0 = unlimited). Oldest
	// entries are pruned first.
	MaxEntries int
}

// NewArchiveStore creates an archive store under the user's home.
func NewArchiveStore() (*ArchiveStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewArchiveStoreWithDir(filepath.Join(homeDir, ".gpterm", "transcripts"))
}

// NewArchiveStoreWithDir creates a store with a custom directory.
func NewArchiveStoreWithDir(baseDir string) (*ArchiveStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &ArchiveStore{
		BaseDir:    baseDir,
		MaxEntries: 100,
	}, nil
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save archives the log under name, generating an ID when name is
// empty. Returns the entry's metadata.
func (s *ArchiveStore) Save(log *model.ConversationLog, name string) (ArchiveMeta, error) {
	id := sanitizeID(name)
	if id == "" {
		id = uuid.New().String()
	}

	turns := log.Snapshot()
	data, err := model.EncodeTranscript(turns)
	if err != nil {
		return ArchiveMeta{}, err
	}

	if err := util.AtomicWriteFile(s.filePath(id), data, 0644); err != nil {
		return ArchiveMeta{}, fmt.Errorf("failed to archive transcript: %w", err)
	}

	if s.MaxEntries > 0 {
		s.enforceLimit()
	}

	return ArchiveMeta{
		ID:        id,
		UpdatedAt: time.Now(),
		TurnCount: len(turns),
		Preview:   previewOf(turns),
	}, nil
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Load reads the archived transcript with the given ID.
func (s *ArchiveStore) Load(id, username string) ([]model.Turn, error) {
	data, err := os.ReadFile(s.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, id)
		}
		return nil, err
	}
	return model.DecodeTranscript(data, username)
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// List returns all archived transcripts, most recently updated first.
// Unreadable or malformed entries are skipped rather than failing the
// whole listing.
func (s *ArchiveStore) List() ([]ArchiveMeta, error) {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ArchiveMeta{}, nil
		}
		return nil, err
	}

	var metas []ArchiveMeta
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")

		info, err := entry.Info()
		if err != nil {
			continue
		}
		data, err := os.ReadFile(s.filePath(id))
		if err != nil {
			continue
		}
		turns, err := model.DecodeTranscript(data, "")
		if err != nil {
			continue
		}

		metas = append(metas, ArchiveMeta{
			ID:        id,
			UpdatedAt: info.ModTime(),
			TurnCount: len(turns),
			Preview:   previewOf(turns),
		})
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].UpdatedAt.After(metas[j].UpdatedAt)
	})
	return metas, nil
}

// Delete removes an archived transcript.
func (s *ArchiveStore) Delete(id string) error {
	err := os.Remove(s.filePath(id))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrArchiveNotFound, id)
	}
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *ArchiveStore) filePath(id string) string {
	return filepath.Join(s.BaseDir, id+".json")
}

// enforceLimit removes the oldest entries if over MaxEntries.
func (s *ArchiveStore) enforceLimit() {
	metas, err := s.List()
	if err != nil || len(metas) <= s.MaxEntries {
		return
	}
	// List is newest-first; everything past MaxEntries goes.
	for _, meta := range metas[s.MaxEntries:] {
		s.Delete(meta.ID)
	}
}

// previewOf extracts the first user turn, truncated to one short line.
func previewOf(turns []model.Turn) string {
	for _, t := range turns {
		if t.Role == model.RoleUser && t.Body != "" {
			preview := strings.ReplaceAll(t.Body, "\n", " ")
			preview = strings.ReplaceAll(preview, "\r", "")
			return util.TruncateRunes(preview, 50)
		}
	}
	return "empty conversation"
}

// sanitizeID strips path separators and whitespace from a user-given
// archive name so it stays inside BaseDir.
func sanitizeID(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, ".json")
	name = strings.ReplaceAll(name, string(os.PathSeparator), "-")
	name = strings.ReplaceAll(name, "..", "")
	return name
}
