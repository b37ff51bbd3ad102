// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides transcript archiving and change watching.
package storage

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the write bursts editors produce into a
// single change notification.
const debounceWindow = 250 * time.Millisecond

// =============================================================================
// TRANSCRIPT WATCHER
// =============================================================================

// Watcher reports external modifications to the active transcript
// file. The parent directory is watched rather than the file itself so
// atomic save-by-rename, which replaces the inode, keeps working.
type Watcher struct {
	mu      sync.Mutex
	path    string
	fs      *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
}

// NewWatcher starts watching the transcript at path. Close must be
// called when the session ends.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		fs:      fs,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Retarget switches the watcher to a different transcript file, as
// when :load changes the active transcript. Events for the old file
// stop; events for the new one start.
func (w *Watcher) Retarget(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	old := w.path
	w.path = abs
	w.mu.Unlock()

	if filepath.Dir(abs) != filepath.Dir(old) {
		if err := w.fs.Add(filepath.Dir(abs)); err != nil {
			return err
		}
		// Best effort; a stale directory watch only produces events
		// the path filter discards.
		w.fs.Remove(filepath.Dir(old))
	}
	return nil
}

func (w *Watcher) target() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Changes delivers one notification per burst of writes to the
// transcript. The channel has capacity one; unconsumed notifications
// coalesce.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.target() {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				fire = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case <-fire:
			timer = nil
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("transcript watcher error", "path", w.target(), "error", err)
		}
	}
}
