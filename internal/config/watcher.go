// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// Watcher reloads the configuration when the config file changes on disk
// and hands each successfully loaded config to the callback. Invalid
// intermediate states (editors write in multiple steps) are skipped.
type Watcher struct {
	path     string
	onReload func(*Config)
	debounce time.Duration
	logger   *slog.Logger

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	lastHit time.Time
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, onReload func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     path,
		onReload: onReload,
		debounce: 250 * time.Millisecond,
		logger:   slog.Default(),
		watcher:  fsw,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching for config file changes. The parent directory is
// watched rather than the file itself so atomic replace-by-rename saves
// are still observed.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// processEvents handles filesystem events until the watcher is closed.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

// reload re-reads the config file, debouncing bursts of events from a
// single save.
func (w *Watcher) reload() {
	w.mu.Lock()
	if time.Since(w.lastHit) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.lastHit = time.Now()
	w.mu.Unlock()

	cfg, err := LoadFromPath(w.path)
	if err != nil {
		w.logger.Warn("config reload skipped", "path", w.path, "error", err)
		return
	}
	w.onReload(cfg)
}
