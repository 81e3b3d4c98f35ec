// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the in-memory session state: messages, conversations,
// and folders.
package store

import (
	"time"

	"github.com/jeranaias/parley-tui/internal/model"
)

// =============================================================================
// FOLDER DIRECTORY
// =============================================================================

// FolderDirectory is the set of project folder names. Names are the
// identity; insertion order is preserved because recency of creation is
// meaningful to the user.
type FolderDirectory struct {
	order  []string
	byName map[string]model.Folder
}

// NewFolderDirectory creates an empty directory.
func NewFolderDirectory() *FolderDirectory {
	return &FolderDirectory{
		order:  make([]string, 0),
		byName: make(map[string]model.Folder),
	}
}

// Ensure inserts the folder name if absent. Idempotent: an existing folder
// is returned unchanged and keeps its position.
func (d *FolderDirectory) Ensure(name string) model.Folder {
	if f, ok := d.byName[name]; ok {
		return f
	}
	f := model.Folder{Name: name, CreatedAt: time.Now()}
	d.order = append(d.order, name)
	d.byName[name] = f
	return f
}

// Contains reports whether the folder name exists.
func (d *FolderDirectory) Contains(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// List returns the folders in stable insertion order (new folders appended,
// never re-sorted).
func (d *FolderDirectory) List() []model.Folder {
	out := make([]model.Folder, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.byName[name])
	}
	return out
}

// Len returns the number of folders.
func (d *FolderDirectory) Len() int {
	return len(d.order)
}
