// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the in-memory session state: messages, conversations,
// and folders.
//
// The stores are plain data holders with mutation primitives only; all
// multi-step logic lives in the router and session packages. Records are
// kept by value behind id indexes, so flag updates are copy-on-write and
// callers never alias shared mutable structures.
//
// # Key Types
//
//   - MessageStore: ordered chat turns with flag updates and the pin board
//     projection
//   - ConversationRegistry: conversation records keyed by id and by anchor
//     message
//   - FolderDirectory: folder names in stable insertion order
//
// # Usage
//
//	msgs := store.NewMessageStore()
//	m := msgs.Append(model.NewUserMessage("hello"))
//	msgs.UpdateFlags(m.ID, store.FlagPatch{Pinned: store.Bool(true)})
//	board := msgs.Pinned()
//
// Unknown ids are silent no-ops on updates and deletes; lookups report a
// boolean so navigation can surface misses explicitly.
package store
