// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package interact implements the per-message actions: pin and expand
// toggles, clipboard copy, reply drafts, and share.
//
// Actions that mutate state go through the message store's flag patching
// so only the targeted flags change. Actions that leave state alone
// (copy, share) absorb or surface failures without ever touching the
// store - a failed copy must not look like a failed session.
//
// # Key Types
//
//   - Engine: action dispatcher bound to a message store
//   - ReplyDraft: composer seed quoting an earlier message by number
//   - Sharer: optional external publish destination
package interact
