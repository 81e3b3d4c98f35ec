// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package view computes the visible message subset for the current mode.
//
// Resolution is a pure read: the resolver never mutates a store and always
// produces the same ordering for the same inputs, so it is safe to call on
// every render.
//
// # Key Functions
//
//   - Resolve: (routing state, message store) → visible ordered messages
//   - ResolveTarget: message id → position within the visible ordering
//
// # Usage
//
//	visible := view.Resolve(rt.State(), msgs)
//	idx, err := view.ResolveTarget(visible, msgID)
//	if errors.Is(err, view.ErrNotFound) {
//	    // switch view mode and retry, or give up
//	}
package view
