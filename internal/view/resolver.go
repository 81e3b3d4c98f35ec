// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package view computes the visible message subset for the current mode.
package view

import (
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/router"
	"github.com/jeranaias/parley-tui/internal/store"
)

// =============================================================================
// VIEW RESOLVER
// =============================================================================

// Resolve computes the ordered sequence of visible messages for the given
// routing state. It is a pure function: invoked on every render, it must be
// deterministic and must not mutate any store.
//
//   - new-chat mode hides history without deleting it (empty sequence)
//   - active mode shows every message tagged with the active conversation,
//     not only the anchor
//   - all-history mode shows the full store in arrival order
func Resolve(st router.State, msgs *store.MessageStore) []model.Message {
	switch st.Mode {
	case router.ModeNewChat:
		return nil
	case router.ModeActive:
		var out []model.Message
		for _, msg := range msgs.All() {
			if msg.ConversationID == st.ActiveConversation {
				out = append(out, msg)
			}
		}
		return out
	case router.ModeAllHistory:
		return msgs.All()
	default:
		return nil
	}
}

// =============================================================================
// NAVIGATION RESOLVER
// =============================================================================

// ResolveTarget finds the position of a message id within the currently
// visible ordering and yields it as a scroll target. When the id is not in
// the current view (for example, it belongs to a different conversation)
// the resolver reports ErrNotFound rather than guessing an adjacent
// position; callers may switch view mode and retry.
func ResolveTarget(visible []model.Message, id string) (int, error) {
	for i, msg := range visible {
		if msg.ID == id {
			return i, nil
		}
	}
	return 0, ErrNotFound
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrNotFound is returned when a navigation target is absent from the
// current view. Use errors.Is(err, view.ErrNotFound) to check for it.
var ErrNotFound = &NavError{Message: "message not in current view"}

// NavError represents a navigation resolution error.
type NavError struct {
	Message string
}

// Error implements the error interface.
func (e *NavError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing navigation errors.
func (e *NavError) Is(target error) bool {
	t, ok := target.(*NavError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}
