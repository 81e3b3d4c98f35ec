// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the in-memory session state: messages, conversations,
// and folders.
package store

import (
	"github.com/jeranaias/parley-tui/internal/model"
)

// =============================================================================
// FLAG PATCH
// =============================================================================

// FlagPatch describes a partial update of a message's interaction flags.
// Nil fields are left untouched.
type FlagPatch struct {
	Pinned   *bool
	Expanded *bool
}

// Bool is a convenience for building flag patches inline.
func Bool(v bool) *bool {
	return &v
}

// =============================================================================
// MESSAGE STORE
// =============================================================================

// MessageStore is the ordered collection of chat turns for one session.
// Records are held by value in an id index, so every update replaces the
// record wholesale (copy-on-write) instead of mutating shared state.
// Messages are created once and never destroyed here; arrival order is
// preserved for the lifetime of the session.
type MessageStore struct {
	order []string
	byID  map[string]model.Message
}

// NewMessageStore creates an empty message store.
func NewMessageStore() *MessageStore {
	return &MessageStore{
		order: make([]string, 0),
		byID:  make(map[string]model.Message),
	}
}

// Append inserts a message preserving arrival order. Used for both user and
// assistant turns. Returns the stored record.
func (s *MessageStore) Append(msg model.Message) model.Message {
	if _, exists := s.byID[msg.ID]; !exists {
		s.order = append(s.order, msg.ID)
	}
	s.byID[msg.ID] = msg
	return msg
}

// UpdateFlags applies a flag patch to the message with the given id.
// Unknown ids are a silent no-op: the second return value is false and no
// state changes. Text, role, and timestamp are never touched here.
func (s *MessageStore) UpdateFlags(id string, patch FlagPatch) (model.Message, bool) {
	msg, ok := s.byID[id]
	if !ok {
		return model.Message{}, false
	}
	if patch.Pinned != nil {
		msg.Pinned = *patch.Pinned
	}
	if patch.Expanded != nil {
		msg.Expanded = *patch.Expanded
	}
	s.byID[id] = msg
	return msg, true
}

// BindConversation assigns the message to a conversation. The binding is
// write-once: a message already mapped to a conversation keeps its tag.
// Unknown ids are a silent no-op.
func (s *MessageStore) BindConversation(id, conversationID string) bool {
	msg, ok := s.byID[id]
	if !ok || msg.ConversationID != "" {
		return false
	}
	msg.ConversationID = conversationID
	s.byID[id] = msg
	return true
}

// FindByID returns the message with the given id.
func (s *MessageStore) FindByID(id string) (model.Message, bool) {
	msg, ok := s.byID[id]
	return msg, ok
}

// All returns every message in arrival order. The slice is a fresh copy;
// callers must not assume index stability across mutations.
func (s *MessageStore) All() []model.Message {
	out := make([]model.Message, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of stored messages.
func (s *MessageStore) Len() int {
	return len(s.order)
}

// Position returns the 1-based display number of a message in store order,
// or 0 if the id is unknown.
func (s *MessageStore) Position(id string) int {
	for i, mid := range s.order {
		if mid == id {
			return i + 1
		}
	}
	return 0
}

// =============================================================================
// PIN BOARD PROJECTION
// =============================================================================

// Pinned returns all pinned messages in store order. The pin board is a
// whole-session view: it spans every conversation regardless of the
// currently active one.
func (s *MessageStore) Pinned() []model.Message {
	var out []model.Message
	for _, id := range s.order {
		if msg := s.byID[id]; msg.Pinned {
			out = append(out, msg)
		}
	}
	return out
}
