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
// CONVERSATION REGISTRY
// =============================================================================

// ConversationRegistry owns the conversation records ("questions") of one
// session. Each record links the message that started it to a folder.
type ConversationRegistry struct {
	order    []string
	byID     map[string]model.Conversation
	byAnchor map[string]string
}

// NewConversationRegistry creates an empty registry.
func NewConversationRegistry() *ConversationRegistry {
	return &ConversationRegistry{
		order:    make([]string, 0),
		byID:     make(map[string]model.Conversation),
		byAnchor: make(map[string]string),
	}
}

// Create generates a fresh conversation anchored at the given message, with
// a title derived from titleSource, and stores it. Returns the new record.
func (r *ConversationRegistry) Create(anchorMessageID, titleSource, folder string) model.Conversation {
	conv := model.NewConversation(anchorMessageID, titleSource, folder)
	r.order = append(r.order, conv.ID)
	r.byID[conv.ID] = conv
	r.byAnchor[anchorMessageID] = conv.ID
	return conv
}

// Get returns the conversation with the given id.
func (r *ConversationRegistry) Get(id string) (model.Conversation, bool) {
	conv, ok := r.byID[id]
	return conv, ok
}

// FindByAnchor resolves the conversation that a history item belongs to via
// its anchor message id.
func (r *ConversationRegistry) FindByAnchor(messageID string) (model.Conversation, bool) {
	id, ok := r.byAnchor[messageID]
	if !ok {
		return model.Conversation{}, false
	}
	return r.Get(id)
}

// Rename changes only the display title. Unknown ids are a silent no-op.
func (r *ConversationRegistry) Rename(id, newTitle string) bool {
	conv, ok := r.byID[id]
	if !ok {
		return false
	}
	conv.Title = newTitle
	conv.UpdatedAt = time.Now()
	r.byID[id] = conv
	return true
}

// Delete removes a conversation record. Deleting an unknown id is a no-op,
// keeping UI delete actions idempotent.
func (r *ConversationRegistry) Delete(id string) {
	conv, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byID, id)
	delete(r.byAnchor, conv.AnchorMessageID)
	for i, cid := range r.order {
		if cid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// List returns every conversation in creation order.
func (r *ConversationRegistry) List() []model.Conversation {
	out := make([]model.Conversation, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered conversations.
func (r *ConversationRegistry) Len() int {
	return len(r.order)
}
