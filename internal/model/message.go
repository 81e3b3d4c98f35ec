// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for messages, conversations,
// and folders.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role identifies the author of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAI:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single chat turn. Role, text, and timestamp are write-once;
// Pinned and Expanded are the only mutable fields and are only changed
// through the message store's flag update path. ConversationID is assigned
// once, when the turn is mapped to a conversation identity.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`

	// Content
	Text string `json:"text"`

	// Interaction state
	Pinned   bool `json:"pinned"`
	Expanded bool `json:"expanded"`

	// Back-reference to the owning conversation; empty until the turn has
	// been answered inside a conversation.
	ConversationID string `json:"conversation_id,omitempty"`
}

// NewMessage creates a message with a generated ID.
func NewMessage(role Role, text string) Message {
	return Message{
		ID:        newID("msg"),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewUserMessage creates a user-authored message.
func NewUserMessage(text string) Message {
	return NewMessage(RoleUser, text)
}

// NewAIMessage creates an assistant-authored message.
func NewAIMessage(text string) Message {
	return NewMessage(RoleAI, text)
}

// Preview returns a single-line, truncated preview of the message text.
func (m Message) Preview(maxRunes int) string {
	return util.TruncateRunes(util.CollapseNewlines(m.Text), maxRunes)
}

// InConversation reports whether the message has been mapped to a
// conversation identity.
func (m Message) InConversation() bool {
	return m.ConversationID != ""
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// newID creates a unique, prefixed identifier.
func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
