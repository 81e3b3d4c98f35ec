// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for messages, conversations,
// and folders.
package model

import (
	"time"

	"github.com/jeranaias/parley-tui/internal/util"
)

// TitleMaxRunes is the maximum number of runes taken from the title source
// before the ellipsis marker is appended.
const TitleMaxRunes = 80

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is a named thread ("question") anchoring a chat history to a
// folder and the message that started it. Conversation identity is
// independent of message identity; the anchor is only a link.
type Conversation struct {
	// Identity
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Grouping
	Folder string `json:"folder"`

	// Anchor is the message that originated the conversation.
	AnchorMessageID string `json:"anchor_message_id"`
}

// NewConversation creates a conversation with a generated ID and a title
// derived from the given source text.
func NewConversation(anchorMessageID, titleSource, folder string) Conversation {
	now := time.Now()
	return Conversation{
		ID:              newID("conv"),
		Title:           DeriveTitle(titleSource),
		Folder:          folder,
		AnchorMessageID: anchorMessageID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// DeriveTitle produces a display title from the first user message text:
// the first TitleMaxRunes runes, with the ellipsis marker appended only when
// the source was longer.
func DeriveTitle(source string) string {
	source = util.CollapseNewlines(source)
	if util.RuneLen(source) <= TitleMaxRunes {
		return source
	}
	return util.TruncateRunesNoEllipsis(source, TitleMaxRunes) + util.Ellipsis
}

// =============================================================================
// FOLDER TYPE
// =============================================================================

// Folder is a user-named grouping bucket for conversations. The name is the
// identity; two folders never share a name.
type Folder struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultFolder is the folder conversations land in before the user has
// named a project.
const DefaultFolder = "General"
