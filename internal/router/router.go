// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router implements the conversation routing state machine.
package router

import (
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/store"
)

// =============================================================================
// MODE AND STATE
// =============================================================================

// Mode is the current view/composition mode of the session.
type Mode string

const (
	// ModeNewChat: no conversation selected, visible list empty, history kept.
	ModeNewChat Mode = "new_chat"
	// ModeActive: a single conversation is selected and visible.
	ModeActive Mode = "active"
	// ModeAllHistory: every stored message is visible.
	ModeAllHistory Mode = "all_history"
)

// State is the routing state, passed around as an explicit value so
// transitions stay testable in isolation. Invariant: Mode == ModeActive
// implies ActiveConversation names a record in the registry.
type State struct {
	Mode               Mode
	ActiveConversation string
	ActiveFolder       string

	// Epoch distinguishes successive new-chat surfaces so in-flight sends
	// issued before a reset can be recognized as stale.
	Epoch uint64
}

// Binding identifies the routing state an outbound send was issued under.
// Replies are only applied while their binding still matches.
type Binding struct {
	ConversationID string // empty for sends composed in new-chat mode
	Epoch          uint64 // only meaningful when ConversationID is empty
}

// =============================================================================
// ROUTER
// =============================================================================

// Router orchestrates mode transitions: starting a new chat, binding the
// first answered turn to a conversation, switching conversations from
// history, and renames/deletes. It owns the State; the registry and folder
// directory are collaborators. Every transition is total: unknown ids
// degrade to defined no-ops.
type Router struct {
	registry *store.ConversationRegistry
	folders  *store.FolderDirectory
	state    State
}

// New creates a router in new-chat mode with the default folder active.
func New(registry *store.ConversationRegistry, folders *store.FolderDirectory) *Router {
	folders.Ensure(model.DefaultFolder)
	return &Router{
		registry: registry,
		folders:  folders,
		state: State{
			Mode:         ModeNewChat,
			ActiveFolder: model.DefaultFolder,
		},
	}
}

// State returns a copy of the current routing state.
func (r *Router) State() State {
	return r.state
}

// CurrentBinding captures the routing state for an outbound send issued now.
func (r *Router) CurrentBinding() Binding {
	return Binding{
		ConversationID: r.state.ActiveConversation,
		Epoch:          r.state.Epoch,
	}
}

// Matches reports whether a binding still corresponds to the current
// routing state. A reply whose binding no longer matches is stale and must
// be discarded rather than applied to the wrong view.
func (r *Router) Matches(b Binding) bool {
	if b.ConversationID != "" {
		return r.state.ActiveConversation == b.ConversationID
	}
	return r.state.ActiveConversation == "" && r.state.Epoch == b.Epoch
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// StartNewChat moves to new-chat mode from any state. The active
// conversation pointer is cleared; message history and the registry are
// untouched. The epoch bump invalidates pending new-chat sends from the
// previous surface.
func (r *Router) StartNewChat() {
	r.state.Mode = ModeNewChat
	r.state.ActiveConversation = ""
	r.state.Epoch++
}

// ShowAllHistory switches to the all-history view. The active conversation
// pointer is retained so the view can be closed back into it.
func (r *Router) ShowAllHistory() {
	r.state.Mode = ModeAllHistory
}

// CloseAllHistory leaves the all-history view, returning to the active
// conversation when one is selected and to new-chat mode otherwise.
func (r *Router) CloseAllHistory() {
	if r.state.Mode != ModeAllHistory {
		return
	}
	if r.state.ActiveConversation != "" {
		r.state.Mode = ModeActive
	} else {
		r.state.Mode = ModeNewChat
	}
}

// RecordAnswer maps an answered user turn to a conversation identity and
// returns the conversation id. While a conversation is active this is
// idempotent: the active id is returned and nothing is created. From
// new-chat mode it creates the one and only conversation for this surface,
// tagged with the active folder, and activates it. This is the only path
// that creates a conversation.
func (r *Router) RecordAnswer(userMessageID, questionText string) string {
	if r.state.ActiveConversation != "" {
		return r.state.ActiveConversation
	}
	conv := r.registry.Create(userMessageID, questionText, r.state.ActiveFolder)
	r.state.Mode = ModeActive
	r.state.ActiveConversation = conv.ID
	return conv.ID
}

// OpenHistoryItem resolves the conversation a history item belongs to and
// activates it. Folder selection follows the opened conversation. An
// unresolvable message id leaves the state unchanged.
func (r *Router) OpenHistoryItem(messageID string) (model.Conversation, bool) {
	conv, ok := r.registry.FindByAnchor(messageID)
	if !ok {
		return model.Conversation{}, false
	}
	r.state.Mode = ModeActive
	r.state.ActiveConversation = conv.ID
	r.state.ActiveFolder = conv.Folder
	return conv, true
}

// ActivateConversation selects a conversation by id, adopting its folder.
// Unknown ids leave the state unchanged.
func (r *Router) ActivateConversation(id string) (model.Conversation, bool) {
	conv, ok := r.registry.Get(id)
	if !ok {
		return model.Conversation{}, false
	}
	r.state.Mode = ModeActive
	r.state.ActiveConversation = conv.ID
	r.state.ActiveFolder = conv.Folder
	return conv, true
}

// CreateProject ensures the folder exists, makes it the active folder, and
// opens a blank composing surface tagged with it.
func (r *Router) CreateProject(name string) {
	r.folders.Ensure(name)
	r.state.ActiveFolder = name
	r.StartNewChat()
}

// RenameConversation changes a conversation's display title only.
func (r *Router) RenameConversation(id, newTitle string) bool {
	return r.registry.Rename(id, newTitle)
}

// DeleteConversation removes the record. Deleting the active conversation
// forces a transition back to new-chat mode; deleting an unknown id is a
// no-op.
func (r *Router) DeleteConversation(id string) {
	r.registry.Delete(id)
	if r.state.ActiveConversation == id {
		r.StartNewChat()
	}
}
