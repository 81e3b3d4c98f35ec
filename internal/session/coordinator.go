// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session coordinates the conversational workspace state.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/parley-tui/internal/client"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/router"
	"github.com/jeranaias/parley-tui/internal/store"
	"github.com/jeranaias/parley-tui/internal/view"
)

// =============================================================================
// COORDINATOR
// =============================================================================

// Coordinator owns one session's state: the message store, conversation
// registry, folder directory, and routing state machine. All mutations run
// synchronously on the caller's event loop; the only asynchronous edge is
// the outbound send, whose completion must pass the staleness check before
// it is applied.
type Coordinator struct {
	sessionID string
	startTime time.Time

	msgs     *store.MessageStore
	registry *store.ConversationRegistry
	folders  *store.FolderDirectory
	router   *router.Router

	sender  client.Sender
	pending *pendingTable
	logger  *slog.Logger
}

// New creates a coordinator for a fresh session.
func New(sender client.Sender) *Coordinator {
	registry := store.NewConversationRegistry()
	folders := store.NewFolderDirectory()
	return &Coordinator{
		sessionID: generateSessionID(),
		startTime: time.Now(),
		msgs:      store.NewMessageStore(),
		registry:  registry,
		folders:   folders,
		router:    router.New(registry, folders),
		sender:    sender,
		pending:   newPendingTable(),
		logger:    slog.Default(),
	}
}

// SetLogger overrides the coordinator logger.
func (c *Coordinator) SetLogger(l *slog.Logger) {
	c.logger = l
}

// =============================================================================
// ACCESSORS
// =============================================================================

// SessionID returns the stable session identifier used for outbound sends.
func (c *Coordinator) SessionID() string {
	return c.sessionID
}

// StartTime returns when the session started.
func (c *Coordinator) StartTime() time.Time {
	return c.startTime
}

// Messages returns the session's message store.
func (c *Coordinator) Messages() *store.MessageStore {
	return c.msgs
}

// Registry returns the session's conversation registry.
func (c *Coordinator) Registry() *store.ConversationRegistry {
	return c.registry
}

// Folders returns the session's folder directory.
func (c *Coordinator) Folders() *store.FolderDirectory {
	return c.folders
}

// State returns a copy of the current routing state.
func (c *Coordinator) State() router.State {
	return c.router.State()
}

// InFlight returns the number of sends awaiting a reply.
func (c *Coordinator) InFlight() int {
	return c.pending.len()
}

// =============================================================================
// VIEW QUERIES
// =============================================================================

// Visible resolves the messages shown under the current mode.
func (c *Coordinator) Visible() []model.Message {
	return view.Resolve(c.router.State(), c.msgs)
}

// PinBoard returns every pinned message across the whole session.
func (c *Coordinator) PinBoard() []model.Message {
	return c.msgs.Pinned()
}

// JumpTo maps a message id to its position in the current view. Misses are
// reported as view.ErrNotFound so the caller can switch modes and retry.
func (c *Coordinator) JumpTo(messageID string) (int, error) {
	return view.ResolveTarget(c.Visible(), messageID)
}

// =============================================================================
// OUTBOUND SENDS
// =============================================================================

// Flight is one in-flight send: the appended user turn, the token used to
// apply its completion, and the context the request must run under. The
// context is cancelled if routing moves away from the surface the send was
// issued on.
type Flight struct {
	Token       string
	Context     context.Context
	UserMessage model.Message
}

// Send appends the user turn and registers the in-flight association with
// the current routing state. In an active conversation the turn is tagged
// immediately; on a new-chat surface it stays untagged until the answer
// arrives and RecordAnswer maps it.
func (c *Coordinator) Send(text string) Flight {
	binding := c.router.CurrentBinding()

	user := model.NewUserMessage(text)
	user.ConversationID = binding.ConversationID
	c.msgs.Append(user)

	ctx, cancel := context.WithCancel(context.Background())
	token := "flight_" + uuid.NewString()
	c.pending.register(token, flightRecord{
		binding:       binding,
		userMessageID: user.ID,
		userText:      text,
		cancel:        cancel,
	})

	return Flight{Token: token, Context: ctx, UserMessage: user}
}

// Dispatch runs the outbound send for a flight and returns the reply text.
// Intended to be called off the event loop; the flight's context aborts it
// when the association is cancelled.
func (c *Coordinator) Dispatch(f Flight) (string, error) {
	return c.sender.Send(f.Context, f.UserMessage.Text, c.sessionID)
}

// ApplyReply feeds a completed send back into the session as one logical
// transition: map the answered turn to its conversation (creating it if
// this was the surface's first answer), tag both turns, and append the
// assistant message. A completion whose binding no longer matches current
// routing state is discarded with ErrStaleReply - never applied to the
// wrong view.
func (c *Coordinator) ApplyReply(token, replyText string) (model.Message, error) {
	rec, ok := c.pending.take(token)
	if !ok || !c.router.Matches(rec.binding) {
		if ok && rec.cancel != nil {
			rec.cancel()
		}
		c.logger.Debug("discarding stale reply", "token", token)
		return model.Message{}, ErrStaleReply
	}
	if rec.cancel != nil {
		defer rec.cancel()
	}

	convID := c.router.RecordAnswer(rec.userMessageID, rec.userText)
	c.msgs.BindConversation(rec.userMessageID, convID)

	// The first answer on a new-chat surface resolves it into a conversation.
	// Sends still awaiting a reply from that same surface belong to it too:
	// rebind them so their answers apply instead of reading as stale, and tag
	// their user turns so they are visible in the active view.
	if rec.binding.ConversationID == "" {
		migrated := c.pending.retarget(rec.binding, router.Binding{ConversationID: convID})
		for _, userID := range migrated {
			c.msgs.BindConversation(userID, convID)
		}
	}

	ai := model.NewAIMessage(replyText)
	ai.ConversationID = convID
	c.msgs.Append(ai)
	return ai, nil
}

// ApplyError resolves a failed send. Stale failures are discarded like
// stale replies; live ones surface the original error so the caller layer
// can present it. The store is never mutated and no conversation is
// created for a turn that was never answered.
func (c *Coordinator) ApplyError(token string, sendErr error) error {
	rec, ok := c.pending.take(token)
	if ok && rec.cancel != nil {
		rec.cancel()
	}
	if !ok || !c.router.Matches(rec.binding) {
		c.logger.Debug("discarding stale send failure", "token", token)
		return ErrStaleReply
	}
	return sendErr
}

// =============================================================================
// ROUTING TRANSITIONS
// =============================================================================

// cancelStalePending cuts loose every in-flight send whose binding no
// longer matches routing state. Run after each transition.
func (c *Coordinator) cancelStalePending() {
	c.pending.cancelWhere(c.router.Matches)
}

// StartNewChat opens a blank composing surface. History is preserved;
// pending new-chat sends from the previous surface are cancelled.
func (c *Coordinator) StartNewChat() {
	c.router.StartNewChat()
	c.cancelStalePending()
}

// ShowAllHistory switches to the all-history view.
func (c *Coordinator) ShowAllHistory() {
	c.router.ShowAllHistory()
}

// CloseAllHistory returns from the all-history view.
func (c *Coordinator) CloseAllHistory() {
	c.router.CloseAllHistory()
}

// OpenHistoryItem activates the conversation a history item anchors.
func (c *Coordinator) OpenHistoryItem(messageID string) (model.Conversation, bool) {
	conv, ok := c.router.OpenHistoryItem(messageID)
	if ok {
		c.cancelStalePending()
	}
	return conv, ok
}

// ActivateConversation selects a conversation by id.
func (c *Coordinator) ActivateConversation(id string) (model.Conversation, bool) {
	conv, ok := c.router.ActivateConversation(id)
	if ok {
		c.cancelStalePending()
	}
	return conv, ok
}

// CreateProject ensures the folder, activates it, and starts a new chat.
func (c *Coordinator) CreateProject(name string) {
	c.router.CreateProject(name)
	c.cancelStalePending()
}

// RenameConversation changes a conversation's title.
func (c *Coordinator) RenameConversation(id, newTitle string) bool {
	return c.router.RenameConversation(id, newTitle)
}

// DeleteConversation removes a conversation; deleting the active one falls
// back to new-chat mode and cancels its in-flight sends.
func (c *Coordinator) DeleteConversation(id string) {
	c.router.DeleteConversation(id)
	c.cancelStalePending()
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrStaleReply marks a completion that arrived for a surface the user has
// left. It is discarded, not applied, and not a user-visible failure.
var ErrStaleReply = &StaleError{Message: "reply no longer matches routing state"}

// StaleError represents a stale-completion outcome.
type StaleError struct {
	Message string
}

// Error implements the error interface.
func (e *StaleError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing stale errors.
func (e *StaleError) Is(target error) bool {
	t, ok := target.(*StaleError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateSessionID creates a unique session ID.
func generateSessionID() string {
	return "sess_" + time.Now().Format("20060102_150405") + "_" + uuid.NewString()[:8]
}
