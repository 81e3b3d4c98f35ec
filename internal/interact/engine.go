// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package interact implements per-message actions on the session.
package interact

import (
	"log/slog"

	"github.com/atotto/clipboard"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/store"
	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// INTERACTION ENGINE
// =============================================================================

// CopyFunc writes text to the system clipboard.
type CopyFunc func(text string) error

// Sharer publishes a message to an external destination. Implementations
// decide the destination; the engine only gates on availability.
type Sharer interface {
	Share(msg model.Message) error
}

// Engine applies per-message actions against the message store. Flag
// toggles are full-record replacements; unknown message ids are silent
// no-ops so a stale reference can never corrupt another record.
type Engine struct {
	msgs   *store.MessageStore
	copy   CopyFunc
	sharer Sharer
	logger *slog.Logger
}

// Option configures the engine.
type Option func(*Engine)

// WithCopyFunc overrides the clipboard writer. Tests inject a fake here.
func WithCopyFunc(fn CopyFunc) Option {
	return func(e *Engine) { e.copy = fn }
}

// WithSharer enables the share action.
func WithSharer(s Sharer) Option {
	return func(e *Engine) { e.sharer = s }
}

// WithLogger overrides the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine over the given message store. Without a
// configured Sharer the share action reports ErrShareUnavailable.
func NewEngine(msgs *store.MessageStore, opts ...Option) *Engine {
	e := &Engine{
		msgs:   msgs,
		copy:   clipboard.WriteAll,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// =============================================================================
// FLAG TOGGLES
// =============================================================================

// TogglePin flips the pinned flag on a message. The rest of the record is
// untouched. Reports the updated message, or false for an unknown id.
func (e *Engine) TogglePin(messageID string) (model.Message, bool) {
	msg, ok := e.msgs.FindByID(messageID)
	if !ok {
		return model.Message{}, false
	}
	return e.msgs.UpdateFlags(messageID, store.FlagPatch{Pinned: store.Bool(!msg.Pinned)})
}

// ToggleExpand flips the expanded flag on a message.
func (e *Engine) ToggleExpand(messageID string) (model.Message, bool) {
	msg, ok := e.msgs.FindByID(messageID)
	if !ok {
		return model.Message{}, false
	}
	return e.msgs.UpdateFlags(messageID, store.FlagPatch{Expanded: store.Bool(!msg.Expanded)})
}

// =============================================================================
// COPY
// =============================================================================

// Copy places the full message text on the system clipboard. Clipboard
// failures are absorbed: the session state never changes either way, so a
// headless environment just logs and moves on. Reports whether the text
// made it to the clipboard.
func (e *Engine) Copy(messageID string) bool {
	msg, ok := e.msgs.FindByID(messageID)
	if !ok {
		return false
	}
	if err := e.copy(msg.Text); err != nil {
		e.logger.Warn("clipboard copy failed", "message_id", messageID, "error", err)
		return false
	}
	return true
}

// =============================================================================
// REPLY DRAFTS
// =============================================================================

// quotePreviewRunes bounds the quoted excerpt in a reply draft.
const quotePreviewRunes = 120

// ReplyDraft seeds the composer with a reference to an earlier message.
// Number is the message's 1-based position in session arrival order, so
// the reference stays meaningful however the view is filtered.
type ReplyDraft struct {
	MessageID string
	Number    int
	Quote     string
}

// Reply builds a draft quoting the referenced message. Unknown ids report
// false rather than producing a dangling reference.
func (e *Engine) Reply(messageID string) (ReplyDraft, bool) {
	msg, ok := e.msgs.FindByID(messageID)
	if !ok {
		return ReplyDraft{}, false
	}
	return ReplyDraft{
		MessageID: messageID,
		Number:    e.msgs.Position(messageID),
		Quote:     util.TruncateRunes(util.CollapseNewlines(msg.Text), quotePreviewRunes),
	}, true
}

// =============================================================================
// SHARE
// =============================================================================

// Share publishes a message through the configured Sharer. Unknown ids
// report false like the flag toggles do; ErrShareUnavailable is reserved
// for a message that exists but has no destination to go to.
func (e *Engine) Share(messageID string) (bool, error) {
	msg, ok := e.msgs.FindByID(messageID)
	if !ok {
		return false, nil
	}
	if e.sharer == nil {
		return true, ErrShareUnavailable
	}
	return true, e.sharer.Share(msg)
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrShareUnavailable marks a share request with no destination to serve
// it: no Sharer is configured.
var ErrShareUnavailable = &ShareError{Message: "share destination unavailable"}

// ShareError represents a share action failure.
type ShareError struct {
	Message string
}

// Error implements the error interface.
func (e *ShareError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing share errors.
func (e *ShareError) Is(target error) bool {
	t, ok := target.(*ShareError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}
