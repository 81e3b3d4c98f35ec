// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea messages the chat model reacts to.
package chat

import (
	"time"

	"github.com/jeranaias/parley-tui/internal/config"
)

// =============================================================================
// SEND LIFECYCLE MESSAGES
// =============================================================================

// ReplyReceivedMsg carries a completed webhook reply back to the event
// loop. The token identifies the flight it answers.
type ReplyReceivedMsg struct {
	Token string
	Text  string
}

// SendFailedMsg carries a failed send back to the event loop.
type SendFailedMsg struct {
	Token string
	Err   error
}

// =============================================================================
// CONFIGURATION MESSAGES
// =============================================================================

// ConfigReloadedMsg delivers a configuration the file watcher picked up
// while the program is running.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// StatusMsg shows a transient message in the status bar.
type StatusMsg struct {
	Text string
}

// ClearStatusMsg clears the transient status message.
type ClearStatusMsg struct {
	// SetAt guards against clearing a newer status.
	SetAt time.Time
}
