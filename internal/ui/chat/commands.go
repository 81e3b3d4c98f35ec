// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file builds the Bubble Tea commands the chat model dispatches.
package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/session"
)

// =============================================================================
// SEND COMMAND
// =============================================================================

// sendCmd runs the outbound send off the event loop and feeds the outcome
// back as a message keyed by the flight token.
func (m Model) sendCmd(flight session.Flight) tea.Cmd {
	coord := m.coord
	return func() tea.Msg {
		reply, err := coord.Dispatch(flight)
		if err != nil {
			return SendFailedMsg{Token: flight.Token, Err: err}
		}
		return ReplyReceivedMsg{Token: flight.Token, Text: reply}
	}
}

// =============================================================================
// STATUS COMMANDS
// =============================================================================

// statusDisplayDuration is how long transient status messages stay visible.
const statusDisplayDuration = 3 * time.Second

// clearStatusCmd schedules the removal of a transient status message.
func clearStatusCmd(setAt time.Time) tea.Cmd {
	return tea.Tick(statusDisplayDuration, func(time.Time) tea.Msg {
		return ClearStatusMsg{SetAt: setAt}
	})
}
