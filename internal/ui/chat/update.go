// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains the Bubble Tea update loop.
package chat

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/export"
	"github.com/jeranaias/parley-tui/internal/interact"
	"github.com/jeranaias/parley-tui/internal/session"
	"github.com/jeranaias/parley-tui/internal/view"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case spinner.TickMsg:
		if m.state != StateAwaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ReplyReceivedMsg:
		return m.handleReply(msg)

	case SendFailedMsg:
		return m.handleSendFailure(msg)

	case ConfigReloadedMsg:
		m.cfg = msg.Config
		return m.setStatus("Configuration reloaded")

	case StatusMsg:
		m.statusMsg = msg.Text
		m.statusSetAt = time.Now()
		return m, clearStatusCmd(m.statusSetAt)

	case ClearStatusMsg:
		if msg.SetAt.Equal(m.statusSetAt) {
			m.statusMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	// Header, input area, and status bar take fixed rows.
	vpHeight := msg.Height - 6
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = vpHeight
	m.input.Width = msg.Width - 4
	m.prompt.Width = msg.Width - 4

	m.updateViewport()
	return m
}

// =============================================================================
// SEND COMPLETIONS
// =============================================================================

func (m Model) handleReply(msg ReplyReceivedMsg) (tea.Model, tea.Cmd) {
	_, err := m.coord.ApplyReply(msg.Token, msg.Text)
	if errors.Is(err, session.ErrStaleReply) {
		// The user left this surface; the reply was discarded.
		if m.coord.InFlight() == 0 && m.state == StateAwaiting {
			m.state = StateReady
		}
		return m, nil
	}

	m.inFlightUser = nil
	m.pendingToken = ""
	m.state = StateReady
	m.lastError = nil
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleSendFailure(msg SendFailedMsg) (tea.Model, tea.Cmd) {
	err := m.coord.ApplyError(msg.Token, msg.Err)
	if errors.Is(err, session.ErrStaleReply) {
		if m.coord.InFlight() == 0 && m.state == StateAwaiting {
			m.state = StateReady
		}
		return m, nil
	}

	m.inFlightUser = nil
	m.pendingToken = ""
	m.state = StateError
	m.lastError = err
	m.updateViewport()
	return m, nil
}

// =============================================================================
// KEY DISPATCH
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayHelp:
		return m.handleHelpKey(msg)
	case overlayRename, overlayProject:
		return m.handlePromptKey(msg)
	case overlayHistory:
		return m.handleHistoryKey(msg)
	case overlayPins:
		return m.handlePinsKey(msg)
	}

	return m.handleMainKey(msg)
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Close) || key.Matches(msg, m.keyMap.Help) {
		m.overlay = overlayNone
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Close):
		m.overlay = overlayNone
		m.prompt.Reset()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		name := strings.TrimSpace(m.prompt.Value())
		which := m.overlay
		m.overlay = overlayNone
		m.prompt.Reset()
		if name == "" {
			return m, nil
		}
		if which == overlayProject {
			m.coord.CreateProject(name)
			m.inFlightUser = nil
			m.cursor = -1
			m.updateViewport()
			return m.setStatus(fmt.Sprintf("Project %q created", name))
		}
		if id := m.coord.State().ActiveConversation; id != "" {
			m.coord.RenameConversation(id, name)
			return m.setStatus("Conversation renamed")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	convs := m.coord.Registry().List()

	switch {
	case key.Matches(msg, m.keyMap.Close), key.Matches(msg, m.keyMap.History):
		m.overlay = overlayNone
		m.coord.CloseAllHistory()
		m.updateViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.listIndex > 0 {
			m.listIndex--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.listIndex < len(convs)-1 {
			m.listIndex++
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		if m.listIndex >= 0 && m.listIndex < len(convs) {
			conv := convs[m.listIndex]
			m.coord.ActivateConversation(conv.ID)
			m.overlay = overlayNone
			m.inFlightUser = nil
			m.cursor = -1
			m.updateViewport()
			m.viewport.GotoBottom()
			return m.setStatus(fmt.Sprintf("Opened %q", conv.Title))
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handlePinsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pins := m.coord.PinBoard()

	switch {
	case key.Matches(msg, m.keyMap.Close), key.Matches(msg, m.keyMap.PinBoard):
		m.overlay = overlayNone
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.listIndex > 0 {
			m.listIndex--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.listIndex < len(pins)-1 {
			m.listIndex++
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		if m.listIndex >= 0 && m.listIndex < len(pins) {
			return m.jumpToMessage(pins[m.listIndex].ID)
		}
		return m, nil
	}

	return m, nil
}

// jumpToMessage navigates to a message, widening the view to all history
// when it is not part of the current one.
func (m Model) jumpToMessage(messageID string) (tea.Model, tea.Cmd) {
	idx, err := m.coord.JumpTo(messageID)
	if errors.Is(err, view.ErrNotFound) {
		m.coord.ShowAllHistory()
		idx, err = m.coord.JumpTo(messageID)
	}
	if err != nil {
		m.overlay = overlayNone
		return m.setStatus("Message no longer available")
	}

	m.overlay = overlayNone
	m.cursor = idx
	m.updateViewport()
	return m, nil
}

// =============================================================================
// MAIN SURFACE KEYS
// =============================================================================

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Help):
		m.overlay = overlayHelp
		return m, nil

	case key.Matches(msg, m.keyMap.NewChat):
		m.coord.StartNewChat()
		m.inFlightUser = nil
		m.replyDraft = nil
		m.cursor = -1
		m.state = StateReady
		m.lastError = nil
		m.updateViewport()
		return m.setStatus("New chat")

	case key.Matches(msg, m.keyMap.History):
		m.coord.ShowAllHistory()
		m.overlay = overlayHistory
		m.listIndex = 0
		m.updateViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.PinBoard):
		m.overlay = overlayPins
		m.listIndex = 0
		return m, nil

	case key.Matches(msg, m.keyMap.NewProject):
		m.overlay = overlayProject
		m.prompt.Reset()
		m.prompt.Placeholder = "Project name"
		m.prompt.Focus()
		return m, nil

	case key.Matches(msg, m.keyMap.Rename):
		if m.coord.State().ActiveConversation == "" {
			return m.setStatus("No active conversation to rename")
		}
		m.overlay = overlayRename
		m.prompt.Reset()
		m.prompt.Placeholder = "New title"
		m.prompt.Focus()
		return m, nil

	case key.Matches(msg, m.keyMap.Delete):
		id := m.coord.State().ActiveConversation
		if id == "" {
			return m.setStatus("No active conversation to delete")
		}
		m.coord.DeleteConversation(id)
		m.inFlightUser = nil
		m.cursor = -1
		m.updateViewport()
		return m.setStatus("Conversation deleted")

	case key.Matches(msg, m.keyMap.Export):
		return m.handleExport()

	case key.Matches(msg, m.keyMap.Pin):
		return m.handlePinToggle()

	case key.Matches(msg, m.keyMap.Expand):
		return m.handleExpandToggle()

	case key.Matches(msg, m.keyMap.Copy):
		return m.handleCopy()

	case key.Matches(msg, m.keyMap.Reply):
		return m.handleReplyDraft()

	case key.Matches(msg, m.keyMap.Share):
		return m.handleShare()

	case key.Matches(msg, m.keyMap.SelectPrev):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keyMap.SelectNext):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Up), key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp), key.Matches(msg, m.keyMap.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keyMap.Close):
		if m.replyDraft != nil {
			m.replyDraft = nil
			return m.setStatus("Reply cancelled")
		}
		if m.state == StateError {
			m.state = StateReady
			m.lastError = nil
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// moveCursor shifts the message cursor within the visible slice.
func (m *Model) moveCursor(delta int) {
	visible := m.coord.Visible()
	if len(visible) == 0 {
		return
	}
	idx := m.cursor
	if idx < 0 || idx >= len(visible) {
		idx = len(visible) - 1
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(visible) {
		idx = len(visible) - 1
	}
	m.cursor = idx
	m.updateViewport()
}

// =============================================================================
// MESSAGE ACTIONS
// =============================================================================

func (m Model) handlePinToggle() (tea.Model, tea.Cmd) {
	target, ok := m.targetMessage()
	if !ok {
		return m.setStatus("No message to pin")
	}
	updated, ok := m.engine.TogglePin(target.ID)
	if !ok {
		return m, nil
	}
	m.updateViewport()
	if updated.Pinned {
		return m.setStatus("Pinned")
	}
	return m.setStatus("Unpinned")
}

func (m Model) handleExpandToggle() (tea.Model, tea.Cmd) {
	target, ok := m.targetMessage()
	if !ok {
		return m.setStatus("No message to expand")
	}
	m.engine.ToggleExpand(target.ID)
	m.updateViewport()
	return m, nil
}

func (m Model) handleCopy() (tea.Model, tea.Cmd) {
	target, ok := m.targetMessage()
	if !ok {
		return m.setStatus("No message to copy")
	}
	if m.engine.Copy(target.ID) {
		return m.setStatus("Copied to clipboard")
	}
	return m.setStatus("Clipboard unavailable")
}

func (m Model) handleReplyDraft() (tea.Model, tea.Cmd) {
	target, ok := m.targetMessage()
	if !ok {
		return m.setStatus("No message to reply to")
	}
	draft, ok := m.engine.Reply(target.ID)
	if !ok {
		return m, nil
	}
	m.replyDraft = &draft
	m.input.Focus()
	return m, nil
}

func (m Model) handleShare() (tea.Model, tea.Cmd) {
	target, ok := m.targetMessage()
	if !ok {
		return m.setStatus("No message to share")
	}
	ok, err := m.engine.Share(target.ID)
	if !ok {
		return m.setStatus("Message no longer available")
	}
	if err != nil {
		if errors.Is(err, interact.ErrShareUnavailable) {
			return m.setStatus("Sharing is not configured")
		}
		return m.setStatus("Share failed: " + err.Error())
	}
	return m.setStatus("Message shared")
}

func (m Model) handleExport() (tea.Model, tea.Cmd) {
	id := m.coord.State().ActiveConversation
	if id == "" {
		return m.setStatus("No active conversation to export")
	}
	conv, ok := m.coord.Registry().Get(id)
	if !ok {
		return m, nil
	}

	msgs := m.coord.Visible()
	opts := m.exportOptions()

	var path string
	var err error
	if m.cfg != nil && strings.EqualFold(m.cfg.Export.Format, "json") {
		path, err = export.ExportToFile(conv, msgs, export.NewJSONExporter(opts), opts)
	} else {
		path, err = export.ExportMarkdown(conv, msgs, opts)
	}
	if err != nil {
		return m.setStatus("Export failed: " + err.Error())
	}
	return m.setStatus("Exported to " + path)
}

// =============================================================================
// SUBMIT
// =============================================================================

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	// One send at a time from the composer; the coordinator handles
	// overlapping flights, but the transcript echoes a single unanswered
	// turn, so queueing another would misrender.
	if m.state == StateAwaiting {
		return m.setStatus("Still waiting for a reply")
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if m.replyDraft != nil {
		text = fmt.Sprintf("Re #%d (%s): %s", m.replyDraft.Number, m.replyDraft.Quote, text)
		m.replyDraft = nil
	}

	flight := m.coord.Send(text)
	m.inFlightUser = &flight.UserMessage
	m.pendingToken = flight.Token
	m.state = StateAwaiting
	m.lastError = nil
	m.input.Reset()
	m.cursor = -1
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.sendCmd(flight), m.spinner.Tick)
}

// =============================================================================
// STATUS HELPERS
// =============================================================================

// setStatus shows a transient status message.
func (m Model) setStatus(text string) (tea.Model, tea.Cmd) {
	m.statusMsg = text
	m.statusSetAt = time.Now()
	return m, clearStatusCmd(m.statusSetAt)
}
