// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains all rendering logic.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/router"
	"github.com/jeranaias/parley-tui/internal/util"
)

// collapseLines is the line count above which an unexpanded message is
// shown truncated.
const collapseLines = 6

// collapsePreviewLines is how many lines a collapsed message shows.
const collapsePreviewLines = 3

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.overlay {
	case overlayHistory:
		return m.renderWithOverlay(m.renderHistoryPane())
	case overlayPins:
		return m.renderWithOverlay(m.renderPinPane())
	case overlayHelp:
		return m.renderWithOverlay(m.renderHelpPane())
	case overlayRename:
		return m.renderWithOverlay(m.renderPromptPane("Rename conversation"))
	case overlayProject:
		return m.renderWithOverlay(m.renderPromptPane("New project"))
	}

	sections := []string{
		m.renderHeader(),
		m.viewport.View(),
		m.renderInput(),
		m.renderStatusBar(),
	}
	return strings.Join(sections, "\n")
}

// renderWithOverlay stacks a pane over the header and status bar.
func (m Model) renderWithOverlay(pane string) string {
	sections := []string{
		m.renderHeader(),
		pane,
		m.renderStatusBar(),
	}
	return strings.Join(sections, "\n")
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	st := m.coord.State()

	var title, subtitle string
	switch st.Mode {
	case router.ModeNewChat:
		title = "New Chat"
		subtitle = "folder: " + st.ActiveFolder
	case router.ModeAllHistory:
		title = "All History"
		subtitle = fmt.Sprintf("%d conversations", m.coord.Registry().Len())
	case router.ModeActive:
		if conv, ok := m.coord.Registry().Get(st.ActiveConversation); ok {
			title = conv.Title
			subtitle = "folder: " + conv.Folder
		}
	}

	line := m.theme.HeaderTitle.Render("parley") + "  " +
		m.theme.Header.Render(title) + "  " +
		m.theme.HeaderSubtitle.Render(subtitle)
	return lipgloss.NewStyle().Width(m.width).Render(line)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// updateViewport rebuilds the transcript content from the current view.
func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderTranscript())
}

func (m Model) renderTranscript() string {
	visible := m.coord.Visible()

	// Echo the unanswered turn sent from a blank surface.
	if m.inFlightUser != nil && !m.inFlightUser.InConversation() {
		visible = append(visible, *m.inFlightUser)
	}

	if len(visible) == 0 {
		return m.theme.CollapsedHint.Render("\n  Start typing to begin a conversation.")
	}

	cursorIdx := m.cursor
	if cursorIdx < 0 || cursorIdx >= len(visible) {
		cursorIdx = len(visible) - 1
	}

	var sb strings.Builder
	for i, msg := range visible {
		sb.WriteString(m.renderMessage(msg, i == cursorIdx))
		sb.WriteString("\n")
	}

	if m.state == StateAwaiting {
		sb.WriteString(m.spinner.View())
		sb.WriteString(m.theme.ThinkingText.Render(" waiting for reply..."))
		sb.WriteString("\n")
	}

	if m.state == StateError && m.lastError != nil {
		box := m.theme.ErrorBox.Render(
			m.theme.ErrorTitle.Render("Send failed") + "\n" +
				m.theme.ErrorMessage.Render(m.lastError.Error()))
		sb.WriteString(box)
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m Model) renderMessage(msg model.Message, selected bool) string {
	bubble := m.theme.AssistantBubble
	if msg.Role == model.RoleUser {
		bubble = m.theme.UserBubble
	}

	maxWidth := m.width - 10
	if maxWidth < 20 {
		maxWidth = 20
	}
	bubble = bubble.MaxWidth(maxWidth)

	text := msg.Text
	if collapsed, shown := collapseText(text, msg.Expanded); collapsed {
		text = shown + "\n" + m.theme.CollapsedHint.Render("... (C-e to expand)")
	}

	header := msg.Role.DisplayName()
	if msg.Pinned {
		header += " " + m.theme.PinnedMarker.Render("*pinned*")
	}
	if selected {
		header = "> " + header
	}

	label := m.theme.HeaderSubtitle.Render(header)
	return label + "\n" + bubble.Render(text) + "\n"
}

// collapseText truncates long unexpanded messages. Reports whether
// truncation happened and the preview text.
func collapseText(text string, expanded bool) (bool, string) {
	if expanded {
		return false, text
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= collapseLines {
		return false, text
	}
	return true, strings.Join(lines[:collapsePreviewLines], "\n")
}

// =============================================================================
// INPUT AREA
// =============================================================================

func (m Model) renderInput() string {
	var sb strings.Builder
	if m.replyDraft != nil {
		banner := fmt.Sprintf("Replying to #%d: %s", m.replyDraft.Number, m.replyDraft.Quote)
		sb.WriteString(m.theme.ReplyBanner.Render(util.TruncateRunes(banner, m.width-4)))
		sb.WriteString("\n")
	}
	sb.WriteString(m.theme.InputContainer.Width(m.width).Render(m.input.View()))
	return sb.String()
}

// =============================================================================
// STATUS BAR
// =============================================================================

func (m Model) renderStatusBar() string {
	st := m.coord.State()

	var mode string
	switch st.Mode {
	case router.ModeNewChat:
		mode = m.theme.ModeNewChat.Render("NEW")
	case router.ModeActive:
		mode = m.theme.ModeActive.Render("ACTIVE")
	case router.ModeAllHistory:
		mode = m.theme.ModeHistory.Render("HISTORY")
	}

	left := mode
	if m.statusMsg != "" {
		left += "  " + m.statusMsg
	} else if m.coord.InFlight() > 0 {
		left += fmt.Sprintf("  %d in flight", m.coord.InFlight())
	}

	right := m.theme.ShortcutKey.Render("C-n") + m.theme.ShortcutDesc.Render(" new  ") +
		m.theme.ShortcutKey.Render("C-h") + m.theme.ShortcutDesc.Render(" history  ") +
		m.theme.ShortcutKey.Render("C-b") + m.theme.ShortcutDesc.Render(" pins  ") +
		m.theme.ShortcutKey.Render("F1") + m.theme.ShortcutDesc.Render(" help")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return m.theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// =============================================================================
// OVERLAY PANES
// =============================================================================

func (m Model) renderHistoryPane() string {
	convs := m.coord.Registry().List()

	var sb strings.Builder
	sb.WriteString(m.theme.ListTitle.Render("History"))
	sb.WriteString("\n\n")

	if len(convs) == 0 {
		sb.WriteString(m.theme.ListItemMeta.Render("No conversations yet."))
	}

	for i, conv := range convs {
		line := conv.Title
		meta := m.theme.ListItemMeta.Render("  [" + conv.Folder + "]")
		if i == m.listIndex {
			sb.WriteString(m.theme.ListItemSelected.Render(line) + meta)
		} else {
			sb.WriteString(m.theme.ListItem.Render(line) + meta)
		}
		sb.WriteString("\n")
	}

	return m.theme.ListPane.Width(m.width - 4).Height(m.paneHeight()).Render(sb.String())
}

func (m Model) renderPinPane() string {
	pins := m.coord.PinBoard()

	var sb strings.Builder
	sb.WriteString(m.theme.ListTitle.Render("Pin Board"))
	sb.WriteString("\n\n")

	if len(pins) == 0 {
		sb.WriteString(m.theme.ListItemMeta.Render("Nothing pinned yet. Pin a message with C-p."))
	}

	for i, msg := range pins {
		line := fmt.Sprintf("#%d %s: %s",
			m.coord.Messages().Position(msg.ID),
			msg.Role.DisplayName(),
			msg.Preview(60))
		if i == m.listIndex {
			sb.WriteString(m.theme.ListItemSelected.Render(line))
		} else {
			sb.WriteString(m.theme.ListItem.Render(line))
		}
		sb.WriteString("\n")
	}

	return m.theme.ListPane.Width(m.width - 4).Height(m.paneHeight()).Render(sb.String())
}

func (m Model) renderHelpPane() string {
	var sb strings.Builder
	sb.WriteString(m.theme.ListTitle.Render("Keyboard Shortcuts"))
	sb.WriteString("\n\n")

	for _, group := range m.keyMap.FullHelp() {
		for _, binding := range group {
			help := binding.Help()
			sb.WriteString(fmt.Sprintf("  %s  %s\n",
				m.theme.ShortcutKey.Render(util.PadRight(help.Key, 12)),
				m.theme.ShortcutDesc.Render(help.Desc)))
		}
		sb.WriteString("\n")
	}

	return m.theme.ListPane.Width(m.width - 4).Height(m.paneHeight()).Render(sb.String())
}

func (m Model) renderPromptPane(title string) string {
	var sb strings.Builder
	sb.WriteString(m.theme.ListTitle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.prompt.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.theme.ListItemMeta.Render("Enter to confirm, Esc to cancel"))
	return m.theme.ListPane.Width(m.width - 4).Render(sb.String())
}

// paneHeight is the height available for overlay panes.
func (m Model) paneHeight() int {
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}
