// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines keyboard bindings and shortcuts for the chat interface.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
// Each binding supports multiple keys and includes help text.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Submit   key.Binding
	Close    key.Binding

	SelectPrev key.Binding
	SelectNext key.Binding

	NewChat    key.Binding
	History    key.Binding
	PinBoard   key.Binding
	NewProject key.Binding

	Pin    key.Binding
	Expand key.Binding
	Copy   key.Binding
	Reply  key.Binding
	Share  key.Binding
	Rename key.Binding
	Delete key.Binding
	Export key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "page down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close pane / clear"),
		),
		SelectPrev: key.NewBinding(
			key.WithKeys("alt+up"),
			key.WithHelp("M-up", "select previous message"),
		),
		SelectNext: key.NewBinding(
			key.WithKeys("alt+down"),
			key.WithHelp("M-down", "select next message"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new chat"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("C-h", "all history"),
		),
		PinBoard: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "pin board"),
		),
		NewProject: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "new project"),
		),
		Pin: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "pin/unpin message"),
		),
		Expand: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "expand/collapse message"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy message"),
		),
		Reply: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "reply to message"),
		),
		Share: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "share message"),
		),
		Rename: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "rename conversation"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "delete conversation"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "export conversation"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+_", "f1"),
			key.WithHelp("F1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("C-q", "quit"),
		),
	}
}

// ShortHelp returns the key bindings shown in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NewChat, k.History, k.Help, k.Quit}
}

// FullHelp returns the key bindings shown in the full help view,
// organized into groups.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.PageUp, k.PageDown, k.SelectPrev, k.SelectNext},
		// Surfaces
		{k.NewChat, k.History, k.PinBoard, k.NewProject},
		// Message actions
		{k.Pin, k.Expand, k.Copy, k.Reply, k.Share},
		// Conversation actions
		{k.Rename, k.Delete, k.Export, k.Help, k.Quit},
	}
}
