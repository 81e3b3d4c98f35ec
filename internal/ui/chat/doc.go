// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The model wraps a session coordinator: every keystroke maps to a
// coordinator or interaction-engine call, sends run off the event loop
// through Bubble Tea commands, and completions come back as messages that
// are applied only after the coordinator's staleness check.
//
// # Key Types
//
//   - Model: the Bubble Tea model for the whole chat surface
//   - KeyMap: keyboard bindings with built-in help text
//   - ReplyReceivedMsg / SendFailedMsg: send completion messages
package chat
