// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router implements the conversation routing state machine.
//
// The router decides which conversation a chat turn belongs to and which
// mode the session is in. It runs for the lifetime of the session; there is
// no terminal state, and every transition is defined for every input.
//
// # Key Types
//
//   - State: mode, active conversation, active folder, new-chat epoch
//   - Router: the transition functions over State
//   - Binding: snapshot of routing state for in-flight sends
//
// # Modes
//
//   - ModeNewChat: blank composing surface, history hidden but retained
//   - ModeActive: one conversation selected and visible
//   - ModeAllHistory: the whole message history visible
//
// # Usage
//
//	rt := router.New(registry, folders)
//	rt.CreateProject("Research")
//	convID := rt.RecordAnswer(userMsg.ID, userMsg.Text)
//
// RecordAnswer is the only path that creates a conversation, and it creates
// at most one per new-chat surface.
package router
