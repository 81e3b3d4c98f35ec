// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session coordinates the conversational workspace state.
//
// The coordinator is the facade the UI talks to: it owns the message
// store, conversation registry, folder directory, and routing state, and
// it brokers the one asynchronous edge of the system - outbound sends.
//
// # Key Types
//
//   - Coordinator: session facade; all mutations run on the event loop
//   - Flight: one in-flight send with its token and cancellable context
//   - ErrStaleReply: completion for a surface the user has left
//
// # Send lifecycle
//
//	flight := coord.Send("What is X?")        // user turn appended
//	reply, err := coord.Dispatch(flight)      // off the event loop
//	msg, err := coord.ApplyReply(flight.Token, reply)
//
// ApplyReply is check-and-discard: the reply is applied only if its
// binding still matches routing state, as one logical transition (create
// or reuse the conversation, tag both turns, append the answer). Switching
// surfaces or deleting the active conversation cancels matching flights.
package session
