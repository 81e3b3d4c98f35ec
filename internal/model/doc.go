// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for messages, conversations,
// and folders.
//
// This package defines the core domain types used throughout the
// application for representing chat turns, conversation threads
// ("questions"), and project folders.
//
// # Key Types
//
//   - Message: single chat turn with role, text, timestamp, and the
//     pinned/expanded interaction flags
//   - Conversation: named thread anchored to its starting message and a folder
//   - Folder: user-named grouping bucket; the name is the identity
//   - Role: message author enumeration (user, ai)
//
// # Usage
//
// Create a message and derive a conversation from it:
//
//	msg := model.NewUserMessage("How do tides work?")
//	conv := model.NewConversation(msg.ID, msg.Text, model.DefaultFolder)
//
// Titles are derived from the first user message, truncated to
// TitleMaxRunes with an ellipsis marker when the source is longer.
package model
