// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client provides the outbound message-send collaborator.
//
// The session core treats sending as a black box: text and a session id go
// out, reply text or an error comes back. The concrete implementation here
// posts JSON to a chat webhook; tests substitute SenderFunc.
//
// # Key Types
//
//   - Sender: the collaborator interface the session depends on
//   - WebhookClient: HTTP implementation with rate limiting and slog logging
//   - SenderFunc: function adapter for tests and wiring
package client
