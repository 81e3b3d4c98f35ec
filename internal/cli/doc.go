// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments and runs the non-TUI
// commands. The default command with no arguments launches the TUI;
// config and version are handled here directly.
package cli
