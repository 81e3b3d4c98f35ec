// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the parley TUI.
//
// A Theme bundles every Lip Gloss style the UI renders with, built from a
// shared adaptive palette so light and dark terminals both get readable
// output. Terminal capability detection runs once at theme construction.
package styles
