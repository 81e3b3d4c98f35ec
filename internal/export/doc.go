// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders conversation transcripts and single messages to
// files. Markdown and JSON exporters share the Exporter interface; writes
// go through an atomic rename so a crash never leaves a partial export.
//
// # Key Types
//
//   - Exporter: format renderer (MarkdownExporter, JSONExporter)
//   - Options: output directory and metadata toggles
//   - FileSharer: single-message share destination
//
// # Usage
//
//	path, err := export.ExportMarkdown(conv, msgs, nil)
package export
