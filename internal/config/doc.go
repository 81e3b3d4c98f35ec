// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads, validates, and persists parley configuration.
//
// TOML is the primary format with JSON as a fallback, both under
// ~/.parley. PARLEY_* environment variables override file values, and a
// filesystem watcher reloads the config on change.
//
// # Key Types
//
//   - Config: the complete configuration tree
//   - Watcher: fsnotify-based live reload
//   - ValidationError / ValidateErrors: per-field validation failures
//
// # Usage
//
//	cfg, err := config.Load()
package config
