// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// parley.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.parley/config.toml
//   - ~/.parley/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete parley configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`

	// Webhook (assistant backend) configuration
	Webhook WebhookConfig `toml:"webhook" json:"webhook"`

	// Session configuration
	Session SessionConfig `toml:"session" json:"session"`

	// Export configuration
	Export ExportConfig `toml:"export" json:"export"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// WebhookConfig contains the assistant webhook configuration.
type WebhookConfig struct {
	// URL is the webhook endpoint replies are requested from.
	URL string `toml:"url" json:"url"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// RateLimitPerSec caps outbound sends per second.
	RateLimitPerSec float64 `toml:"rate_limit_per_sec" json:"rate_limit_per_sec"`
	// RateBurst is the burst allowance for the rate limiter.
	RateBurst int `toml:"rate_burst" json:"rate_burst"`
}

// SessionConfig contains session behavior configuration.
type SessionConfig struct {
	// DefaultFolder is the folder new conversations land in when no
	// project is active.
	DefaultFolder string `toml:"default_folder" json:"default_folder"`
	// PreviewRunes bounds one-line message previews in list panes.
	PreviewRunes int `toml:"preview_runes" json:"preview_runes"`
}

// ExportConfig contains export and share configuration.
type ExportConfig struct {
	// OutputDir is where exports and shares are written.
	// Empty means ~/.parley/exports.
	OutputDir string `toml:"output_dir" json:"output_dir"`
	// Format is the default export format: "markdown" or "json".
	Format string `toml:"format" json:"format"`
	// IncludeMetadata includes the metadata header in exports.
	IncludeMetadata bool `toml:"include_metadata" json:"include_metadata"`
	// IncludeTimestamps includes per-message timestamps in exports.
	IncludeTimestamps bool `toml:"include_timestamps" json:"include_timestamps"`
	// ShareEnabled enables the per-message share action.
	ShareEnabled bool `toml:"share_enabled" json:"share_enabled"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
	// ShowTimestamps displays per-message timestamps in the transcript
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
	// VimMode enables vim-style modal editing
	VimMode bool `toml:"vim_mode" json:"vim_mode"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Webhook: WebhookConfig{
			URL:             "http://127.0.0.1:8080/webhook",
			TimeoutSecs:     60,
			RateLimitPerSec: 2,
			RateBurst:       4,
		},

		Session: SessionConfig{
			DefaultFolder: "General",
			PreviewRunes:  80,
		},

		Export: ExportConfig{
			OutputDir:         "",
			Format:            "markdown",
			IncludeMetadata:   true,
			IncludeTimestamps: true,
			ShareEnabled:      true,
		},

		UI: UIConfig{
			Theme:          "dark",
			CompactMode:    false,
			ShowTimestamps: true,
			VimMode:        false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the parley configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".parley"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Try JSON as fallback
	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	cfg, err := finishLoad(cfg)
	if err != nil {
		return nil, err
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// finishLoad applies env overrides, fills defaults, and validates.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. JSON files are detected by extension; everything else is
// treated as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	if cfg.Webhook.URL == "" {
		cfg.Webhook.URL = defaults.Webhook.URL
	}
	if cfg.Webhook.TimeoutSecs == 0 {
		cfg.Webhook.TimeoutSecs = defaults.Webhook.TimeoutSecs
	}
	if cfg.Webhook.RateLimitPerSec == 0 {
		cfg.Webhook.RateLimitPerSec = defaults.Webhook.RateLimitPerSec
	}
	if cfg.Webhook.RateBurst == 0 {
		cfg.Webhook.RateBurst = defaults.Webhook.RateBurst
	}

	if cfg.Session.DefaultFolder == "" {
		cfg.Session.DefaultFolder = defaults.Session.DefaultFolder
	}
	if cfg.Session.PreviewRunes == 0 {
		cfg.Session.PreviewRunes = defaults.Session.PreviewRunes
	}

	if cfg.Export.Format == "" {
		cfg.Export.Format = defaults.Export.Format
	}

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies PARLEY_* environment variables over the loaded
// configuration. Environment wins over file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PARLEY_WEBHOOK_URL"); v != "" {
		c.Webhook.URL = v
	}
	if v := os.Getenv("PARLEY_WEBHOOK_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Webhook.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("PARLEY_DEFAULT_FOLDER"); v != "" {
		c.Session.DefaultFolder = v
	}
	if v := os.Getenv("PARLEY_EXPORT_DIR"); v != "" {
		c.Export.OutputDir = v
	}
	if v := os.Getenv("PARLEY_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("PARLEY_VIM_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UI.VimMode = b
		}
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# parley configuration file")
	fmt.Fprintln(file, "# Generated by parley - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Webhook.URL != "" {
		if u, err := url.Parse(c.Webhook.URL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "webhook.url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Webhook.URL),
			})
		}
	}
	if c.Webhook.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "webhook.timeout_secs",
			Message: "cannot be negative",
		})
	}
	if c.Webhook.RateLimitPerSec < 0 {
		errs = append(errs, ValidationError{
			Field:   "webhook.rate_limit_per_sec",
			Message: "cannot be negative",
		})
	}

	if c.Session.PreviewRunes < 0 {
		errs = append(errs, ValidationError{
			Field:   "session.preview_runes",
			Message: "cannot be negative",
		})
	}

	validFormats := map[string]bool{"markdown": true, "md": true, "json": true}
	if !validFormats[strings.ToLower(c.Export.Format)] {
		errs = append(errs, ValidationError{
			Field:   "export.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: markdown, json", c.Export.Format),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
