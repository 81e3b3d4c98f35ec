// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Webhook.URL == "" {
		t.Error("default webhook URL should be set")
	}
	if cfg.Session.DefaultFolder != "General" {
		t.Errorf("default folder = %q", cfg.Session.DefaultFolder)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromPath_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
version = "2.0.0"

[webhook]
url = "https://example.com/hook"
timeout_secs = 30

[ui]
theme = "light"
vim_mode = true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Webhook.URL != "https://example.com/hook" {
		t.Errorf("webhook url = %q", cfg.Webhook.URL)
	}
	if cfg.Webhook.TimeoutSecs != 30 {
		t.Errorf("timeout = %d", cfg.Webhook.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" || !cfg.UI.VimMode {
		t.Errorf("ui = %+v", cfg.UI)
	}

	// Unset fields are filled from defaults.
	if cfg.Session.DefaultFolder != "General" {
		t.Errorf("default folder not filled: %q", cfg.Session.DefaultFolder)
	}
	if cfg.Export.Format != "markdown" {
		t.Errorf("export format not filled: %q", cfg.Export.Format)
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"webhook": {"url": "https://example.com/json-hook"}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Webhook.URL != "https://example.com/json-hook" {
		t.Errorf("webhook url = %q", cfg.Webhook.URL)
	}
}

func TestLoadFromPath_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[ui]
theme = "sepia"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("invalid theme should fail validation")
	} else if !strings.Contains(err.Error(), "ui.theme") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PARLEY_WEBHOOK_URL", "https://env.example.com/hook")
	t.Setenv("PARLEY_THEME", "auto")
	t.Setenv("PARLEY_VIM_MODE", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Webhook.URL != "https://env.example.com/hook" {
		t.Errorf("env did not override webhook url: %q", cfg.Webhook.URL)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("env did not override theme: %q", cfg.UI.Theme)
	}
	if !cfg.UI.VimMode {
		t.Error("env did not override vim mode")
	}
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default()
	cfg.Webhook.URL = "https://roundtrip.example.com/hook"
	cfg.UI.CompactMode = true

	path := filepath.Join(home, ".parley", "config.toml")
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.Webhook.URL != cfg.Webhook.URL {
		t.Errorf("webhook url = %q", loaded.Webhook.URL)
	}
	if !loaded.UI.CompactMode {
		t.Error("compact mode lost in round trip")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad webhook url", func(c *Config) { c.Webhook.URL = "not a url" }, "webhook.url"},
		{"negative timeout", func(c *Config) { c.Webhook.TimeoutSecs = -1 }, "webhook.timeout_secs"},
		{"bad export format", func(c *Config) { c.Export.Format = "pdf" }, "export.format"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %v should mention %q", err, tt.wantErr)
			}
		})
	}
}
