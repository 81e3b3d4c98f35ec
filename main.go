// parley TUI - a conversational workspace for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/cli"
	"github.com/jeranaias/parley-tui/internal/client"
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/export"
	"github.com/jeranaias/parley-tui/internal/interact"
	"github.com/jeranaias/parley-tui/internal/session"
	"github.com/jeranaias/parley-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	switch cmd {
	case cli.CmdTUI:
		os.Exit(runTUI())
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

// runTUI wires the session stack together and runs the chat program.
func runTUI() int {
	logger := setupLogging()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	sender := client.NewWebhookClient(cfg.Webhook.URL,
		client.WithRateLimit(cfg.Webhook.RateLimitPerSec, cfg.Webhook.RateBurst),
		client.WithTimeout(time.Duration(cfg.Webhook.TimeoutSecs)*time.Second),
		client.WithLogger(logger),
	)

	coord := session.New(sender)
	coord.SetLogger(logger)

	engineOpts := []interact.Option{interact.WithLogger(logger)}
	if cfg.Export.ShareEnabled {
		engineOpts = append(engineOpts, interact.WithSharer(export.NewFileSharer(cfg.Export.OutputDir)))
	}
	engine := interact.NewEngine(coord.Messages(), engineOpts...)

	model := chat.New(coord, engine, cfg)

	program := tea.NewProgram(model, tea.WithAltScreen())

	// Deliver config changes into the running program.
	if path, err := config.ConfigPathTOML(); err == nil {
		if watcher, werr := config.NewWatcher(path, func(updated *config.Config) {
			logger.Info("configuration reloaded", "path", path)
			program.Send(chat.ConfigReloadedMsg{Config: updated})
		}); werr == nil {
			if werr := watcher.Watch(); werr == nil {
				defer watcher.Close()
			}
		}
	}
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return 1
	}
	return 0
}

// setupLogging writes structured logs to ~/.parley/parley.log, discarding
// them when the directory is unavailable. Logging to stderr would corrupt
// the TUI.
func setupLogging() *slog.Logger {
	dir, err := config.ConfigDir()
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	f, err := os.OpenFile(filepath.Join(dir, "parley.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
