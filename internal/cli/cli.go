// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for parley.
package cli

import (
	"fmt"
	"os"
	"runtime"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdConfig
	CmdVersion
	CmdHelp
)

const usageText = `parley - conversational workspace for the terminal

Parley keeps a session of chat turns organized into conversations,
folders, and pins, talking to an assistant backend over a webhook.

Usage:
  parley                     Start TUI (default)
  parley config [show|path|init]  Configuration
  parley version             Show version information
  parley help                Show this help

Config Commands:
  parley config show         Print the effective configuration
  parley config path         Print the config file location
  parley config init         Write a default config file

Environment:
  PARLEY_WEBHOOK_URL         Override the webhook endpoint
  PARLEY_EXPORT_DIR          Override the export directory
  PARLEY_THEME               Override the UI theme (dark, light, auto)
`

// Parse maps command-line arguments to a command and its parsed args.
func Parse(args []string) (Command, *ArgParser) {
	if len(args) == 0 {
		return CmdTUI, NewArgParser(nil)
	}

	switch args[0] {
	case "config":
		return CmdConfig, NewArgParser(args[1:])
	case "version", "--version", "-v":
		return CmdVersion, NewArgParser(args[1:])
	case "help", "--help", "-h":
		return CmdHelp, NewArgParser(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		return CmdHelp, NewArgParser(args[1:])
	}
}

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("parley %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
