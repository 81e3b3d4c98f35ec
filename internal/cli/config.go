// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - config subcommand handlers.
package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/parley-tui/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args *ArgParser) int {
	switch args.Subcommand() {
	case "", "show":
		return configShow()
	case "path":
		return configPath()
	case "init":
		return configInit()
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args.Subcommand())
		fmt.Fprintln(os.Stderr, "Usage: parley config [show|path|init]")
		return 1
	}
}

func configShow() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		return 1
	}
	return 0
}

func configPath() int {
	path, err := config.ConfigPathTOML()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println(path)
	return 0
}

func configInit() int {
	path, err := config.ConfigPathTOML()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "Config already exists at %s\n", path)
		return 1
	}
	if err := config.Save(config.Default()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		return 1
	}
	fmt.Printf("Wrote default config to %s\n", path)
	return 0
}
