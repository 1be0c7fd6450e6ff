// studymode TUI - A study chat companion for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studymode-tui/internal/cli"
	"github.com/jeranaias/studymode-tui/internal/config"
	"github.com/jeranaias/studymode-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

// runTUI starts the full-screen interface.
func runTUI(args cli.Args) {
	cfg := cli.LoadConfig()

	orch, err := cli.BuildOrchestrator(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Set GEMINI_API_KEY or add a key to ~/.studymode/config.toml.")
		os.Exit(1)
	}

	m := chat.New(orch, cfg)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Live-reload the config file; edits to word wrap or provenance
	// display take effect without a restart. Provider changes need a
	// restart since the chain is built once at startup.
	if path, err := config.DefaultPath(); err == nil {
		if watcher, err := config.Watch(path, func(next *config.Config) {
			p.Send(chat.ConfigReloadedMsg{Cfg: next})
		}); err == nil {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running studymode: %v\n", err)
		os.Exit(1)
	}
}
