// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Plain-terminal REPL command handler.
//
// Handles "studymode chat": a readline loop for terminals where the full
// TUI is unwanted (ssh sessions, screen readers, scripts). Supports the
// same slash commands as the TUI transcript view.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/studymode-tui/internal/config"
	"github.com/jeranaias/studymode-tui/internal/model"
	"github.com/jeranaias/studymode-tui/internal/orchestrator"
)

// historyFileName stores readline history under the config directory.
const historyFileName = "chat_history"

// HandleChat runs the line-based interactive chat.
func HandleChat(args Args) {
	cfg := LoadConfig()
	orch, err := BuildOrchestrator(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mode := model.ModeExplain
	if parsed, err := model.ParseStudyMode(cfg.Study.DefaultMode); err == nil {
		mode = parsed
	}
	if args.Mode != "" {
		parsed, err := model.ParseStudyMode(args.Mode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args.Mode)
			os.Exit(1)
		}
		mode = parsed
	}

	if args.Notes != "" {
		text, err := loadNotes(args.Notes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		orch.SetReferenceContext(text)
		fmt.Printf("Notes loaded: %s\n", filepath.Base(args.Notes))
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := loadHistory(line)
	defer saveHistory(line, historyPath)

	fmt.Printf("studymode chat · mode: %s · /help for commands\n", mode)

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			// Ctrl+C or Ctrl+D ends the session.
			fmt.Println()
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if done := handleReplCommand(orch, &mode, input); done {
				return
			}
			continue
		}

		result, err := orch.SubmitTurn(context.Background(), input, mode, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Print(renderMarkdown(result.Text, args.Quiet))
	}
}

// handleReplCommand processes a slash command. Returns true to exit.
func handleReplCommand(orch *orchestrator.Orchestrator, mode *model.StudyMode, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	cmdArgs := parts[1:]

	switch cmd {
	case "quit", "q", "exit":
		return true

	case "clear", "c":
		orch.ResetConversation()
		fmt.Println("Conversation cleared.")

	case "mode", "m":
		if len(cmdArgs) == 0 {
			fmt.Printf("Mode: %s\n", *mode)
			break
		}
		parsed, err := model.ParseStudyMode(cmdArgs[0])
		if err != nil {
			fmt.Printf("Unknown mode: %s\n", cmdArgs[0])
			break
		}
		*mode = parsed
		fmt.Printf("Mode: %s\n", parsed)

	case "notes":
		if len(cmdArgs) == 0 {
			fmt.Println("Usage: /notes <path>")
			break
		}
		path := strings.Join(cmdArgs, " ")
		text, err := loadNotes(path)
		if err != nil {
			fmt.Printf("Extraction failed: %v\n", err)
			break
		}
		orch.SetReferenceContext(text)
		fmt.Printf("Notes loaded: %s\n", filepath.Base(path))

	case "help", "h", "?":
		fmt.Println("Commands: /mode <m>, /notes <path>, /clear, /quit")

	default:
		fmt.Printf("Unknown command: /%s\n", cmd)
	}
	return false
}

// loadHistory restores readline history; returns the history file path.
func loadHistory(line *liner.State) string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, historyFileName)
	if f, err := os.Open(path); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	return path
}

// saveHistory persists readline history best-effort.
func saveHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	if f, err := os.Create(path); err == nil {
		line.WriteHistory(f)
		f.Close()
	}
}
