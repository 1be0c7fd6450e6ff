// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file implements the command handler registry pattern: each slash
// command gets an individual, testable handler function.
package chat

import (
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studymode-tui/internal/extract"
	"github.com/jeranaias/studymode-tui/internal/model"
	"github.com/jeranaias/studymode-tui/internal/ui/styles"
	"github.com/jeranaias/studymode-tui/internal/util"
)

// =============================================================================
// COMMAND HANDLER REGISTRY
// =============================================================================

// CommandHandler is a function that handles a specific slash command.
type CommandHandler func(m *Model, args []string) (tea.Model, tea.Cmd)

// commandHandlers maps command names to their handler functions.
var commandHandlers = map[string]CommandHandler{
	// Help & Meta
	"help": handleHelpCommand,
	"h":    handleHelpCommand,
	"?":    handleHelpCommand,
	"quit": handleQuitCommand,
	"q":    handleQuitCommand,
	"exit": handleQuitCommand,

	// Conversation
	"clear": handleClearCommand,
	"c":     handleClearCommand,

	// Study
	"mode":  handleModeCommand,
	"m":     handleModeCommand,
	"notes": handleNotesCommand,
	"image": handleImageCommand,
}

// handleCommand processes slash commands using the registry.
func (m Model) handleCommand(content string) (tea.Model, tea.Cmd) {
	m.input.Reset()

	parts := strings.Fields(content)
	if len(parts) == 0 {
		return m, nil
	}

	cmdName := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	args := parts[1:]

	handler, ok := commandHandlers[cmdName]
	if !ok {
		m.statusMsg = styles.RenderError("Unknown command: /" + cmdName)
		return m, nil
	}
	return handler(&m, args)
}

// =============================================================================
// HANDLERS
// =============================================================================

func handleHelpCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.showHelp = !m.showHelp
	return *m, nil
}

func handleQuitCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.quitting = true
	return *m, tea.Quit
}

func handleClearCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.orch.ResetConversation()
	m.pendingImage = nil
	m.statusMsg = styles.RenderInfo("Conversation cleared")
	m.refreshViewport()
	return *m, nil
}

func handleModeCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		m.statusMsg = styles.RenderInfo("Usage: /mode <explain|quiz|review>")
		return *m, nil
	}
	mode, err := model.ParseStudyMode(args[0])
	if err != nil {
		m.statusMsg = styles.RenderError("Unknown mode: " + args[0])
		return *m, nil
	}
	m.mode = mode
	m.statusMsg = styles.RenderInfo("Mode: " + mode.String())
	return *m, nil
}

// handleNotesCommand extracts a document and installs it as reference
// context. A failed extraction leaves any previous notes untouched.
func handleNotesCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		m.statusMsg = styles.RenderInfo("Usage: /notes <path>")
		return *m, nil
	}

	path := strings.Join(args, " ")
	data, err := os.ReadFile(path)
	if err != nil {
		m.statusMsg = styles.RenderError("Cannot read " + path + ": " + err.Error())
		return *m, nil
	}

	text, err := extract.Extract(data, filepath.Base(path), "")
	if err != nil {
		m.statusMsg = styles.RenderError("Extraction failed: " + err.Error())
		return *m, nil
	}

	m.orch.SetReferenceContext(text)
	m.notesName = filepath.Base(path)
	m.statusMsg = styles.RenderInfo("Notes loaded: " + m.notesName)
	return *m, nil
}

// handleImageCommand stages an image for the next submitted turn.
func handleImageCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		m.statusMsg = styles.RenderInfo("Usage: /image <path>")
		return *m, nil
	}

	path := strings.Join(args, " ")
	data, err := os.ReadFile(path)
	if err != nil {
		m.statusMsg = styles.RenderError("Cannot read " + path + ": " + err.Error())
		return *m, nil
	}

	m.pendingImage = &model.Image{Data: data, MIME: util.ImageMIME(path)}
	m.statusMsg = styles.RenderInfo("Image staged: " + filepath.Base(path))
	return *m, nil
}
