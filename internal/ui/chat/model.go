// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/studymode-tui/internal/config"
	"github.com/jeranaias/studymode-tui/internal/model"
	"github.com/jeranaias/studymode-tui/internal/orchestrator"
	"github.com/jeranaias/studymode-tui/internal/session"
	"github.com/jeranaias/studymode-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // Request in flight
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Orchestration
	orch    *orchestrator.Orchestrator
	mode    model.StudyMode
	cfg     *config.Config
	session *session.Manager

	// Image staged for the next turn via /image.
	pendingImage *model.Image
	notesName    string

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Markdown rendering
	renderer *glamour.TermRenderer

	// Key bindings
	keyMap KeyMap

	// Status
	statusMsg string
	showHelp  bool
	quitting  bool
}

// New creates a chat model wired to the given orchestrator.
func New(orch *orchestrator.Orchestrator, cfg *config.Config) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Ask a study question..."
	input.PlaceholderStyle = theme.InputPlaceholder
	input.Prompt = theme.InputPrompt.Render("> ")
	input.CharLimit = 0
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	vp := viewport.New(80, 20)

	mode := model.ModeExplain
	if parsed, err := model.ParseStudyMode(cfg.Study.DefaultMode); err == nil {
		mode = parsed
	}

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(cfg.UI.WordWrap),
	)

	return Model{
		state:    StateReady,
		theme:    theme,
		orch:     orch,
		mode:     mode,
		cfg:      cfg,
		session:  session.NewManager(session.Config{Timeout: cfg.Session.IdleTimeout()}),
		viewport: vp,
		input:    input,
		spinner:  sp,
		renderer: renderer,
		keyMap:   DefaultKeyMap(),
	}
}

// Init starts the spinner and session tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, session.TickCmd())
}

// Mode returns the active study mode.
func (m Model) Mode() model.StudyMode {
	return m.mode
}

// Waiting reports whether a request is in flight.
func (m Model) Waiting() bool {
	return m.state == StateWaiting
}
