// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/studymode-tui/internal/config"
	"github.com/jeranaias/studymode-tui/internal/orchestrator"
	"github.com/jeranaias/studymode-tui/internal/provider"
	"github.com/jeranaias/studymode-tui/internal/session"
	"github.com/jeranaias/studymode-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// responseMsg carries the orchestrator result for a submitted turn.
type responseMsg struct {
	result orchestrator.Result
}

// ConfigReloadedMsg is sent when the config file changes on disk.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles Bubble Tea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.layout()
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case responseMsg:
		// The reply is appended here, on the goroutine that owns the
		// conversation; the command goroutine only ran the provider call.
		m.orch.CompleteTurn(msg.result)
		m.state = StateReady
		m.input.Focus()
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.state != StateWaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case session.TickMsg:
		return m, m.session.HandleTick()

	case session.TimeoutWarningMsg:
		m.statusMsg = styles.RenderWarning("Session idle, closing in " + session.FormatDuration(msg.Remaining))
		return m, nil

	case session.TimeoutMsg:
		m.quitting = true
		return m, tea.Quit

	case ConfigReloadedMsg:
		m.cfg = msg.Cfg
		if renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(msg.Cfg.UI.WordWrap),
		); err == nil {
			m.renderer = renderer
		}
		m.statusMsg = styles.RenderInfo("Config reloaded")
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.CycleMode):
		if m.state == StateReady {
			m.mode = m.mode.Next()
			m.statusMsg = styles.RenderInfo("Mode: " + m.mode.String())
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()
	}

	// Ignore typing while a request is in flight.
	if m.state == StateWaiting {
		return m, nil
	}

	m.session.RecordActivity()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit dispatches the current input line.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.state == StateWaiting {
		return m, nil
	}

	content := strings.TrimSpace(m.input.Value())
	m.session.RecordActivity()

	if strings.HasPrefix(content, "/") {
		return m.handleCommand(content)
	}

	// Empty submit with no staged image is a no-op.
	if content == "" && m.pendingImage == nil {
		return m, nil
	}

	// Append the user turn synchronously so the transcript shows it right
	// away and the conversation is never written off this goroutine.
	req, err := m.orch.BeginTurn(content, m.mode, m.pendingImage)
	if err != nil {
		return m, nil
	}

	m.pendingImage = nil
	m.input.Reset()
	m.input.Blur()
	m.state = StateWaiting
	m.statusMsg = ""
	m.refreshViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.spinner.Tick, generateCmd(m.orch, req))
}

// generateCmd runs the provider call off the UI goroutine. The result is
// appended to the conversation by the responseMsg handler.
func generateCmd(orch *orchestrator.Orchestrator, req provider.Request) tea.Cmd {
	return func() tea.Msg {
		return responseMsg{result: orch.Generate(context.Background(), req)}
	}
}

// layout recomputes component dimensions after a resize.
func (m *Model) layout() {
	headerHeight := 3
	inputHeight := 3
	statusHeight := 1

	m.viewport.Width = m.width
	m.viewport.Height = m.height - headerHeight - inputHeight - statusHeight
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.input.Width = m.width - 4
}
