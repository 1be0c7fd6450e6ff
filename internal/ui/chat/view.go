// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/jeranaias/studymode-tui/internal/model"
	"github.com/jeranaias/studymode-tui/internal/ui/styles"
	"github.com/jeranaias/studymode-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderHelp())
	}

	return b.String()
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("studymode")
	session := m.orch.Conversation().GetTitle()
	if m.width > 0 {
		session = util.TruncateWidth(session, m.width/2)
	}
	subtitle := m.theme.HeaderSubtitle.Render(" · " + session)
	return m.theme.Header.Width(m.width).Render(title + subtitle)
}

func (m Model) renderInput() string {
	if m.state == StateWaiting {
		return m.theme.InputContainer.Width(m.width).Render(
			m.spinner.View() + m.theme.ThinkingText.Render(" Thinking..."),
		)
	}
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	accent := styles.ModeAccent(m.mode)
	badge := m.theme.ModeBadge.Background(accent).Render(m.mode.String())

	parts := []string{badge}
	if m.notesName != "" {
		parts = append(parts, m.theme.NotesBadge.Render("notes: "+m.notesName))
	}
	if m.pendingImage != nil {
		parts = append(parts, m.theme.NotesBadge.Render("image staged"))
	}
	if m.statusMsg != "" {
		// Status messages arrive pre-rendered with their indicator.
		parts = append(parts, m.statusMsg)
	}
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		parts = append(parts,
			m.theme.ShortcutKey.Render("tab")+m.theme.ShortcutDesc.Render(" mode"),
			m.theme.ShortcutKey.Render("ctrl+h")+m.theme.ShortcutDesc.Render(" help"),
		)
	}

	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderHelp() string {
	lines := []string{
		"/mode <explain|quiz|review>  switch study mode",
		"/notes <path>                load reference notes (.txt, .pdf, .docx)",
		"/image <path>                attach an image to the next turn",
		"/clear                       reset the conversation",
		"/quit                        exit",
	}
	return m.theme.Container.Render(m.theme.ShortcutDesc.Render(strings.Join(lines, "\n")))
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshViewport rebuilds the transcript from the conversation state.
// All conversation writes happen on this goroutine too, so the slice is
// stable while we range over it.
func (m *Model) refreshViewport() {
	conv := m.orch.Conversation()

	var b strings.Builder
	for _, turn := range conv.Turns {
		b.WriteString(m.renderTurn(turn))
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
}

func (m Model) renderTurn(turn *model.Turn) string {
	var b strings.Builder

	switch {
	case turn.IsError:
		b.WriteString(m.theme.ErrorTitle.Render("Error"))
		b.WriteString("\n")
		b.WriteString(m.theme.ErrorBox.Render(m.theme.ErrorMessage.Render(turn.Content)))

	case turn.Role == model.RoleUser:
		b.WriteString(m.theme.UserLabel.Render("You"))
		b.WriteString(" ")
		b.WriteString(m.theme.Timestamp.Render(turn.Timestamp.Format("15:04")))
		b.WriteString("\n")
		b.WriteString(m.theme.UserBubble.Render(turn.Content))

	default:
		label := "Tutor"
		if m.cfg.UI.ShowProvenance && turn.ProviderName != "" {
			label = "Tutor · " + turn.ProviderName
		}
		b.WriteString(m.theme.AssistantLabel.Render(label))
		b.WriteString("\n")
		b.WriteString(m.renderMarkdown(turn.Content))
	}

	return b.String()
}

// renderMarkdown renders assistant content through glamour, falling back
// to plain text when rendering fails.
func (m Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return m.theme.AssistantBody.Render(content)
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return m.theme.AssistantBody.Render(content)
	}
	return strings.TrimRight(out, "\n")
}
