// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	"github.com/jeranaias/studymode-tui/internal/model"
	"github.com/jeranaias/studymode-tui/internal/orchestrator"
)

// =============================================================================
// SUBMIT FLOW
// =============================================================================

func TestHandleSubmit_AppendsUserTurnBeforeDispatch(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("what is osmosis")

	updated, cmd := m.handleSubmit()
	cm := updated.(Model)

	// The user turn must already be in the conversation when handleSubmit
	// returns: the command goroutine only runs the provider call and never
	// writes to the conversation.
	conv := cm.orch.Conversation()
	if conv.TurnCount() != 1 {
		t.Fatalf("TurnCount = %d, want 1 (user turn appended synchronously)", conv.TurnCount())
	}
	if conv.Turns[0].Role != model.RoleUser || conv.Turns[0].Content != "what is osmosis" {
		t.Errorf("first turn = %+v, want the submitted user input", conv.Turns[0])
	}
	if cm.state != StateWaiting {
		t.Errorf("state = %v, want StateWaiting", cm.state)
	}
	if cmd == nil {
		t.Fatal("handleSubmit should return a dispatch command")
	}
}

func TestUpdate_ResponseMsgAppendsReply(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("q")
	updated, _ := m.handleSubmit()
	cm := updated.(Model)

	res := orchestrator.Result{
		Text:       "a reply",
		Provenance: model.ProvenancePrimary,
		Provider:   "stub",
	}
	updated, _ = cm.Update(responseMsg{result: res})
	cm = updated.(Model)

	conv := cm.orch.Conversation()
	if conv.TurnCount() != 2 {
		t.Fatalf("TurnCount = %d, want 2 after the response lands", conv.TurnCount())
	}
	last := conv.LastAssistantTurn()
	if last == nil || last.Content != "a reply" {
		t.Errorf("last assistant turn = %+v, want the reply", last)
	}
	if cm.state != StateReady {
		t.Errorf("state = %v, want StateReady", cm.state)
	}
}

func TestHandleSubmit_EmptySubmitIsNoOp(t *testing.T) {
	m := testModel(t)

	updated, cmd := m.handleSubmit()
	cm := updated.(Model)

	if cmd != nil {
		t.Error("empty submit with no staged image must not dispatch")
	}
	if cm.state != StateReady {
		t.Errorf("state = %v, want StateReady", cm.state)
	}
	if !cm.orch.Conversation().IsEmpty() {
		t.Error("empty submit must not touch the conversation")
	}
}

func TestHandleSubmit_ImageOnlyUsesPlaceholder(t *testing.T) {
	m := testModel(t)
	m.pendingImage = &model.Image{Data: []byte{0xFF, 0xD8}, MIME: "image/jpeg"}

	updated, cmd := m.handleSubmit()
	cm := updated.(Model)

	if cmd == nil {
		t.Fatal("image-only submit should dispatch")
	}
	conv := cm.orch.Conversation()
	if conv.TurnCount() != 1 || conv.Turns[0].Content != orchestrator.ImagePlaceholder {
		t.Errorf("image-only submit should append the placeholder turn, got %+v", conv.Turns)
	}
	if cm.pendingImage != nil {
		t.Error("the staged image should be consumed by the submit")
	}
}

func TestHandleSubmit_IgnoredWhileWaiting(t *testing.T) {
	m := testModel(t)
	m.state = StateWaiting
	m.input.SetValue("another question")

	_, cmd := m.handleSubmit()
	if cmd != nil {
		t.Error("submits must be ignored while a request is in flight")
	}
	if !m.orch.Conversation().IsEmpty() {
		t.Error("an ignored submit must not append a turn")
	}
}

// =============================================================================
// STATUS BAR LAYOUT
// =============================================================================

func TestRenderStatusBar_NarrowHidesShortcuts(t *testing.T) {
	m := testModel(t)

	m.width = 120
	m.theme.SetSize(120, 40)
	if !strings.Contains(m.renderStatusBar(), "ctrl+h") {
		t.Error("wide layout should show the shortcut hints")
	}

	m.width = 50
	m.theme.SetSize(50, 40)
	if strings.Contains(m.renderStatusBar(), "ctrl+h") {
		t.Error("narrow layout should hide the shortcut hints")
	}
}
