// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jeranaias/studymode-tui/internal/config"
	"github.com/jeranaias/studymode-tui/internal/model"
	"github.com/jeranaias/studymode-tui/internal/orchestrator"
	"github.com/jeranaias/studymode-tui/internal/provider"
)

type stubAdapter struct{}

func (stubAdapter) Name() string { return "stub" }

func (stubAdapter) Generate(_ context.Context, _ provider.Request) (string, error) {
	return "ok", nil
}

func testModel(t *testing.T) Model {
	t.Helper()
	orch := orchestrator.New(provider.NewChain(stubAdapter{}))
	return New(orch, config.DefaultConfig())
}

func TestHandleCommand_Mode(t *testing.T) {
	m := testModel(t)

	updated, _ := m.handleCommand("/mode quiz")
	cm := updated.(Model)
	if cm.Mode() != model.ModeQuiz {
		t.Errorf("mode = %v, want quiz", cm.Mode())
	}

	updated, _ = cm.handleCommand("/mode nonsense")
	cm = updated.(Model)
	if cm.Mode() != model.ModeQuiz {
		t.Error("an unknown mode name should not change the active mode")
	}
}

func TestHandleCommand_Unknown(t *testing.T) {
	m := testModel(t)
	updated, _ := m.handleCommand("/bogus")
	cm := updated.(Model)
	if cm.statusMsg == "" {
		t.Error("unknown command should set a status message")
	}
}

func TestHandleCommand_Clear(t *testing.T) {
	m := testModel(t)
	m.orch.Conversation().Append(model.NewUserTurn("hello"))

	updated, _ := m.handleCommand("/clear")
	cm := updated.(Model)
	if !cm.orch.Conversation().IsEmpty() {
		t.Error("/clear should empty the conversation")
	}
}

func TestHandleCommand_NotesFailureKeepsContext(t *testing.T) {
	m := testModel(t)
	m.orch.SetReferenceContext("previous notes")

	updated, _ := m.handleCommand("/notes /nonexistent/file.txt")
	cm := updated.(Model)
	if cm.orch.ReferenceContext() != "previous notes" {
		t.Error("a failed notes load should keep the previous context")
	}
}

func TestHandleCommand_NotesLoadsText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("photosynthesis basics"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := testModel(t)
	updated, _ := m.handleCommand("/notes " + path)
	cm := updated.(Model)
	if cm.orch.ReferenceContext() != "photosynthesis basics" {
		t.Errorf("reference context = %q", cm.orch.ReferenceContext())
	}
	if cm.notesName != "notes.txt" {
		t.Errorf("notesName = %q", cm.notesName)
	}
}
