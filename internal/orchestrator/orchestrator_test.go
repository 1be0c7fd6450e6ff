// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jeranaias/studymode-tui/internal/model"
	"github.com/jeranaias/studymode-tui/internal/provider"
)

// fakeAdapter is a scripted provider adapter for orchestrator tests.
type fakeAdapter struct {
	name    string
	text    string
	err     error
	calls   int
	lastReq provider.Request
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Generate(ctx context.Context, req provider.Request) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func newTestOrchestrator(adapters ...provider.Adapter) *Orchestrator {
	return New(provider.NewChain(adapters...))
}

// =============================================================================
// SUBMIT TURN: BASIC PROPERTIES
// =============================================================================

func TestSubmitTurn_AppendsOneUserOneAssistantTurn(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", text: "a reply"}
	o := newTestOrchestrator(primary)

	res, err := o.SubmitTurn(context.Background(), "what is osmosis", model.ModeExplain, nil)
	if err != nil {
		t.Fatalf("SubmitTurn error = %v", err)
	}

	conv := o.Conversation()
	if conv.TurnCount() != 2 {
		t.Fatalf("TurnCount = %d, want 2 (one user + one assistant)", conv.TurnCount())
	}
	if conv.Turns[0].Role != model.RoleUser || conv.Turns[0].Content != "what is osmosis" {
		t.Errorf("first turn = %+v, want the original user input", conv.Turns[0])
	}
	if conv.Turns[1].Role != model.RoleAssistant || conv.Turns[1].Content != "a reply" {
		t.Errorf("second turn = %+v, want the assistant reply", conv.Turns[1])
	}
	if res.Provenance != model.ProvenancePrimary {
		t.Errorf("Provenance = %v, want primary", res.Provenance)
	}
}

func TestSubmitTurn_FailureStillLeavesUserTurn(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", err: &provider.Error{
		Kind: provider.KindOther, Provider: "gemini", Message: "boom",
	}}
	o := newTestOrchestrator(primary)

	res, err := o.SubmitTurn(context.Background(), "hello", model.ModeExplain, nil)
	if err != nil {
		t.Fatalf("SubmitTurn must not propagate provider failures, got %v", err)
	}
	if res.Err == nil {
		t.Error("Result.Err should carry the classified failure")
	}

	conv := o.Conversation()
	if conv.TurnCount() != 2 {
		t.Fatalf("TurnCount = %d, want 2 (user turn + formatted error turn)", conv.TurnCount())
	}
	if conv.Turns[0].Role != model.RoleUser {
		t.Error("user turn must be appended before dispatch")
	}
	last := conv.LastTurn()
	if !last.IsError {
		t.Error("failure should append a formatted error turn")
	}
}

func TestSubmitTurn_EmptyTurnRejected(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", text: "unused"}
	o := newTestOrchestrator(primary)

	_, err := o.SubmitTurn(context.Background(), "", model.ModeExplain, nil)
	if !errors.Is(err, ErrEmptyTurn) {
		t.Fatalf("err = %v, want ErrEmptyTurn", err)
	}
	if !o.Conversation().IsEmpty() {
		t.Error("precondition violation must not touch the conversation")
	}
	if primary.calls != 0 {
		t.Error("precondition violation must not dispatch")
	}
}

// =============================================================================
// SUBMIT TURN: IMAGE HANDLING
// =============================================================================

func TestSubmitTurn_ImageOnlyUsesDefaultPrompt(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", text: "flashcards"}
	o := newTestOrchestrator(primary)

	img := &model.Image{Data: []byte{0xFF, 0xD8}, MIME: "image/jpeg"}
	_, err := o.SubmitTurn(context.Background(), "", model.ModeExplain, img)
	if err != nil {
		t.Fatalf("SubmitTurn error = %v", err)
	}

	if !strings.Contains(primary.lastReq.Prompt, "2 short flashcards") {
		t.Errorf("image-only turn should use the default prompt, got %q", primary.lastReq.Prompt)
	}
	if primary.lastReq.Image == nil || primary.lastReq.Image.MIME != "image/jpeg" {
		t.Error("image attachment should be forwarded to the adapter")
	}
	if o.Conversation().Turns[0].Content != ImagePlaceholder {
		t.Errorf("user turn content = %q, want the image placeholder", o.Conversation().Turns[0].Content)
	}
}

func TestSubmitTurn_TextAndImage(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", text: "ok"}
	o := newTestOrchestrator(primary)

	img := &model.Image{Data: []byte{1, 2, 3}, MIME: "image/png"}
	_, err := o.SubmitTurn(context.Background(), "what is this diagram", model.ModeExplain, img)
	if err != nil {
		t.Fatalf("SubmitTurn error = %v", err)
	}

	if !strings.Contains(primary.lastReq.Prompt, "what is this diagram") {
		t.Error("text+image turn should keep the user's question in the prompt")
	}
	if primary.lastReq.Image == nil {
		t.Error("image should be attached alongside text")
	}
}

// =============================================================================
// SUBMIT TURN: FALLBACK BEHAVIOR
// =============================================================================

func TestSubmitTurn_QuotaFallbackWithProvenanceMarker(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", err: &provider.Error{
		Kind: provider.KindQuotaExceeded, Provider: "gemini", Message: "429",
	}}
	secondary := &fakeAdapter{name: "openai", text: "OK"}
	o := newTestOrchestrator(primary, secondary)

	res, err := o.SubmitTurn(context.Background(), "q", model.ModeExplain, nil)
	if err != nil {
		t.Fatalf("SubmitTurn error = %v", err)
	}

	marker := provenanceMarker("openai")
	if !strings.HasSuffix(res.Text, marker) {
		t.Errorf("fallback answer should end with provenance marker %q, got %q", marker, res.Text)
	}
	if res.Text != "OK"+marker {
		t.Errorf("Text = %q, want %q", res.Text, "OK"+marker)
	}
	if res.Provenance != model.ProvenanceSecondary {
		t.Errorf("Provenance = %v, want secondary", res.Provenance)
	}

	last := o.Conversation().LastAssistantTurn()
	if last.Content != "OK"+marker {
		t.Errorf("assistant turn = %q, want reply plus marker", last.Content)
	}
	if last.Provenance != model.ProvenanceSecondary {
		t.Error("assistant turn should carry secondary provenance")
	}
}

func TestSubmitTurn_PermissionDeniedNoFallback(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", err: &provider.Error{
		Kind: provider.KindPermissionDenied, Provider: "gemini", Message: "403",
	}}
	secondary := &fakeAdapter{name: "openai", text: "unused"}
	o := newTestOrchestrator(primary, secondary)

	_, err := o.SubmitTurn(context.Background(), "q", model.ModeExplain, nil)
	if err != nil {
		t.Fatalf("SubmitTurn error = %v", err)
	}

	if secondary.calls != 0 {
		t.Errorf("secondary called %d times, want 0 (no fallback on permission)", secondary.calls)
	}
	last := o.Conversation().LastAssistantTurn()
	if !last.IsError {
		t.Error("permission failure should append an error turn")
	}
	lower := strings.ToLower(last.Content)
	if !strings.Contains(lower, "permission") && !strings.Contains(lower, "credential") {
		t.Errorf("error turn %q should reference permission/credential issues", last.Content)
	}
}

func TestSubmitTurn_BothQuotaCombinedError(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", err: &provider.Error{
		Kind: provider.KindQuotaExceeded, Provider: "gemini", Message: "429",
	}}
	secondary := &fakeAdapter{name: "openai", err: &provider.Error{
		Kind: provider.KindQuotaExceeded, Provider: "openai", Message: "429",
	}}
	o := newTestOrchestrator(primary, secondary)

	res, err := o.SubmitTurn(context.Background(), "q", model.ModeExplain, nil)
	if err != nil {
		t.Fatalf("SubmitTurn error = %v", err)
	}
	if res.Err == nil {
		t.Fatal("Result.Err should be set when every adapter fails")
	}
	last := o.Conversation().LastAssistantTurn()
	if !strings.Contains(last.Content, "gemini") || !strings.Contains(last.Content, "openai") {
		t.Errorf("combined error turn %q should mention both providers", last.Content)
	}
}

// =============================================================================
// HISTORY
// =============================================================================

func TestSubmitTurn_HistoryExcludesCurrentTurnAndErrors(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", text: "first answer"}
	o := newTestOrchestrator(primary)

	if _, err := o.SubmitTurn(context.Background(), "first question", model.ModeExplain, nil); err != nil {
		t.Fatal(err)
	}

	// Inject a failed exchange by swapping in an error.
	primary.err = &provider.Error{Kind: provider.KindOther, Provider: "gemini", Message: "500"}
	if _, err := o.SubmitTurn(context.Background(), "failing question", model.ModeExplain, nil); err != nil {
		t.Fatal(err)
	}

	primary.err = nil
	primary.text = "third answer"
	if _, err := o.SubmitTurn(context.Background(), "third question", model.ModeExplain, nil); err != nil {
		t.Fatal(err)
	}

	history := primary.lastReq.History
	for _, m := range history {
		if strings.Contains(m.Content, "third question") {
			t.Error("history must not include the current turn")
		}
		if strings.Contains(m.Content, "⚠️") {
			t.Error("history must not include formatted error turns")
		}
	}

	// first q, first a, failing q survive; the error turn does not.
	if len(history) != 3 {
		t.Errorf("history length = %d, want 3", len(history))
	}
}

// =============================================================================
// PHASED SUBMISSION
// =============================================================================

func TestBeginTurn_AppendsUserTurnOnly(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", text: "a reply"}
	o := newTestOrchestrator(primary)

	req, err := o.BeginTurn("what is osmosis", model.ModeExplain, nil)
	if err != nil {
		t.Fatalf("BeginTurn error = %v", err)
	}

	conv := o.Conversation()
	if conv.TurnCount() != 1 || conv.Turns[0].Role != model.RoleUser {
		t.Fatalf("BeginTurn should append exactly the user turn, got %d turns", conv.TurnCount())
	}
	if primary.calls != 0 {
		t.Error("BeginTurn must not dispatch to any adapter")
	}
	if !strings.Contains(req.Prompt, "what is osmosis") {
		t.Errorf("request prompt %q should contain the topic", req.Prompt)
	}
}

func TestBeginTurn_EmptyRejectedWithoutAppend(t *testing.T) {
	o := newTestOrchestrator(&fakeAdapter{name: "gemini"})

	if _, err := o.BeginTurn("", model.ModeExplain, nil); !errors.Is(err, ErrEmptyTurn) {
		t.Fatalf("err = %v, want ErrEmptyTurn", err)
	}
	if !o.Conversation().IsEmpty() {
		t.Error("a rejected turn must not touch the conversation")
	}
}

// Generate runs on a worker goroutine in the TUI, so it must never write
// to the conversation; BeginTurn and CompleteTurn do all the appending on
// the owning goroutine.
func TestGenerate_DoesNotTouchConversation(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", text: "a reply"}
	o := newTestOrchestrator(primary)

	req, err := o.BeginTurn("q", model.ModeExplain, nil)
	if err != nil {
		t.Fatal(err)
	}

	res := o.Generate(context.Background(), req)
	if res.Err != nil {
		t.Fatalf("Generate result error = %v", res.Err)
	}
	if o.Conversation().TurnCount() != 1 {
		t.Fatalf("Generate must leave the conversation at 1 turn, got %d", o.Conversation().TurnCount())
	}

	o.CompleteTurn(res)
	conv := o.Conversation()
	if conv.TurnCount() != 2 {
		t.Fatalf("CompleteTurn should append the reply, got %d turns", conv.TurnCount())
	}
	if conv.LastAssistantTurn().Content != "a reply" {
		t.Errorf("assistant turn = %q, want the generated reply", conv.LastAssistantTurn().Content)
	}
}

func TestCompleteTurn_FailureAppendsErrorTurn(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", err: &provider.Error{
		Kind: provider.KindOther, Provider: "gemini", Message: "boom",
	}}
	o := newTestOrchestrator(primary)

	req, err := o.BeginTurn("q", model.ModeExplain, nil)
	if err != nil {
		t.Fatal(err)
	}

	res := o.Generate(context.Background(), req)
	if res.Err == nil {
		t.Fatal("Result.Err should carry the failure")
	}
	o.CompleteTurn(res)

	last := o.Conversation().LastTurn()
	if !last.IsError {
		t.Error("CompleteTurn should append a formatted error turn on failure")
	}
}

// =============================================================================
// RESET / REFERENCE CONTEXT
// =============================================================================

func TestResetConversation(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", text: "a"}
	o := newTestOrchestrator(primary)

	for i := 0; i < 4; i++ {
		if _, err := o.SubmitTurn(context.Background(), "q", model.ModeExplain, nil); err != nil {
			t.Fatal(err)
		}
	}

	o.ResetConversation()
	if !o.Conversation().IsEmpty() {
		t.Error("ResetConversation should empty the history regardless of prior length")
	}
}

func TestSetReferenceContext_Wholesale(t *testing.T) {
	primary := &fakeAdapter{name: "gemini", text: "a"}
	o := newTestOrchestrator(primary)

	o.SetReferenceContext("chapter one notes")
	if _, err := o.SubmitTurn(context.Background(), "q", model.ModeExplain, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(primary.lastReq.Prompt, "chapter one notes") {
		t.Error("reference context should be merged into the prompt")
	}

	o.SetReferenceContext("chapter two notes")
	if _, err := o.SubmitTurn(context.Background(), "q", model.ModeExplain, nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(primary.lastReq.Prompt, "chapter one notes") {
		t.Error("replacing the context must discard the previous block wholesale")
	}

	o.SetReferenceContext("")
	if o.ReferenceContext() != "" {
		t.Error("empty string should mean no context")
	}
}
