// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jeranaias/studymode-tui/internal/model"
	"github.com/jeranaias/studymode-tui/internal/provider"
)

// ErrEmptyTurn is returned when SubmitTurn is invoked with neither text nor
// an image. The precondition belongs to the caller; the conversation is
// left untouched.
var ErrEmptyTurn = errors.New("turn has neither text nor image")

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator owns one conversation and its reference context, and
// dispatches turns through the provider fallback chain.
//
// One orchestrator serves one session; submissions are serialized by the
// caller (the UI disables input while a request is outstanding), so no
// locking is needed here. The conversation must only be touched from the
// goroutine that owns the session: callers that run the provider call on
// another goroutine use the BeginTurn/Generate/CompleteTurn split, where
// only Generate leaves the owning goroutine.
type Orchestrator struct {
	chain *provider.Chain

	conv       *model.Conversation
	refContext string
}

// Result is the outcome of one submitted turn.
type Result struct {
	// Text is the assistant reply as appended to the conversation
	// (including the provenance marker for fallback answers, or the
	// formatted error message on failure).
	Text string
	// Provenance identifies which chain position answered.
	Provenance model.Provenance
	// Provider is the display name of the answering adapter, if any.
	Provider string
	// Err is the classified failure, nil on success.
	Err error
}

// New creates an orchestrator around a provider chain with a fresh
// conversation.
func New(chain *provider.Chain) *Orchestrator {
	return &Orchestrator{
		chain: chain,
		conv:  model.NewConversation(),
	}
}

// Conversation exposes the owned conversation for rendering.
func (o *Orchestrator) Conversation() *model.Conversation {
	return o.conv
}

// ReferenceContext returns the current extracted notes text.
func (o *Orchestrator) ReferenceContext() string {
	return o.refContext
}

// SetReferenceContext replaces the reference context wholesale. An empty
// string means "no context". Callers replace the context only after a
// successful extraction, so a failed re-upload leaves the previous notes
// intact.
func (o *Orchestrator) SetReferenceContext(text string) {
	o.refContext = text
}

// ResetConversation clears the conversation history in full.
func (o *Orchestrator) ResetConversation() {
	o.conv.Clear()
}

// =============================================================================
// TURN SUBMISSION
// =============================================================================

// SubmitTurn transforms one user input event into a provider request,
// obtains a reply, and appends both sides to the conversation.
//
// The user turn is appended before dispatch so that failed calls still
// leave a visible user message. Provider failures are converted into a
// formatted assistant turn and reported in the Result; SubmitTurn only
// returns an error for the caller-precondition violation (empty turn).
func (o *Orchestrator) SubmitTurn(ctx context.Context, input string, mode model.StudyMode, image *model.Image) (Result, error) {
	req, err := o.BeginTurn(input, mode, image)
	if err != nil {
		return Result{}, err
	}
	res := o.Generate(ctx, req)
	o.CompleteTurn(res)
	return res, nil
}

// BeginTurn validates the input, appends the user turn, and builds the
// provider request. The history snapshot is taken BEFORE the current turn
// is appended.
func (o *Orchestrator) BeginTurn(input string, mode model.StudyMode, image *model.Image) (provider.Request, error) {
	if input == "" && image.IsEmpty() {
		return provider.Request{}, ErrEmptyTurn
	}

	topic := input
	displayed := input
	if input == "" {
		// Image-only turn: fixed default prompt, placeholder in history.
		topic = DefaultImagePrompt
		displayed = ImagePlaceholder
	}

	history := o.historyMessages()

	userTurn := model.NewUserTurn(displayed)
	if !image.IsEmpty() {
		userTurn.Image = image
	}
	o.conv.Append(userTurn)

	req := provider.Request{
		Prompt:  BuildPrompt(mode, topic, o.refContext),
		History: history,
	}
	if !image.IsEmpty() {
		req.Image = &provider.ImageData{Data: image.Data, MIME: image.MIME}
	}
	return req, nil
}

// Generate runs a prepared request through the provider chain. It never
// touches the conversation, so the call may run off the goroutine that
// owns the session while BeginTurn and CompleteTurn bracket it there.
func (o *Orchestrator) Generate(ctx context.Context, req provider.Request) Result {
	res, err := o.chain.Generate(ctx, req)
	if err != nil {
		log.Printf("turn failed: %v", err)
		return Result{Text: formatUserError(err), Err: err}
	}

	text := res.Text
	provenance := model.ProvenancePrimary
	if res.Index > 0 {
		provenance = model.ProvenanceSecondary
		text += provenanceMarker(res.Provider)
	}
	return Result{Text: text, Provenance: provenance, Provider: res.Provider}
}

// CompleteTurn appends the outcome of a generated request: the assistant
// reply on success, a formatted error turn on failure.
func (o *Orchestrator) CompleteTurn(res Result) {
	if res.Err != nil {
		o.conv.Append(model.NewErrorTurn(res.Text))
		return
	}
	o.conv.Append(model.NewAssistantTurn(res.Text, res.Provenance, res.Provider))
}

// historyMessages converts prior turns into provider-agnostic history.
// Error turns are skipped so failed exchanges do not pollute the model's
// view of the conversation.
func (o *Orchestrator) historyMessages() []provider.Message {
	turns := o.conv.History()
	out := make([]provider.Message, 0, len(turns))
	for _, t := range turns {
		if t.IsError {
			continue
		}
		switch t.Role {
		case model.RoleUser, model.RoleAssistant:
			out = append(out, provider.Message{Role: t.Role.String(), Content: t.Content})
		}
	}
	return out
}

// provenanceMarker is the visible suffix distinguishing fallback answers.
func provenanceMarker(providerName string) string {
	return fmt.Sprintf("\n\n— answered by %s (fallback)", providerName)
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// formatUserError converts a chain failure into the user-readable payload
// shown as the assistant turn.
func formatUserError(err error) string {
	var ce *provider.ChainError
	if errors.As(err, &ce) {
		// More than one attempt means the primary hit quota and the
		// fallback also failed; surface the combined error.
		if len(ce.Attempts) > 1 {
			return fmt.Sprintf("⚠️ Fallback also failed: %s", ce.Error())
		}
		switch ce.Kind() {
		case provider.KindPermissionDenied:
			last := ce.Last()
			return fmt.Sprintf("⚠️ Permission denied by %s. Check that your API key/credentials are valid and active.", last.Provider)
		case provider.KindQuotaExceeded:
			return fmt.Sprintf("⚠️ Quota exceeded: %s. Try again later.", ce.Error())
		}
		return fmt.Sprintf("⚠️ Request failed: %s", ce.Error())
	}
	return fmt.Sprintf("⚠️ Request failed: %v", err)
}
