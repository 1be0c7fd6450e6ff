// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// ERROR TAXONOMY
// =============================================================================

// ErrorKind classifies provider failures into the fixed taxonomy the
// orchestration layer acts on.
type ErrorKind int

const (
	// KindOther is any failure that is neither quota nor permission.
	// Terminal for the turn: no fallback.
	KindOther ErrorKind = iota
	// KindQuotaExceeded means the provider rejected the request for
	// rate/quota reasons. The only kind that continues the fallback chain.
	KindQuotaExceeded
	// KindPermissionDenied means the credential was rejected. Terminal:
	// a different provider's credential is independent, but the reference
	// behavior is no fallback on permission failures.
	KindPermissionDenied
)

// String returns the human-readable name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindQuotaExceeded:
		return "quota exceeded"
	case KindPermissionDenied:
		return "permission denied"
	default:
		return "provider error"
	}
}

// Error is a classified provider failure.
type Error struct {
	Kind     ErrorKind
	Provider string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

// Unwrap returns the underlying transport error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// newError builds a classified error from a raw SDK failure.
func newError(kind ErrorKind, providerName string, cause error) *Error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: kind, Provider: providerName, Message: msg, Cause: cause}
}

// KindOf extracts the error kind from err, returning KindOther for
// unclassified errors.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindOther
}

// =============================================================================
// REQUEST / RESULT
// =============================================================================

// Message is a provider-agnostic history entry.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// ImageData is raw image bytes with a declared MIME type.
type ImageData struct {
	Data []byte
	MIME string
}

// Subtype returns the MIME subtype ("jpeg" for "image/jpeg"), which is the
// format identifier the Gemini SDK expects for inline image parts.
func (i *ImageData) Subtype() string {
	if i == nil {
		return ""
	}
	if idx := strings.IndexByte(i.MIME, '/'); idx >= 0 {
		return i.MIME[idx+1:]
	}
	return i.MIME
}

// Request is one generation request built by the orchestrator.
type Request struct {
	// Prompt is the fully built prompt for the current turn (mode template +
	// reference context + user text).
	Prompt string
	// History is the prior conversation, oldest first, excluding the
	// current turn.
	History []Message
	// Image is the optional inline image attachment.
	Image *ImageData
}

// Result is a successful generation from one adapter in the chain.
type Result struct {
	// Text is the reply text.
	Text string
	// Provider is the name of the adapter that answered.
	Provider string
	// Index is the adapter's position in the chain (0 = primary).
	Index int
}

// =============================================================================
// ADAPTER CONTRACT
// =============================================================================

// Adapter is the capability contract for a hosted LLM completion API.
//
// Generate returns the reply text, or a *Error carrying one of the fixed
// failure kinds. Adapters own their wire protocol entirely; callers never
// see transport-level errors unclassified.
type Adapter interface {
	// Name returns a short display name ("gemini", "openai").
	Name() string
	// Generate performs one completion request.
	Generate(ctx context.Context, req Request) (string, error)
}
