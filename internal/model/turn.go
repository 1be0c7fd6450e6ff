// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/studymode-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// PROVENANCE TYPE
// =============================================================================

// Provenance records which provider in the fallback chain produced an
// assistant turn.
type Provenance int

const (
	// ProvenanceNone is used for turns that were not produced by a provider
	// (user turns, formatted error turns).
	ProvenanceNone Provenance = iota
	// ProvenancePrimary marks an answer from the primary provider.
	ProvenancePrimary
	// ProvenanceSecondary marks an answer from the fallback provider.
	ProvenanceSecondary
)

// String returns the human-readable name of the provenance.
func (p Provenance) String() string {
	switch p {
	case ProvenancePrimary:
		return "primary"
	case ProvenanceSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// =============================================================================
// IMAGE ATTACHMENT
// =============================================================================

// Image is an inline image attachment on a user turn.
type Image struct {
	Data []byte
	MIME string
}

// IsEmpty returns true if the attachment has no data.
func (i *Image) IsEmpty() bool {
	return i == nil || len(i.Data) == 0
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn represents a single entry in a conversation. Turns are immutable
// once appended to a Conversation.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Image is the inline attachment for user turns, if any.
	Image *Image `json:"-"`

	// Provenance records the providing adapter for assistant turns.
	Provenance Provenance `json:"provenance,omitempty"`

	// ProviderName is the display name of the providing adapter.
	ProviderName string `json:"provider_name,omitempty"`

	// IsError marks assistant turns that carry a formatted failure message
	// instead of a model reply.
	IsError bool `json:"is_error,omitempty"`
}

// NewTurn creates a new turn with a generated ID.
func NewTurn(role Role, content string) *Turn {
	return &Turn{
		ID:        "turn_" + uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserTurn creates a new user turn.
func NewUserTurn(content string) *Turn {
	return NewTurn(RoleUser, content)
}

// NewAssistantTurn creates an assistant turn with provider provenance.
func NewAssistantTurn(content string, provenance Provenance, providerName string) *Turn {
	t := NewTurn(RoleAssistant, content)
	t.Provenance = provenance
	t.ProviderName = providerName
	return t
}

// NewErrorTurn creates an assistant turn carrying a formatted error message.
func NewErrorTurn(content string) *Turn {
	t := NewTurn(RoleAssistant, content)
	t.IsError = true
	return t
}

// Preview returns a truncated preview of the turn content.
// Uses rune-based truncation to handle Unicode correctly.
func (t *Turn) Preview(maxLen int) string {
	return util.TruncateRunes(t.Content, maxLen)
}

// HasImage returns true if the turn carries an image attachment.
func (t *Turn) HasImage() bool {
	return !t.Image.IsEmpty()
}
