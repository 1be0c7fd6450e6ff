// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the append-only turn history for one study session.
//
// The history only ever grows by whole turns or resets to empty via Clear;
// turns are never edited in place. The conversation is owned by exactly one
// session and is not persisted.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Turns []*Turn `json:"turns"`
}

// NewConversation creates a new empty conversation with a generated ID.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        "conv_" + uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Turns:     make([]*Turn, 0),
	}
}

// =============================================================================
// TURN MANAGEMENT
// =============================================================================

// Append adds a turn to the conversation history.
func (c *Conversation) Append(t *Turn) {
	c.Turns = append(c.Turns, t)
	c.UpdatedAt = time.Now()
	c.updateTitle()
}

// Clear removes all turns. The conversation is always cleared in full,
// never partially.
func (c *Conversation) Clear() {
	c.Turns = make([]*Turn, 0)
	c.Title = ""
	c.UpdatedAt = time.Now()
}

// LastTurn returns the most recent turn, or nil if empty.
func (c *Conversation) LastTurn() *Turn {
	if len(c.Turns) == 0 {
		return nil
	}
	return c.Turns[len(c.Turns)-1]
}

// LastAssistantTurn returns the most recent assistant turn, or nil.
func (c *Conversation) LastAssistantTurn() *Turn {
	for i := len(c.Turns) - 1; i >= 0; i-- {
		if c.Turns[i].Role == RoleAssistant {
			return c.Turns[i]
		}
	}
	return nil
}

// LastUserTurn returns the most recent user turn, or nil.
func (c *Conversation) LastUserTurn() *Turn {
	for i := len(c.Turns) - 1; i >= 0; i-- {
		if c.Turns[i].Role == RoleUser {
			return c.Turns[i]
		}
	}
	return nil
}

// History returns the turn history for display.
func (c *Conversation) History() []*Turn {
	return c.Turns
}

// TurnCount returns the number of turns.
func (c *Conversation) TurnCount() int {
	return len(c.Turns)
}

// IsEmpty returns true if there are no turns.
func (c *Conversation) IsEmpty() bool {
	return len(c.Turns) == 0
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// updateTitle auto-generates a title from the first user turn if not set.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}
	for _, t := range c.Turns {
		if t.Role == RoleUser {
			c.Title = t.Preview(50)
			return
		}
	}
}

// GetTitle returns the conversation title or a default.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "New Session"
}
