// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
)

// =============================================================================
// STUDY MODE
// =============================================================================

// StudyMode selects the instruction framing for the next outgoing request.
// It is chosen per turn and is not stored in the conversation history.
type StudyMode int

const (
	// ModeExplain asks for step-by-step teaching with simple examples.
	ModeExplain StudyMode = iota
	// ModeQuiz asks for 3-5 quiz questions with hidden answers.
	ModeQuiz
	// ModeReview asks for a summary and key points.
	ModeReview
)

// Modes lists all study modes in display order.
var Modes = []StudyMode{ModeExplain, ModeQuiz, ModeReview}

// String returns the human-readable name of the mode.
func (m StudyMode) String() string {
	switch m {
	case ModeExplain:
		return "Explain"
	case ModeQuiz:
		return "Quiz"
	case ModeReview:
		return "Review"
	default:
		return fmt.Sprintf("StudyMode(%d)", int(m))
	}
}

// Next cycles to the following mode, wrapping around.
func (m StudyMode) Next() StudyMode {
	switch m {
	case ModeExplain:
		return ModeQuiz
	case ModeQuiz:
		return ModeReview
	default:
		return ModeExplain
	}
}

// ParseStudyMode parses a mode name (case-insensitive).
func ParseStudyMode(s string) (StudyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "explain":
		return ModeExplain, nil
	case "quiz":
		return ModeQuiz, nil
	case "review":
		return ModeReview, nil
	default:
		return ModeExplain, fmt.Errorf("unknown study mode %q (want explain, quiz, or review)", s)
	}
}
