// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package orchestrator

import (
	"strings"

	"github.com/jeranaias/studymode-tui/internal/model"
)

// =============================================================================
// PROMPT TEMPLATES
// =============================================================================

// DefaultImagePrompt is substituted when a turn carries an image but no text.
const DefaultImagePrompt = "Please describe and explain this image, and give 2 short flashcards."

// ImagePlaceholder is the user-turn content recorded for image-only turns.
const ImagePlaceholder = "[sent an image]"

// BuildPrompt concatenates the mode-specific instruction template, the
// user's topic or question, and the reference notes.
//
// The reference context is included verbatim and un-truncated; request size
// limits are the provider's to enforce.
func BuildPrompt(mode model.StudyMode, topic, referenceContext string) string {
	var sb strings.Builder

	switch mode {
	case model.ModeQuiz:
		sb.WriteString("You are a quiz master. Create 3-5 quiz questions (with answers hidden) on: ")
		sb.WriteString(topic)
	case model.ModeReview:
		sb.WriteString("You are a study coach. Summarize and list the key points for: ")
		sb.WriteString(topic)
	default: // Explain
		sb.WriteString("You are a friendly teacher. Explain step by step with simple examples.\n\n")
		sb.WriteString("Question/Topic: ")
		sb.WriteString(topic)
	}

	sb.WriteString("\n\nReference notes:\n")
	sb.WriteString(referenceContext)
	return sb.String()
}
