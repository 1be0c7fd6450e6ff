// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the studymode TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. The Theme struct holds the configured styles for each part of
the chat screen:

	theme := styles.NewTheme()
	header := theme.Header.Render("studymode")

Mode accents map each study mode to its own color so the active mode is
visible at a glance in the status bar:

	styles.ModeAccent(model.ModeQuiz)
*/
package styles
