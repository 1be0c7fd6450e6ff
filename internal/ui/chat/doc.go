// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the interactive study chat view for the TUI.

The view is a Bubble Tea model with three regions: a transcript viewport,
a single-line input, and a status bar showing the active study mode and
whether reference notes are loaded. Assistant replies render as markdown
through glamour.

Slash commands control the session:

	/mode <explain|quiz|review>  switch study mode
	/notes <path>                load a document as reference context
	/image <path>                attach an image to the next turn
	/clear                       reset the conversation
	/help                        show command help
	/quit                        exit

Input is disabled while a request is in flight; an empty submit is a
no-op.
*/
package chat
