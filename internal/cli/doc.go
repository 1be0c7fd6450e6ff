// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli provides argument parsing and the non-TUI command handlers
for studymode.

Commands:

	studymode                 Start the TUI (default)
	studymode ask "question"  One-shot question, markdown to stdout
	studymode chat            Line-based REPL without the TUI
	studymode config          Show the active configuration
	studymode version         Print version information
	studymode help            Print usage

The ask and chat commands share the TUI's orchestration: the same
provider chain, study modes, and reference-notes handling.
*/
package cli
