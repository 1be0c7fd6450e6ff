// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package orchestrator turns one user input event into a provider request,
// obtains a reply through the fallback chain, and appends both sides of the
// exchange to the conversation.
//
// This is a pure policy layer: it performs no network I/O, text extraction,
// or rendering itself. Provider failures never propagate past SubmitTurn;
// they become user-readable assistant turns.
package orchestrator
