// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for study conversations:
// turns, the append-only conversation history, study modes, and
// answer provenance.
package model
