// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package extract pulls plain text out of uploaded study notes.
//
// Supported formats are plain text, PDF, and Word documents; parsing is
// delegated to external libraries. All failures surface as a single
// ErrExtractionFailed kind so callers can keep their previous reference
// context on a failed re-upload.
package extract
