// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the lifecycle of one interactive study session:
// identity, activity, and the optional idle timeout. Each session owns
// exactly one conversation; sessions never share state.
package session
