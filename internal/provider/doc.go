// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider contains the hosted-LLM adapter contract, the fixed
// failure taxonomy, the Gemini and OpenAI adapters, and the ordered
// fallback chain that tries adapters in sequence.
//
// Adapters are responsible for mapping raw SDK/transport errors into the
// taxonomy; nothing above this package inspects error strings.
package provider
