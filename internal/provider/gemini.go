// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is the Gemini model used when none is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// =============================================================================
// GEMINI ADAPTER
// =============================================================================

// Gemini is the primary provider adapter, backed by the Google
// generative-ai SDK.
type Gemini struct {
	apiKey string
	model  string
}

var _ Adapter = (*Gemini)(nil)

// NewGemini creates a Gemini adapter. An empty model selects
// DefaultGeminiModel.
func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{apiKey: apiKey, model: model}
}

// Name returns the adapter display name.
func (g *Gemini) Name() string {
	return "gemini"
}

// Generate performs one completion request against the Gemini API.
// Image parts are sent before the text prompt, matching the order the
// API documentation recommends for inline images.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", g.classify(err)
	}
	defer client.Close()

	m := client.GenerativeModel(g.model)

	cs := m.StartChat()
	cs.History = geminiHistory(req.History)

	parts := make([]genai.Part, 0, 2)
	if req.Image != nil && len(req.Image.Data) > 0 {
		parts = append(parts, genai.ImageData(req.Image.Subtype(), req.Image.Data))
	}
	parts = append(parts, genai.Text(req.Prompt))

	resp, err := cs.SendMessage(ctx, parts...)
	if err != nil {
		return "", g.classify(err)
	}

	text := geminiText(resp)
	if text == "" {
		return "", newError(KindOther, g.Name(), errors.New("empty response from model"))
	}
	return text, nil
}

// classify maps raw SDK/transport errors into the fixed taxonomy.
// The googleapi error code is authoritative; gRPC-style status names in the
// message are the fallback for transports that do not surface an HTTP code.
func (g *Gemini) classify(err error) *Error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return newError(KindQuotaExceeded, g.Name(), err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return newError(KindPermissionDenied, g.Name(), err)
		}
		return newError(KindOther, g.Name(), err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return newError(KindQuotaExceeded, g.Name(), err)
	case strings.Contains(msg, "PERMISSION_DENIED"), strings.Contains(msg, "UNAUTHENTICATED"):
		return newError(KindPermissionDenied, g.Name(), err)
	}
	return newError(KindOther, g.Name(), err)
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// geminiHistory converts provider-agnostic history into genai content.
// The Gemini API names the assistant role "model".
func geminiHistory(history []Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		if role == "assistant" {
			role = "model"
		}
		if role != "user" && role != "model" {
			continue
		}
		if msg.Content == "" {
			continue
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return out
}

// geminiText concatenates the text parts of the first candidate.
func geminiText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			} else {
				sb.WriteString(fmt.Sprintf("%v", part))
			}
		}
		break
	}
	return sb.String()
}
