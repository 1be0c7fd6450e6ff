// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the OpenAI model used when none is configured.
const DefaultOpenAIModel = openai.GPT4oMini

// =============================================================================
// OPENAI ADAPTER
// =============================================================================

// OpenAI is the secondary (fallback) provider adapter.
type OpenAI struct {
	client *openai.Client
	model  string
}

var _ Adapter = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI adapter. An empty model selects
// DefaultOpenAIModel.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Name returns the adapter display name.
func (o *OpenAI) Name() string {
	return "openai"
}

// Generate performs one chat completion request against the OpenAI API.
// Images are sent as data-URL parts in a multi-content user message.
func (o *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+1)
	for _, msg := range req.History {
		if msg.Content == "" {
			continue
		}
		role := openai.ChatMessageRoleUser
		if msg.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	if req.Image != nil && len(req.Image.Data) > 0 {
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL: dataURL(req.Image),
					},
				},
				{
					Type: openai.ChatMessagePartTypeText,
					Text: req.Prompt,
				},
			},
		})
	} else {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Prompt,
		})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: messages,
	})
	if err != nil {
		return "", o.classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", newError(KindOther, o.Name(), errors.New("empty response from model"))
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps go-openai errors into the fixed taxonomy using the HTTP
// status the SDK preserves on its error types.
func (o *OpenAI) classify(err error) *Error {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusTooManyRequests:
		return newError(KindQuotaExceeded, o.Name(), err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return newError(KindPermissionDenied, o.Name(), err)
	}
	return newError(KindOther, o.Name(), err)
}

// dataURL encodes an image attachment as an inline data URL.
func dataURL(img *ImageData) string {
	mime := img.MIME
	if mime == "" {
		mime = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(img.Data))
}
