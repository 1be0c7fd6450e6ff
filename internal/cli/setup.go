// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// setup.go - Shared wiring from configuration to a ready orchestrator.
package cli

import (
	"fmt"
	"os"

	"golang.org/x/time/rate"

	"github.com/jeranaias/studymode-tui/internal/config"
	"github.com/jeranaias/studymode-tui/internal/orchestrator"
	"github.com/jeranaias/studymode-tui/internal/provider"
)

// BuildOrchestrator assembles the provider chain from config and returns
// an orchestrator ready for turns. Gemini is always first; OpenAI joins
// the chain as quota fallback when a key is configured.
func BuildOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	adapters := []provider.Adapter{
		provider.NewGemini(cfg.Providers.GeminiKey, cfg.Providers.GeminiModel),
	}
	if cfg.HasOpenAIKey() {
		adapters = append(adapters, provider.NewOpenAI(cfg.Providers.OpenAIKey, cfg.Providers.OpenAIModel))
	}

	chain := provider.NewChain(adapters...)
	if rpm := cfg.Providers.RequestsPerMinute; rpm > 0 {
		chain.SetLimiter(rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1))
	}

	return orchestrator.New(chain), nil
}

// LoadConfig loads the config file, exiting with a friendly message when
// no provider credentials are available.
func LoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// HandleConfig prints the resolved configuration.
func HandleConfig(_ Args) {
	cfg := LoadConfig()

	path, err := config.DefaultPath()
	if err == nil {
		fmt.Printf("Config file:  %s\n", path)
	}
	fmt.Printf("Gemini model: %s (key set: %t)\n", cfg.Providers.GeminiModel, cfg.HasGeminiKey())
	fmt.Printf("OpenAI model: %s (key set: %t)\n", cfg.Providers.OpenAIModel, cfg.HasOpenAIKey())
	fmt.Printf("Default mode: %s\n", cfg.Study.DefaultMode)
	fmt.Printf("Word wrap:    %d\n", cfg.UI.WordWrap)
	if cfg.Providers.RequestsPerMinute > 0 {
		fmt.Printf("Rate limit:   %d requests/minute\n", cfg.Providers.RequestsPerMinute)
	}
}
