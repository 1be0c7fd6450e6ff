// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// studymode.
//
// Configuration comes from a TOML file with environment variable
// overrides for credentials, and validation with sensible defaults.
//
// Locations (in order of precedence):
//   - GEMINI_API_KEY / OPENAI_API_KEY environment variables
//   - ~/.studymode/config.toml
//   - Built-in defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete studymode configuration.
type Config struct {
	Version string `toml:"version"`

	// Providers configures the primary and fallback LLM providers.
	Providers ProvidersConfig `toml:"providers"`

	// Study configures default study behavior.
	Study StudyConfig `toml:"study"`

	// Session configures the interactive session.
	Session SessionConfig `toml:"session"`

	// UI configures the terminal interface.
	UI UIConfig `toml:"ui"`
}

// ProvidersConfig contains provider credentials and model selection.
type ProvidersConfig struct {
	// GeminiKey is the Gemini API key (primary provider).
	// Overridden by GEMINI_API_KEY.
	GeminiKey string `toml:"gemini_key"`
	// GeminiModel is the Gemini model identifier.
	GeminiModel string `toml:"gemini_model"`
	// OpenAIKey is the OpenAI API key (optional fallback provider).
	// Overridden by OPENAI_API_KEY.
	OpenAIKey string `toml:"openai_key"`
	// OpenAIModel is the OpenAI model identifier.
	OpenAIModel string `toml:"openai_model"`
	// RequestsPerMinute is the client-side throttle applied before every
	// provider attempt. 0 disables throttling.
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// StudyConfig contains study behavior defaults.
type StudyConfig struct {
	// DefaultMode is the study mode selected at startup:
	// "explain", "quiz", or "review".
	DefaultMode string `toml:"default_mode"`
}

// SessionConfig contains interactive session settings.
type SessionConfig struct {
	// IdleTimeoutSecs ends an idle interactive session; 0 disables.
	IdleTimeoutSecs int `toml:"idle_timeout_secs"`
}

// IdleTimeout returns the idle timeout as a duration; 0 means disabled.
func (s SessionConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSecs) * time.Second
}

// UIConfig contains terminal interface settings.
type UIConfig struct {
	// WordWrap is the rendering width for assistant markdown.
	WordWrap int `toml:"word_wrap"`
	// ShowProvenance toggles the provider tag on assistant turns.
	ShowProvenance bool `toml:"show_provenance"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Providers: ProvidersConfig{
			GeminiModel:       "gemini-1.5-flash",
			OpenAIModel:       "gpt-4o-mini",
			RequestsPerMinute: 0,
		},
		Study: StudyConfig{
			DefaultMode: "explain",
		},
		Session: SessionConfig{
			IdleTimeoutSecs: 0,
		},
		UI: UIConfig{
			WordWrap:       80,
			ShowProvenance: true,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// ErrNoCredentials is returned by Validate when no provider key is
// configured at all. The surrounding application reports it and halts.
var ErrNoCredentials = errors.New("no GEMINI_API_KEY configured (set the environment variable or providers.gemini_key in config.toml)")

// ConfigDir returns the studymode configuration directory, creating it if
// needed.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".studymode")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file from the default location, applies env
// overrides, and validates. A missing file is not an error; defaults plus
// environment are used.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file from an explicit path, applies env
// overrides, and validates.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.normalize()
	return cfg, nil
}

// applyEnvOverrides lets environment variables take precedence over the
// file for credentials.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Providers.GeminiKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Providers.OpenAIKey = key
	}
}

// normalize clamps and defaults values that came in out of range.
func (c *Config) normalize() {
	if c.Providers.GeminiModel == "" {
		c.Providers.GeminiModel = "gemini-1.5-flash"
	}
	if c.Providers.OpenAIModel == "" {
		c.Providers.OpenAIModel = "gpt-4o-mini"
	}
	if c.Providers.RequestsPerMinute < 0 {
		c.Providers.RequestsPerMinute = 0
	}
	if c.Study.DefaultMode == "" {
		c.Study.DefaultMode = "explain"
	}
	if c.Session.IdleTimeoutSecs < 0 {
		c.Session.IdleTimeoutSecs = 0
	}
	if c.UI.WordWrap < 40 {
		c.UI.WordWrap = 80
	}
}

// =============================================================================
// VALIDATION / QUERIES
// =============================================================================

// Validate checks that the configuration can start the application.
// Absence of the primary credential is fatal.
func (c *Config) Validate() error {
	if !c.HasGeminiKey() {
		return ErrNoCredentials
	}
	return nil
}

// HasGeminiKey returns true if the primary provider is configured.
func (c *Config) HasGeminiKey() bool {
	return c.Providers.GeminiKey != ""
}

// HasOpenAIKey returns true if the fallback provider is configured.
func (c *Config) HasOpenAIKey() bool {
	return c.Providers.OpenAIKey != ""
}
