// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Providers.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("GeminiModel = %q, want gemini-1.5-flash", cfg.Providers.GeminiModel)
	}
	if cfg.Providers.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q, want gpt-4o-mini", cfg.Providers.OpenAIModel)
	}
	if cfg.Study.DefaultMode != "explain" {
		t.Errorf("DefaultMode = %q, want explain", cfg.Study.DefaultMode)
	}
	if cfg.UI.WordWrap != 80 {
		t.Errorf("WordWrap = %d, want 80", cfg.UI.WordWrap)
	}
	if !cfg.UI.ShowProvenance {
		t.Error("ShowProvenance should default to true")
	}
}

// =============================================================================
// LOADING
// =============================================================================

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom error = %v", err)
	}
	if cfg.Providers.GeminiModel != "gemini-1.5-flash" {
		t.Error("missing file should fall back to defaults")
	}
}

func TestLoadFrom_File(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "1"

[providers]
gemini_key = "file-gem"
gemini_model = "gemini-1.5-pro"
openai_key = "file-oai"
requests_per_minute = 10

[study]
default_mode = "quiz"

[ui]
word_wrap = 100
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error = %v", err)
	}
	if cfg.Providers.GeminiKey != "file-gem" {
		t.Errorf("GeminiKey = %q, want file value", cfg.Providers.GeminiKey)
	}
	if cfg.Providers.GeminiModel != "gemini-1.5-pro" {
		t.Errorf("GeminiModel = %q", cfg.Providers.GeminiModel)
	}
	if cfg.Providers.RequestsPerMinute != 10 {
		t.Errorf("RequestsPerMinute = %d, want 10", cfg.Providers.RequestsPerMinute)
	}
	if cfg.Study.DefaultMode != "quiz" {
		t.Errorf("DefaultMode = %q, want quiz", cfg.Study.DefaultMode)
	}
	if cfg.UI.WordWrap != 100 {
		t.Errorf("WordWrap = %d, want 100", cfg.UI.WordWrap)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[providers]
gemini_key = "file-gem"
openai_key = "file-oai"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GEMINI_API_KEY", "env-gem")
	t.Setenv("OPENAI_API_KEY", "env-oai")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error = %v", err)
	}
	if cfg.Providers.GeminiKey != "env-gem" {
		t.Errorf("GeminiKey = %q, env must win over file", cfg.Providers.GeminiKey)
	}
	if cfg.Providers.OpenAIKey != "env-oai" {
		t.Errorf("OpenAIKey = %q, env must win over file", cfg.Providers.OpenAIKey)
	}
}

func TestLoadFrom_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[[[not toml"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("malformed TOML should fail loading")
	}
}

// =============================================================================
// NORMALIZATION / VALIDATION
// =============================================================================

func TestNormalize_Clamps(t *testing.T) {
	cfg := &Config{}
	cfg.Providers.RequestsPerMinute = -5
	cfg.Session.IdleTimeoutSecs = -1
	cfg.UI.WordWrap = 10
	cfg.normalize()

	if cfg.Providers.RequestsPerMinute != 0 {
		t.Error("negative throttle should clamp to 0")
	}
	if cfg.Session.IdleTimeoutSecs != 0 {
		t.Error("negative timeout should clamp to 0")
	}
	if cfg.UI.WordWrap != 80 {
		t.Errorf("WordWrap = %d, want default for out-of-range", cfg.UI.WordWrap)
	}
	if cfg.Providers.GeminiModel == "" || cfg.Study.DefaultMode == "" {
		t.Error("empty model/mode should default")
	}
}

func TestValidate_NoCredentialsFatal(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); !errors.Is(err, ErrNoCredentials) {
		t.Errorf("Validate = %v, want ErrNoCredentials", err)
	}

	cfg.Providers.GeminiKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate with key = %v, want nil", err)
	}
}

func TestHasKeys(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.HasGeminiKey() || cfg.HasOpenAIKey() {
		t.Error("empty config should report no keys")
	}
	cfg.Providers.GeminiKey = "g"
	cfg.Providers.OpenAIKey = "o"
	if !cfg.HasGeminiKey() || !cfg.HasOpenAIKey() {
		t.Error("configured keys should be reported")
	}
}
