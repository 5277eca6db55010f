package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.OpenAI.Model != "gpt-3.5-turbo" {
		t.Errorf("expected default model gpt-3.5-turbo, got %s", cfg.OpenAI.Model)
	}
	if cfg.Analysis.DefaultMaxWords != 100 {
		t.Errorf("expected default max words 100, got %d", cfg.Analysis.DefaultMaxWords)
	}
	if cfg.Analysis.DefaultMaxTags != 10 {
		t.Errorf("expected default max tags 10, got %d", cfg.Analysis.DefaultMaxTags)
	}
	if cfg.YouTube.BaseURL != "https://www.youtube.com" {
		t.Errorf("unexpected youtube base URL: %s", cfg.YouTube.BaseURL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_TIMEOUT", "30s")
	t.Setenv("ANALYSIS_DEFAULT_MAX_WORDS", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerPort != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.ServerPort)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("expected model gpt-4o-mini, got %s", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.OpenAI.Timeout)
	}
	if cfg.Analysis.DefaultMaxWords != 50 {
		t.Errorf("expected max words 50, got %d", cfg.Analysis.DefaultMaxWords)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when OPENAI_API_KEY is missing")
	}
}

func TestValidateTimeouts(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.ReadTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero read timeout")
	}
}
