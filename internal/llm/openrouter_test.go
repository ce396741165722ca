package llm

import (
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "google/gemini-2.0-flash-exp",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "google/gemini-2.0-flash-exp" {
			t.Errorf("model = %q, want %q", p.ModelID(), "google/gemini-2.0-flash-exp")
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		})
		if err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("default base URL", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "meta-llama/llama-3-8b",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// The provider should be created successfully with default base URL.
		if p == nil {
			t.Fatal("expected non-nil provider")
		}
	})

	t.Run("custom model pass-through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "anthropic/claude-3-haiku",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Model ID should be used as-is (no friendly-name mapping).
		if p.ModelID() != "anthropic/claude-3-haiku" {
			t.Errorf("model = %q, want %q", p.ModelID(), "anthropic/claude-3-haiku")
		}
	})

	t.Run("custom base URL", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey:  "sk-or-test",
			Model:   "google/gemini-2.0-flash-exp",
			BaseURL: "https://custom.openrouter.example/v1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p == nil {
			t.Fatal("expected non-nil provider")
		}
	})
}

func TestOllamaBaseURL(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"localhost:11434", "http://localhost:11434/v1"},
		{"http://gpu-box:11434/", "http://gpu-box:11434/v1"},
		{"https://ollama.internal/v1", "https://ollama.internal/v1"},
		{"http://localhost:11434/v1/", "http://localhost:11434/v1"},
	}
	for _, tt := range tests {
		if got := ollamaBaseURL(tt.host); got != tt.want {
			t.Errorf("ollamaBaseURL(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestNewOllamaProvider(t *testing.T) {
	t.Run("requires a model", func(t *testing.T) {
		if _, err := NewOllamaProvider(OllamaConfig{Host: "localhost:11434"}); err == nil {
			t.Fatal("expected error for empty model")
		}
	})

	t.Run("json object mode", func(t *testing.T) {
		p, err := NewOllamaProvider(OllamaConfig{Model: "gemma"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "gemma" {
			t.Errorf("model = %q, want %q", p.ModelID(), "gemma")
		}
		if p.strictSchema {
			t.Error("ollama should not request strict json_schema output")
		}
	})
}
