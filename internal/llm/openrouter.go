package llm

import (
	"fmt"
	"strings"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOllamaHost        = "http://localhost:11434"
)

// OpenRouterProvider wraps OpenAIProvider with OpenRouter defaults.
// OpenRouter exposes an OpenAI-compatible API, so the underlying SDK is reused.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	return &OpenRouterProvider{
		OpenAIProvider: newOpenAICompatible(cfg.APIKey, baseURL, cfg.Model),
	}, nil
}

// OllamaProvider talks to a local Ollama server through its
// OpenAI-compatible /v1 endpoint. Ollama ignores the API key.
type OllamaProvider struct {
	*OpenAIProvider
}

// NewOllamaProvider creates a provider for the Ollama server at cfg.Host.
func NewOllamaProvider(cfg OllamaConfig) (*OllamaProvider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}

	host := cfg.Host
	if host == "" {
		host = defaultOllamaHost
	}

	inner := newOpenAICompatible("ollama", ollamaBaseURL(host), cfg.Model)
	inner.strictSchema = false
	return &OllamaProvider{OpenAIProvider: inner}, nil
}

// ollamaBaseURL turns an Ollama host ("localhost:11434", "http://h:11434/")
// into its OpenAI-compatible base URL.
func ollamaBaseURL(host string) string {
	host = strings.TrimRight(host, "/")
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	if strings.HasSuffix(host, "/v1") {
		return host
	}
	return host + "/v1"
}
