package fakevalues

import "fmt"

// PromptStyle selects the response shape the prompt asks for.
type PromptStyle string

const (
	// StyleList asks for a bare JSON array of strings.
	StyleList PromptStyle = "list"

	// StyleObject asks for an object whose "values" field holds the array.
	StyleObject PromptStyle = "object"
)

// MaxItemsPerFetch bounds how many candidates one prompt may ask for.
const MaxItemsPerFetch = 200

// Config tunes how keys are turned into backend requests.
type Config struct {
	// UseFullKey includes the domain segment in the prompt phrase.
	UseFullKey bool `mapstructure:"use_full_key"`

	// ItemsPerFetch is how many candidates each prompt asks for.
	ItemsPerFetch int `mapstructure:"items_per_fetch" validate:"gte=1,lte=200"`

	Style PromptStyle `mapstructure:"style" validate:"oneof=list object"`

	// MaxTokens caps the response length. Zero leaves the provider default.
	MaxTokens int `mapstructure:"max_tokens" validate:"gte=0"`

	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`

	// Model overrides the provider's configured model when set.
	Model string `mapstructure:"model"`
}

// DefaultConfig returns settings for a local model: a bare list of 20
// items per fetch.
func DefaultConfig() Config {
	return Config{
		ItemsPerFetch: 20,
		Style:         StyleList,
		MaxTokens:     500,
		Temperature:   0.5,
	}
}

// DefaultConfigFor returns defaults suited to the named provider. Hosted
// APIs get the object style with 5 items per fetch; ollama and mock keep
// DefaultConfig.
func DefaultConfigFor(provider string) Config {
	cfg := DefaultConfig()
	switch provider {
	case "ollama", "mock", "":
	default:
		cfg.ItemsPerFetch = 5
		cfg.Style = StyleObject
	}
	return cfg
}

// Validate reports settings no prompt can be built from.
func (c Config) Validate() error {
	if c.ItemsPerFetch < 1 || c.ItemsPerFetch > MaxItemsPerFetch {
		return fmt.Errorf("items per fetch must be between 1 and %d, got %d", MaxItemsPerFetch, c.ItemsPerFetch)
	}
	switch c.Style {
	case StyleList, StyleObject:
	default:
		return fmt.Errorf("unknown prompt style %q (want %q or %q)", c.Style, StyleList, StyleObject)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max tokens must not be negative, got %d", c.MaxTokens)
	}
	return nil
}
