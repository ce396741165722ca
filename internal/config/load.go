package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/abhisek/llmfaker/internal/fakevalues"
	"github.com/abhisek/llmfaker/internal/llm"
)

// EnvPrefix prefixes every environment variable Load reads, e.g.
// LLMFAKER_LLM_PROVIDER or LLMFAKER_FAKER_ITEMS_PER_FETCH.
const EnvPrefix = "LLMFAKER"

// keys lists every setting so each can be bound to its environment variable.
var keys = []string{
	"llm.provider",
	"llm.timeout",
	"llm.anthropic.api_key",
	"llm.anthropic.model",
	"llm.openai.api_key",
	"llm.openai.model",
	"llm.openai.base_url",
	"llm.gemini.api_key",
	"llm.gemini.model",
	"llm.openrouter.api_key",
	"llm.openrouter.model",
	"llm.openrouter.base_url",
	"llm.ollama.host",
	"llm.ollama.model",
	"llm.retry.max_attempts",
	"llm.retry.initial_wait",
	"llm.retry.max_wait",
	"llm.retry.multiplier",
	"faker.use_full_key",
	"faker.items_per_fetch",
	"faker.style",
	"faker.max_tokens",
	"faker.temperature",
	"faker.model",
	"log.level",
	"log.development",
	"db",
}

// Load reads configuration. Environment variables take precedence over
// the file at path; an empty path searches for llmfaker.yaml in the user
// config directory and the working directory, and a missing file is not
// an error. When no provider is configured, standard API key variables
// such as OPENAI_API_KEY pick one; otherwise a local Ollama is assumed.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("llmfaker")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "llmfaker"))
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.LLM.Provider == "" {
		if found, ok := llm.DiscoverConfig(); ok {
			applyDiscovered(&cfg.LLM, found)
		} else {
			cfg.LLM.Provider = llm.DefaultConfig().Provider
		}
	}

	providerDefaults := fakevalues.DefaultConfigFor(cfg.LLM.Provider)
	if cfg.Faker.ItemsPerFetch == 0 {
		cfg.Faker.ItemsPerFetch = providerDefaults.ItemsPerFetch
	}
	if cfg.Faker.Style == "" {
		cfg.Faker.Style = providerDefaults.Style
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints and provider requirements.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.LLM.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Faker.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// setDefaults registers defaults for everything except the provider and
// the provider-dependent faker settings, which Load fills in afterwards.
func setDefaults(v *viper.Viper) {
	l := llm.DefaultConfig()
	v.SetDefault("llm.timeout", l.Timeout)
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.ollama.host", l.Ollama.Host)
	v.SetDefault("llm.ollama.model", l.Ollama.Model)
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)

	f := fakevalues.DefaultConfig()
	v.SetDefault("faker.use_full_key", f.UseFullKey)
	v.SetDefault("faker.max_tokens", f.MaxTokens)
	v.SetDefault("faker.temperature", f.Temperature)

	v.SetDefault("log.level", "warn")
}

// applyDiscovered copies the provider and credential found by discovery,
// keeping any model or endpoint settings already loaded.
func applyDiscovered(dst *llm.Config, found llm.Config) {
	dst.Provider = found.Provider
	switch found.Provider {
	case "gemini":
		dst.Gemini.APIKey = found.Gemini.APIKey
	case "openai":
		dst.OpenAI.APIKey = found.OpenAI.APIKey
	case "anthropic":
		dst.Anthropic.APIKey = found.Anthropic.APIKey
	case "openrouter":
		dst.OpenRouter.APIKey = found.OpenRouter.APIKey
	case "ollama":
		dst.Ollama.Host = found.Ollama.Host
	}
}
