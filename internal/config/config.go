// Package config loads llmfaker settings from defaults, an optional YAML
// file and LLMFAKER_* environment variables.
package config

import (
	"github.com/abhisek/llmfaker/internal/fakevalues"
	"github.com/abhisek/llmfaker/internal/llm"
)

// Config holds all application configuration.
type Config struct {
	LLM   llm.Config        `mapstructure:"llm"`
	Faker fakevalues.Config `mapstructure:"faker"`
	Log   LogConfig         `mapstructure:"log"`

	// DB is the request event database path. Empty selects the XDG default.
	DB string `mapstructure:"db"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}
