package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the snapshot service. It is read
// once at startup and never mutated during request handling.
type Config struct {
	// Server configuration
	HTTPPort int    `env:"EDSG_HTTP_PORT" envDefault:"8000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Upstream statistics provider
	WorldBank WorldBankConfig

	// LLM backends
	LLM LLMConfig

	// Snapshot pipeline
	Snapshot SnapshotConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// WorldBankConfig holds the statistics provider configuration.
type WorldBankConfig struct {
	BaseURL string `env:"WORLDBANK_BASE_URL" envDefault:"https://api.worldbank.org/v2"`
	PerPage int    `env:"WORLDBANK_PER_PAGE" envDefault:"1000"`

	RequestTimeout time.Duration `env:"WORLDBANK_REQUEST_TIMEOUT" envDefault:"20s"`
}

// LLMConfig holds per-backend connection info. A backend whose
// credential or endpoint is absent is simply not offered; selecting it
// fails before any network activity.
type LLMConfig struct {
	// OpenAI (cloud)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Anthropic (cloud)
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL" envDefault:"claude-3-5-sonnet-20241022"`

	// LM Studio (local, OpenAI-compatible)
	LMStudioURL   string `env:"LM_STUDIO_URL" envDefault:"http://127.0.0.1:1234/v1"`
	LMStudioModel string `env:"LM_STUDIO_MODEL" envDefault:"mistral-7b-instruct-v0.1"`

	// Ollama (local, native API)
	OllamaURL   string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaModel string `env:"OLLAMA_MODEL" envDefault:"mistral"`

	// Generation settings shared by all backends
	RequestTimeout time.Duration `env:"LLM_REQUEST_TIMEOUT" envDefault:"120s"`
	MaxTokens      int64         `env:"LLM_MAX_TOKENS" envDefault:"1000"`
	Temperature    float64       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
}

// SnapshotConfig holds pipeline tuning knobs.
type SnapshotConfig struct {
	MaxConcurrentFetches int `env:"SNAPSHOT_MAX_CONCURRENT_FETCHES" envDefault:"4"`
}

// TimeoutConfig holds lifecycle timeouts.
type TimeoutConfig struct {
	ShutdownTimeout time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"30s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	if c.WorldBank.BaseURL == "" {
		return fmt.Errorf("world bank base URL is required")
	}
	if c.WorldBank.PerPage < 1 {
		return fmt.Errorf("world bank per_page must be at least 1")
	}

	if c.LLM.MaxTokens < 1 {
		return fmt.Errorf("LLM max tokens must be at least 1")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("LLM temperature out of range: %f", c.LLM.Temperature)
	}

	if c.Snapshot.MaxConcurrentFetches < 1 {
		return fmt.Errorf("max concurrent fetches must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
