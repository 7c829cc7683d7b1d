package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gmercad/EDSG/internal/config"
	"github.com/gmercad/EDSG/internal/domain"
	"github.com/gmercad/EDSG/internal/ports"
	"github.com/gmercad/EDSG/pkg/adapters/llm/anthropic"
	"github.com/gmercad/EDSG/pkg/adapters/llm/lmstudio"
	"github.com/gmercad/EDSG/pkg/adapters/llm/ollama"
	"github.com/gmercad/EDSG/pkg/adapters/llm/openai"
)

// Known provider keys. Selection happens per request by key; anything
// else is domain.ErrUnsupportedProvider.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderLMStudio  = "lm_studio"
	ProviderOllama    = "ollama"
)

// Factory resolves request-supplied provider keys to LLM clients.
// Clients are built once at startup from process-wide configuration;
// resolution itself performs no I/O, so a missing credential or an
// unknown key fails before any network activity.
type Factory struct {
	clients map[string]ports.LLMClient
	logger  *zap.Logger
}

// NewFactory builds clients for every backend the configuration makes
// available. Cloud backends require an API key; local backends require
// an endpoint URL.
func NewFactory(cfg config.LLMConfig, logger *zap.Logger) *Factory {
	clients := make(map[string]ports.LLMClient)

	if cfg.OpenAIAPIKey != "" {
		clients[ProviderOpenAI] = openai.NewClient(openai.Config{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.OpenAIModel,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     cfg.RequestTimeout,
		}, logger)
	}

	if cfg.AnthropicAPIKey != "" {
		clients[ProviderAnthropic] = anthropic.NewClient(anthropic.Config{
			APIKey:      cfg.AnthropicAPIKey,
			Model:       cfg.AnthropicModel,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     cfg.RequestTimeout,
		}, logger)
	}

	if cfg.LMStudioURL != "" {
		clients[ProviderLMStudio] = lmstudio.NewClient(lmstudio.Config{
			BaseURL:     cfg.LMStudioURL,
			Model:       cfg.LMStudioModel,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     cfg.RequestTimeout,
		}, logger)
	}

	if cfg.OllamaURL != "" {
		clients[ProviderOllama] = ollama.NewClient(ollama.Config{
			BaseURL:     cfg.OllamaURL,
			Model:       cfg.OllamaModel,
			Temperature: cfg.Temperature,
			Timeout:     cfg.RequestTimeout,
		}, logger)
	}

	keys := make([]string, 0, len(clients))
	for key := range clients {
		keys = append(keys, key)
	}
	logger.Info("llm backends configured", zap.Strings("providers", keys))

	return &Factory{clients: clients, logger: logger}
}

// Client returns the backend for a provider key.
func (f *Factory) Client(key string) (ports.LLMClient, error) {
	switch key {
	case ProviderOpenAI, ProviderAnthropic, ProviderLMStudio, ProviderOllama:
		client, ok := f.clients[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s is not configured (missing credential or endpoint)",
				domain.ErrUnsupportedProvider, key)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, key)
	}
}
