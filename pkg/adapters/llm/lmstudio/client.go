// Package lmstudio implements the LM Studio local backend. LM Studio
// serves an OpenAI-compatible completion API, so the client reuses the
// OpenAI SDK pointed at the local base URL; no real credential exists,
// only the placeholder key the local server ignores.
package lmstudio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/gmercad/EDSG/internal/domain"
)

const (
	providerKey    = "lm_studio"
	placeholderKey = "lm-studio"
)

// Config holds the LM Studio backend configuration.
type Config struct {
	BaseURL     string
	Model       string
	MaxTokens   int64
	Temperature float64
	Timeout     time.Duration
}

// Client generates narrative text via a local LM Studio server.
type Client struct {
	client      sdk.Client
	model       string
	maxTokens   int64
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewClient creates an LM Studio client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		client: sdk.NewClient(
			option.WithBaseURL(cfg.BaseURL),
			option.WithAPIKey(placeholderKey),
		),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logger,
	}
}

// Provider returns the provider key this client serves.
func (c *Client) Provider() string {
	return providerKey
}

// Generate produces a single narrative string for the prompt.
func (c *Client) Generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model: sdk.ChatModel(c.model),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(prompt.Instructions),
			sdk.UserMessage(prompt.Input),
		},
		MaxTokens:   sdk.Int(c.maxTokens),
		Temperature: sdk.Float(c.temperature),
	})
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", domain.ErrEmptyGeneration)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: blank completion", domain.ErrEmptyGeneration)
	}

	c.logger.Debug("lm studio generation complete",
		zap.String("model", c.model),
		zap.Int("length", len(text)))

	return text, nil
}

func classifyError(err error) error {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return fmt.Errorf("%w: %v", domain.ErrProviderRejected, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrProviderUnreachable, err)
}
