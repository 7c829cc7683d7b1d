// Package anthropic implements the Anthropic cloud backend on the
// official messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/gmercad/EDSG/internal/domain"
)

const providerKey = "anthropic"

// Config holds the Anthropic backend configuration.
type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int64
	Temperature float64
	Timeout     time.Duration
}

// Client generates narrative text via the Anthropic messages API.
type Client struct {
	client      sdk.Client
	model       string
	maxTokens   int64
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewClient creates an Anthropic client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		client:      sdk.NewClient(option.WithAPIKey(cfg.APIKey)),
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

	resp, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []sdk.TextBlockParam{
			{Text: prompt.Instructions},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt.Input)),
		},
		Temperature: sdk.Float(c.temperature),
	})
	if err != nil {
		return "", classifyError(err)
	}

	var builder strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", fmt.Errorf("%w: no text blocks returned", domain.ErrEmptyGeneration)
	}

	c.logger.Debug("anthropic generation complete",
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
