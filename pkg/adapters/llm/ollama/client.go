// Package ollama implements the Ollama local backend via its native
// /api/generate endpoint. Unlike LM Studio, Ollama does not speak the
// OpenAI wire format, so the request and response shapes are built by
// hand.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gmercad/EDSG/internal/domain"
)

const (
	providerKey  = "ollama"
	generatePath = "/api/generate"
)

// Config holds the Ollama backend configuration.
type Config struct {
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Client generates narrative text via a local Ollama server.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates an Ollama client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	System  string         `json:"system,omitempty"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Provider returns the provider key this client serves.
func (c *Client) Provider() string {
	return providerKey
}

// Generate produces a single narrative string for the prompt.
func (c *Client) Generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:   c.model,
		System:  prompt.Instructions,
		Prompt:  prompt.Input,
		Stream:  false,
		Options: map[string]any{"temperature": c.temperature},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", domain.ErrProviderUnreachable, err)
	}

	switch {
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		return "", fmt.Errorf("%w: status %s: %s", domain.ErrProviderRejected, resp.Status, strings.TrimSpace(string(body)))
	case resp.StatusCode >= http.StatusInternalServerError:
		return "", fmt.Errorf("%w: status %s", domain.ErrProviderUnreachable, resp.Status)
	}

	var generated generateResponse
	if err := json.Unmarshal(body, &generated); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrProviderUnreachable, err)
	}

	text := strings.TrimSpace(generated.Response)
	if text == "" {
		return "", fmt.Errorf("%w: blank response", domain.ErrEmptyGeneration)
	}

	c.logger.Debug("ollama generation complete",
		zap.String("model", c.model),
		zap.Int("length", len(text)))

	return text, nil
}
