package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/task-assistant-team/task-assistant/pkg/config"
)

const anthropicVersion = "2023-06-01"

// AnthropicClient is a minimal client for the Anthropic messages API.
type AnthropicClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewAnthropicClient creates an Anthropic client using values from the
// provided config. Pass a nil config to fall back to environment variables.
func NewAnthropicClient(cfg *config.AIConfig) *AnthropicClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.AnthropicAPIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	var base string
	if cfg != nil && cfg.AnthropicBaseURL != "" {
		base = cfg.AnthropicBaseURL
	} else {
		base = os.Getenv("ANTHROPIC_BASE_URL")
		if base == "" {
			base = "https://api.anthropic.com"
		}
	}

	c := &AnthropicClient{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(base, "/"),
		model:       "claude-3-5-sonnet-latest",
		temperature: 0.3,
		maxTokens:   1000,
		client:      &http.Client{Timeout: 60 * time.Second},
	}
	if cfg != nil {
		if cfg.Model != "" {
			c.model = cfg.Model
		}
		c.temperature = cfg.Temperature
		if cfg.MaxTokens > 0 {
			c.maxTokens = cfg.MaxTokens
		}
	}
	return c
}

// MessagesRequest is the shape for Anthropic message requests. Unlike the
// chat-completions API the system prompt is a top-level field.
type MessagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature,omitempty"`
	System      string        `json:"system,omitempty"`
	Messages    []ChatMessage `json:"messages"`
}

// MessagesResponse is a minimal response shape
type MessagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// CreateMessage sends a system+user prompt pair and returns the raw
// assistant content.
func (c *AnthropicClient) CreateMessage(ctx context.Context, system, user string) (string, error) {
	reqBody := MessagesRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		System:      system,
		Messages:    []ChatMessage{{Role: "user", Content: user}},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var mr MessagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return "", err
	}
	for _, block := range mr.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("empty response from anthropic")
}
