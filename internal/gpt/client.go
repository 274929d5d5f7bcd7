// Package gpt provides an OpenAI-compatible client used by the recipe
// generator agent to draft recipes, rewrite instructions, re-derive
// markup from edited step text, and produce dish images.
package gpt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// ── Wire types ───────────────────────────────────────────────────

// Role constants.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat-completion message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatPayload is the request body sent to the chat-completions endpoint.
type chatPayload struct {
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p"`
	MaxTokens   int       `json:"max_tokens"`
	Model       string    `json:"model,omitempty"`
}

// chatResponse is the top-level chat response envelope.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// imagePayload is the request body for the image-generations endpoint.
type imagePayload struct {
	Prompt         string `json:"prompt"`
	Model          string `json:"model,omitempty"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

// imageResponse is the image endpoint envelope.
type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithModel overrides the default chat model name.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// WithImageModel overrides the default image model name.
func WithImageModel(model string) ClientOption {
	return func(c *Client) { c.imageModel = model }
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) ClientOption {
	return func(c *Client) { c.temperature = t }
}

// WithMaxTokens sets the response token limit.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) { c.maxTokens = n }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithImageEndpoint sets the image-generations URL. When unset,
// GenerateImage fails with domain.ErrNoImage.
func WithImageEndpoint(url string) ClientOption {
	return func(c *Client) { c.imageEndpoint = url }
}

// Client talks to OpenAI-compatible chat-completions and
// image-generations endpoints.
type Client struct {
	endpoint      string
	imageEndpoint string
	apiKey        string
	model         string
	imageModel    string
	temperature   float64
	topP          float64
	maxTokens     int
	http          *http.Client
	log           *logger.Logger
}

// NewClient creates a client.
//   - endpoint: full URL of the chat/completions resource
//   - apiKey:   the subscription / API key
func NewClient(endpoint, apiKey string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:    endpoint,
		apiKey:      apiKey,
		model:       "", // omitted for Azure deployments; set via WithModel otherwise
		temperature: 0.6,
		topP:        0.95,
		maxTokens:   2048,
		http:        &http.Client{Timeout: 60 * time.Second},
		log:         log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Chat sends a chat-completion request and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	body := chatPayload{
		Messages:    messages,
		Temperature: c.temperature,
		TopP:        c.topP,
		MaxTokens:   c.maxTokens,
		Model:       c.model,
	}

	respBody, err := c.post(ctx, c.endpoint, body)
	if err != nil {
		return "", err
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("gpt: unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("gpt: %w", domain.ErrEmptyResponse)
	}

	reply := result.Choices[0].Message.Content
	c.log.Debug("gpt: reply (%d chars): %s", len(reply), truncate(reply, 120))
	return reply, nil
}

// Image sends an image-generation request and returns a data URI.
func (c *Client) Image(ctx context.Context, prompt string) (string, error) {
	if c.imageEndpoint == "" {
		return "", fmt.Errorf("gpt: no image endpoint configured: %w", domain.ErrNoImage)
	}

	body := imagePayload{
		Prompt:         prompt,
		Model:          c.imageModel,
		N:              1,
		ResponseFormat: "b64_json",
	}

	respBody, err := c.post(ctx, c.imageEndpoint, body)
	if err != nil {
		if strings.Contains(err.Error(), "content_policy") || strings.Contains(err.Error(), "safety") {
			return "", fmt.Errorf("gpt: %w: %v", domain.ErrImageBlocked, err)
		}
		return "", err
	}

	var result imageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("gpt: unmarshal image response: %w", err)
	}
	if result.Error != nil {
		if strings.Contains(result.Error.Code, "content_policy") {
			return "", fmt.Errorf("gpt: %w: %s", domain.ErrImageBlocked, result.Error.Message)
		}
		return "", fmt.Errorf("gpt: image API: %s", result.Error.Message)
	}
	if len(result.Data) == 0 || result.Data[0].B64JSON == "" {
		return "", fmt.Errorf("gpt: %w", domain.ErrNoImage)
	}

	return "data:image/png;base64," + result.Data[0].B64JSON, nil
}

func (c *Client) post(ctx context.Context, url string, body any) ([]byte, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gpt: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("gpt: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug("gpt: POST %s (%d bytes)", url, len(jsonData))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gpt: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gpt: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gpt: API %s\n%s", resp.Status, string(respBody))
	}
	return respBody, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
