package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.anthropic.com/v1/messages"
	defaultModel       = "claude-3-5-haiku-20241022"
	defaultMaxTokens   = 1000
	defaultHTTPTimeout = 30 * time.Second
	anthropicVersion   = "2023-06-01"
)

// ErrMissingAPIKey is returned when no API key was configured.
var ErrMissingAPIKey = errors.New("LLM API key not configured")

// Config captures the runtime settings required to talk to the LLM.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Client wraps the Anthropic Messages API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs an LLM client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	client := &Client{
		cfg: Config{
			APIKey:    strings.TrimSpace(cfg.APIKey),
			BaseURL:   strings.TrimSpace(cfg.BaseURL),
			Model:     strings.TrimSpace(cfg.Model),
			MaxTokens: cfg.MaxTokens,
			Timeout:   timeout,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
	}
	if client.cfg.MaxTokens <= 0 {
		client.cfg.MaxTokens = defaultMaxTokens
	}
	return client
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm request: http %d: %s", e.StatusCode, e.Message)
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends prompt as a single user message and returns the text of the answer.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("llm complete: prompt required")
	}

	encoded, err := json.Marshal(messagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("llm request: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("llm request: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request: http error (timeout=%s): %w", c.cfg.Timeout, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm request: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	var completion messagesResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("llm request: decode response: %w", err)
	}
	for _, block := range completion.Content {
		if block.Type != "" && block.Type != "text" {
			continue
		}
		if text := strings.TrimSpace(block.Text); text != "" {
			return text, nil
		}
	}
	return "", fmt.Errorf("llm request: empty content (stop_reason=%q)", completion.StopReason)
}

func errorMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && strings.TrimSpace(parsed.Error.Message) != "" {
		return strings.TrimSpace(parsed.Error.Message)
	}
	return "API request failed"
}
