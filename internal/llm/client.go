// Package llm is the text-generation boundary: one chat-completion call
// per request, no retries. Failures carry a structured Kind so callers
// map them to HTTP statuses without matching on error text.
package llm

import (
	"bytes"
	"chronicrelief/server/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Kind classifies a generation failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindRateLimited
	KindAuthFailed
	KindUnavailable
)

// Error is a generation failure with its classification attached.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf extracts the Kind from an error, KindUnknown when it is not an
// *Error.
func KindOf(err error) Kind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return KindUnknown
}

// Generator issues a single bounded text-generation call.
type Generator interface {
	// Configured reports whether an API key is present. Callers fall back
	// to local formatting when it returns false.
	Configured() bool
	Generate(ctx context.Context, system, user string) (string, error)
}

// client talks to an OpenAI-compatible chat-completions endpoint.
type client struct {
	cfg        config.LLMConfig
	httpClient *http.Client
}

// NewClient creates a text-generation client from config. A client with
// an empty key is valid; Configured then reports false.
func NewClient(cfg config.LLMConfig) Generator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *client) Configured() bool {
	return c.cfg.APIKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code,omitempty"`
	} `json:"error,omitempty"`
}

// Generate issues one chat-completion call and returns the trimmed text.
func (c *client) Generate(ctx context.Context, system, user string) (string, error) {
	if !c.Configured() {
		return "", &Error{Kind: KindUnavailable, Message: "text generation is not configured"}
	}

	payload := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &Error{Kind: KindUnknown, Message: fmt.Sprintf("marshal request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindUnknown, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Kind: KindUnavailable, Message: fmt.Sprintf("generation request failed: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &Error{Kind: KindUnavailable, Message: fmt.Sprintf("read generation response: %v", err)}
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return "", &Error{Kind: KindRateLimited, Message: "generation rate limit exceeded"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", &Error{Kind: KindAuthFailed, Message: "generation API key rejected"}
	default:
		return "", &Error{Kind: KindUnknown, Message: fmt.Sprintf("generation returned status %d", resp.StatusCode)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &Error{Kind: KindUnknown, Message: fmt.Sprintf("parse generation response: %v", err)}
	}
	if parsed.Error != nil {
		kind := KindUnknown
		switch parsed.Error.Code {
		case "invalid_api_key":
			kind = KindAuthFailed
		case "rate_limit_exceeded":
			kind = KindRateLimited
		}
		return "", &Error{Kind: kind, Message: parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		return "", &Error{Kind: KindUnknown, Message: "generation returned no choices"}
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
