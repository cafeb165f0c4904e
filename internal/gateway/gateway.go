// Package gateway talks to the OpenAI-compatible AI gateway used for the
// health assistant and food analysis.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pageza/vitaltrack/backend/internal/chat"
)

const DefaultURL = "https://ai.gateway.lovable.dev/v1/chat/completions"

var (
	ErrRateLimited   = errors.New("Rate limit exceeded. Please try again later.")
	ErrQuotaExceeded = errors.New("Usage limit reached. Please add credits.")
	ErrMissingAPIKey = errors.New("missing AI gateway API key")
	ErrNoChoices     = errors.New("no choices in gateway response")
	// ErrUnavailable wraps transport failures; the cause stays in the chain.
	ErrUnavailable   = errors.New("AI gateway unreachable")
)

// StatusError is any other non-2xx gateway response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway request failed with status %d", e.StatusCode)
}

// Request is a chat-completions request body.
type Request struct {
	Model       string         `json:"model"`
	Messages    []chat.Message `json:"messages"`
	Stream      bool           `json:"stream,omitempty"`
	Temperature *float64       `json:"temperature,omitempty"`
	MaxTokens   int            `json:"max_tokens,omitempty"`
}

// Client is safe for concurrent use. A nil HTTPClient means http.DefaultClient;
// deadlines come from the request context so long streams are not cut off.
type Client struct {
	URL        string
	APIKey     string
	ChatModel  string
	HTTPClient *http.Client
}

func New(url, apiKey, chatModel string) *Client {
	return &Client{URL: url, APIKey: apiKey, ChatModel: chatModel}
}

// StreamChat starts a streaming completion with the chat model and returns
// the raw SSE body. The caller must close it.
func (c *Client) StreamChat(ctx context.Context, messages []chat.Message) (io.ReadCloser, error) {
	resp, err := c.do(ctx, Request{Model: c.ChatModel, Messages: messages, Stream: true})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Complete runs a non-streaming completion and returns the first choice.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	req.Stream = false
	resp, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", ErrNoChoices
	}
	return result.Choices[0].Message.Content, nil
}

// do sends req and returns the response when the status is 2xx. Any other
// status is mapped to an error and the body is closed.
func (c *Client) do(ctx context.Context, body Request) (*http.Response, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	url := strings.TrimSpace(c.URL)
	if url == "" {
		url = DefaultURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal gateway request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusPaymentRequired:
		return nil, ErrQuotaExceeded
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
}

// StripCodeFence removes a surrounding ``` or ```json fence from model output.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
