package chat

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

	"github.com/pageza/vitaltrack/backend/internal/sse"
)

// ErrNoResponseBody is returned when a successful response carries no stream.
var ErrNoResponseBody = errors.New("no response body")

const defaultFailureMessage = "Failed to get response"

// Message is a role/content pair sent to the chat endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseError is a non-success reply from the chat endpoint.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("chat request failed (%d): %s", e.StatusCode, e.Message)
}

// Client streams replies from the chat endpoint of a running API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// Stream posts the conversation and returns the complete assistant reply.
// onUpdate receives the full text accumulated so far after every delta.
func (c *Client) Stream(ctx context.Context, messages []Message, onUpdate func(full string)) (string, error) {
	body, err := json.Marshal(map[string]any{"messages": messages})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/v1/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	return ReadResponse(ctx, resp, onUpdate)
}

// ReadResponse validates resp and decodes its event stream. It always closes the body.
func ReadResponse(ctx context.Context, resp *http.Response, onUpdate func(full string)) (string, error) {
	if resp.Body != nil {
		defer resp.Body.Close()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ResponseError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return "", ErrNoResponseBody
	}
	return sse.Read(ctx, resp.Body, onUpdate)
}

func errorMessage(body io.Reader) string {
	if body == nil {
		return defaultFailureMessage
	}
	var payload struct {
		Error string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || json.Unmarshal(data, &payload) != nil || payload.Error == "" {
		return defaultFailureMessage
	}
	return payload.Error
}

// Ask appends question to the transcript, streams the reply into it and
// returns the reply.
func (c *Client) Ask(ctx context.Context, t *Transcript, question string, onUpdate func(full string)) (string, error) {
	t.Append(RoleUser, question)
	return c.Stream(ctx, t.Messages(), func(full string) {
		t.StreamAssistant(full)
		if onUpdate != nil {
			onUpdate(full)
		}
	})
}
