package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vitaltrack/backend/internal/chat"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return &Client{URL: ts.URL, APIKey: "k", ChatModel: "m", HTTPClient: ts.Client()}
}

func TestCompleteSendsRequest(t *testing.T) {
	var got Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	})

	temp := 0.3
	out, err := c.Complete(context.Background(), Request{
		Model:       "food",
		Messages:    []chat.Message{{Role: "user", Content: "hi"}},
		Temperature: &temp,
		MaxTokens:   500,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, "food", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, 500, got.MaxTokens)
}

func TestCompleteNoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})
	_, err := c.Complete(context.Background(), Request{Model: "m"})
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusPaymentRequired, ErrQuotaExceeded},
	}
	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})
		_, err := c.StreamChat(context.Background(), nil)
		assert.ErrorIs(t, err, tt.want)
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})
	_, err := c.StreamChat(context.Background(), nil)
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusBadGateway, serr.StatusCode)
	assert.Equal(t, "upstream down", serr.Body)
}

func TestStreamChatReturnsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		assert.Equal(t, "m", req.Model)
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	})
	body, err := c.StreamChat(context.Background(), []chat.Message{{Role: "user", Content: "x"}})
	require.NoError(t, err)
	defer body.Close()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "data: [DONE]\n\n", string(raw))
}

func TestMissingAPIKey(t *testing.T) {
	c := &Client{URL: "http://127.0.0.1:1"}
	_, err := c.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence(` {"a":1} `))
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	c := &Client{URL: url, APIKey: "k", ChatModel: "m"}
	_, err := c.StreamChat(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Complete(ctx, Request{})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}
