package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSuccess(t *testing.T) {
	var gotReq map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"content": [{"type": "text", "text": "generated copy"}],
			"usage": {"input_tokens": 100, "output_tokens": 250}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 4096)
	result, err := client.Generate(context.Background(), "test-model", "write me a headline")
	require.NoError(t, err)

	assert.Equal(t, "generated copy", result.Text)
	assert.Equal(t, 350, result.TokensUsed)

	assert.Equal(t, "test-model", gotReq["model"])
	assert.Equal(t, float64(4096), gotReq["max_tokens"])
	messages := gotReq["messages"].([]interface{})
	require.Len(t, messages, 1)
	message := messages[0].(map[string]interface{})
	assert.Equal(t, "user", message["role"])
	assert.Equal(t, "write me a headline", message["content"])
}

func TestGenerateConcatenatesTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"content": [
				{"type": "text", "text": "part one "},
				{"type": "text", "text": "part two"}
			],
			"usage": {"input_tokens": 1, "output_tokens": 2}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 1024)
	result, err := client.Generate(context.Background(), "test-model", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "part one part two", result.Text)
}

func TestGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 1024)
	_, err := client.Generate(context.Background(), "test-model", "prompt")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "rate limited")
}

func TestGenerateEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content": [], "usage": {"input_tokens": 1, "output_tokens": 0}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 1024)
	_, err := client.Generate(context.Background(), "test-model", "prompt")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Body, "no text content")
}

func TestGenerateRespectsContextDeadline(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(server.URL, "test-key", 1024)
	_, err := client.Generate(ctx, "test-model", "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerateTransportError(t *testing.T) {
	// Point at a closed server to force a connection failure
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "test-key", 1024)
	_, err := client.Generate(context.Background(), "test-model", "prompt")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport errors are not API errors")
}
