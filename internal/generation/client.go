// Package generation provides the client for the external LLM completion
// API. It performs a single call per invocation; retry policy belongs to the
// worker, which knows job identity and whether re-queuing is safe.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// apiVersion is the messages API version header value.
const apiVersion = "2023-06-01"

// Result holds the raw generated text and the token usage of one call.
type Result struct {
	Text       string
	TokensUsed int
}

// APIError is returned when the generation API responds with a non-success
// status code.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("generation API returned status %d: %s", e.StatusCode, e.Body)
}

// Client calls the messages-style generation API.
type Client struct {
	endpoint   string
	apiKey     string
	maxTokens  int
	httpClient *http.Client
}

// NewClient creates a generation client. The underlying HTTP client carries
// no timeout of its own: generation calls routinely run for tens of seconds
// to minutes, and callers bound the call with a context deadline when they
// need one.
func NewClient(endpoint, apiKey string, maxTokens int) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		maxTokens:  maxTokens,
		httpClient: &http.Client{},
	}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Generate performs a single completion call and returns the generated text
// with the total token usage. Transport failures and context deadlines are
// returned as-is; a non-2xx response is returned as an *APIError.
func (c *Client) Generate(ctx context.Context, model, prompt string) (*Result, error) {
	body, err := json.Marshal(messageRequest{
		Model:     model,
		MaxTokens: c.maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed messageResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse generation response: %w", err)
	}

	var text strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "" || block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: "response contained no text content"}
	}

	return &Result{
		Text:       text.String(),
		TokensUsed: parsed.Usage.InputTokens + parsed.Usage.OutputTokens,
	}, nil
}
