package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
)

const apiVersion = "2023-06-01"

// APIError is a non-200 reply from the backend: a transport-level failure as
// far as the orchestration loop is concerned.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// Client talks to the Messages API. Temperature is pinned to 0; answers over
// a fixed corpus should not drift between identical queries.
type Client struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
}

func NewClient(baseURL, apiKey, model string, maxTokens int) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL:   baseURL,
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *Client) Generate(ctx context.Context, req core.GenerateRequest) (*core.ModelResponse, error) {
	messages, err := toWireMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	payload := wireRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: 0,
		System:      req.System,
		Messages:    messages,
	}
	// An empty tool list must leave the tools and tool_choice keys off the
	// wire; their absence is what rules out another tool_use stop reason.
	if len(req.Tools) > 0 {
		payload.Tools = toWireTools(req.Tools)
		payload.ToolChoice = &wireToolChoice{Type: "auto"}
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/messages", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var result wireResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	out := &core.ModelResponse{StopReason: result.StopReason}
	for _, b := range result.Content {
		if cb, ok := fromWireBlock(b); ok {
			out.Content = append(out.Content, cb)
		}
	}
	return out, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	return resp, nil
}
