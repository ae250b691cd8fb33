package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxErrorBody bounds how much of an error response is kept for the message.
const maxErrorBody = 4 << 10

// DashScopeClient talks to the DashScope text-generation HTTP API.
type DashScopeClient struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewDashScopeClient creates a client whose calls are bounded by timeout.
func NewDashScopeClient(url, apiKey, model string, timeout time.Duration) *DashScopeClient {
	return &DashScopeClient{
		url:        url,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type dashScopeRequest struct {
	Model string         `json:"model"`
	Input dashScopeInput `json:"input"`
}

type dashScopeInput struct {
	Prompt string `json:"prompt"`
}

type dashScopeResponse struct {
	Output struct {
		Text string `json:"text"`
	} `json:"output"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// Generate posts the prompt and returns output.text.
func (c *DashScopeClient) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	body, err := json.Marshal(dashScopeRequest{Model: c.model, Input: dashScopeInput{Prompt: prompt}})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure dashScopeResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &failure) == nil && failure.Message != "" {
			return "", fmt.Errorf("%w: %d %s: %s", ErrUpstream, resp.StatusCode, failure.Code, failure.Message)
		}
		return "", fmt.Errorf("%w: %s", ErrUpstream, resp.Status)
	}

	var result dashScopeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return result.Output.Text, nil
}
