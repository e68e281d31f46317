// Package client talks to a running gateway over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/soyeahso/crowelogic-gateway/internal/api"
	"github.com/soyeahso/crowelogic-gateway/internal/version"
)

// EnvURL names the variable holding the gateway base URL.
const EnvURL = "CROWELOGIC_CLI_API_URL"

// ErrNoBaseURL is returned when no gateway URL was configured.
var ErrNoBaseURL = errors.New("CLI API URL is not configured")

const fallbackDetail = "crowelogic CLI request failed"

// APIError is a non-2xx response from the gateway.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Detail)
}

// Client calls the gateway's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for baseURL. An empty baseURL falls back to
// $CROWELOGIC_CLI_API_URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = os.Getenv(EnvURL)
	}
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// CLI runs default to two minutes; leave room for the 504.
		http: &http.Client{Timeout: 3 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Health checks that the gateway is up.
func (c *Client) Health(ctx context.Context) (string, error) {
	var resp api.HealthResponse
	if err := c.do(ctx, http.MethodGet, api.PathHealth, nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// Chat runs `crowelogic chat run` through the gateway.
func (c *Client) Chat(ctx context.Context, prompt, system string) (string, error) {
	return c.output(ctx, api.PathChat, api.ChatRequest{Prompt: prompt, System: system})
}

// Agent runs `crowelogic agent run` through the gateway.
func (c *Client) Agent(ctx context.Context, req api.AgentRequest) (string, error) {
	return c.output(ctx, api.PathAgent, req)
}

// Doctor runs `crowelogic doctor run` through the gateway.
func (c *Client) Doctor(ctx context.Context) (string, error) {
	return c.output(ctx, api.PathDoctor, struct{}{})
}

func (c *Client) output(ctx context.Context, path string, payload any) (string, error) {
	var resp api.OutputResponse
	if err := c.do(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return "", err
	}
	return resp.Output, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorDetail prefers the gateway's {"detail"} field, then the raw body.
func errorDetail(data []byte) string {
	var e api.ErrorResponse
	if err := json.Unmarshal(data, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	if text := strings.TrimSpace(string(data)); text != "" {
		return text
	}
	return fallbackDetail
}
