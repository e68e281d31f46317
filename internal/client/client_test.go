package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soyeahso/crowelogic-gateway/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	path   string
	agent  string
	body   map[string]any
}

func testClient(t *testing.T, status int, respBody string) (*Client, *captured) {
	t.Helper()
	got := &captured{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.agent = r.UserAgent()
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			json.Unmarshal(data, &got.body)
		}
		w.WriteHeader(status)
		w.Write([]byte(respBody))
	}))
	t.Cleanup(ts.Close)

	c, err := New(ts.URL + "/")
	require.NoError(t, err)
	return c, got
}

func TestNewRequiresURL(t *testing.T) {
	t.Setenv(EnvURL, "")
	_, err := New("")
	assert.ErrorIs(t, err, ErrNoBaseURL)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv(EnvURL, "http://gateway.internal:8080/")
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "http://gateway.internal:8080", c.baseURL)
}

func TestHealth(t *testing.T) {
	c, got := testClient(t, http.StatusOK, `{"status":"ok"}`)

	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status)
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/health", got.path)
	assert.Equal(t, "crowelogic-gateway/dev", got.agent)
}

func TestChat(t *testing.T) {
	c, got := testClient(t, http.StatusOK, `{"output":"hello"}`)

	out, err := c.Chat(context.Background(), "hi", "")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/chat", got.path)
	assert.Equal(t, map[string]any{"prompt": "hi"}, got.body)
}

func TestAgent(t *testing.T) {
	c, got := testClient(t, http.StatusOK, `{"output":"done"}`)

	out, err := c.Agent(context.Background(), api.AgentRequest{Agent: "researcher", Prompt: "go", FilePath: "a.md", System: "s"})
	require.NoError(t, err)
	assert.Equal(t, "done", out)
	assert.Equal(t, "/agent", got.path)
	assert.Equal(t, map[string]any{"agent": "researcher", "prompt": "go", "file_path": "a.md", "system": "s"}, got.body)
}

func TestDoctor(t *testing.T) {
	c, got := testClient(t, http.StatusOK, `{"output":"healthy"}`)

	out, err := c.Doctor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", out)
	assert.Equal(t, "/doctor", got.path)
	assert.Empty(t, got.body)
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"detail field", http.StatusGatewayTimeout, `{"detail":"CLI command timed out"}`, "CLI command timed out"},
		{"plain text", http.StatusBadGateway, "upstream down\n", "upstream down"},
		{"empty body", http.StatusInternalServerError, "", "crowelogic CLI request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testClient(t, tt.status, tt.body)
			_, err := c.Doctor(context.Background())

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.detail, apiErr.Detail)
		})
	}
}

func TestDecodeError(t *testing.T) {
	c, _ := testClient(t, http.StatusOK, `not json`)
	_, err := c.Chat(context.Background(), "hi", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}
