// Package api defines the JSON bodies exchanged with the gateway's HTTP API.
package api

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
}

// AgentRequest is the body of POST /agent.
type AgentRequest struct {
	Agent    string `json:"agent"`
	Prompt   string `json:"prompt"`
	FilePath string `json:"file_path,omitempty"`
	System   string `json:"system,omitempty"`
}

// OutputResponse carries the trimmed stdout of a successful CLI run.
type OutputResponse struct {
	Output string `json:"output"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Routes served by the gateway.
const (
	PathHealth = "/health"
	PathChat   = "/chat"
	PathAgent  = "/agent"
	PathDoctor = "/doctor"
)
