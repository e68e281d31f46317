package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/soyeahso/crowelogic-gateway/internal/api"
)

// handleHealth reports liveness. It never touches the CLI.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// handleNotFound returns a 404 for unknown routes.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, api.ErrorResponse{Detail: "Not Found"})
}

// chatBody mirrors api.ChatRequest with a pointer so a missing prompt can be
// told apart from an empty one.
type chatBody struct {
	Prompt *string `json:"prompt"`
	System string  `json:"system"`
}

type agentBody struct {
	Agent    string  `json:"agent"`
	Prompt   *string `json:"prompt"`
	FilePath string  `json:"file_path"`
	System   string  `json:"system"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var body chatBody
	if err := s.decode(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Prompt == nil {
		s.writeError(w, r, &ValidationError{Message: detailPromptMissing})
		return
	}

	out, err := s.commands.Chat(detach(r), api.ChatRequest{Prompt: *body.Prompt, System: body.System})
	s.respond(w, r, out, err)
}

func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	var body agentBody
	if err := s.decode(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Agent == "" {
		s.writeError(w, r, &ValidationError{Message: detailAgentRequired})
		return
	}
	if body.Prompt == nil {
		s.writeError(w, r, &ValidationError{Message: detailPromptMissing})
		return
	}

	out, err := s.commands.Agent(detach(r), api.AgentRequest{
		Agent:    body.Agent,
		Prompt:   *body.Prompt,
		FilePath: body.FilePath,
		System:   body.System,
	})
	s.respond(w, r, out, err)
}

// handleDoctor ignores any request body.
func (s *Server) handleDoctor(w http.ResponseWriter, r *http.Request) {
	out, err := s.commands.Doctor(detach(r))
	s.respond(w, r, out, err)
}

// detach keeps request values but drops cancellation: a client hanging up
// does not kill the CLI, only the configured timeout does.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// decode reads a JSON body into dst, enforcing the configured size limit.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if s.cfg.Server.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return &ValidationError{Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)}
		case errors.Is(err, io.EOF):
			return &ValidationError{Message: "request body is required"}
		default:
			return &ValidationError{Message: "invalid request body: " + err.Error()}
		}
	}
	return nil
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, out string, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.OutputResponse{Output: out})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := statusFor(err)
	s.log.Debug().
		Str("path", r.URL.Path).
		Str("requestId", requestIDFrom(r.Context())).
		Int("status", status).
		Str("detail", detail).
		Msg("request failed")
	writeJSON(w, status, api.ErrorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
