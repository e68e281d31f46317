package gateway

import (
	"net/http"

	"github.com/soyeahso/crowelogic-gateway/internal/api"
)

// registerHTTPRoutes sets up all HTTP routes on the server mux.
func (s *Server) registerHTTPRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+api.PathHealth, s.handleHealth)
	mux.HandleFunc("POST "+api.PathChat, s.handleChat)
	mux.HandleFunc("POST "+api.PathAgent, s.handleAgent)
	mux.HandleFunc("POST "+api.PathDoctor, s.handleDoctor)

	// Catch-all for unknown routes
	mux.HandleFunc("/", handleNotFound)
}
