package gateway

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/soyeahso/crowelogic-gateway/internal/config"
	"github.com/soyeahso/crowelogic-gateway/internal/hooks"
	"github.com/soyeahso/crowelogic-gateway/internal/logging"
)

const (
	readTimeout     = 30 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second

	// writeSlack is added to the CLI timeout so a 504 can still be written.
	writeSlack = 15 * time.Second
)

// Server is the HTTP front end for the crowelogic CLI.
type Server struct {
	cfg      config.Config
	log      *logging.Logger
	commands *CommandGateway
	hooks    *hooks.Manager

	startedAt  time.Time
	httpServer *http.Server
}

// ServerOption configures the gateway server.
type ServerOption func(*Server)

// WithHooks sets the hook manager for lifecycle events.
func WithHooks(hm *hooks.Manager) ServerOption {
	return func(s *Server) {
		s.hooks = hm
	}
}

// New creates a new gateway server.
func New(cfg config.Config, commands *CommandGateway, log *logging.Logger, opts ...ServerOption) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log.Sub("gateway"),
		commands: commands,
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed mux wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerHTTPRoutes(mux)
	return withMiddleware(mux, s.log.Sub("http"), s.cfg.Server.AllowedOrigins)
}

// resolveBindAddr computes the listen address from config.
func resolveBindAddr(cfg config.ServerConfig) string {
	switch cfg.Bind {
	case "loopback":
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	case "lan", "auto":
		return fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	case "custom":
		host := cfg.CustomBindHost
		if host == "" {
			host = "0.0.0.0"
		}
		return net.JoinHostPort(host, fmt.Sprint(cfg.Port))
	default:
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	}
}

// Start begins listening for HTTP connections.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	addr := resolveBindAddr(s.cfg.Server)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: s.cfg.CLI.Timeout() + writeSlack,
		IdleTimeout:  idleTimeout,
		BaseContext:  func(l net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	if s.cfg.Server.TLS.Enabled {
		cert, err := tls.LoadX509KeyPair(s.cfg.Server.TLS.CertPath, s.cfg.Server.TLS.KeyPath)
		if err != nil {
			ln.Close()
			return fmt.Errorf("loading TLS certificate: %w", err)
		}
		tlsCfg := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		ln = tls.NewListener(ln, tlsCfg)
		s.log.Info().Msg("TLS enabled")
	}

	return s.Serve(ctx, ln)
}

// Serve handles connections on ln until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.httpServer == nil {
		s.httpServer = &http.Server{
			Handler:      s.Handler(),
			ReadTimeout:  readTimeout,
			WriteTimeout: s.cfg.CLI.Timeout() + writeSlack,
			IdleTimeout:  idleTimeout,
		}
	}
	s.startedAt = time.Now()

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("bind", s.cfg.Server.Bind).
		Str("cli", s.commands.Tool()).
		Str("workDir", s.cfg.CLI.WorkDir).
		Dur("timeout", s.cfg.CLI.Timeout()).
		Msg("gateway server ready")

	s.hooks.Emit(ctx, hooks.EventGatewayStart, map[string]any{
		"addr": ln.Addr().String(),
	})

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down gateway server")
		// In-flight CLI runs are bounded by the CLI timeout, so wait for them.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.CLI.Timeout()+shutdownTimeout)
		defer cancel()
		shutdownErr <- s.httpServer.Shutdown(shutdownCtx)
	}()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err := <-shutdownErr
	s.hooks.Emit(context.Background(), hooks.EventGatewayStop, map[string]any{
		"uptimeSeconds": int(time.Since(s.startedAt).Seconds()),
	})
	s.hooks.Wait()
	return err
}
