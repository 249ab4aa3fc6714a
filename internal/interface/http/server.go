// Package http implements the bot's HTTP surface: the keep-alive endpoint the
// hosting platform polls, health checks, and the interactions webhook used
// instead of the gateway when webhook mode is enabled.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cinema-hub/cinema-community-bot/internal/interface/http/handlers"
)

// ══════════════════════════════════════════════════════════════════════════════
// SERVER CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config contains HTTP server configuration.
type Config struct {
	// Host - address to bind (default: "0.0.0.0").
	Host string

	// Port - port to listen on (default: 8080).
	Port int

	// ReadTimeout - maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout - maximum duration for writing the response.
	WriteTimeout time.Duration

	// IdleTimeout - maximum duration for idle connections.
	IdleTimeout time.Duration
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Address returns the server address string.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER
// ══════════════════════════════════════════════════════════════════════════════

// Server is the bot's HTTP server.
type Server struct {
	config Config
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the server. interactions may be nil when the bot runs in
// gateway mode; the route is then not registered.
func NewServer(config Config, health *handlers.HealthHandler, interactions *handlers.InteractionsHandler, logger *slog.Logger) *Server {
	if config.Port == 0 {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	// The hosting platform polls / to keep the instance awake.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Cinema Society Bot is alive!")
	})

	mux.Handle("/health", health)

	if interactions != nil {
		mux.Handle("/interactions", interactions)
	}

	return &Server{
		config: config,
		logger: logger.With("component", "http_server"),
		server: &http.Server{
			Addr:         config.Address(),
			Handler:      mux,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// Start runs the server until it fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.config.Address())
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains connections and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.server.Shutdown(ctx)
}
