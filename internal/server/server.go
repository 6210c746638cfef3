package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ldurand/paydash/backend/internal/config"
)

// Server wraps the http.Server lifecycle: construction, serving, and graceful
// shutdown.
type Server struct {
	inner  *http.Server
	logger *slog.Logger
}

// New constructs a Server over the provided router.
func New(logger *slog.Logger, cfg config.HTTPConfig, handler http.Handler) *Server {
	return &Server{
		inner: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start listens for HTTP traffic until Shutdown is called. A closed server is
// a normal exit, not an error.
func (s *Server) Start() error {
	s.logger.Info("starting http server", "addr", s.inner.Addr)
	if err := s.inner.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains active connections within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.inner.Shutdown(ctx)
}
