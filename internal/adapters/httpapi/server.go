package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Server runs the HTTP API with graceful shutdown.
type Server struct {
	srv *http.Server
	log zerolog.Logger
}

// NewServer creates a server listening on addr.
func NewServer(addr string, handler http.Handler, baseLogger *zerolog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: baseLogger.With().Str("component", "http_server").Logger(),
	}
}

// Start runs the server until the context is cancelled, then drains
// in-flight requests before returning.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info().Str("addr", s.srv.Addr).Msg("HTTP server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.log.Error().Err(err).Msg("HTTP server failed")
		return err
	case <-ctx.Done():
		s.log.Info().Msg("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("HTTP server shutdown failed")
			return err
		}
		s.log.Info().Msg("HTTP server stopped gracefully")
		return nil
	}
}
