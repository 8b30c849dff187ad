// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/amishk599/lexiroute/internal/config"
	"github.com/amishk599/lexiroute/internal/model"
	"github.com/amishk599/lexiroute/internal/server/middleware"
)

const defaultShutdownTimeout = 10 * time.Second

// Server serves POST {path} and GET /healthz until its context is cancelled.
type Server struct {
	cfg     config.ServerConfig
	handler http.Handler
	logger  *slog.Logger
}

// New wires the analysis handler behind the middleware chain
// RequestID → Logger → Recovery → CORS.
func New(cfg config.ServerConfig, cors config.CORSConfig, analyzer model.Analyzer, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, &analyzeHandler{analyzer: analyzer, logger: logger})
	mux.HandleFunc("/healthz", healthz)

	stack := middleware.Stack{
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger, http.HandlerFunc(internalError)),
		middleware.CORS(cors),
	}

	return &Server{
		cfg:     cfg,
		handler: stack.Then(mux),
		logger:  logger,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Start listens on the configured address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout. A clean shutdown returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info("server listening", "addr", ln.Addr().String(), "path", s.cfg.Path)

	select {
	case <-ctx.Done():
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		s.logger.Info("shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
