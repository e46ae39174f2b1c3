// Package server runs the HTTP server for the booking service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/brizzai/calbook/internal/config"
	"github.com/brizzai/calbook/internal/logger"
	"github.com/brizzai/calbook/internal/server/handler"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// shutdownTimeout is the maximum time to wait for server shutdown
	shutdownTimeout = 5 * time.Second
)

// Server owns the HTTP listener and its lifecycle.
type Server struct {
	config  *config.Config
	handler *handler.Handler
}

// NewServer creates a new Server instance with the provided configuration.
func NewServer(cfg *config.Config, h *handler.Handler) *Server {
	if cfg == nil {
		logger.Fatal("Config cannot be nil")
	}
	if h == nil {
		logger.Fatal("Handler cannot be nil")
	}

	return &Server{
		config:  cfg,
		handler: h,
	}
}

// Start runs the server until the context is cancelled, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: s.handler.Routes(),
	}

	// Channel for server errors
	errChan := make(chan error, 1)

	go func() {
		logger.Info("Starting server",
			zap.String("address", addr),
			zap.String("calendar_id", s.config.Calendar.CalendarID),
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server",
			zap.Duration("timeout", shutdownTimeout),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil

	case err := <-errChan:
		return err
	}
}

// Module provides the HTTP server dependencies
var Module = fx.Module("server",
	fx.Provide(
		handler.NewHandler,
		NewServer,
	),
)
