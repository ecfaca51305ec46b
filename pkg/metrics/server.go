package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cubbyhole/cubby/internal/logger"
)

// Server exposes the shared registry over HTTP on its own port.
type Server struct {
	httpServer *http.Server
	port       int
}

// NewServer creates a metrics server for the shared registry.
// InitRegistry must have been called first.
func NewServer(port int) (*Server, error) {
	if !IsEnabled() {
		return nil, fmt.Errorf("metrics registry not initialized")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{}))

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		port: port,
	}, nil
}

// Start serves the metrics endpoint until Stop is called. Blocks.
func (s *Server) Start() error {
	logger.Info("Metrics server listening", "port", s.port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("metrics server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
