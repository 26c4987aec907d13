// Package server provides the optional observability HTTP server: a
// Prometheus metrics endpoint and a liveness probe, protected by standard
// security middleware.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/abertrand/dsadd/internal/logging"
)

// Shutdown and read header timeouts for the embedded HTTP server.
const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server is the observability HTTP server. It exposes /metrics and /healthz
// and records request metrics for every endpoint.
type Server struct {
	addr     string
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
	httpSrv  *http.Server
}

// New creates an observability server listening on addr.
//
// Parameters:
//   - addr: The listen address (e.g., ":9090").
//   - logger: Structured logger for server events.
//
// Returns:
//   - *Server: A configured server, not yet started.
func New(addr string, logger logging.Logger) *Server {
	s := &Server{
		addr:     addr,
		metrics:  NewMetrics(),
		logger:   logger,
		security: DefaultSecurityConfig(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealth)))

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s
}

// Metrics returns the server's metrics instruments so callers can record
// combine observations.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start runs the server until the context is canceled, then shuts it down
// gracefully. It blocks until the server has stopped.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("observability server listening", logging.String("addr", s.addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("observability server shutdown failed", err)
			return err
		}
		s.logger.Info("observability server stopped")
		return nil
	}
}

// metricsMiddleware tracks active and total requests for an endpoint.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// handleMetrics serves the Prometheus metrics endpoint. Only GET is allowed.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("method not allowed on /metrics", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth serves the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
