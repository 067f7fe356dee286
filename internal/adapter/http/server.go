package http

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/weather-chart/internal/observability"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>{{.}}</title>
<style>body{margin:0;background:#fff}img{display:block;max-width:100vw;max-height:100vh;margin:auto}</style>
</head>
<body><img src="/chart.png" alt="{{.}}"></body>
</html>
`))

// Server serves the rendered chart plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	metrics    *observability.Metrics

	mu    sync.RWMutex
	title string
	png   []byte
}

// NewServer creates an HTTP server with /, /chart.png, /healthz, /readyz, and
// /metrics routes. The server is not ready until SetChart is called.
func NewServer(addr string, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /chart.png", s.handleChart)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(s))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// SetChart replaces the image being served.
func (s *Server) SetChart(title string, png []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
	s.png = png
}

// CheckReadiness returns nil once a chart has been loaded.
func (s *Server) CheckReadiness(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.png) == 0 {
		return errors.New("no chart loaded yet")
	}
	return nil
}

// Serve accepts connections on ln. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("http server starting", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Listen opens the configured address without serving on it yet.
func (s *Server) Listen() (net.Listener, error) {
	return net.Listen("tcp", s.httpServer.Addr)
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	title := s.title
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, title); err != nil {
		s.logger.Warn("render page failed", "error", err)
	}
}

func (s *Server) handleChart(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	png := s.png
	s.mu.RUnlock()

	if len(png) == 0 {
		http.Error(w, "no chart loaded", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-store")
	n, _ := w.Write(png)

	s.metrics.ChartRequests.Inc()
	s.metrics.ChartBytesServed.Add(float64(n))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
