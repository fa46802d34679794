// Package server exposes the converter over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dashmorph/dashmorph/internal/convert"
	"github.com/dashmorph/dashmorph/internal/coralogix"
	"github.com/dashmorph/dashmorph/internal/diag"
)

// Config holds server configuration
type Config struct {
	// Address is the server listen address (e.g., ":8080")
	Address string

	// Logger receives request and lifecycle logs
	Logger *zap.Logger

	// Convert holds the conversion options applied to each request
	Convert convert.Options

	// Timeouts
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration

	// MaxBodyBytes caps the accepted dashboard payload size
	MaxBodyBytes int64
}

// DefaultConfig returns a production-ready server configuration
func DefaultConfig(address string) *Config {
	return &Config{
		Address:           address,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		MaxBodyBytes:      8 << 20, // 8 MB
	}
}

// Server converts dashboards posted to its API.
type Server struct {
	httpServer   *http.Server
	logger       *zap.Logger
	convertOpts  convert.Options
	maxBodyBytes int64
}

// New creates a new server instance
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("server config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("server address cannot be empty")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 8 << 20
	}

	s := &Server{
		logger:       logger,
		convertOpts:  cfg.Convert,
		maxBodyBytes: maxBody,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.routes(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
	})
	return r
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe() error {
	s.logger.Info("server starting", zap.String("address", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// convertResponse is the convert endpoint's reply body.
type convertResponse struct {
	Dashboard   *coralogix.Dashboard `json:"dashboard"`
	Diagnostics []diag.Diagnostic    `json:"diagnostics"`
	MetricNames []string             `json:"metricNames"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to read request body: %v", err), http.StatusBadRequest)
		return
	}

	opts := s.convertOpts
	if raw := r.URL.Query().Get("forceFallback"); raw != "" {
		force, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid forceFallback value: %q", raw), http.StatusBadRequest)
			return
		}
		opts.ForceFallback = force
	}
	opts.Logger = s.logger

	res, err := convert.ConvertJSON(body, opts)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to convert dashboard: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := convertResponse{
		Dashboard:   res.Dashboard,
		Diagnostics: res.Report.Diagnostics,
		MetricNames: res.Metrics.List(),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
		return
	}
}

// requestLogger logs one line per completed request.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())))
		})
	}
}
