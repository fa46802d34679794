package watch

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dashmorph/dashmorph/internal/convert"
	"github.com/dashmorph/dashmorph/internal/diag"
)

//go:embed assets/preview.html
var previewPage []byte

// SessionConfig holds watch session configuration
type SessionConfig struct {
	// Path is the dashboard file to watch
	Path string

	// Address is the preview server listen address
	Address string

	// Debounce is how long changes settle before reconverting
	Debounce time.Duration

	// Convert holds the conversion options applied to each run
	Convert convert.Options

	// Logger receives session logs
	Logger *zap.Logger
}

// Session watches one dashboard file and serves the live preview.
type Session struct {
	path       string
	opts       convert.Options
	logger     *zap.Logger
	watcher    *FileWatcher
	preview    *PreviewServer
	httpServer *http.Server
}

// NewSession creates a session for the file named by cfg.Path.
func NewSession(cfg *SessionConfig) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("session config cannot be nil")
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("session path cannot be empty")
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("cannot watch %s: %w", cfg.Path, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		path:    cfg.Path,
		opts:    cfg.Convert,
		logger:  logger,
		preview: NewPreviewServer(logger),
	}
	s.opts.Logger = logger

	watcher, err := NewFileWatcher(cfg.Path, cfg.Debounce, logger, s.reconvert)
	if err != nil {
		return nil, err
	}
	s.watcher = watcher

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/ws", s.preview.HandleWebSocket)
	r.Get("/dashboard.json", s.handleDashboard)

	s.httpServer = &http.Server{
		Addr:              cfg.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// reconvert runs one conversion and pushes the outcome to clients.
func (s *Session) reconvert(files []string) error {
	s.preview.NotifyConverting(files)

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.preview.NotifyError(err)
		return err
	}

	start := time.Now()
	res, err := convert.ConvertJSON(data, s.opts)
	if err != nil {
		s.logger.Warn("conversion failed", zap.Error(err))
		s.preview.NotifyError(err)
		return nil
	}

	elapsed := time.Since(start)
	s.logger.Info("dashboard converted",
		zap.String("file", s.path),
		zap.Duration("elapsed", elapsed),
		zap.Int("panels", res.Report.Len()),
		zap.Int("errors", res.Report.Counts()[diag.OutcomeError]))
	s.preview.NotifyResult(res, elapsed)
	return nil
}

// ListenAndServe converts once, starts the watcher, and serves the
// preview until Shutdown.
func (s *Session) ListenAndServe() error {
	if err := s.reconvert([]string{s.path}); err != nil {
		return err
	}
	if err := s.watcher.Start(); err != nil {
		return err
	}
	s.logger.Info("preview server starting", zap.String("address", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the watcher and drains the preview server.
func (s *Session) Shutdown(ctx context.Context) error {
	stopErr := s.watcher.Stop()
	s.preview.Close()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return stopErr
}

// Handler returns the preview handler, mainly for tests.
func (s *Session) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Session) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(previewPage)
}

func (s *Session) handleDashboard(w http.ResponseWriter, r *http.Request) {
	last := s.preview.Last()
	if last == nil || last.Dashboard == nil {
		http.Error(w, "No conversion result yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(last.Dashboard); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
		return
	}
}
