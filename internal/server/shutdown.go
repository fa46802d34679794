package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Stoppable is the part of an HTTP server graceful shutdown needs.
type Stoppable interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// ShutdownHook is a function called during graceful shutdown
type ShutdownHook func(ctx context.Context) error

// GracefulShutdown runs a server until a stop signal arrives, then drains
// it and runs the registered hooks.
type GracefulShutdown struct {
	server  Stoppable
	logger  *zap.Logger
	timeout time.Duration
	signals []os.Signal

	mu    sync.Mutex
	hooks []ShutdownHook

	stopOnce sync.Once
	stopChan chan struct{}
}

// NewGracefulShutdown creates a graceful shutdown handler around server.
// A zero timeout means 30 seconds.
func NewGracefulShutdown(server Stoppable, logger *zap.Logger, timeout time.Duration) *GracefulShutdown {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GracefulShutdown{
		server:   server,
		logger:   logger,
		timeout:  timeout,
		signals:  []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		stopChan: make(chan struct{}),
	}
}

// RegisterHook registers a hook to be called during shutdown
func (gs *GracefulShutdown) RegisterHook(hook ShutdownHook) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.hooks = append(gs.hooks, hook)
}

// Stop initiates shutdown without waiting for an OS signal.
func (gs *GracefulShutdown) Stop() {
	gs.stopOnce.Do(func() { close(gs.stopChan) })
}

// Run starts the server and blocks until it stops. A serve failure is
// returned as-is; a signal or Stop call triggers the drain.
func (gs *GracefulShutdown) Run() error {
	errChan := make(chan error, 1)
	go func() {
		if err := gs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, gs.signals...)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		gs.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case <-gs.stopChan:
		gs.logger.Info("shutdown requested")
	}

	return gs.drain()
}

func (gs *GracefulShutdown) drain() error {
	ctx, cancel := context.WithTimeout(context.Background(), gs.timeout)
	defer cancel()

	firstErr := gs.server.Shutdown(ctx)
	if firstErr != nil {
		gs.logger.Error("server shutdown failed", zap.Error(firstErr))
	}

	gs.mu.Lock()
	hooks := append([]ShutdownHook(nil), gs.hooks...)
	gs.mu.Unlock()

	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			gs.logger.Error("shutdown hook failed", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	gs.logger.Info("server stopped")
	return firstErr
}
