package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"sheetport-hq/sheetport/pkg/config"
	"sheetport-hq/sheetport/pkg/server/handlers"
	"sheetport-hq/sheetport/pkg/server/middleware"
	"sheetport-hq/sheetport/pkg/telemetry/health"
	"sheetport-hq/sheetport/pkg/telemetry/metrics"
	"sheetport-hq/sheetport/pkg/telemetry/tracing"
)

// Deps are the components the server routes to.
type Deps struct {
	Exporter handlers.Runner
	Source   handlers.Loader
	Health   *health.Checker
	Metrics  *metrics.Collector
	Tracer   *tracing.Tracer
	Logger   *slog.Logger
	Version  health.VersionInfo
}

// Server serves artifact downloads and export triggers.
type Server struct {
	config       *config.Config
	deps         Deps
	logger       *slog.Logger
	httpServer   *http.Server
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server for cfg.
func NewServer(cfg *config.Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Health == nil {
		deps.Health = health.New(0)
	}
	return &Server{
		config: cfg,
		deps:   deps,
		logger: logger.With("component", "server"),
	}
}

// Start serves until ctx is cancelled, SIGINT or SIGTERM arrives, or the
// listener fails, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true

	sc := s.config.Server
	s.httpServer = &http.Server{
		Addr:           sc.ListenAddress,
		Handler:        s.Handler(),
		ReadTimeout:    sc.ReadTimeout,
		WriteTimeout:   sc.WriteTimeout,
		IdleTimeout:    sc.IdleTimeout,
		MaxHeaderBytes: sc.MaxHeaderBytes,
	}
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			"address", sc.ListenAddress,
			"output_dir", s.config.Export.OutputDir,
		)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
	case sig := <-sigChan:
		s.logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	}
	return s.Shutdown(context.Background())
}

// Shutdown stops accepting connections and waits for active requests up to
// the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		running, srv := s.isRunning, s.httpServer
		s.mu.Unlock()
		if !running || srv == nil {
			return
		}

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		s.logger.Info("server stopped")
	})

	return shutdownErr
}

// IsRunning reports whether the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle(s.config.Server.DownloadPath, handlers.NewDownload(s.config.Export.OutputDir, s.logger))
	if s.deps.Exporter != nil && s.deps.Source != nil {
		mux.Handle(s.config.Server.ExportPath,
			handlers.NewExport(s.deps.Exporter, s.deps.Source, s.config.Server.DownloadPath, s.logger))
	}
	health.Mount(mux, s.deps.Health, s.deps.Version)

	mc := s.config.Telemetry.Metrics
	if mc.Enabled && s.deps.Metrics != nil {
		mux.Handle(mc.Path, s.deps.Metrics.Handler())
	}

	var handler http.Handler = mux
	handler = middleware.Metrics(s.deps.Metrics)(handler)
	handler = middleware.Logging(s.logger)(handler)
	handler = middleware.Tracing(s.deps.Tracer)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(s.logger)(handler)
	return handler
}
