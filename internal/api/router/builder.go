package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"IPService/internal/api/handlers"
	"IPService/internal/metrics"
	"IPService/internal/monitoring"
	"IPService/internal/netinfo"
	"IPService/internal/pkg/config"
	"IPService/internal/pkg/logger"
	"IPService/internal/resolver"
	"IPService/internal/telemetry"
	"IPService/internal/websocket"

	"github.com/benbjohnson/clock"
)

// Builder wires the production collaborators and owns the server lifecycle
type Builder struct {
	config   *config.Config
	router   *Router
	server   *http.Server
	hub      *websocket.Hub
	streamer *monitoring.Streamer

	mu     sync.Mutex
	closed bool
}

// NewBuilder creates the resolver, metrics collector, telemetry, websocket
// stream and the HTTP server from cfg. startedAt is the process boot instant.
func NewBuilder(cfg *config.Config, clk clock.Clock, startedAt time.Time) *Builder {
	tel := telemetry.New()

	res := resolver.NewDefault(resolver.Config{
		ShowLoopback:    cfg.Resolver.ShowLocalhostIPs,
		StrategyTimeout: time.Duration(cfg.Resolver.StrategyTimeout) * time.Second,
	}, cfg.Resolver.ProbeAddress, resolver.WithObserver(tel.ObserveStrategy))

	collector := metrics.NewCollector(createMetricsProvider(cfg), clk, startedAt)

	b := &Builder{config: cfg}

	var stream http.Handler
	if cfg.Monitoring.Enabled {
		b.hub = websocket.NewHub(nil)
		b.streamer = monitoring.NewStreamer(collector, b.hub, clk,
			time.Duration(cfg.Monitoring.StreamInterval)*time.Second)
		stream = b.hub
	}

	b.router = New(cfg, handlers.Dependencies{
		Resolver:   res,
		Interfaces: netinfo.NewAssembler(netinfo.NewSystemSource(), ""),
		Metrics:    collector,
		Clock:      clk,
	}, tel, stream)

	srv := cfg.Server
	b.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", srv.Host, srv.Port),
		Handler:        b.router,
		ReadTimeout:    time.Duration(srv.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(srv.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(srv.IdleTimeout) * time.Second,
		MaxHeaderBytes: srv.MaxHeaderBytes,
	}

	return b
}

// createMetricsProvider picks the gopsutil provider unless metrics are disabled
func createMetricsProvider(cfg *config.Config) metrics.Provider {
	if !cfg.Metrics.Enabled {
		logger.Info("System metrics disabled by configuration")
		return metrics.Unavailable{}
	}

	provider := metrics.NewSystemProvider(cfg.Metrics.DiskPath)
	if !provider.Available() {
		logger.Warn("System metrics provider unavailable - metrics will be limited")
	}
	return provider
}

// WithAllRoutes adds all routes and initializes the router
func (b *Builder) WithAllRoutes() *Builder {
	b.router.Initialize()
	return b
}

// Start starts the metrics stream and blocks serving HTTP until Shutdown
func (b *Builder) Start() error {
	b.mu.Lock()
	if !b.closed && b.streamer != nil {
		if err := b.streamer.Start(); err != nil {
			logger.Warn("Failed to start metrics streamer", logger.Err(err))
		}
	}
	b.mu.Unlock()

	logger.Info("Starting HTTP server", logger.String("address", b.server.Addr))

	if err := b.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Shutdown stops the stream and drains in-flight requests
func (b *Builder) Shutdown(ctx context.Context) {
	b.mu.Lock()
	b.closed = true
	if b.streamer != nil {
		b.streamer.Stop()
	}
	if b.hub != nil {
		b.hub.Close()
	}
	b.mu.Unlock()

	// A server shut down before ListenAndServe runs makes it return
	// ErrServerClosed immediately
	if err := b.server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", logger.Err(err))
		return
	}
	logger.Info("HTTP server stopped")
}
