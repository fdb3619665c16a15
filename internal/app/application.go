package app

import (
	"fmt"
	"os"
	"time"

	"IPService/internal/pkg/config"
	"IPService/internal/pkg/logger"

	"github.com/benbjohnson/clock"
)

// Application holds the process-wide state established at boot
type Application struct {
	configPath string
	config     *config.Config
	clock      clock.Clock
	startedAt  time.Time
}

// New creates a new application instance. The boot instant is taken now so
// uptime covers configuration loading too.
func New(configPath string) *Application {
	clk := clock.New()
	return &Application{
		configPath: configPath,
		clock:      clk,
		startedAt:  clk.Now(),
	}
}

// Initialize loads configuration and initializes the logger
func (a *Application) Initialize() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.config = cfg

	if err := logger.Init(cfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application initialized successfully",
		logger.String("version", config.Version),
		logger.Int("port", cfg.Server.Port),
		logger.Bool("show_localhost_ips", cfg.Resolver.ShowLocalhostIPs),
		logger.Bool("cors_enabled", cfg.API.CORS.Enabled))
	return nil
}

// GetConfig returns the application configuration
func (a *Application) GetConfig() *config.Config {
	return a.config
}

// Clock returns the wall clock shared by every component
func (a *Application) Clock() clock.Clock {
	return a.clock
}

// StartedAt returns the boot instant
func (a *Application) StartedAt() time.Time {
	return a.startedAt
}

// Shutdown flushes logs
func (a *Application) Shutdown() {
	logger.Info("Shutting down application...")

	if err := logger.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing logs: %v\n", err)
	}
}
