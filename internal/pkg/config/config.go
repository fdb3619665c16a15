package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the application version reported by every endpoint
const Version = "1.0.0"

// Config represents the main application configuration
type Config struct {
	AppName    string           `yaml:"app_name"`
	Server     ServerConfig     `yaml:"server"`
	Resolver   ResolverConfig   `yaml:"resolver"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logs       LogsConfig       `yaml:"logs"`
	API        API              `yaml:"api"`
}

// ServerConfig holds server related configuration
type ServerConfig struct {
	Port           int    `yaml:"port"`
	Host           string `yaml:"host"`
	ReadTimeout    int    `yaml:"read_timeout"`
	WriteTimeout   int    `yaml:"write_timeout"`
	IdleTimeout    int    `yaml:"idle_timeout"`
	MaxHeaderBytes int    `yaml:"max_header_bytes"`
}

// ResolverConfig controls address discovery
type ResolverConfig struct {
	ShowLocalhostIPs bool   `yaml:"show_localhost_ips"`
	StrategyTimeout  int    `yaml:"strategy_timeout"` // seconds, per strategy
	ProbeAddress     string `yaml:"probe_address"`    // target of the outbound-route probe
}

// MetricsConfig controls the system metrics provider
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	DiskPath string `yaml:"disk_path"`
}

// MonitoringConfig controls the websocket metrics stream
type MonitoringConfig struct {
	Enabled        bool `yaml:"enabled"`
	StreamInterval int  `yaml:"stream_interval"` // seconds
}

// LogsConfig holds logging configuration
type LogsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Level    string `yaml:"level"`
	FilePath string `yaml:"file_path"`
	Format   string `yaml:"format"`
	Stdout   bool   `yaml:"stdout"`
}

// Load builds the configuration once at process entry: defaults, then the
// optional YAML file, then environment overrides.
func Load(filePath string) (*Config, error) {
	cfg := GetDefaultConfig()

	if filePath != "" {
		if err := cfg.mergeFile(filePath); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeFile overlays the YAML file on top of cfg. A missing file is not an error.
func (c *Config) mergeFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate checks values that would otherwise fail late at runtime
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Resolver.StrategyTimeout <= 0 {
		return fmt.Errorf("invalid resolver strategy timeout: %d", c.Resolver.StrategyTimeout)
	}
	if c.Monitoring.Enabled && c.Monitoring.StreamInterval <= 0 {
		return fmt.Errorf("invalid monitoring stream interval: %d", c.Monitoring.StreamInterval)
	}
	return nil
}

// SaveConfig saves the configuration to the specified file path
func SaveConfig(cfg *Config, filePath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	cfg := &Config{
		AppName: "ip-service",
		Server: ServerConfig{
			Port:           5252,
			Host:           "0.0.0.0",
			ReadTimeout:    10,
			WriteTimeout:   15,
			IdleTimeout:    60,
			MaxHeaderBytes: 1 << 20,
		},
		Resolver: ResolverConfig{
			ShowLocalhostIPs: false,
			StrategyTimeout:  2,
			ProbeAddress:     "10.254.254.254:1",
		},
		Metrics: MetricsConfig{
			Enabled:  true,
			DiskPath: "/",
		},
		Monitoring: MonitoringConfig{
			Enabled:        true,
			StreamInterval: 5,
		},
		Logs: LogsConfig{
			Enabled: true,
			Level:   "INFO",
			Format:  "console",
			Stdout:  true,
		},
	}
	cfg.API.CORS.Enabled = true
	cfg.API.CORS.AllowedMethods = []string{"GET", "HEAD", "OPTIONS"}
	return cfg
}
