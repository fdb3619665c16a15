package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Environment variables read once at boot
const (
	EnvPort             = "PORT"
	EnvLogLevel         = "LOG_LEVEL"
	EnvAppName          = "APP_NAME"
	EnvShowLocalhostIPs = "SHOW_LOCALHOST_IPS"
	EnvCORSEnabled      = "CORS_ENABLED"
)

// lookupFunc matches os.LookupEnv
type lookupFunc func(key string) (string, bool)

// applyEnv overrides file or default values with the process environment
func (c *Config) applyEnv(lookup lookupFunc) error {
	if v, ok := lookup(EnvPort); ok {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Server.Port = port
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logs.Level = v
	}
	c.Logs.Level = strings.ToUpper(c.Logs.Level)

	if v, ok := lookup(EnvAppName); ok && v != "" {
		c.AppName = v
	}

	if v, ok := lookup(EnvShowLocalhostIPs); ok {
		c.Resolver.ShowLocalhostIPs = parseBool(v)
	}

	if v, ok := lookup(EnvCORSEnabled); ok {
		c.API.CORS.Enabled = parseBool(v)
	}

	return nil
}

// parseBool treats only the literal "true" (any case) as true
func parseBool(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}
