// Package metrics adapts an optional system metrics provider into the
// per-request snapshot served by /metrics.
package metrics

import (
	"context"
	"time"

	"IPService/internal/pkg/logger"

	"github.com/benbjohnson/clock"
)

// Provider is the capability pair the core depends on
type Provider interface {
	// Available reports whether the provider can produce readings
	Available() bool
	// Snapshot fills the numeric fields it could read. A non-nil error may
	// come with a partially filled snapshot.
	Snapshot(ctx context.Context) (Snapshot, error)
}

// Unavailable is the provider used when system metrics are disabled
type Unavailable struct{}

// Available implements Provider
func (Unavailable) Available() bool { return false }

// Snapshot implements Provider
func (Unavailable) Snapshot(context.Context) (Snapshot, error) { return Snapshot{}, nil }

// Collector combines a provider with the process boot instant
type Collector struct {
	provider  Provider
	clock     clock.Clock
	startedAt time.Time
}

// NewCollector creates a collector; startedAt is the process boot instant
func NewCollector(provider Provider, clk clock.Clock, startedAt time.Time) *Collector {
	if provider == nil {
		provider = Unavailable{}
	}
	return &Collector{
		provider:  provider,
		clock:     clk,
		startedAt: startedAt,
	}
}

// Available reports whether the underlying provider is available
func (c *Collector) Available() bool {
	return c.provider.Available()
}

// Uptime returns the time elapsed since boot
func (c *Collector) Uptime() time.Duration {
	return c.clock.Since(c.startedAt)
}

// Collect never fails: provider errors are logged and surfaced through the
// Error field of an otherwise valid snapshot.
func (c *Collector) Collect(ctx context.Context) Snapshot {
	uptime := int64(c.Uptime() / time.Second)

	if !c.provider.Available() {
		return Snapshot{UptimeSeconds: uptime}
	}

	snap, err := c.provider.Snapshot(ctx)
	snap.UptimeSeconds = uptime
	snap.MetricsAvailable = true
	if err != nil {
		logger.Error("Error getting system metrics", logger.Err(err))
		snap.Error = err.Error()
	}
	return snap
}
