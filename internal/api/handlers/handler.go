package handlers

import (
	"context"
	"os"
	"time"

	"IPService/internal/metrics"
	"IPService/internal/netinfo"
	"IPService/internal/pkg/config"
	"IPService/internal/resolver"

	"github.com/benbjohnson/clock"
)

// AddressResolver produces the per-request address list
type AddressResolver interface {
	Resolve(ctx context.Context) resolver.Resolution
}

// InterfaceCollector builds the interface detail table
type InterfaceCollector interface {
	Collect(ctx context.Context) (map[string]netinfo.InterfaceInfo, error)
}

// MetricsCollector produces the per-request metrics snapshot
type MetricsCollector interface {
	Collect(ctx context.Context) metrics.Snapshot
}

// Dependencies are the collaborators injected into the handlers
type Dependencies struct {
	Resolver   AddressResolver
	Interfaces InterfaceCollector
	Metrics    MetricsCollector
	Clock      clock.Clock
	Hostname   func() (string, error)
}

// Handler serves every diagnostic endpoint. It holds no mutable state.
type Handler struct {
	config     *config.Config
	resolver   AddressResolver
	interfaces InterfaceCollector
	metrics    MetricsCollector
	clock      clock.Clock
	hostname   func() (string, error)
}

// NewHandler creates the handler set
func NewHandler(cfg *config.Config, deps Dependencies) *Handler {
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	if deps.Hostname == nil {
		deps.Hostname = os.Hostname
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewCollector(metrics.Unavailable{}, deps.Clock, deps.Clock.Now())
	}
	return &Handler{
		config:     cfg,
		resolver:   deps.Resolver,
		interfaces: deps.Interfaces,
		metrics:    deps.Metrics,
		clock:      deps.Clock,
		hostname:   deps.Hostname,
	}
}

// timestamp formats the current instant for response bodies
func (h *Handler) timestamp() string {
	return h.clock.Now().Format(time.RFC3339Nano)
}

func (h *Handler) hostName() string {
	name, err := h.hostname()
	if err != nil || name == "" {
		return "unknown"
	}
	return name
}
