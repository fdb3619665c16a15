package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"os"
	"strings"

	"IPService/internal/netinfo"
)

// DefaultProbeTarget is well-formed but unroutable; a UDP connect to it
// sends nothing and only makes the kernel pick a source address.
const DefaultProbeTarget = "10.254.254.254:1"

// InterfaceAPI queries the structured per-interface address API
type InterfaceAPI struct {
	source netinfo.Source
}

// NewInterfaceAPI creates the structured interface strategy
func NewInterfaceAPI(source netinfo.Source) *InterfaceAPI {
	return &InterfaceAPI{source: source}
}

// Name implements Strategy
func (s *InterfaceAPI) Name() string {
	return InterfaceStrategyName
}

// Discover implements Strategy. Only IPv4 entries are returned.
func (s *InterfaceAPI) Discover(ctx context.Context, _ Config) Result {
	ifaces, err := s.source.Interfaces(ctx)
	if err != nil {
		return failure(s.Name(), err)
	}

	var addrs []string
	for _, iface := range ifaces {
		for _, raw := range iface.Addrs {
			if ip, ok := parseHost(raw); ok && ip.Is4() {
				addrs = append(addrs, ip.String())
			}
		}
	}
	return success(s.Name(), addrs)
}

// parseHost accepts CIDR or bare address notation
func parseHost(raw string) (netip.Addr, bool) {
	if p, err := netip.ParsePrefix(raw); err == nil {
		return p.Addr().Unmap(), true
	}
	if ip, err := netip.ParseAddr(raw); err == nil {
		return ip.Unmap(), true
	}
	return netip.Addr{}, false
}

// HostnameLookup resolves the local hostname through the system resolver
type HostnameLookup struct {
	hostname func() (string, error)
	lookup   func(ctx context.Context, host string) ([]string, error)
}

// NewHostnameLookup creates the hostname resolution strategy
func NewHostnameLookup() *HostnameLookup {
	return &HostnameLookup{
		hostname: os.Hostname,
		lookup:   net.DefaultResolver.LookupHost,
	}
}

// Name implements Strategy
func (s *HostnameLookup) Name() string {
	return LookupStrategyName
}

// Discover implements Strategy. IPv4 only unless loopback is shown.
func (s *HostnameLookup) Discover(ctx context.Context, cfg Config) Result {
	host, err := s.hostname()
	if err != nil {
		return failure(s.Name(), fmt.Errorf("failed to read hostname: %w", err))
	}

	resolved, err := s.lookup(ctx, host)
	if err != nil {
		return failure(s.Name(), err)
	}

	addrs := make([]string, 0, len(resolved))
	for _, a := range resolved {
		if cfg.ShowLoopback || !strings.Contains(a, ":") {
			addrs = append(addrs, a)
		}
	}
	return success(s.Name(), addrs)
}

// RouteProbe asks the kernel which local address it would use to reach an
// outbound target.
type RouteProbe struct {
	target string
	dial   func(ctx context.Context, network, address string) (net.Conn, error)
}

// NewRouteProbe creates the outbound-route probe. An empty target uses
// DefaultProbeTarget.
func NewRouteProbe(target string) *RouteProbe {
	if target == "" {
		target = DefaultProbeTarget
	}
	return &RouteProbe{
		target: target,
		dial:   (&net.Dialer{}).DialContext,
	}
}

// Name implements Strategy
func (s *RouteProbe) Name() string {
	return RouteProbeStrategy
}

// Discover implements Strategy
func (s *RouteProbe) Discover(ctx context.Context, _ Config) Result {
	conn, err := s.dial(ctx, "udp4", s.target)
	if err != nil {
		return failure(s.Name(), err)
	}
	defer conn.Close()

	local, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || local.IP == nil {
		return failure(s.Name(), errors.New("no local UDP address bound"))
	}
	if local.IP.IsUnspecified() {
		return failure(s.Name(), errors.New("kernel selected an unspecified source address"))
	}
	return success(s.Name(), []string{local.IP.String()})
}
