package netinfo

import (
	"context"
	"fmt"

	gopsutilNet "github.com/shirou/gopsutil/net"
)

// Interface is one network interface as seen by the structured API
type Interface struct {
	Name  string
	Flags []string
	Addrs []string // CIDR notation, e.g. 10.0.0.5/24
}

// IsUp reports whether the interface carries the "up" flag
func (i Interface) IsUp() bool {
	for _, f := range i.Flags {
		if f == "up" {
			return true
		}
	}
	return false
}

// Source enumerates interfaces with their assigned addresses
type Source interface {
	Interfaces(ctx context.Context) ([]Interface, error)
}

// SystemSource reads interfaces through gopsutil
type SystemSource struct{}

// NewSystemSource creates a gopsutil-backed interface source
func NewSystemSource() *SystemSource {
	return &SystemSource{}
}

// Interfaces implements Source
func (SystemSource) Interfaces(ctx context.Context) ([]Interface, error) {
	stats, err := gopsutilNet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}

	out := make([]Interface, 0, len(stats))
	for _, st := range stats {
		iface := Interface{
			Name:  st.Name,
			Flags: st.Flags,
		}
		for _, a := range st.Addrs {
			iface.Addrs = append(iface.Addrs, a.Addr)
		}
		out = append(out, iface)
	}
	return out, nil
}
