// Package netinfo assembles a per-interface address table for the detail
// endpoint and exposes the structured interface API used by the resolver.
package netinfo

import (
	"context"
	"net"
	"net/netip"

	"IPService/internal/pkg/logger"
)

// DefaultProcNetDev is the kernel interface listing used as a fallback
const DefaultProcNetDev = "/proc/net/dev"

// AddressInfo describes one address bound to an interface
type AddressInfo struct {
	Address    string `json:"address"`
	IsIPv4     bool   `json:"is_ipv4"`
	IsIPv6     bool   `json:"is_ipv6"`
	IsLoopback bool   `json:"is_loopback"`
	Netmask    string `json:"netmask,omitempty"`
	Broadcast  string `json:"broadcast,omitempty"`
}

// InterfaceInfo describes one interface. IsUp is nil when unknown.
type InterfaceInfo struct {
	Name      string        `json:"name"`
	IsUp      *bool         `json:"is_up"`
	Addresses []AddressInfo `json:"addresses"`
}

// Assembler builds the interface table, preferring the structured source and
// falling back to the kernel listing file.
type Assembler struct {
	source     Source
	procNetDev string
}

// NewAssembler creates an assembler. An empty procNetDev uses DefaultProcNetDev.
func NewAssembler(source Source, procNetDev string) *Assembler {
	if procNetDev == "" {
		procNetDev = DefaultProcNetDev
	}
	return &Assembler{
		source:     source,
		procNetDev: procNetDev,
	}
}

// Collect returns the interface table keyed by interface name. Addresses are
// not filtered; loopback entries are informational.
func (a *Assembler) Collect(ctx context.Context) (map[string]InterfaceInfo, error) {
	if a.source != nil {
		ifaces, err := a.source.Interfaces(ctx)
		if err == nil {
			return fromInterfaces(ifaces), nil
		}
		logger.Debug("Structured interface API unavailable, reading kernel listing",
			logger.String("path", a.procNetDev),
			logger.Err(err))
	}

	names, err := ReadProcNetDev(a.procNetDev)
	if err != nil {
		return map[string]InterfaceInfo{}, err
	}

	out := make(map[string]InterfaceInfo, len(names))
	for _, name := range names {
		out[name] = InterfaceInfo{Name: name, Addresses: []AddressInfo{}}
	}
	return out, nil
}

func fromInterfaces(ifaces []Interface) map[string]InterfaceInfo {
	out := make(map[string]InterfaceInfo, len(ifaces))
	for _, iface := range ifaces {
		up := iface.IsUp()
		info := InterfaceInfo{
			Name:      iface.Name,
			IsUp:      &up,
			Addresses: make([]AddressInfo, 0, len(iface.Addrs)),
		}
		for _, raw := range iface.Addrs {
			if ai, ok := describe(raw); ok {
				info.Addresses = append(info.Addresses, ai)
			}
		}
		out[iface.Name] = info
	}
	return out
}

// describe converts a CIDR or bare address into an AddressInfo
func describe(raw string) (AddressInfo, bool) {
	var (
		addr   netip.Addr
		prefix netip.Prefix
		hasLen bool
	)
	if p, err := netip.ParsePrefix(raw); err == nil {
		addr, prefix, hasLen = p.Addr(), p, true
	} else if ip, err := netip.ParseAddr(raw); err == nil {
		addr = ip
	} else {
		return AddressInfo{}, false
	}

	addr = addr.Unmap()
	ai := AddressInfo{
		Address:    addr.String(),
		IsIPv4:     addr.Is4(),
		IsIPv6:     addr.Is6(),
		IsLoopback: addr.IsLoopback(),
	}
	if !hasLen {
		return ai, true
	}

	mask := net.CIDRMask(prefix.Bits(), addr.BitLen())
	if addr.Is4() {
		ai.Netmask = net.IP(mask).String()
		ai.Broadcast = broadcast(addr, mask).String()
	} else {
		ai.Netmask = maskToIPv6(mask)
	}
	return ai, true
}

func broadcast(addr netip.Addr, mask net.IPMask) net.IP {
	ip4 := addr.As4()
	out := make(net.IP, 4)
	for i := range out {
		out[i] = ip4[i] | ^mask[i]
	}
	return out
}

func maskToIPv6(mask net.IPMask) string {
	var b [16]byte
	copy(b[:], mask)
	return netip.AddrFrom16(b).String()
}
