package resolver

import (
	"net/netip"
	"strings"
)

// Address is a textual IP address as reported by a discovery source
type Address string

// IsIPv6 reports whether the address is syntactically IPv6
func (a Address) IsIPv6() bool {
	return strings.Contains(string(a), ":")
}

// IsLoopback reports whether the address is in 127.0.0.0/8 or is an IPv6
// loopback in any textual form (::1, expanded, zoned or v4-mapped).
func (a Address) IsLoopback() bool {
	s := string(a)
	if strings.HasPrefix(s, "127.") || s == "::1" {
		return true
	}
	if !a.IsIPv6() {
		return false
	}
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return false
	}
	return ip.Unmap().IsLoopback()
}

func (a Address) String() string {
	return string(a)
}

// AddressList is an ordered set of addresses in first-seen order
type AddressList struct {
	showLoopback bool
	items        []Address
	seen         map[Address]struct{}
}

// NewAddressList creates an empty list applying the loopback/IPv6 filter
func NewAddressList(showLoopback bool) *AddressList {
	return &AddressList{
		showLoopback: showLoopback,
		seen:         make(map[Address]struct{}),
	}
}

// Accepts reports whether the candidate would be appended
func (l *AddressList) Accepts(a Address) bool {
	if a == "" {
		return false
	}
	if !l.showLoopback && (a.IsIPv6() || a.IsLoopback()) {
		return false
	}
	_, dup := l.seen[a]
	return !dup
}

// Add appends the candidate when it passes the filter and is not a duplicate
func (l *AddressList) Add(a Address) bool {
	a = Address(strings.TrimSpace(string(a)))
	if !l.Accepts(a) {
		return false
	}
	l.seen[a] = struct{}{}
	l.items = append(l.items, a)
	return true
}

// Merge adds every candidate in order and returns how many were appended
func (l *AddressList) Merge(candidates []string) int {
	added := 0
	for _, c := range candidates {
		if l.Add(Address(c)) {
			added++
		}
	}
	return added
}

// Len returns the number of addresses in the list
func (l *AddressList) Len() int {
	return len(l.items)
}

// Strings returns a copy of the addresses as plain strings
func (l *AddressList) Strings() []string {
	out := make([]string, len(l.items))
	for i, a := range l.items {
		out[i] = string(a)
	}
	return out
}
