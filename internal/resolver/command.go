package resolver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Strategy names as they appear in logs and telemetry
const (
	PrimaryStrategyName   = "hostname_i"
	IPAddrStrategyName    = "ip_addr"
	InterfaceStrategyName = "interface_api"
	LookupStrategyName    = "hostname_lookup"
	RouteProbeStrategy    = "route_probe"
)

// CommandRunner runs an external command and returns its stdout
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec. The process is killed when ctx ends
// and is always reaped before Run returns.
type ExecRunner struct{}

// Run implements CommandRunner
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// HostnameCommand is the primary enumeration: `hostname -I` lists every
// interface-assigned address in one call.
type HostnameCommand struct {
	runner CommandRunner
}

// NewHostnameCommand creates the primary enumeration strategy
func NewHostnameCommand(runner CommandRunner) *HostnameCommand {
	return &HostnameCommand{runner: runner}
}

// Name implements Strategy
func (s *HostnameCommand) Name() string {
	return PrimaryStrategyName
}

// Discover implements Strategy
func (s *HostnameCommand) Discover(ctx context.Context, _ Config) Result {
	out, err := s.runner.Run(ctx, "hostname", "-I")
	if err != nil {
		return failure(s.Name(), err)
	}

	raw := strings.TrimSpace(string(out))
	res := success(s.Name(), strings.Fields(raw))
	res.Raw = raw
	return res
}

// inetPattern captures dotted-quad addresses following an "inet" marker
var inetPattern = regexp.MustCompile(`inet\s+(\d{1,3}(?:\.\d{1,3}){3})`)

// IPAddrCommand parses the textual listing of `ip addr show`
type IPAddrCommand struct {
	runner CommandRunner
}

// NewIPAddrCommand creates the secondary textual enumeration strategy
func NewIPAddrCommand(runner CommandRunner) *IPAddrCommand {
	return &IPAddrCommand{runner: runner}
}

// Name implements Strategy
func (s *IPAddrCommand) Name() string {
	return IPAddrStrategyName
}

// Discover implements Strategy
func (s *IPAddrCommand) Discover(ctx context.Context, _ Config) Result {
	out, err := s.runner.Run(ctx, "ip", "addr", "show")
	if err != nil {
		return failure(s.Name(), err)
	}
	return success(s.Name(), ParseInet(string(out)))
}

// ParseInet extracts every IPv4 address that follows an "inet" marker
func ParseInet(text string) []string {
	matches := inetPattern.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}
