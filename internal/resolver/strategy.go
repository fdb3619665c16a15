package resolver

import (
	"context"
	"time"
)

// Strategy is a single source of candidate addresses. Implementations must
// release any process or socket they open before returning.
type Strategy interface {
	Name() string
	Discover(ctx context.Context, cfg Config) Result
}

// Mode decides how a stage participates in the pipeline
type Mode int

const (
	// Authoritative stops the pipeline once it contributes an address
	Authoritative Mode = iota
	// Additive always runs and appends its candidates
	Additive
	// Fallback runs only while the list is still empty
	Fallback
)

func (m Mode) String() string {
	switch m {
	case Authoritative:
		return "authoritative"
	case Additive:
		return "additive"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Stage pairs a strategy with its pipeline mode
type Stage struct {
	Strategy Strategy
	Mode     Mode
}

// Result is the typed outcome of one strategy run: a candidate list on
// success, or the failure reason in Err.
type Result struct {
	Strategy  string        `json:"strategy"`
	Addresses []string      `json:"addresses,omitempty"`
	Raw       string        `json:"raw,omitempty"`
	Err       error         `json:"-"`
	Accepted  int           `json:"accepted"`
	Duration  time.Duration `json:"duration"`
}

// OK reports whether the strategy completed without error
func (r Result) OK() bool {
	return r.Err == nil
}

func success(name string, addrs []string) Result {
	return Result{Strategy: name, Addresses: addrs}
}

func failure(name string, err error) Result {
	return Result{Strategy: name, Err: err}
}
