// Package resolver discovers the host's local IP addresses from an ordered
// chain of independent, unreliable sources.
package resolver

import (
	"context"
	"fmt"
	"time"

	"IPService/internal/pkg/logger"

	"go.uber.org/multierr"
)

// Config is the read-only resolver configuration built at boot
type Config struct {
	ShowLoopback    bool
	StrategyTimeout time.Duration
}

// Resolution is the outcome of a full pipeline run
type Resolution struct {
	Addresses []string `json:"ip_addresses"`
	Results   []Result `json:"results"`
}

// Err combines the failures of every strategy that ran. It is diagnostic
// only; a Resolution is always usable.
func (r Resolution) Err() error {
	var err error
	for _, res := range r.Results {
		if res.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", res.Strategy, res.Err))
		}
	}
	return err
}

// Raw returns the raw output captured by the named strategy, if it ran
func (r Resolution) Raw(strategy string) (string, bool) {
	for _, res := range r.Results {
		if res.Strategy == strategy && res.OK() {
			return res.Raw, true
		}
	}
	return "", false
}

// Option configures a Resolver
type Option func(*Resolver)

// WithObserver registers a hook called after every strategy run
func WithObserver(fn func(Result)) Option {
	return func(r *Resolver) {
		r.observer = fn
	}
}

// Resolver runs its stages strictly in order. It keeps no state between
// calls, so one instance may serve concurrent requests.
type Resolver struct {
	cfg      Config
	stages   []Stage
	observer func(Result)
}

// New creates a resolver over the given stages
func New(cfg Config, stages []Stage, opts ...Option) *Resolver {
	r := &Resolver{
		cfg:    cfg,
		stages: stages,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces the best-effort address list. It never fails; every
// strategy failure degrades to zero contributed candidates.
func (r *Resolver) Resolve(ctx context.Context) Resolution {
	list := NewAddressList(r.cfg.ShowLoopback)
	resolution := Resolution{}

	for _, stage := range r.stages {
		if stage.Mode == Fallback && list.Len() > 0 {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		res := r.run(ctx, stage.Strategy)
		res.Accepted = list.Merge(res.Addresses)
		resolution.Results = append(resolution.Results, res)

		if res.Err != nil {
			logger.Debug("Address discovery strategy failed",
				logger.String("strategy", res.Strategy),
				logger.String("mode", stage.Mode.String()),
				logger.Duration("duration", res.Duration),
				logger.Err(res.Err))
		} else {
			logger.Debug("Address discovery strategy completed",
				logger.String("strategy", res.Strategy),
				logger.String("mode", stage.Mode.String()),
				logger.Strings("candidates", res.Addresses),
				logger.Int("accepted", res.Accepted),
				logger.Duration("duration", res.Duration))
		}

		if r.observer != nil {
			r.observer(res)
		}

		if stage.Mode == Authoritative && res.Accepted > 0 {
			break
		}
	}

	resolution.Addresses = list.Strings()
	return resolution
}

// run executes one strategy under its own deadline and turns a panic into
// a failure result.
func (r *Resolver) run(ctx context.Context, s Strategy) (res Result) {
	if r.cfg.StrategyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.StrategyTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res = failure(s.Name(), fmt.Errorf("strategy panicked: %v", p))
		}
		res.Strategy = s.Name()
		res.Duration = time.Since(start)
	}()

	return s.Discover(ctx, r.cfg)
}
