package resolver

import (
	"IPService/internal/netinfo"
)

// DefaultStages returns the production pipeline in priority order
func DefaultStages(runner CommandRunner, source netinfo.Source, probeTarget string) []Stage {
	return []Stage{
		{Strategy: NewHostnameCommand(runner), Mode: Authoritative},
		{Strategy: NewIPAddrCommand(runner), Mode: Additive},
		{Strategy: NewInterfaceAPI(source), Mode: Additive},
		{Strategy: NewHostnameLookup(), Mode: Fallback},
		{Strategy: NewRouteProbe(probeTarget), Mode: Fallback},
	}
}

// NewDefault creates a resolver over the production pipeline
func NewDefault(cfg Config, probeTarget string, opts ...Option) *Resolver {
	return New(cfg, DefaultStages(ExecRunner{}, netinfo.NewSystemSource(), probeTarget), opts...)
}
