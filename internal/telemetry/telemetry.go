// Package telemetry holds the Prometheus collectors exposed on
// /metrics/prometheus.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"IPService/internal/resolver"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ipservice"

// Telemetry owns a private registry so tests and multiple instances never
// collide on the global one.
type Telemetry struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	strategyRuns    *prometheus.CounterVec
	strategyLatency *prometheus.HistogramVec
}

// New creates and registers all collectors
func New() *Telemetry {
	t := &Telemetry{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		strategyRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolver_strategy_runs_total",
			Help:      "Address discovery strategy runs by outcome.",
		}, []string{"strategy", "outcome"}),
		strategyLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolver_strategy_duration_seconds",
			Help:      "Address discovery strategy latency.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 2, 5},
		}, []string{"strategy"}),
	}

	t.registry.MustRegister(
		t.requests,
		t.requestDuration,
		t.strategyRuns,
		t.strategyLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return t
}

// ObserveRequest records one served HTTP request
func (t *Telemetry) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	t.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	t.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveStrategy records one resolver strategy outcome; use it as a
// resolver.WithObserver hook.
func (t *Telemetry) ObserveStrategy(res resolver.Result) {
	outcome := "empty"
	switch {
	case !res.OK():
		outcome = "error"
	case res.Accepted > 0:
		outcome = "accepted"
	}
	t.strategyRuns.WithLabelValues(res.Strategy, outcome).Inc()
	t.strategyLatency.WithLabelValues(res.Strategy).Observe(res.Duration.Seconds())
}

// Handler serves the exposition format
func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}
