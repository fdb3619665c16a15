package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"IPService/internal/resolver"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveStrategy(t *testing.T) {
	tel := New()

	tel.ObserveStrategy(resolver.Result{Strategy: "hostname_i", Accepted: 2, Duration: time.Millisecond})
	tel.ObserveStrategy(resolver.Result{Strategy: "ip_addr", Err: errors.New("missing")})
	tel.ObserveStrategy(resolver.Result{Strategy: "ip_addr"})

	assert.Equal(t, 1.0, testutil.ToFloat64(tel.strategyRuns.WithLabelValues("hostname_i", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(tel.strategyRuns.WithLabelValues("ip_addr", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(tel.strategyRuns.WithLabelValues("ip_addr", "empty")))
}

func TestHandler(t *testing.T) {
	tel := New()
	tel.ObserveRequest("/json", http.MethodGet, http.StatusOK, 5*time.Millisecond)
	tel.ObserveRequest("", http.MethodGet, http.StatusNotFound, time.Millisecond)

	rec := httptest.NewRecorder()
	tel.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics/prometheus", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `ipservice_http_requests_total{method="GET",route="/json",status="200"} 1`)
	assert.Contains(t, body, `route="unmatched"`)
}
