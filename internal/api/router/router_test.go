package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"IPService/internal/api/handlers"
	"IPService/internal/api/middleware"
	"IPService/internal/netinfo"
	"IPService/internal/pkg/config"
	"IPService/internal/resolver"
	"IPService/internal/telemetry"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	resolution resolver.Resolution
}

func (f fakeResolver) Resolve(context.Context) resolver.Resolution {
	return f.resolution
}

type fakeInterfaces struct {
	table map[string]netinfo.InterfaceInfo
}

func (f fakeInterfaces) Collect(context.Context) (map[string]netinfo.InterfaceInfo, error) {
	return f.table, nil
}

func newTestRouter(t *testing.T, res resolver.Resolution, tel *telemetry.Telemetry) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := clock.NewMock()
	clk.Set(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	up := true
	cfg := config.GetDefaultConfig()
	r := New(cfg, handlers.Dependencies{
		Resolver: fakeResolver{resolution: res},
		Interfaces: fakeInterfaces{table: map[string]netinfo.InterfaceInfo{
			"eth0": {Name: "eth0", IsUp: &up, Addresses: []netinfo.AddressInfo{{Address: "192.168.1.10", IsIPv4: true}}},
		}},
		Clock:    clk,
		Hostname: func() (string, error) { return "box", nil },
	}, tel, nil)
	return r.Initialize()
}

func primaryResolution(addrs ...string) resolver.Resolution {
	return resolver.Resolution{
		Addresses: addrs,
		Results: []resolver.Result{{
			Strategy:  resolver.PrimaryStrategyName,
			Addresses: addrs,
			Raw:       "192.168.1.10 10.0.0.5 \n",
			Accepted:  len(addrs),
		}},
	}
}

func serve(r http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestIndexPlainText(t *testing.T) {
	r := newTestRouter(t, primaryResolution("192.168.1.10", "10.0.0.5"), nil)

	w := serve(r, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "192.168.1.10 10.0.0.5\n", w.Body.String())
}

func TestIndexNoAddresses(t *testing.T) {
	r := newTestRouter(t, resolver.Resolution{Addresses: []string{}}, nil)

	w := serve(r, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No IP addresses found\n", w.Body.String())
}

func TestJSONCount(t *testing.T) {
	r := newTestRouter(t, primaryResolution("192.168.1.10", "10.0.0.5"), nil)

	w := serve(r, http.MethodGet, "/json", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "box", body["hostname"])
	assert.Equal(t, []interface{}{"192.168.1.10", "10.0.0.5"}, body["ip_addresses"])
	assert.EqualValues(t, 2, body["count"])
	assert.Equal(t, config.Version, body["version"])
	assert.Equal(t, "2026-01-02T03:04:05Z", body["timestamp"])
}

func TestJSONEmptyListIsArray(t *testing.T) {
	r := newTestRouter(t, resolver.Resolution{Addresses: []string{}}, nil)

	body := decode(t, serve(r, http.MethodGet, "/json", nil))

	assert.Equal(t, []interface{}{}, body["ip_addresses"])
	assert.EqualValues(t, 0, body["count"])
}

func TestInterfacesIncludesRawPrimaryOutput(t *testing.T) {
	r := newTestRouter(t, primaryResolution("192.168.1.10", "10.0.0.5"), nil)

	body := decode(t, serve(r, http.MethodGet, "/interfaces", nil))

	assert.EqualValues(t, 2, body["ip_count"])
	assert.Equal(t, "192.168.1.10 10.0.0.5 \n", body["hostname_i_raw"])
	assert.Equal(t, false, body["show_localhost_ips_config"])

	table, ok := body["interfaces"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, table, "eth0")
}

func TestInterfacesOmitsRawWhenPrimaryFailed(t *testing.T) {
	res := resolver.Resolution{
		Addresses: []string{"192.168.1.10"},
		Results: []resolver.Result{
			{Strategy: resolver.PrimaryStrategyName, Err: assert.AnError},
			{Strategy: resolver.RouteProbeStrategy, Addresses: []string{"192.168.1.10"}, Accepted: 1},
		},
	}
	r := newTestRouter(t, res, nil)

	body := decode(t, serve(r, http.MethodGet, "/interfaces", nil))

	assert.NotContains(t, body, "hostname_i_raw")
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, resolver.Resolution{}, nil)

	w := serve(r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ip-service", body["app_name"])
}

func TestMetricsUnavailable(t *testing.T) {
	r := newTestRouter(t, resolver.Resolution{}, nil)

	w := serve(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	snap, ok := body["metrics"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, snap["metrics_available"])
	assert.Contains(t, snap, "uptime_seconds")
	assert.NotContains(t, snap, "cpu_percent")
}

func TestConfigEcho(t *testing.T) {
	r := newTestRouter(t, resolver.Resolution{}, nil)

	body := decode(t, serve(r, http.MethodGet, "/config", nil))

	assert.EqualValues(t, 5252, body["port"])
	assert.Equal(t, "INFO", body["log_level"])
	assert.Equal(t, true, body["cors_enabled"])
	assert.Equal(t, false, body["show_localhost_ips"])
	assert.Contains(t, body, "runtime_version")
}

func TestRequestInfo(t *testing.T) {
	r := newTestRouter(t, resolver.Resolution{}, nil)

	w := serve(r, http.MethodGet, "/request-info?x=1", http.Header{
		"User-Agent": {"probe/1.0"},
		"X-Custom":   {"a", "b"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "192.0.2.1", body["remote_addr"])
	assert.EqualValues(t, 1234, body["remote_port"])
	assert.Equal(t, "probe/1.0", body["user_agent"])
	assert.Equal(t, "/request-info", body["path"])
	assert.Equal(t, "http://example.com/request-info?x=1", body["url"])
	assert.Equal(t, false, body["is_secure"])
	assert.Nil(t, body["content_type"])
	assert.Nil(t, body["content_length"])

	headers, ok := body["headers"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a, b", headers["X-Custom"])
	assert.Equal(t, "example.com", headers["Host"])
}

func TestAllCombinesSections(t *testing.T) {
	r := newTestRouter(t, primaryResolution("192.168.1.10"), nil)

	body := decode(t, serve(r, http.MethodGet, "/all", nil))

	assert.Equal(t, []interface{}{"192.168.1.10"}, body["ip_addresses"])
	for _, key := range []string{"request", "metrics", "config", "timestamp"} {
		assert.Contains(t, body, key)
	}
}

func TestNotFound(t *testing.T) {
	r := newTestRouter(t, resolver.Resolution{}, nil)

	w := serve(r, http.MethodGet, "/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Not found", body["error"])
	assert.Equal(t, "/nope", body["path"])
}

func TestPanicBecomesInternalError(t *testing.T) {
	r := newTestRouter(t, resolver.Resolution{}, nil)
	r.engine.GET("/boom", func(*gin.Context) { panic("secret detail") })

	w := serve(r, http.MethodGet, "/boom", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotContains(t, w.Body.String(), "secret detail")
}

func TestCORSHeaders(t *testing.T) {
	r := newTestRouter(t, resolver.Resolution{}, nil)

	w := serve(r, http.MethodGet, "/health", http.Header{"Origin": {"http://elsewhere.test"}})

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDPropagation(t *testing.T) {
	r := newTestRouter(t, resolver.Resolution{}, nil)

	w := serve(r, http.MethodGet, "/health", http.Header{middleware.RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))

	w = serve(r, http.MethodGet, "/health", nil)
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
}

func TestPrometheusEndpoint(t *testing.T) {
	tel := telemetry.New()
	r := newTestRouter(t, resolver.Resolution{}, tel)

	serve(r, http.MethodGet, "/health", nil)
	w := serve(r, http.MethodGet, "/metrics/prometheus", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `ipservice_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestOptionalRoutesAbsent(t *testing.T) {
	r := newTestRouter(t, resolver.Resolution{}, nil)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/metrics/prometheus", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/ws/metrics", nil).Code)
}
