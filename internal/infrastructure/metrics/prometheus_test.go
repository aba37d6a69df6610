package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	gm := NewGatewayMetrics(reg)

	gm.Observe("GetAllAdvertisements", http.MethodGet, "success", 0.01)
	gm.Observe("GetAllAdvertisements", http.MethodGet, "success", 0.02)

	count := testutil.ToFloat64(gm.RequestCount.WithLabelValues("GetAllAdvertisements", http.MethodGet, "success"))
	assert.Equal(t, float64(2), count)
}

func TestServiceMetricsRegisterSeparately(t *testing.T) {
	reg := prometheus.NewRegistry()
	sm := NewServiceMetrics(reg)
	sm.Observe("PasswordReset.Request", "error", 0.5)

	assert.Equal(t, float64(1), testutil.ToFloat64(sm.MethodCount.WithLabelValues("PasswordReset.Request", "error")))

	// A second registry must accept a fresh set of collectors.
	require.NotPanics(t, func() { NewServiceMetrics(prometheus.NewRegistry()) })
}

func TestHTTPHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	gm := NewGatewayMetrics(reg)
	gm.Observe("Login", http.MethodPost, "success", 0.1)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `gateway_requests_total{method="POST",operation="Login",status="success"} 1`)
}
