package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type GatewayMetrics struct {
	RequestCount    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type ServiceMetrics struct {
	MethodCount    *prometheus.CounterVec
	MethodDuration *prometheus.HistogramVec
}

func NewGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	requestCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of backend API calls issued by the gateway layer.",
		},
		[]string{"operation", "method", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Histogram of backend API call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "method", "status"},
	)

	reg.MustRegister(requestCount, requestDuration)

	return &GatewayMetrics{
		RequestCount:    requestCount,
		RequestDuration: requestDuration,
	}
}

func NewServiceMetrics(reg prometheus.Registerer) *ServiceMetrics {
	methodCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "service_methods_total",
			Help: "Total number of flow transitions executed.",
		},
		[]string{"method", "status"},
	)

	methodDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "service_method_duration_seconds",
			Help:    "Histogram of flow transition duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	reg.MustRegister(methodCount, methodDuration)

	return &ServiceMetrics{
		MethodCount:    methodCount,
		MethodDuration: methodDuration,
	}
}

// Observe records one execution of method with the given status label.
func (sm *ServiceMetrics) Observe(method, status string, seconds float64) {
	sm.MethodCount.WithLabelValues(method, status).Inc()
	sm.MethodDuration.WithLabelValues(method, status).Observe(seconds)
}

func (gm *GatewayMetrics) Observe(operation, method, status string, seconds float64) {
	gm.RequestCount.WithLabelValues(operation, method, status).Inc()
	gm.RequestDuration.WithLabelValues(operation, method, status).Observe(seconds)
}

func HTTPHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
