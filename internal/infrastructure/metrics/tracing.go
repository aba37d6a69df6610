package metrics

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"market-client/internal/config"
)

const collectorDialTimeout = 2 * time.Second

// InitTracer installs a global tracer provider exporting to the OTLP/HTTP
// collector in cfg. W3C trace context is propagated on outgoing backend
// calls so client spans join the backend's traces.
func InitTracer(ctx context.Context, cfg config.TracingConfig) (*sdktrace.TracerProvider, error) {
	if err := checkCollector(cfg.Endpoint); err != nil {
		return nil, err
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(tracingResource(cfg)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp, nil
}

func tracingResource(cfg config.TracingConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.ServiceName),
		semconv.ServiceVersionKey.String(cfg.Version),
		semconv.DeploymentEnvironmentKey.String(cfg.Environment),
	)
}

// checkCollector fails fast when nothing listens on endpoint; the exporter
// itself would only report it on the first flush.
func checkCollector(endpoint string) error {
	conn, err := net.DialTimeout("tcp", endpoint, collectorDialTimeout)
	if err != nil {
		return fmt.Errorf("OTLP collector at %s is not reachable: %w", endpoint, err)
	}
	return conn.Close()
}
