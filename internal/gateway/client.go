package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"market-client/internal/config"
	"market-client/internal/infrastructure/metrics"
	"market-client/pkg/logger"
	"market-client/pkg/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const requestIDHeader = "X-Request-ID"

// Client is the single HTTP client every gateway goes through. It owns the
// base URL and the credential forwarding policy.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.GatewayMetrics
	logger  *logger.Loggers
	tracer  trace.Tracer
}

func NewClient(cfg config.APIConfig, metrics *metrics.GatewayMetrics, loggers *logger.Loggers) (*Client, error) {
	return newClient(cfg, http.DefaultTransport, metrics, loggers)
}

func newClient(cfg config.APIConfig, transport http.RoundTripper, metrics *metrics.GatewayMetrics, loggers *logger.Loggers) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q: scheme and host are required", cfg.BaseURL)
	}

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(transport),
		Timeout:   cfg.Timeout,
	}

	if cfg.WithCredentials {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	return &Client{
		baseURL: base.String(),
		http:    httpClient,
		metrics: metrics,
		logger:  loggers,
		tracer:  otel.Tracer("market-client/gateway"),
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// call describes exactly one backend operation.
type call struct {
	operation string
	method    string
	path      string
	query     url.Values
	token     string
	protected bool
	json      interface{}
	form      *form
}

// route joins escaped path segments into "/a/b/c".
func route(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func (c *Client) do(ctx context.Context, cl call, out interface{}) error {
	ctx, span := c.tracer.Start(ctx, "Gateway "+cl.operation)
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		c.metrics.Observe(cl.operation, cl.method, status, duration)
	}()

	requestID := uuid.NewString()
	span.SetAttributes(
		attribute.String("http.method", cl.method),
		attribute.String("http.route", cl.path),
		attribute.String("request.id", requestID),
		attribute.Bool("auth.protected", cl.protected),
	)

	if cl.protected && cl.token == "" {
		status = "unauthenticated"
		return ErrUnauthenticated
	}

	req, err := c.newRequest(ctx, cl, requestID)
	if err != nil {
		status = "error"
		span.RecordError(err)
		return err
	}

	c.logger.DebugLogger.Debug("calling backend",
		"operation", cl.operation,
		"method", cl.method,
		"url", req.URL.String(),
		"request_id", requestID,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		status = "transport_error"
		span.RecordError(err)
		c.logger.ErrorLogger.Error("backend unreachable", "operation", cl.operation, utils.Err(err))
		return &TransportError{Operation: cl.operation, Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		status = "transport_error"
		span.RecordError(err)
		return &TransportError{Operation: cl.operation, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(cl.operation, resp.StatusCode, body)
		if resp.StatusCode >= 500 {
			status = "server_error"
		} else {
			status = "client_error"
		}
		span.RecordError(apiErr)
		c.logger.DebugLogger.Debug("backend rejected call",
			"operation", cl.operation,
			"status", resp.StatusCode,
			"message", apiErr.Message,
		)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		status = "decode_error"
		span.RecordError(err)
		return fmt.Errorf("%s: decode response: %w", cl.operation, err)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call, requestID string) (*http.Request, error) {
	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)

	switch {
	case cl.form != nil:
		var err error
		body, contentType, err = cl.form.encode()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cl.operation, err)
		}
	case cl.json != nil:
		raw, err := json.Marshal(cl.json)
		if err != nil {
			return nil, fmt.Errorf("%s: encode json body: %w", cl.operation, err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", cl.operation, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cl.protected {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	return req, nil
}
