package client

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/socialflow-dev/socialflow-mcp/client"

type clientMetrics struct {
	requests metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

func newClientMetrics() (*clientMetrics, error) {
	meter := otel.Meter(instrumentationName)

	requests, err := meter.Int64Counter("socialflow.client.requests",
		metric.WithDescription("API request attempts"))
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter("socialflow.client.failures",
		metric.WithDescription("API request attempts that failed"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("socialflow.client.request.duration",
		metric.WithDescription("API request attempt duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &clientMetrics{requests: requests, failures: failures, duration: duration}, nil
}

func (m *clientMetrics) record(ctx context.Context, method, path string, status int, elapsed time.Duration, failed bool) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("url.path", path),
		attribute.Int("http.status_code", status),
	)
	m.requests.Add(ctx, 1, attrs)
	if failed {
		m.failures.Add(ctx, 1, attrs)
	}
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
