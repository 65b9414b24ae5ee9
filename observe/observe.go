package observe

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// Valid trace exporters.
var validTraceExporters = map[string]bool{
	"stdout": true,
	"otlp":   true,
	"none":   true,
	"":       true,
}

// Valid metric exporters.
var validMetricExporters = map[string]bool{
	"prometheus": true,
	"stdout":     true,
	"none":       true,
	"":           true,
}

// Config holds telemetry configuration.
type Config struct {
	ServiceName string
	Version     string

	// TraceExporter is one of stdout|otlp|none.
	TraceExporter string
	// OTLPEndpoint is the collector endpoint for the otlp exporter,
	// host:port.
	OTLPEndpoint string
	// SampleRatio is the trace sampling ratio in [0, 1].
	SampleRatio float64

	// MetricExporter is one of prometheus|stdout|none.
	MetricExporter string
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return errors.New("observe: service name is required")
	}
	if !validTraceExporters[c.TraceExporter] {
		return fmt.Errorf("observe: unknown trace exporter: %q", c.TraceExporter)
	}
	if !validMetricExporters[c.MetricExporter] {
		return fmt.Errorf("observe: unknown metric exporter: %q", c.MetricExporter)
	}
	if c.TraceExporter == "otlp" && c.OTLPEndpoint == "" {
		return errors.New("observe: otlp trace exporter requires an endpoint")
	}
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("observe: sample ratio must be in [0, 1], got %f", c.SampleRatio)
	}
	return nil
}

// Provider owns the configured tracer and meter providers.
type Provider struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	registry       *prometheus.Registry
}

// Setup builds the tracer and meter providers per config and installs
// them as the otel globals. The returned Provider must be shut down.
func Setup(ctx context.Context, config Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.Version),
	))
	if err != nil {
		return nil, fmt.Errorf("observe: build resource: %w", err)
	}

	p := &Provider{}

	switch config.TraceExporter {
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
		if err != nil {
			return nil, fmt.Errorf("observe: stdout trace exporter: %w", err)
		}
		p.tracerProvider = newTracerProvider(res, exp, config.SampleRatio)
	case "otlp":
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(config.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("observe: otlp trace exporter: %w", err)
		}
		p.tracerProvider = newTracerProvider(res, exp, config.SampleRatio)
	}
	if p.tracerProvider != nil {
		otel.SetTracerProvider(p.tracerProvider)
	}

	switch config.MetricExporter {
	case "prometheus":
		registry := prometheus.NewRegistry()
		exp, err := otelprom.New(otelprom.WithRegisterer(registry))
		if err != nil {
			return nil, fmt.Errorf("observe: prometheus exporter: %w", err)
		}
		p.registry = registry
		p.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exp),
		)
	case "stdout":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stderr))
		if err != nil {
			return nil, fmt.Errorf("observe: stdout metric exporter: %w", err)
		}
		p.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		)
	}
	if p.meterProvider != nil {
		otel.SetMeterProvider(p.meterProvider)
	}

	return p, nil
}

// PrometheusRegistry returns the registry backing the prometheus metric
// exporter, or nil when another exporter is configured.
func (p *Provider) PrometheusRegistry() *prometheus.Registry {
	return p.registry
}

// Shutdown flushes and stops the providers. Safe to call on a provider
// with no exporters configured.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newTracerProvider(res *resource.Resource, exp sdktrace.SpanExporter, sampleRatio float64) *sdktrace.TracerProvider {
	sampler := sdktrace.AlwaysSample()
	if sampleRatio > 0 && sampleRatio < 1 {
		sampler = sdktrace.TraceIDRatioBased(sampleRatio)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sampler),
	)
}
