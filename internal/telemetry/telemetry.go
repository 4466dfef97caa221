// Package telemetry installs the OpenTelemetry tracer provider. Spans from
// the controller and the HTTP server are exported over OTLP/HTTP when an
// endpoint is configured.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config selects the exporter.
type Config struct {
	Endpoint    string
	ServiceName string
	Insecure    bool
}

// Provider wraps the SDK provider so callers can flush on exit.
type Provider struct {
	provider *sdktrace.TracerProvider
	enabled  bool
}

// Setup installs a global tracer provider. Without an endpoint it returns a
// disabled Provider and leaves the global no-op provider in place.
func Setup(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.Endpoint == "" {
		return &Provider{}, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create exporter: %w", err)
	}

	provider := NewProvider(sdktrace.WithBatcher(exporter), serviceResource(cfg.ServiceName))
	return provider, nil
}

// NewProvider installs a global provider built from opts. Tests pass a
// span recorder through sdktrace.WithSpanProcessor.
func NewProvider(opts ...sdktrace.TracerProviderOption) *Provider {
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return &Provider{provider: tp, enabled: true}
}

func serviceResource(name string) sdktrace.TracerProviderOption {
	if name == "" {
		name = "hafriyat"
	}
	return sdktrace.WithResource(resource.NewSchemaless(
		attribute.String("service.name", name),
	))
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.enabled
}

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
