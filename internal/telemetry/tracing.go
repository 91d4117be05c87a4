// SPDX-License-Identifier: MPL-2.0

// Package telemetry owns the OpenTelemetry tracing provider. Tracing is
// disabled by default; when enabled, spans cover sync runs, per-element
// fetch/write work, and the release subprocesses.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// ExporterNone keeps tracing active for internal correlation without
	// exporting spans anywhere.
	ExporterNone = "none"
	// ExporterStdout pretty-prints finished spans to stdout.
	ExporterStdout = "stdout"
	// ExporterOTLP ships spans to an OTLP collector over gRPC.
	ExporterOTLP = "otlp"

	// defaultOTLPEndpoint is where a local collector usually listens.
	defaultOTLPEndpoint = "localhost:4317"

	// defaultServiceName identifies this tool in trace backends.
	defaultServiceName = "frost"
)

type (
	// Config configures the tracing subsystem.
	Config struct {
		Enabled      bool    // When false a no-op tracer is installed
		Exporter     string  // ExporterNone, ExporterStdout or ExporterOTLP
		OTLPEndpoint string  // Collector endpoint for ExporterOTLP
		SampleRate   float64 // Fraction of traces to sample, 1.0 samples all
		ServiceName  string  // service.name resource attribute
	}

	// Provider wraps the tracer provider with a uniform surface whether
	// tracing is enabled or not.
	Provider struct {
		provider *sdktrace.TracerProvider
		tracer   trace.Tracer
		enabled  bool
	}
)

// NewProvider creates and installs the trace provider. With tracing
// disabled the returned provider hands out no-op tracers and Shutdown is
// free.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer("noop")}, nil
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	// NewSchemaless avoids schema version conflicts with resource.Default().
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
	)

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}
	sampler := sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)

	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(serviceName),
		enabled:  true,
	}, nil
}

// newExporter builds the span exporter the configuration names. A nil
// exporter with a nil error means spans are kept but never shipped.
func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case ExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("creating stdout exporter: %w", err)
		}
		return exporter, nil

	case ExporterOTLP:
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = defaultOTLPEndpoint
		}
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("creating otlp exporter: %w", err)
		}
		return exporter, nil

	case ExporterNone, "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}
}

// Tracer returns a tracer for creating spans. It is safe to use even when
// tracing is disabled.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are actually recorded.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Shutdown flushes pending spans and tears down the provider. Call it once
// on exit so batched spans reach the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider != nil {
		return p.provider.Shutdown(ctx)
	}
	return nil
}
