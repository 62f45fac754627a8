// Package telemetry wires OpenTelemetry tracing for the console and the catalog.
package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup registers a global tracer provider exporting to collectorHost over OTLP/HTTP.
// An empty collectorHost leaves tracing disabled and returns a no-op shutdown.
func Setup(ctx context.Context, collectorHost, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	collectorHost = strings.TrimSpace(collectorHost)
	if collectorHost == "" {
		return noop, nil
	}

	exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(
		otlptracehttp.WithEndpoint(endpoint(collectorHost)),
		otlptracehttp.WithInsecure(),
	))
	if err != nil {
		return noop, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, fmt.Errorf("creating trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// endpoint appends the default OTLP/HTTP port when host has none.
func endpoint(host string) string {
	if strings.Contains(host, ":") {
		return host
	}
	return host + ":4318"
}
