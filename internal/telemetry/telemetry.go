// Package telemetry provides OpenTelemetry tracing exported to Honeycomb.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "deadzone"
	serviceVersion = "0.3.0"
	honeycombURL   = "https://api.honeycomb.io"
)

// Honeycomb holds the credentials used to route spans to a dataset.
type Honeycomb struct {
	APIKey  string
	Dataset string
}

// ConfigureEnv exports the OTEL_* variables the OTLP exporter reads. The
// header is rebuilt from the key because a .env file may hold an
// unexpanded reference.
func (h Honeycomb) ConfigureEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", honeycombURL)
	if h.APIKey == "" {
		return
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS", h.header())
}

func (h Honeycomb) header() string {
	dataset := h.Dataset
	if dataset == "" {
		dataset = serviceName
	}
	return fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", h.APIKey, dataset)
}

// Options tunes the tracer provider.
type Options struct {
	// SampleRatio is the share of root traces kept, in (0, 1]. Values
	// outside that range keep everything.
	SampleRatio float64
	// Seed is recorded on the resource so a trace can be replayed.
	Seed int64
}

// Setup installs a tracer provider exporting over OTLP HTTP and returns its
// shutdown function, which flushes pending spans.
func Setup(ctx context.Context, opts Options) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	// Own resource without merging Default() to avoid schema URL conflicts.
	res, err := resource.New(ctx, resource.WithAttributes(resourceAttrs(opts)...))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(opts.SampleRatio)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

func resourceAttrs(opts Options) []attribute.KeyValue {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("host.name", host),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.version", runtime.Version()),
		attribute.Int64("deadzone.seed", opts.Seed),
	}
}

func sampler(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// Disable installs a no-op tracer provider.
func Disable() {
	otel.SetTracerProvider(noop.NewTracerProvider())
}

// Tracer returns the tracer for a component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// NoopTracer returns a tracer that records nothing.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}
