package telemetry

import (
	"context"
	"os"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestConfigureEnv(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	Honeycomb{APIKey: "key123"}.ConfigureEnv()

	if got := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); got != honeycombURL {
		t.Errorf("endpoint = %q, want %q", got, honeycombURL)
	}
	want := "x-honeycomb-team=key123,x-honeycomb-dataset=deadzone"
	if got := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); got != want {
		t.Errorf("headers = %q, want %q", got, want)
	}
}

func TestConfigureEnvWithoutKeyLeavesHeaders(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "preset")

	Honeycomb{Dataset: "other"}.ConfigureEnv()

	if got := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); got != "preset" {
		t.Errorf("headers = %q, want preset", got)
	}
}

func TestResourceAttrsCarrySeed(t *testing.T) {
	var found bool
	for _, kv := range resourceAttrs(Options{Seed: 42}) {
		if kv.Key == attribute.Key("deadzone.seed") {
			found = true
			if kv.Value.AsInt64() != 42 {
				t.Errorf("deadzone.seed = %d, want 42", kv.Value.AsInt64())
			}
		}
	}
	if !found {
		t.Error("resource has no deadzone.seed attribute")
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, sdktrace.AlwaysSample().Description()},
		{1, sdktrace.AlwaysSample().Description()},
		{2, sdktrace.AlwaysSample().Description()},
		{0.5, sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.5)).Description()},
	}

	for _, tt := range tests {
		if got := sampler(tt.ratio).Description(); got != tt.want {
			t.Errorf("sampler(%v) = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}

func TestDisabledTracerRecordsNothing(t *testing.T) {
	Disable()
	_, span := Tracer("test").Start(context.Background(), "test.span")
	defer span.End()

	if span.IsRecording() {
		t.Error("span is recording after Disable")
	}
	if span.SpanContext().IsValid() {
		t.Error("noop span has a valid span context")
	}
}
