// SPDX-License-Identifier: MPL-2.0

package telemetry

import (
	"context"
	"strings"
	"testing"
)

func TestNewProvider_DisabledIsNoop(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.Enabled() {
		t.Error("expected provider to report disabled")
	}
	if provider.Tracer() == nil {
		t.Fatal("expected a usable tracer even when disabled")
	}

	// Spans on the no-op tracer must be safe to create and end.
	_, span := provider.Tracer().Start(context.Background(), "test")
	span.End()

	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestNewProvider_NoneExporterKeepsTracingEnabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{
		Enabled:  true,
		Exporter: ExporterNone,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Errorf("unexpected shutdown error: %v", err)
		}
	}()

	if !provider.Enabled() {
		t.Error("expected provider to report enabled")
	}

	_, span := provider.Tracer().Start(context.Background(), "test")
	span.End()
}

func TestNewProvider_StdoutExporter(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{
		Enabled:    true,
		Exporter:   ExporterStdout,
		SampleRate: 1.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !provider.Enabled() {
		t.Error("expected provider to report enabled")
	}

	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{
		Enabled:  true,
		Exporter: "carrier-pigeon",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if want := "unsupported exporter type"; !strings.Contains(err.Error(), want) {
		t.Errorf("got error %q, want it to contain %q", err.Error(), want)
	}
}
