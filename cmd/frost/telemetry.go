// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"log/slog"

	"github.com/barskern/frost/internal/config"
	"github.com/barskern/frost/internal/telemetry"
)

// newTelemetryProvider builds the tracing provider from the loaded
// configuration. With telemetry disabled (the default) the provider is a
// noop and costs nothing.
func newTelemetryProvider(ctx context.Context) (*telemetry.Provider, error) {
	cfg := config.Get()
	return telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Exporter:     string(cfg.Telemetry.Exporter),
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		SampleRate:   cfg.Telemetry.SampleRate,
		ServiceName:  "frost",
	})
}

// shutdownTelemetry flushes buffered spans. A failed flush is worth a
// warning but never fails the command that produced the spans.
func shutdownTelemetry(provider *telemetry.Provider) {
	if err := provider.Shutdown(context.Background()); err != nil {
		slog.Warn("flushing telemetry failed", "error", err)
	}
}
