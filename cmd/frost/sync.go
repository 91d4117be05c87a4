// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/barskern/frost/internal/config"
	"github.com/barskern/frost/internal/diagnose"
	"github.com/barskern/frost/internal/ingest"
	"github.com/barskern/frost/internal/metno"
	"github.com/barskern/frost/internal/promscale"

	"github.com/spf13/cobra"
)

// syncCmd fetches new observations and stores them as metric samples.
var syncCmd = &cobra.Command{
	Use:   "sync [start end]",
	Short: "Sync observations from MET Norway into the metric store",
	Long: `Sync observations from the MET Norway Frost API into the metric store.

Without arguments each configured element resumes one second after its
newest stored sample and catches up to now. Passing an explicit RFC 3339
start and end pins that window for every element instead, which is how
historical gaps are re-ingested:

  frost sync 2021-06-01T00:00:00Z 2021-06-02T00:00:00Z

Elements for which the API has no new data are skipped quietly. Any
other per-element failure is logged and counted, and a failed run exits
non-zero once every element has had its turn.`,
	Args: windowArgs,
	RunE: runSync,
}

// windowArgs accepts either no window or a complete one.
func windowArgs(_ *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("accepts no arguments or exactly two (start and end), received %d", len(args))
	}
	return nil
}

// parseWindow turns the optional [start end] argument pair into a fixed
// fetch window. A nil window means "resume from the newest stored sample".
func parseWindow(args []string) (*metno.Window, error) {
	if len(args) == 0 {
		return nil, nil
	}

	start, err := time.Parse(time.RFC3339, args[0])
	if err != nil {
		return nil, fmt.Errorf("parsing window start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, args[1])
	if err != nil {
		return nil, fmt.Errorf("parsing window end: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("window end %s is before start %s", args[1], args[0])
	}

	return &metno.Window{Start: start, End: end}, nil
}

func runSync(cmd *cobra.Command, args []string) error {
	window, err := parseWindow(args)
	if err != nil {
		return err
	}

	cfg := config.Get()
	if cfg.MetNo.ClientID == "" {
		renderDiagnostic(os.Stderr, diagnose.CredentialsMissingId)
		return errors.New("no MET Norway API credentials configured")
	}

	store, err := newMetricStore(cfg)
	if err != nil {
		return err
	}

	provider, err := newTelemetryProvider(cmd.Context())
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer shutdownTelemetry(provider)

	syncer := ingest.NewSyncer(newObservationClient(cfg), store, ingest.Config{
		Sensor:   string(cfg.MetNo.SensorID),
		Location: cfg.Sync.Location,
		Elements: syncElements(cfg.Sync.Elements),
	}, ingest.WithTracer(provider.Tracer()))

	if err := syncer.Run(cmd.Context(), window); err != nil {
		var runErr *ingest.RunError
		if errors.As(err, &runErr) {
			renderDiagnostic(os.Stderr, syncDiagnostic(runErr))
			return &ExitError{Code: 1, Err: err}
		}
		return err
	}
	return nil
}

// syncDiagnostic picks the card for a failed run: the store-side card when
// any write failed, the fetch-side card otherwise.
func syncDiagnostic(runErr *ingest.RunError) diagnose.Id {
	var writeErr *promscale.WriteError
	if errors.As(runErr, &writeErr) {
		return diagnose.MetricWriteFailedId
	}
	return diagnose.ObservationFetchFailedId
}

// newObservationClient builds the MET Norway client from the configuration.
func newObservationClient(cfg *config.Config) *metno.Client {
	opts := []metno.ClientOption{
		metno.WithUserAgent(userAgent()),
		metno.WithCredentials(cfg.MetNo.ClientID, cfg.MetNo.ClientSecret),
	}
	if cfg.MetNo.BaseURL != "" {
		opts = append(opts, metno.WithBaseURL(string(cfg.MetNo.BaseURL)))
	}
	if cfg.MetNo.CacheTTL > 0 {
		opts = append(opts, metno.WithCacheTTL(cfg.MetNo.CacheTTL))
	}
	return metno.NewClient(opts...)
}

// newMetricStore builds the Promscale client from the configuration. Without
// a CA bundle the server certificate is not verified, matching the usual
// self-signed ingress of a home cluster.
func newMetricStore(cfg *config.Config) (*promscale.Client, error) {
	opts := []promscale.ClientOption{promscale.WithUserAgent(userAgent())}
	if cfg.Promscale.CertPath != "" {
		opts = append(opts, promscale.WithCACert(string(cfg.Promscale.CertPath)))
	} else {
		slog.Warn("no CA certificate configured, will not verify the metric store's certificate")
		opts = append(opts, promscale.WithInsecureSkipVerify())
	}

	client, err := promscale.NewClient(string(cfg.Promscale.WriteURL), string(cfg.Promscale.QueryURL), opts...)
	if err != nil {
		return nil, fmt.Errorf("configuring metric store client: %w", err)
	}
	return client, nil
}

// syncElements maps the configured element mappings into the ingest package's
// form. An empty result makes the syncer fall back to its defaults.
func syncElements(mappings []config.ElementMapping) []ingest.Element {
	elements := make([]ingest.Element, 0, len(mappings))
	for _, m := range mappings {
		elements = append(elements, ingest.Element{ID: string(m.ID), Metric: string(m.Metric)})
	}
	return elements
}
