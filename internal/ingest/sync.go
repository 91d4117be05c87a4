// SPDX-License-Identifier: MPL-2.0

package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/barskern/frost/internal/metno"
	"github.com/barskern/frost/internal/promscale"
)

type (
	// Element pairs a Frost element with the metric its samples are stored
	// under.
	Element struct {
		ID     string // Frost element ID, e.g. "air_temperature"
		Metric string // Prometheus metric name, e.g. "temperature_met"
	}

	// ObservationSource fetches observed values for one element over a
	// window. *metno.Client satisfies it.
	ObservationSource interface {
		Observations(ctx context.Context, req metno.ObservationsRequest) ([]metno.Observation, error)
	}

	// MetricStore persists samples and knows the newest stored timestamp
	// per metric. *promscale.Client satisfies it.
	MetricStore interface {
		Write(ctx context.Context, ts promscale.Timeseries) error
		LastTimestamp(ctx context.Context, metric string) (time.Time, error)
	}

	// Config identifies what to sync and how the resulting series are
	// labeled.
	Config struct {
		Sensor   string    // Frost source, e.g. "SN19780"
		Location string    // Value of the "location" label on every series
		Elements []Element // Ordered element to metric mapping
	}

	// RunError reports how many elements of a run failed. The per-element
	// causes have already been logged by the time it is returned; Causes
	// keeps them reachable for errors.Is and errors.As.
	RunError struct {
		Failed int
		Total  int
		Causes []error
	}

	// Syncer executes ingest runs against one source and one store.
	Syncer struct {
		source ObservationSource
		store  MetricStore
		cfg    Config
		logger *log.Logger
		tracer trace.Tracer
		now    func() time.Time
	}

	// Option configures a Syncer during construction.
	Option func(*Syncer)
)

// DefaultElements returns the ordered element to metric mapping the
// original deployment tracks.
func DefaultElements() []Element {
	return []Element{
		{ID: "air_temperature", Metric: "temperature_met"},
		{ID: "relative_humidity", Metric: "humidity_met"},
	}
}

// Error summarizes the run outcome.
func (e *RunError) Error() string {
	return fmt.Sprintf("fetching data for %d of %d metrics failed", e.Failed, e.Total)
}

// Unwrap exposes the per-element causes to the errors package.
func (e *RunError) Unwrap() []error {
	return e.Causes
}

// WithLogger sets the logger used for run progress and warnings.
func WithLogger(logger *log.Logger) Option {
	return func(s *Syncer) {
		s.logger = logger
	}
}

// WithTracer sets the tracer that spans runs and per-element work.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Syncer) {
		s.tracer = tracer
	}
}

// WithNowFunc overrides the time source used for window ends, primarily
// for tests.
func WithNowFunc(now func() time.Time) Option {
	return func(s *Syncer) {
		s.now = now
	}
}

// NewSyncer creates a Syncer. An empty cfg.Elements falls back to
// DefaultElements.
func NewSyncer(source ObservationSource, store MetricStore, cfg Config, opts ...Option) *Syncer {
	if len(cfg.Elements) == 0 {
		cfg.Elements = DefaultElements()
	}

	s := &Syncer{
		source: source,
		store:  store,
		cfg:    cfg,
		logger: log.Default(),
		tracer: noop.NewTracerProvider().Tracer("ingest"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one sync pass over all configured elements. A non-nil fixed
// window pins the fetch range for every element; otherwise each element
// resumes one second after its newest stored sample and ends at now (UTC).
// Elements failing with "no data found" are benign; any other failure is
// logged, counted, and surfaced as a RunError once every element has had
// its turn.
func (s *Syncer) Run(ctx context.Context, fixed *metno.Window) error {
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)

	ctx, span := s.tracer.Start(ctx, "ingest.run",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", runID),
		attribute.String("sensor", s.cfg.Sensor),
		attribute.Int("run.elements", len(s.cfg.Elements)),
	)

	end := s.now().UTC()

	var causes []error
	for _, element := range s.cfg.Elements {
		err := s.syncElement(ctx, logger, element, fixed, end)
		if err == nil {
			continue
		}
		if metno.IsNoData(err) {
			logger.Info("no new data for element, continuing", "element", element.ID)
			continue
		}
		logger.Error("syncing element failed", "element", element.ID, "error", err)
		causes = append(causes, err)
	}

	if len(causes) > 0 {
		runErr := &RunError{Failed: len(causes), Total: len(s.cfg.Elements), Causes: causes}
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		return runErr
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// syncElement fetches one element's window and writes the samples to the
// store as a labeled timeseries.
func (s *Syncer) syncElement(ctx context.Context, logger *log.Logger, element Element, fixed *metno.Window, end time.Time) error {
	ctx, span := s.tracer.Start(ctx, "ingest.element",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()
	span.SetAttributes(
		attribute.String("element.id", element.ID),
		attribute.String("element.metric", element.Metric),
	)

	window, ok, err := s.resolveWindow(ctx, logger, element, fixed, end)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("resolving window for %s: %w", element.Metric, err)
	}
	if !ok {
		// A sample past the window end is already stored; warned in
		// resolveWindow and not a failure.
		span.SetStatus(codes.Ok, "skipped")
		return nil
	}

	logger.Info("fetching observations",
		"element", element.ID, "from", window.Start, "to", window.End)

	obs, err := s.source.Observations(ctx, metno.ObservationsRequest{
		Source:  s.cfg.Sensor,
		Element: element.ID,
		Window:  window,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	logger.Info("got samples", "element", element.ID, "count", len(obs))
	span.SetAttributes(attribute.Int("element.samples", len(obs)))

	series := promscale.Timeseries{
		Labels: map[string]string{
			promscale.MetricLabel: element.Metric,
			"location":            s.cfg.Location,
			"sensor":              s.cfg.Sensor,
		},
		Samples: make([]promscale.Sample, 0, len(obs)),
	}
	for _, o := range obs {
		series.Samples = append(series.Samples, promscale.NewSample(o.Time, o.Value))
	}

	if err := s.store.Write(ctx, series); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("writing %s: %w", element.Metric, err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// resolveWindow picks the fetch range for one element. With a fixed window
// the caller pinned both ends; otherwise the element resumes one second
// after its newest stored sample. ok is false when the store already holds
// a sample past the window end, which means there is nothing to fetch.
func (s *Syncer) resolveWindow(ctx context.Context, logger *log.Logger, element Element, fixed *metno.Window, end time.Time) (metno.Window, bool, error) {
	var window metno.Window
	if fixed != nil {
		window = *fixed
	} else {
		last, err := s.store.LastTimestamp(ctx, element.Metric)
		if err != nil {
			return metno.Window{}, false, err
		}
		window = metno.Window{Start: last.Add(time.Second), End: end}
	}

	if window.End.Before(window.Start) {
		logger.Warn("store holds a sample from the future, skipping element",
			"element", element.ID, "start", window.Start, "end", window.End)
		return metno.Window{}, false, nil
	}

	return window, true, nil
}
