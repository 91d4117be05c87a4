// SPDX-License-Identifier: MPL-2.0

package promscale

import (
	"encoding/json"
	"fmt"
	"time"
)

// MetricLabel is the reserved label Prometheus uses for the metric name.
const MetricLabel = "__name__"

type (
	// Sample is one timestamped value in a timeseries. On the wire it is the
	// two-element array the Promscale write endpoint expects:
	// [milliseconds since the Unix epoch, value].
	Sample struct {
		TimestampMS int64
		Value       float64
	}

	// Timeseries is the Promscale write payload: a labeled series of samples.
	// Labels must include MetricLabel naming the metric.
	Timeseries struct {
		Labels  map[string]string `json:"labels"`
		Samples []Sample          `json:"samples"`
	}
)

// NewSample converts an observation time to the millisecond precision the
// write endpoint stores.
func NewSample(t time.Time, value float64) Sample {
	return Sample{TimestampMS: t.UnixMilli(), Value: value}
}

// Time returns the sample's timestamp as a UTC time.
func (s Sample) Time() time.Time {
	return time.UnixMilli(s.TimestampMS).UTC()
}

// MarshalJSON renders the sample as a [timestamp, value] pair.
func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{s.TimestampMS, s.Value})
}

// UnmarshalJSON parses a [timestamp, value] pair. Anything other than a
// two-element array of numbers is rejected.
func (s *Sample) UnmarshalJSON(data []byte) error {
	var raw []json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("sample must be a [timestamp, value] pair: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("sample must be a [timestamp, value] pair, got %d elements", len(raw))
	}

	ms, err := raw[0].Int64()
	if err != nil {
		return fmt.Errorf("parsing sample timestamp %q: %w", raw[0], err)
	}
	value, err := raw[1].Float64()
	if err != nil {
		return fmt.Errorf("parsing sample value %q: %w", raw[1], err)
	}

	s.TimestampMS = ms
	s.Value = value
	return nil
}

// Metric returns the metric name carried in the series labels, or the empty
// string when the label is missing.
func (ts Timeseries) Metric() string {
	return ts.Labels[MetricLabel]
}
