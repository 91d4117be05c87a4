// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/barskern/frost/internal/diagnose"
	"github.com/barskern/frost/internal/ingest"
	"github.com/barskern/frost/internal/promscale"
)

func TestParseWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		wantNil   bool
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:    "no args means resume from the store",
			args:    nil,
			wantNil: true,
		},
		{
			name:      "valid pair",
			args:      []string{"2021-06-01T00:00:00Z", "2021-06-02T12:30:00Z"},
			wantStart: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2021, 6, 2, 12, 30, 0, 0, time.UTC),
		},
		{
			name:      "zone offsets are honored",
			args:      []string{"2021-06-01T02:00:00+02:00", "2021-06-01T08:00:00+02:00"},
			wantStart: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2021, 6, 1, 6, 0, 0, 0, time.UTC),
		},
		{
			name:    "malformed start",
			args:    []string{"yesterday", "2021-06-02T00:00:00Z"},
			wantErr: true,
		},
		{
			name:    "malformed end",
			args:    []string{"2021-06-01T00:00:00Z", "tomorrow"},
			wantErr: true,
		},
		{
			name:    "end before start",
			args:    []string{"2021-06-02T00:00:00Z", "2021-06-01T00:00:00Z"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			window, err := parseWindow(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantNil {
				if window != nil {
					t.Fatalf("expected nil window, got %+v", window)
				}
				return
			}
			if window == nil {
				t.Fatal("expected a window, got nil")
			}
			if !window.Start.Equal(tt.wantStart) {
				t.Errorf("got start %v, want %v", window.Start, tt.wantStart)
			}
			if !window.End.Equal(tt.wantEnd) {
				t.Errorf("got end %v, want %v", window.End, tt.wantEnd)
			}
		})
	}
}

func TestWindowArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "no args", args: nil},
		{name: "two args", args: []string{"2021-06-01T00:00:00Z", "2021-06-02T00:00:00Z"}},
		{name: "one arg", args: []string{"2021-06-01T00:00:00Z"}, wantErr: true},
		{name: "three args", args: []string{"a", "b", "c"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := windowArgs(nil, tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("got err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestSyncDiagnostic(t *testing.T) {
	t.Parallel()

	fetchCause := fmt.Errorf("fetching observations for SN19780/air_temperature: %w", errors.New("connection reset"))
	writeCause := fmt.Errorf("writing humidity_met: %w", &promscale.WriteError{StatusCode: http.StatusInternalServerError})

	tests := []struct {
		name   string
		runErr *ingest.RunError
		want   diagnose.Id
	}{
		{
			name:   "fetch failures point at the API card",
			runErr: &ingest.RunError{Failed: 1, Total: 2, Causes: []error{fetchCause}},
			want:   diagnose.ObservationFetchFailedId,
		},
		{
			name:   "write failures point at the store card",
			runErr: &ingest.RunError{Failed: 1, Total: 2, Causes: []error{writeCause}},
			want:   diagnose.MetricWriteFailedId,
		},
		{
			name:   "mixed failures prefer the store card",
			runErr: &ingest.RunError{Failed: 2, Total: 2, Causes: []error{fetchCause, writeCause}},
			want:   diagnose.MetricWriteFailedId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := syncDiagnostic(tt.runErr); got != tt.want {
				t.Errorf("got id %d, want %d", got, tt.want)
			}
		})
	}
}
