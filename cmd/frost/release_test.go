// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"testing"

	"github.com/barskern/frost/internal/container"
	"github.com/barskern/frost/internal/diagnose"
	"github.com/barskern/frost/internal/release"
	"github.com/barskern/frost/internal/version"
)

func TestReleaseDiagnostic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		wantID diagnose.Id
		wantOK bool
	}{
		{
			name:   "build failure",
			err:    fmt.Errorf("building image: %w", &release.BuildError{Tag: "barskern/frost:1.4.0", ExitCode: 1}),
			wantID: diagnose.ImageBuildFailedId,
			wantOK: true,
		},
		{
			name:   "publish failure",
			err:    fmt.Errorf("publishing image: %w", &release.PublishError{Tag: "barskern/frost:1.4.0", ExitCode: 1}),
			wantID: diagnose.ImagePublishFailedId,
			wantOK: true,
		},
		{
			name:   "no engine available",
			err:    fmt.Errorf("detecting engine: %w", container.ErrNoEngineAvailable),
			wantID: diagnose.ContainerEngineNotFoundId,
			wantOK: true,
		},
		{
			name:   "version declaration missing",
			err:    &version.NotFoundError{Path: "frost.toml"},
			wantID: diagnose.VersionNotFoundId,
			wantOK: true,
		},
		{
			name:   "version declaration malformed",
			err:    &version.MalformedError{Path: "frost.toml", Line: "version = 1.4.0", Num: 3},
			wantID: diagnose.VersionMalformedId,
			wantOK: true,
		},
		{
			name:   "metadata file missing",
			err:    fmt.Errorf("read metadata file: %w", fs.ErrNotExist),
			wantID: diagnose.MetadataNotFoundId,
			wantOK: true,
		},
		{
			name:   "unclassified error",
			err:    errors.New("something else entirely"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotID, gotOK := releaseDiagnostic(tt.err)
			if gotOK != tt.wantOK {
				t.Fatalf("got ok=%v, want %v", gotOK, tt.wantOK)
			}
			if gotOK && gotID != tt.wantID {
				t.Errorf("got id %d, want %d", gotID, tt.wantID)
			}
		})
	}
}

func TestReleaseFailure_CarriesBuildExitCode(t *testing.T) {
	buildErr := &release.BuildError{Tag: "barskern/frost:1.4.0", ExitCode: 125, Err: errors.New("engine crashed")}
	err := releaseFailure(io.Discard, fmt.Errorf("building image: %w", buildErr))

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	if exitErr.Code != 125 {
		t.Errorf("got exit code %d, want 125", exitErr.Code)
	}
}

func TestReleaseFailure_CarriesPublishExitCode(t *testing.T) {
	publishErr := &release.PublishError{Tag: "barskern/frost:1.4.0", ExitCode: 5, Err: errors.New("denied")}
	err := releaseFailure(io.Discard, fmt.Errorf("publishing image: %w", publishErr))

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	if exitErr.Code != 5 {
		t.Errorf("got exit code %d, want 5", exitErr.Code)
	}
}

func TestReleaseFailure_PassesThroughUnclassifiedErrors(t *testing.T) {
	t.Parallel()

	cause := errors.New("context deadline exceeded")
	if got := releaseFailure(io.Discard, cause); got != cause {
		t.Errorf("got %v, want the original error unchanged", got)
	}
}
