// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io"
	"io/fs"

	"github.com/barskern/frost/internal/config"
	"github.com/barskern/frost/internal/container"
	"github.com/barskern/frost/internal/diagnose"
	"github.com/barskern/frost/internal/release"
	"github.com/barskern/frost/internal/version"
)

// newEngine picks the container engine the configuration asks for, falling
// back to auto-detection for "auto".
func newEngine(preferred config.ContainerEngine) (container.Engine, error) {
	switch preferred {
	case config.ContainerEngineDocker:
		return container.NewEngine(container.EngineTypeDocker)
	case config.ContainerEnginePodman:
		return container.NewEngine(container.EngineTypePodman)
	default:
		return container.AutoDetectEngine()
	}
}

// newReleaser assembles a releaser from the loaded configuration plus any
// command-specific options.
func newReleaser(extra ...release.ReleaserOption) (*release.Releaser, error) {
	cfg := config.Get()

	engine, err := newEngine(cfg.ContainerEngine)
	if err != nil {
		return nil, err
	}

	opts := []release.ReleaserOption{release.WithEngine(engine)}
	if cfg.Release.MetadataPath != "" {
		opts = append(opts, release.WithMetadataPath(string(cfg.Release.MetadataPath)))
	}
	if cfg.Release.ContextDir != "" {
		opts = append(opts, release.WithContextDir(string(cfg.Release.ContextDir)))
	}
	if cfg.Release.Dockerfile != "" {
		opts = append(opts, release.WithDockerfile(string(cfg.Release.Dockerfile)))
	}
	opts = append(opts, extra...)

	return release.NewReleaser(opts...)
}

// releaseDiagnostic maps a release failure to the diagnostic card explaining it.
func releaseDiagnostic(err error) (diagnose.Id, bool) {
	var buildErr *release.BuildError
	if errors.As(err, &buildErr) {
		return diagnose.ImageBuildFailedId, true
	}

	var publishErr *release.PublishError
	if errors.As(err, &publishErr) {
		return diagnose.ImagePublishFailedId, true
	}

	switch {
	case errors.Is(err, container.ErrNoEngineAvailable):
		return diagnose.ContainerEngineNotFoundId, true
	case errors.Is(err, version.ErrVersionNotFound):
		return diagnose.VersionNotFoundId, true
	case errors.Is(err, version.ErrVersionMalformed):
		return diagnose.VersionMalformedId, true
	case errors.Is(err, fs.ErrNotExist):
		return diagnose.MetadataNotFoundId, true
	}
	return 0, false
}

// releaseFailure renders the diagnostic card for a release failure to stderr
// and, for toolchain failures, wraps the error so the process exits with the
// toolchain's exit code.
func releaseFailure(stderr io.Writer, err error) error {
	if id, ok := releaseDiagnostic(err); ok {
		renderDiagnostic(stderr, id)
	}

	var buildErr *release.BuildError
	if errors.As(err, &buildErr) {
		return &ExitError{Code: buildErr.ExitCode, Err: err}
	}

	var publishErr *release.PublishError
	if errors.As(err, &publishErr) {
		return &ExitError{Code: publishErr.ExitCode, Err: err}
	}
	return err
}
