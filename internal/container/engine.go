// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNoEngineAvailable matches any engine detection failure.
	ErrNoEngineAvailable = errors.New("no container engine available")

	// ErrInvalidImageTag matches image tag validation failures.
	ErrInvalidImageTag = errors.New("invalid image tag")

	// ErrMissingContextDir matches build options without a context directory.
	ErrMissingContextDir = errors.New("missing build context directory")
)

// Engine abstracts the container toolchain used by the release pipeline.
// Implementations shell out to the docker or podman CLI rather than talking
// to a daemon API, so an engine sees the same login and context state as the
// operator's own CLI session.
type Engine interface {
	// Name reports which CLI backs this engine ("docker" or "podman").
	Name() string
	// Available reports whether the CLI is installed and responding.
	Available() bool
	// Version returns the engine version string.
	Version(ctx context.Context) (string, error)

	// Build assembles an image from a build context.
	Build(ctx context.Context, opts BuildOptions) error
	// Push uploads a tagged image to its registry.
	Push(ctx context.Context, opts PushOptions) error
	// ImageExists reports whether the tag resolves to a local image.
	ImageExists(ctx context.Context, image ImageTag) (bool, error)
	// RemoveImage deletes a local image.
	RemoveImage(ctx context.Context, image ImageTag, force bool) error
}

// ImageTag is a full image reference, repository plus optional version,
// e.g. "barskern/frost:1.4.0".
type ImageTag string

// Validate rejects tags that would splinter the engine argv: empty strings
// and anything containing whitespace.
func (t ImageTag) Validate() error {
	s := string(t)
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: tag is empty", ErrInvalidImageTag)
	}
	if strings.ContainsAny(s, " \t\n") {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidImageTag, s)
	}
	return nil
}

// String returns the tag as a plain string.
func (t ImageTag) String() string { return string(t) }

// BuildOptions describes a single image build.
type BuildOptions struct {
	// ContextDir is the build context directory. Required.
	ContextDir string
	// Dockerfile names the build file, resolved relative to ContextDir
	// unless absolute. Empty leaves the engine's default lookup in place.
	Dockerfile string
	// Tag is applied to the built image. Required.
	Tag ImageTag
	// BuildArgs become --build-arg key=value pairs.
	BuildArgs map[string]string
	// NoCache forces a full rebuild without the layer cache.
	NoCache bool
	// Stdout and Stderr receive the toolchain's streamed output.
	Stdout io.Writer
	Stderr io.Writer
}

// Validate reports all invalid fields, joined into a single error.
func (o BuildOptions) Validate() error {
	var errs []error
	if err := o.Tag.Validate(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(o.ContextDir) == "" {
		errs = append(errs, ErrMissingContextDir)
	}
	return errors.Join(errs...)
}

// PushOptions describes a single image push.
type PushOptions struct {
	// Tag is the image to push. Required.
	Tag ImageTag
	// Stdout and Stderr receive the toolchain's streamed output.
	Stdout io.Writer
	Stderr io.Writer
}

// Validate checks that the push names a usable tag.
func (o PushOptions) Validate() error {
	return o.Tag.Validate()
}

// EngineType selects which container CLI backs an Engine. The value doubles
// as the binary name looked up on PATH.
type EngineType string

const (
	EngineTypeDocker EngineType = "docker"
	EngineTypePodman EngineType = "podman"
)

// EngineNotAvailableError lists the engines that were probed without success.
type EngineNotAvailableError struct {
	Tried []EngineType
}

func (e *EngineNotAvailableError) Error() string {
	tried := make([]string, len(e.Tried))
	for i, kind := range e.Tried {
		tried[i] = string(kind)
	}
	return "no container engine available, tried: " + strings.Join(tried, ", ")
}

// Unwrap returns ErrNoEngineAvailable so callers can match with errors.Is.
func (e *EngineNotAvailableError) Unwrap() error { return ErrNoEngineAvailable }

// NewEngine returns the preferred engine when its CLI responds, falling back
// to the other engine before reporting failure.
func NewEngine(preferred EngineType) (Engine, error) {
	switch preferred {
	case EngineTypeDocker:
		return firstAvailable(EngineTypeDocker, EngineTypePodman)
	case EngineTypePodman:
		return firstAvailable(EngineTypePodman, EngineTypeDocker)
	default:
		return nil, fmt.Errorf("unknown container engine type: %q", preferred)
	}
}

// AutoDetectEngine probes for any usable engine without a stated preference.
// Docker is probed first since published images most commonly target a
// registry the operator logged into with docker login.
func AutoDetectEngine() (Engine, error) {
	return firstAvailable(EngineTypeDocker, EngineTypePodman)
}

func firstAvailable(order ...EngineType) (Engine, error) {
	for _, kind := range order {
		if engine := newCLIEngine(kind); engine.Available() {
			return engine, nil
		}
	}
	return nil, &EngineNotAvailableError{Tried: order}
}
