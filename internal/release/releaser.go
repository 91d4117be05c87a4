// SPDX-License-Identifier: MPL-2.0

package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/barskern/frost/internal/container"
)

var (
	// ErrBuildFailed is the sentinel error wrapped by BuildError.
	ErrBuildFailed = errors.New("image build failed")
	// ErrPublishFailed is the sentinel error wrapped by PublishError.
	ErrPublishFailed = errors.New("image publish failed")
)

type (
	// BuildError is returned when the container toolchain reports a build
	// failure. ExitCode carries the toolchain's exit status so the caller
	// can propagate it as its own.
	BuildError struct {
		Tag      Tag
		ExitCode ExitCode
		Err      error
	}

	// PublishError is returned when pushing the image to the registry
	// fails: authentication rejection, a tag missing locally, or a
	// network failure. A single attempt is made; there is no retry.
	PublishError struct {
		Tag      Tag
		ExitCode ExitCode
		Err      error
	}

	// Releaser builds and publishes release images tagged from project
	// metadata. The tag is re-resolved on every operation so that edits
	// to the metadata file take effect without restarting anything.
	Releaser struct {
		engine       container.Engine
		metadataPath string
		contextDir   string
		dockerfile   string
		noCache      bool
		stdout       io.Writer
		stderr       io.Writer
		logger       *log.Logger
		tracer       trace.Tracer
	}

	// ReleaserOption configures a Releaser.
	ReleaserOption func(*Releaser)
)

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("building image '%s' failed with exit code %s: %v", e.Tag, e.ExitCode, e.Err)
}

// Unwrap returns ErrBuildFailed so callers can use errors.Is for programmatic detection.
func (e *BuildError) Unwrap() error { return ErrBuildFailed }

// Error implements the error interface.
func (e *PublishError) Error() string {
	return fmt.Sprintf("publishing image '%s' failed with exit code %s: %v", e.Tag, e.ExitCode, e.Err)
}

// Unwrap returns ErrPublishFailed so callers can use errors.Is for programmatic detection.
func (e *PublishError) Unwrap() error { return ErrPublishFailed }

// WithEngine sets the container engine used for build and push.
func WithEngine(engine container.Engine) ReleaserOption {
	return func(r *Releaser) {
		r.engine = engine
	}
}

// WithMetadataPath sets the project metadata file the version is resolved from.
func WithMetadataPath(path string) ReleaserOption {
	return func(r *Releaser) {
		r.metadataPath = path
	}
}

// WithContextDir sets the build context directory.
func WithContextDir(dir string) ReleaserOption {
	return func(r *Releaser) {
		r.contextDir = dir
	}
}

// WithDockerfile sets the Dockerfile path relative to the build context.
// When empty, the toolchain's default lookup applies.
func WithDockerfile(path string) ReleaserOption {
	return func(r *Releaser) {
		r.dockerfile = path
	}
}

// WithNoCache disables the toolchain's build cache.
func WithNoCache(noCache bool) ReleaserOption {
	return func(r *Releaser) {
		r.noCache = noCache
	}
}

// WithOutput sets the writers that receive the toolchain's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) ReleaserOption {
	return func(r *Releaser) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithLogger sets the logger used for progress reporting.
func WithLogger(logger *log.Logger) ReleaserOption {
	return func(r *Releaser) {
		r.logger = logger
	}
}

// WithTracer sets the tracer that spans the build and publish subprocesses.
func WithTracer(tracer trace.Tracer) ReleaserOption {
	return func(r *Releaser) {
		r.tracer = tracer
	}
}

// NewReleaser creates a Releaser. When no engine is supplied, an available
// one is auto-detected.
func NewReleaser(opts ...ReleaserOption) (*Releaser, error) {
	r := &Releaser{
		metadataPath: DefaultMetadataPath,
		contextDir:   ".",
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		logger:       log.Default(),
		tracer:       noop.NewTracerProvider().Tracer("release"),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.engine == nil {
		engine, err := container.AutoDetectEngine()
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}

	return r, nil
}

// Engine returns the container engine the Releaser operates.
func (r *Releaser) Engine() container.Engine { return r.engine }

// ResolveTag resolves the release tag from the configured metadata file.
func (r *Releaser) ResolveTag() (Tag, error) {
	return ResolveTag(r.metadataPath)
}

// Build resolves the release tag and invokes the toolchain's build operation
// against the configured context directory. It blocks until the toolchain
// exits and returns the tag the image was built with.
func (r *Releaser) Build(ctx context.Context) (Tag, error) {
	ctx, span := r.tracer.Start(ctx, "release.build",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	tag, err := r.ResolveTag()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(
		attribute.String("image.tag", tag.String()),
		attribute.String("engine", r.engine.Name()),
	)

	r.logger.Info("Building image", "tag", tag, "engine", r.engine.Name(), "context", r.contextDir)

	err = r.engine.Build(ctx, container.BuildOptions{
		ContextDir: r.contextDir,
		Dockerfile: r.dockerfile,
		Tag:        container.ImageTag(tag),
		NoCache:    r.noCache,
		Stdout:     r.stdout,
		Stderr:     r.stderr,
	})
	if err != nil {
		buildErr := &BuildError{Tag: tag, ExitCode: exitCodeFrom(err), Err: err}
		span.RecordError(buildErr)
		span.SetStatus(codes.Error, buildErr.Error())
		return tag, buildErr
	}

	span.SetStatus(codes.Ok, "")
	r.logger.Info("Image built", "tag", tag)
	return tag, nil
}

// Publish resolves the release tag and invokes the toolchain's push
// operation for it. Registry authentication comes from the ambient
// toolchain session; a single attempt is made.
func (r *Releaser) Publish(ctx context.Context) (Tag, error) {
	ctx, span := r.tracer.Start(ctx, "release.publish",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	tag, err := r.ResolveTag()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(
		attribute.String("image.tag", tag.String()),
		attribute.String("engine", r.engine.Name()),
	)

	r.logger.Info("Publishing image", "tag", tag, "engine", r.engine.Name())

	err = r.engine.Push(ctx, container.PushOptions{
		Tag:    container.ImageTag(tag),
		Stdout: r.stdout,
		Stderr: r.stderr,
	})
	if err != nil {
		publishErr := &PublishError{Tag: tag, ExitCode: exitCodeFrom(err), Err: err}
		span.RecordError(publishErr)
		span.SetStatus(codes.Error, publishErr.Error())
		return tag, publishErr
	}

	span.SetStatus(codes.Ok, "")
	r.logger.Info("Image published", "tag", tag)
	return tag, nil
}
