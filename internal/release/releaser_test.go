// SPDX-License-Identifier: MPL-2.0

package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/barskern/frost/internal/container"
	"github.com/barskern/frost/internal/version"
)

// fakeEngine records build and push invocations without shelling out.
type fakeEngine struct {
	buildCalls []container.BuildOptions
	pushCalls  []container.PushOptions
	buildErr   error
	pushErr    error
}

func (f *fakeEngine) Name() string                              { return "docker" }
func (f *fakeEngine) Available() bool                           { return true }
func (f *fakeEngine) Version(context.Context) (string, error)   { return "27.0.0", nil }
func (f *fakeEngine) ImageExists(context.Context, container.ImageTag) (bool, error) {
	return false, nil
}
func (f *fakeEngine) RemoveImage(context.Context, container.ImageTag, bool) error { return nil }

func (f *fakeEngine) Build(_ context.Context, opts container.BuildOptions) error {
	f.buildCalls = append(f.buildCalls, opts)
	return f.buildErr
}

func (f *fakeEngine) Push(_ context.Context, opts container.PushOptions) error {
	f.pushCalls = append(f.pushCalls, opts)
	return f.pushErr
}

func writeMetadataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frost.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write metadata file: %v", err)
	}
	return path
}

func newTestReleaser(t *testing.T, engine container.Engine, metadataPath string, opts ...ReleaserOption) *Releaser {
	t.Helper()

	allOpts := append([]ReleaserOption{
		WithEngine(engine),
		WithMetadataPath(metadataPath),
		WithLogger(log.New(io.Discard)),
	}, opts...)

	r, err := NewReleaser(allOpts...)
	if err != nil {
		t.Fatalf("NewReleaser() error = %v", err)
	}
	return r
}

// exitErrorWithCode produces a real *exec.ExitError carrying the given code.
func exitErrorWithCode(t *testing.T, code int) *exec.ExitError {
	t.Helper()

	cmd := exec.CommandContext(t.Context(), "sh", "-c", fmt.Sprintf("exit %d", code))
	err := cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Skip("sh not available")
	}
	return exitErr
}

func TestReleaserBuild(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	path := writeMetadataFile(t, "version = \"1.4.0\"\n")
	r := newTestReleaser(t, engine, path, WithContextDir("."))

	tag, err := r.Build(t.Context())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if tag != "barskern/frost:1.4.0" {
		t.Errorf("Build() tag = %q, want %q", tag, "barskern/frost:1.4.0")
	}

	if len(engine.buildCalls) != 1 {
		t.Fatalf("engine received %d build calls, want 1", len(engine.buildCalls))
	}
	opts := engine.buildCalls[0]
	if opts.Tag != "barskern/frost:1.4.0" {
		t.Errorf("BuildOptions.Tag = %q, want %q", opts.Tag, "barskern/frost:1.4.0")
	}
	if opts.ContextDir != "." {
		t.Errorf("BuildOptions.ContextDir = %q, want %q", opts.ContextDir, ".")
	}
}

func TestReleaserBuildResolvesTagFresh(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	path := writeMetadataFile(t, "version = \"1.4.0\"\n")
	r := newTestReleaser(t, engine, path)

	first, err := r.Build(t.Context())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Unchanged metadata yields the same tag on repeat invocations
	second, err := r.Build(t.Context())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if first != second {
		t.Errorf("repeated Build() tags differ: %q vs %q", first, second)
	}

	// An edited metadata file takes effect without reconstructing the Releaser
	if err := os.WriteFile(path, []byte("version = \"1.5.0\"\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite metadata file: %v", err)
	}
	third, err := r.Build(t.Context())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if third != "barskern/frost:1.5.0" {
		t.Errorf("Build() tag after edit = %q, want %q", third, "barskern/frost:1.5.0")
	}
}

func TestReleaserBuildDockerfileOption(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	path := writeMetadataFile(t, "version = \"1.4.0\"\n")
	r := newTestReleaser(t, engine, path, WithDockerfile("Dockerfile.release"), WithNoCache(true))

	if _, err := r.Build(t.Context()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	opts := engine.buildCalls[0]
	if opts.Dockerfile != "Dockerfile.release" {
		t.Errorf("BuildOptions.Dockerfile = %q, want %q", opts.Dockerfile, "Dockerfile.release")
	}
	if !opts.NoCache {
		t.Error("BuildOptions.NoCache = false, want true")
	}
}

func TestReleaserBuildFailure(t *testing.T) {
	t.Parallel()

	exitErr := exitErrorWithCode(t, 2)
	engine := &fakeEngine{buildErr: fmt.Errorf("docker build: %w", exitErr)}
	path := writeMetadataFile(t, "version = \"1.4.0\"\n")
	r := newTestReleaser(t, engine, path)

	tag, err := r.Build(t.Context())
	if err == nil {
		t.Fatal("Build() error = nil, want BuildError")
	}
	if tag != "barskern/frost:1.4.0" {
		t.Errorf("Build() tag = %q, want the resolved tag even on failure", tag)
	}

	if !errors.Is(err, ErrBuildFailed) {
		t.Errorf("Build() error = %v, want ErrBuildFailed", err)
	}
	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("Build() error = %v, want *BuildError", err)
	}
	if buildErr.ExitCode != 2 {
		t.Errorf("BuildError.ExitCode = %d, want 2", buildErr.ExitCode)
	}
	if buildErr.Tag != "barskern/frost:1.4.0" {
		t.Errorf("BuildError.Tag = %q, want %q", buildErr.Tag, "barskern/frost:1.4.0")
	}
}

func TestReleaserBuildMetadataFailure(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	path := writeMetadataFile(t, "name = \"frost\"\n")
	r := newTestReleaser(t, engine, path)

	_, err := r.Build(t.Context())
	if !errors.Is(err, version.ErrVersionNotFound) {
		t.Errorf("Build() error = %v, want ErrVersionNotFound", err)
	}

	// Tag resolution failures must not reach the toolchain
	if len(engine.buildCalls) != 0 {
		t.Errorf("engine received %d build calls, want 0", len(engine.buildCalls))
	}
}

func TestReleaserPublish(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	path := writeMetadataFile(t, "version = \"1.4.0\"\n")
	r := newTestReleaser(t, engine, path)

	tag, err := r.Publish(t.Context())
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if tag != "barskern/frost:1.4.0" {
		t.Errorf("Publish() tag = %q, want %q", tag, "barskern/frost:1.4.0")
	}

	if len(engine.pushCalls) != 1 {
		t.Fatalf("engine received %d push calls, want 1", len(engine.pushCalls))
	}
	if engine.pushCalls[0].Tag != "barskern/frost:1.4.0" {
		t.Errorf("PushOptions.Tag = %q, want %q", engine.pushCalls[0].Tag, "barskern/frost:1.4.0")
	}
}

func TestReleaserPublishFailure(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{pushErr: errors.New("docker push: denied: requested access to the resource is denied")}
	path := writeMetadataFile(t, "version = \"1.4.0\"\n")
	r := newTestReleaser(t, engine, path)

	_, err := r.Publish(t.Context())
	if !errors.Is(err, ErrPublishFailed) {
		t.Fatalf("Publish() error = %v, want ErrPublishFailed", err)
	}

	var pubErr *PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("Publish() error = %v, want *PublishError", err)
	}
	// Without a process exit status the failure maps to exit code 1
	if pubErr.ExitCode != 1 {
		t.Errorf("PublishError.ExitCode = %d, want 1", pubErr.ExitCode)
	}
}

func TestReleaserEngineAccessor(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	path := writeMetadataFile(t, "version = \"1.4.0\"\n")
	r := newTestReleaser(t, engine, path)

	if r.Engine() != container.Engine(engine) {
		t.Error("Engine() did not return the injected engine")
	}
}
