// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

// execCommandFunc creates the exec.Cmd for an engine invocation. Tests swap
// it out to capture the argv instead of spawning the real CLI.
type execCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// CLIEngine implements Engine by shelling out to the docker or podman binary.
// The two CLIs accept identical build and push arguments; the few places they
// differ (version query, image existence check) branch on kind.
type CLIEngine struct {
	kind        EngineType
	binaryPath  string
	execCommand execCommandFunc
}

// newCLIEngine resolves the engine binary on PATH. A missing binary is not an
// error at this point; it surfaces as Available() == false.
func newCLIEngine(kind EngineType) *CLIEngine {
	path, _ := exec.LookPath(string(kind))
	return &CLIEngine{
		kind:        kind,
		binaryPath:  path,
		execCommand: exec.CommandContext,
	}
}

// Name reports which CLI backs this engine.
func (e *CLIEngine) Name() string { return string(e.kind) }

// Available reports whether the engine binary exists and answers a version
// query. For Docker that also proves the daemon is reachable, because the
// query asks for the server version.
func (e *CLIEngine) Available() bool {
	if e.binaryPath == "" {
		return false
	}
	return e.command(context.Background(), e.versionArgs()...).Run() == nil
}

// Version returns the engine version string.
func (e *CLIEngine) Version(ctx context.Context) (string, error) {
	cmd := e.command(ctx, e.versionArgs()...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s version: %w", e.kind, err)
	}
	return strings.TrimSpace(out.String()), nil
}

// versionArgs builds the version query. Docker reports the daemon version;
// Podman is daemonless and reports the client version.
func (e *CLIEngine) versionArgs() []string {
	if e.kind == EngineTypePodman {
		return []string{"version", "--format", "{{.Version}}"}
	}
	return []string{"version", "--format", "{{.Server.Version}}"}
}

// Build runs "<engine> build" with the toolchain's output streamed to the
// writers in opts. On a non-zero exit the returned error wraps the underlying
// *exec.ExitError so callers can recover the exit code.
func (e *CLIEngine) Build(ctx context.Context, opts BuildOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	cmd := e.command(ctx, buildArgs(opts)...)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s build: %w", e.kind, err)
	}
	return nil
}

// buildArgs assembles the argv for a build. Build args are emitted in sorted
// key order so repeated runs produce an identical command line.
func buildArgs(opts BuildOptions) []string {
	args := []string{"build"}

	if opts.Dockerfile != "" {
		path := opts.Dockerfile
		if !filepath.IsAbs(path) && opts.ContextDir != "" {
			path = filepath.Join(opts.ContextDir, path)
		}
		args = append(args, "-f", path)
	}

	args = append(args, "-t", string(opts.Tag))

	if opts.NoCache {
		args = append(args, "--no-cache")
	}

	for _, k := range slices.Sorted(maps.Keys(opts.BuildArgs)) {
		args = append(args, "--build-arg", k+"="+opts.BuildArgs[k])
	}

	return append(args, opts.ContextDir)
}

// Push runs "<engine> push". On a non-zero exit the returned error wraps the
// underlying *exec.ExitError so callers can recover the exit code.
func (e *CLIEngine) Push(ctx context.Context, opts PushOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	cmd := e.command(ctx, "push", string(opts.Tag))
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s push: %w", e.kind, err)
	}
	return nil
}

// ImageExists reports whether the tag resolves to a local image. Docker has
// no dedicated existence subcommand, so a failed inspect means "not found".
func (e *CLIEngine) ImageExists(ctx context.Context, image ImageTag) (bool, error) {
	args := []string{"image", "exists", string(image)}
	if e.kind == EngineTypeDocker {
		args = []string{"image", "inspect", string(image)}
	}
	return e.command(ctx, args...).Run() == nil, nil
}

// RemoveImage deletes a local image, passing -f when force is set.
func (e *CLIEngine) RemoveImage(ctx context.Context, image ImageTag, force bool) error {
	args := []string{"rmi"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, string(image))

	if err := e.command(ctx, args...).Run(); err != nil {
		return fmt.Errorf("%s rmi: %w", e.kind, err)
	}
	return nil
}

func (e *CLIEngine) command(ctx context.Context, args ...string) *exec.Cmd {
	return e.execCommand(ctx, e.binaryPath, args...)
}
