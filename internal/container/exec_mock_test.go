// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"testing"
)

type (
	// execRecorder captures engine CLI invocations and fakes their outcome
	// through the helper-process pattern, so engine tests never need docker
	// or podman installed.
	execRecorder struct {
		calls    []execCall
		exitCode int
		stdout   string
		stderr   string
	}

	execCall struct {
		name string
		args []string
	}
)

// commandFunc returns an execCommandFunc that records each invocation and
// substitutes a re-exec of the test binary running TestHelperProcess.
func (r *execRecorder) commandFunc(t *testing.T) execCommandFunc {
	t.Helper()
	return func(_ context.Context, name string, args ...string) *exec.Cmd {
		r.calls = append(r.calls, execCall{name: name, args: args})

		argv := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.Command(os.Args[0], argv...) //nolint:noctx,gosec // re-exec of the test binary
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", r.exitCode),
			"GO_HELPER_STDOUT=" + r.stdout,
			"GO_HELPER_STDERR=" + r.stderr,
		}
		return cmd
	}
}

// last returns the most recent recorded invocation.
func (r *execRecorder) last(t *testing.T) execCall {
	t.Helper()
	if len(r.calls) == 0 {
		t.Fatal("no engine command was invoked")
	}
	return r.calls[len(r.calls)-1]
}

// mockEngine wires a CLIEngine of the given kind to the recorder. The binary
// path is pinned so the test does not depend on the CLI being installed.
func mockEngine(t *testing.T, kind EngineType, rec *execRecorder) *CLIEngine {
	t.Helper()
	return &CLIEngine{
		kind:        kind,
		binaryPath:  string(kind),
		execCommand: rec.commandFunc(t),
	}
}

// TestHelperProcess stands in for the engine CLI when re-executed by
// execRecorder. Under a normal test run it is a no-op.
func TestHelperProcess(_ *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	if s := os.Getenv("GO_HELPER_STDOUT"); s != "" {
		fmt.Fprint(os.Stdout, s)
	}
	if s := os.Getenv("GO_HELPER_STDERR"); s != "" {
		fmt.Fprint(os.Stderr, s)
	}

	code := 0
	if s := os.Getenv("GO_HELPER_EXIT_CODE"); s != "" {
		code, _ = strconv.Atoi(s)
	}
	os.Exit(code)
}
