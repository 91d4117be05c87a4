// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"
)

func TestIsTransientError(t *testing.T) {
	t.Parallel()

	transient := map[string]error{
		"engine exit 125":         newExitError(t.Context(), 125),
		"wrapped engine exit 125": fmt.Errorf("docker build: %w", newExitError(t.Context(), 125)),
		"dns temporary failure":   errors.New("Temporary failure resolving 'deb.debian.org'"),
		"dns unresolvable host":   errors.New("Could not resolve host: registry-1.docker.io"),
		"connection timeout":      errors.New("connection timed out"),
		"connection refused":      errors.New("dial tcp: connection refused"),
		"connection reset":        errors.New("read tcp: connection reset by peer"),
		"tls handshake timeout":   errors.New("net/http: TLS handshake timeout"),
		"io timeout":              errors.New("dial tcp 10.0.0.1:443: i/o timeout"),
		"registry 500":            errors.New("received unexpected HTTP status: 500 Internal Server Error"),
		"registry 503":            errors.New("received unexpected HTTP status: 503 Service Unavailable"),
		"blob upload invalid":     errors.New("blob upload invalid"),
		"overlay mount race":      errors.New("error creating overlay mount to /var/lib/containers"),
		"layer mount failure":     errors.New("error mounting layer: invalid argument"),
	}
	for name, err := range transient {
		t.Run("retries "+name, func(t *testing.T) {
			t.Parallel()
			if !IsTransientError(err) {
				t.Errorf("IsTransientError(%v) = false, want true", err)
			}
		})
	}

	permanent := map[string]error{
		"nil":                  nil,
		"canceled":             context.Canceled,
		"deadline exceeded":    context.DeadlineExceeded,
		"wrapped cancellation": fmt.Errorf("docker build: %w", context.Canceled),
		"wrapped deadline":     fmt.Errorf("docker push: %w", context.DeadlineExceeded),
		"missing dockerfile":   errors.New("dockerfile not found"),
		"permission denied":    errors.New("permission denied"),
		"push access denied":   errors.New("denied: requested access to the resource is denied"),
		"bad credentials":      errors.New("unauthorized: authentication required"),
		"build exit 1":         newExitError(t.Context(), 1),
		"build exit 2":         newExitError(t.Context(), 2),
	}
	for name, err := range permanent {
		t.Run("does not retry "+name, func(t *testing.T) {
			t.Parallel()
			if IsTransientError(err) {
				t.Errorf("IsTransientError(%v) = true, want false", err)
			}
		})
	}
}

// newExitError produces a real *exec.ExitError carrying the given code by
// running a shell that exits with it.
func newExitError(ctx context.Context, code int) *exec.ExitError {
	cmd := exec.CommandContext(ctx, "sh", "-c", fmt.Sprintf("exit %d", code))
	err := cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return nil
	}
	return exitErr
}
