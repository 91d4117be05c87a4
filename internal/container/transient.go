// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// transientNetworkMarkers are substrings of network failures seen while
// pulling base layers or talking to a registry.
var transientNetworkMarkers = []string{
	"Temporary failure resolving",
	"Could not resolve host",
	"connection timed out",
	"connection refused",
	"connection reset by peer",
	"TLS handshake timeout",
	"i/o timeout",
}

// IsTransientError reports whether err looks like a passing failure that a
// retry of the same build or push could clear: network and registry hiccups,
// storage driver races, or a generic engine failure (exit code 125).
//
// Cancellation and deadline errors are never transient; the caller asked for
// the stop.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Exit 125 means the engine itself failed before running the command,
	// frequently a storage or cgroup race on rootless setups.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 125 {
		return true
	}

	msg := err.Error()

	for _, marker := range transientNetworkMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	// Registry-side push failures. Auth rejections are left out: re-pushing
	// with the same credentials cannot succeed.
	if strings.Contains(msg, "received unexpected HTTP status: 5") ||
		strings.Contains(msg, "blob upload invalid") {
		return true
	}

	// Overlay mount races on rootless Podman.
	if strings.Contains(msg, "error creating overlay mount") ||
		strings.Contains(msg, "error mounting layer") {
		return true
	}

	return false
}
