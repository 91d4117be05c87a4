// SPDX-License-Identifier: MPL-2.0

// Package container shells out to Docker or Podman for the image release
// operations: build, push, existence checks, and removal.
//
// CLIEngine backs the Engine interface for both CLIs, which accept the same
// build and push arguments and differ only in how the version and image
// existence are queried. NewEngine honors a configured preference and falls
// back to the other CLI; AutoDetectEngine probes Docker first.
//
// Build and Push stream the toolchain's output and, on failure, return an
// error wrapping the *exec.ExitError so callers can propagate the exit code.
// IsTransientError classifies failures worth retrying, such as registry
// timeouts and overlay mount races.
package container
