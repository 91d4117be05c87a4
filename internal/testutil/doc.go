// SPDX-License-Identifier: MPL-2.0

// Package testutil holds small helpers shared by tests across packages.
// Unsetenv scrubs environment variables that would skew configuration
// loading, and ContainerSemaphore gates container-backed integration tests
// process-wide.
package testutil
