// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/barskern/frost/internal/release"
)

// ExitError carries the process exit code a failed command should terminate
// with. Build and deploy propagate the container toolchain's exit status
// through it, so `frost build` exits exactly as `docker build` did; sync uses
// it to exit non-zero after a partially failed run.
type ExitError struct {
	Code release.ExitCode
	Err  error
}

// Error reports the wrapped failure, or the bare status when there is none.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap exposes the wrapped failure to errors.Is and errors.As.
func (e *ExitError) Unwrap() error {
	return e.Err
}
