// SPDX-License-Identifier: MPL-2.0

package release

import (
	"errors"
	"os/exec"
	"strconv"
)

// ExitCode is the status a container toolchain process exited with. The CLI
// terminates with the same status, so schedulers and scripts observe the
// toolchain's result unchanged.
type ExitCode int

// String returns the decimal form.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// exitCodeFrom extracts the process exit status from an error chain. It
// returns 1 when the chain carries no *exec.ExitError, since the toolchain
// invocation failed without ever producing a status.
func exitCodeFrom(err error) ExitCode {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ExitCode(exitErr.ExitCode())
	}
	return 1
}
