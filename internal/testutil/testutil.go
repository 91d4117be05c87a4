// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"testing"
)

// Unsetenv removes key from the environment for the duration of the test and
// restores the previous value (if any) during cleanup. Tests exercising
// environment binding use it so values leaking in from the developer's shell
// cannot skew results.
func Unsetenv(t testing.TB, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			if err := os.Setenv(key, prev); err != nil {
				t.Errorf("restore %s: %v", key, err)
			}
		}
	})
}

// MkdirAll creates dir and any missing parents, failing the test on error.
func MkdirAll(t testing.TB, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}
