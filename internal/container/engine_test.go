// SPDX-License-Identifier: MPL-2.0

package container

import (
	"errors"
	"testing"
)

func TestEngineNotAvailableError(t *testing.T) {
	t.Parallel()

	err := &EngineNotAvailableError{Tried: []EngineType{EngineTypeDocker, EngineTypePodman}}

	want := "no container engine available, tried: docker, podman"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrNoEngineAvailable) {
		t.Error("errors.Is(err, ErrNoEngineAvailable) = false, want true")
	}
}

func TestNewEngine_UnknownType(t *testing.T) {
	t.Parallel()

	if _, err := NewEngine("containerd"); err == nil {
		t.Error("NewEngine(containerd) error = nil, want unknown type error")
	}
}

// NewEngine falls back to the other CLI when the preferred one is missing, so
// on any host the outcome is either a working engine or a detection error.
func TestNewEngine_FallsBackOrFails(t *testing.T) {
	t.Parallel()

	for _, preferred := range []EngineType{EngineTypeDocker, EngineTypePodman} {
		t.Run(string(preferred), func(t *testing.T) {
			t.Parallel()

			engine, err := NewEngine(preferred)
			if err != nil {
				var notAvailable *EngineNotAvailableError
				if !errors.As(err, &notAvailable) {
					t.Errorf("NewEngine() error = %T, want *EngineNotAvailableError", err)
				}
				return
			}
			if name := engine.Name(); name != "docker" && name != "podman" {
				t.Errorf("Name() = %q, want docker or podman", name)
			}
		})
	}
}

func TestAutoDetectEngine(t *testing.T) {
	t.Parallel()

	engine, err := AutoDetectEngine()
	if err != nil {
		var notAvailable *EngineNotAvailableError
		if !errors.As(err, &notAvailable) {
			t.Errorf("AutoDetectEngine() error = %T, want *EngineNotAvailableError", err)
		}
		return
	}
	if name := engine.Name(); name != "docker" && name != "podman" {
		t.Errorf("Name() = %q, want docker or podman", name)
	}
}

// Exercises the real CLI when one is installed; skipped otherwise.
func TestCLIEngine_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	for _, kind := range []EngineType{EngineTypeDocker, EngineTypePodman} {
		t.Run(string(kind), func(t *testing.T) {
			engine := newCLIEngine(kind)
			if !engine.Available() {
				t.Skipf("%s is not available", kind)
			}

			version, err := engine.Version(t.Context())
			if err != nil {
				t.Fatalf("Version() error = %v", err)
			}
			if version == "" {
				t.Error("Version() = empty string")
			}
			t.Logf("%s version: %s", kind, version)

			exists, err := engine.ImageExists(t.Context(), "frost-no-such-image:none")
			if err != nil {
				t.Fatalf("ImageExists() error = %v", err)
			}
			if exists {
				t.Error("ImageExists() = true for a nonexistent image")
			}
		})
	}
}
