// SPDX-License-Identifier: MPL-2.0

// Integration tests for the image release path. These use testcontainers-go
// to run a disposable registry and require Docker or Podman to be available.
package container

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/barskern/frost/internal/testutil"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// checkTestcontainersAvailable safely checks if testcontainers can be used.
// Returns true if containers are available, false otherwise.
func checkTestcontainersAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	return true
}

// TestPush_Integration builds a minimal image and pushes it to a local
// disposable registry, then verifies the local copy can be removed.
func TestPush_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	engine, err := AutoDetectEngine()
	if err != nil {
		t.Skipf("skipping push integration test: no container engine available: %v", err)
	}

	if !checkTestcontainersAvailable() {
		t.Skip("skipping push integration test: testcontainers provider not available")
	}

	// Limit concurrent container operations across the test binary.
	sem := testutil.ContainerSemaphore()
	sem <- struct{}{}
	defer func() { <-sem }()

	ctx := context.Background()

	registry, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "registry:2",
			ExposedPorts: []string{"5000/tcp"},
			WaitingFor:   wait.ForListeningPort("5000/tcp"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("skipping push integration test: cannot start registry container: %v", err)
	}
	t.Cleanup(func() {
		if err := registry.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate registry container: %v", err)
		}
	})

	port, err := registry.MappedPort(ctx, "5000")
	if err != nil {
		t.Fatalf("failed to get registry port: %v", err)
	}

	// Docker treats localhost registries as insecure, so no TLS setup is needed.
	tag := ImageTag(fmt.Sprintf("localhost:%s/frost-push-test:it", port.Port()))

	contextDir := t.TempDir()
	dockerfile := "FROM scratch\nCOPY hello.txt /hello.txt\n"
	if err := os.WriteFile(filepath.Join(contextDir, "Dockerfile"), []byte(dockerfile), 0644); err != nil {
		t.Fatalf("failed to write Dockerfile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(contextDir, "hello.txt"), []byte("hello\n"), 0644); err != nil {
		t.Fatalf("failed to write build context file: %v", err)
	}

	var stdout, stderr bytes.Buffer
	err = engine.Build(ctx, BuildOptions{
		ContextDir: contextDir,
		Tag:        tag,
		Stdout:     &stdout,
		Stderr:     &stderr,
	})
	if err != nil {
		t.Fatalf("Build() error = %v, stderr: %s", err, stderr.String())
	}
	t.Cleanup(func() {
		if err := engine.RemoveImage(context.Background(), tag, true); err != nil {
			t.Logf("Warning: failed to remove test image: %v", err)
		}
	})

	exists, err := engine.ImageExists(ctx, tag)
	if err != nil {
		t.Fatalf("ImageExists() error = %v", err)
	}
	if !exists {
		t.Fatalf("ImageExists(%s) = false after build, want true", tag)
	}

	stdout.Reset()
	stderr.Reset()
	err = engine.Push(ctx, PushOptions{
		Tag:    tag,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("Push() error = %v, stderr: %s", err, stderr.String())
	}
}
