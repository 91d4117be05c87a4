// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWithOptions_Defaults(t *testing.T) {
	clearBoundEnv(t)

	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: filepath.Join(tmpDir, AppName),
	})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.ContainerEngine != defaults.ContainerEngine {
		t.Errorf("ContainerEngine = %s, want %s", cfg.ContainerEngine, defaults.ContainerEngine)
	}
	if cfg.MetNo.BaseURL != defaults.MetNo.BaseURL {
		t.Errorf("MetNo.BaseURL = %s, want %s", cfg.MetNo.BaseURL, defaults.MetNo.BaseURL)
	}
}

func TestLoadWithOptions_CustomFile(t *testing.T) {
	clearBoundEnv(t)

	tmpDir := t.TempDir()
	customPath := filepath.Join(tmpDir, "frost-custom.toml")
	content := `container_engine = "podman"

[metno]
sensor_id = "SN99999"
`
	if err := os.WriteFile(customPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write custom config: %v", err)
	}

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: customPath})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}

	if cfg.ContainerEngine != ContainerEnginePodman {
		t.Errorf("ContainerEngine = %s, want podman", cfg.ContainerEngine)
	}
	if cfg.MetNo.SensorID != "SN99999" {
		t.Errorf("MetNo.SensorID = %s, want SN99999", cfg.MetNo.SensorID)
	}
}

func TestLoadWithOptions_ReportsResolvedFile(t *testing.T) {
	clearBoundEnv(t)

	tmpDir := t.TempDir()
	customPath := filepath.Join(tmpDir, "frost-custom.toml")
	if err := os.WriteFile(customPath, []byte("container_engine = \"docker\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write custom config: %v", err)
	}

	_, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: customPath})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}

	if path != customPath {
		t.Errorf("resolved path = %s, want %s", path, customPath)
	}
}

func TestLoadWithOptions_EmptyPathWhenDefaultsOnly(t *testing.T) {
	clearBoundEnv(t)

	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	_, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: filepath.Join(tmpDir, AppName),
	})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}

	if path != "" {
		t.Errorf("resolved path = %q, want empty string when only defaults applied", path)
	}
}

func TestLoadWithOptions_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := loadWithOptions(ctx, LoadOptions{})
	if err == nil {
		t.Fatal("expected loadWithOptions() to fail with canceled context")
	}

	if !strings.Contains(err.Error(), "load config canceled") {
		t.Errorf("error should mention cancellation, got: %s", err)
	}
}
