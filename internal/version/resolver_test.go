// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeMetadata writes content to a temp metadata file and returns its path.
func writeMetadata(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frost.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write metadata file: %v", err)
	}
	return path
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "simple declaration",
			content: `version = "1.4.0"`,
			want:    "1.4.0",
		},
		{
			name: "declaration below other keys",
			content: `name = "frost"
description = "weather sync"
version = "0.3.1"
`,
			want: "0.3.1",
		},
		{
			name:    "leading whitespace",
			content: "\t  version = \"2.0.0\"\n",
			want:    "2.0.0",
		},
		{
			name:    "no spaces around equals",
			content: `version="7.7.7"`,
			want:    "7.7.7",
		},
		{
			name: "first match wins",
			content: `version = "1.0.0"
version = "2.0.0"
`,
			want: "1.0.0",
		},
		{
			name:    "trailing inline comment",
			content: `version = "1.4.0" # release candidate`,
			want:    "1.4.0",
		},
		{
			name: "similar keys are skipped",
			content: `versions = "9.9.9"
api_version = "3"
version = "1.2.3"
`,
			want: "1.2.3",
		},
		{
			name:    "non-semver value is still returned",
			content: `version = "latest"`,
			want:    "latest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeMetadata(t, tt.content)
			got, err := Resolve(path)
			if err != nil {
				t.Fatalf("Resolve() error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: ""},
		{name: "no version key", content: "name = \"frost\"\nauthors = [\"barskern\"]\n"},
		{name: "key without assignment", content: "version\n"},
		{name: "similar key only", content: `api_version = "3"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeMetadata(t, tt.content)
			_, err := Resolve(path)
			if !errors.Is(err, ErrVersionNotFound) {
				t.Fatalf("Resolve() error = %v, want ErrVersionNotFound", err)
			}

			var nfe *NotFoundError
			if !errors.As(err, &nfe) {
				t.Fatalf("Resolve() error type = %T, want *NotFoundError", err)
			}
			if nfe.Path != path {
				t.Errorf("NotFoundError.Path = %q, want %q", nfe.Path, path)
			}
		})
	}
}

func TestResolveMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantNum int
	}{
		{name: "unquoted value", content: `version = 1.4.0`, wantNum: 1},
		{name: "empty quotes", content: `version = ""`, wantNum: 1},
		{name: "missing closing quote", content: `version = "1.4.0`, wantNum: 1},
		{name: "empty value", content: `version =`, wantNum: 1},
		{name: "single quotes", content: `version = '1.4.0'`, wantNum: 1},
		{
			name: "malformed line shadows later valid line",
			content: `name = "frost"
version = oops
version = "1.0.0"
`,
			wantNum: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeMetadata(t, tt.content)
			_, err := Resolve(path)
			if !errors.Is(err, ErrVersionMalformed) {
				t.Fatalf("Resolve() error = %v, want ErrVersionMalformed", err)
			}

			var me *MalformedError
			if !errors.As(err, &me) {
				t.Fatalf("Resolve() error type = %T, want *MalformedError", err)
			}
			if me.Num != tt.wantNum {
				t.Errorf("MalformedError.Num = %d, want %d", me.Num, tt.wantNum)
			}
		})
	}
}

func TestResolveMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Resolve(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatal("Resolve() error = nil, want read error")
	}
	if errors.Is(err, ErrVersionNotFound) || errors.Is(err, ErrVersionMalformed) {
		t.Errorf("Resolve() error = %v, want plain read error", err)
	}
}
