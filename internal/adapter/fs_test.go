package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "odoscan.dev/pkg/odoscan/internal/model"
)

func TestLocalModuleFSAdapter_ReadDir(t *testing.T) {
	adapter := NewLocalModuleFSAdapter()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "__manifest__.py"), "{}\n")
	mustMkdir(t, filepath.Join(root, "tests"))

	entries, err := adapter.ReadDir(m.Path(root))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("ReadDir() returned %d entries, want 2", len(entries))
	}

	t.Run("missing directory errors", func(t *testing.T) {
		if _, err := adapter.ReadDir(m.Path(filepath.Join(root, "missing"))); err == nil {
			t.Fatalf("ReadDir() expected error for missing directory")
		}
	})
}

func TestLocalModuleFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalModuleFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "__manifest__.py")
	content := "{'name': 'sale'}\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}
}

func TestLocalModuleFSAdapter_DirExists(t *testing.T) {
	adapter := NewLocalModuleFSAdapter()

	root := t.TempDir()
	filePath := filepath.Join(root, "file.py")
	writeTestFile(t, filePath, "")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing directory", root, true},
		{"regular file", filePath, false},
		{"missing path", filepath.Join(root, "missing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := adapter.DirExists(m.Path(tt.path))
			if err != nil {
				t.Fatalf("DirExists() error = %v", err)
			}

			if got != tt.want {
				t.Fatalf("DirExists(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestLocalModuleFSAdapter_FileExists(t *testing.T) {
	adapter := NewLocalModuleFSAdapter()

	root := t.TempDir()
	filePath := filepath.Join(root, "file.py")
	writeTestFile(t, filePath, "")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular file", filePath, true},
		{"directory", root, false},
		{"missing path", filepath.Join(root, "missing.py"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := adapter.FileExists(m.Path(tt.path))
			if err != nil {
				t.Fatalf("FileExists() error = %v", err)
			}

			if got != tt.want {
				t.Fatalf("FileExists(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestLocalModuleFSAdapter_JoinPath(t *testing.T) {
	adapter := NewLocalModuleFSAdapter()

	joined := adapter.JoinPath("/opt", "odoo", "addons", "sale")
	if string(joined) != filepath.Join("/opt", "odoo", "addons", "sale") {
		t.Fatalf("JoinPath() = %s, want %s", joined, filepath.Join("/opt", "odoo", "addons", "sale"))
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()

	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}
