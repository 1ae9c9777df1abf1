package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"odoscan.dev/pkg/odoscan/internal/adapter"
	m "odoscan.dev/pkg/odoscan/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestDiscovery() Discovery {
	return NewDiscovery(adapter.NewLocalModuleFSAdapter())
}

func TestDiscover(t *testing.T) {
	t.Run("one entry per manifest-bearing directory, keyed by name", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "mod_a", "__manifest__.py"), `{'application': True, 'depends': ['base']}`)
		writeFile(t, filepath.Join(root, "addons", "mod_b", "__manifest__.py"), `{'auto_install': True}`)

		modules, err := newTestDiscovery().Discover(context.Background(), m.Path(root), DefaultMaxDepth)
		if err != nil {
			t.Fatalf("Discover error: %v", err)
		}

		if len(modules) != 2 {
			t.Fatalf("expected 2 modules, got %d", len(modules))
		}

		modA, ok := modules["mod_a"]
		if !ok {
			t.Fatalf("expected mod_a in result")
		}

		if !modA.Application {
			t.Errorf("expected mod_a.Application true")
		}

		if len(modA.Depends) != 1 || modA.Depends[0] != "base" {
			t.Errorf("expected mod_a depends [base], got %v", modA.Depends)
		}

		if modB := modules["mod_b"]; !modB.AutoInstall {
			t.Errorf("expected mod_b.AutoInstall true")
		}
	})

	t.Run("module directories are leaves", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "outer", "__manifest__.py"), `{}`)
		writeFile(t, filepath.Join(root, "outer", "inner", "__manifest__.py"), `{}`)

		modules, err := newTestDiscovery().Discover(context.Background(), m.Path(root), DefaultMaxDepth)
		if err != nil {
			t.Fatalf("Discover error: %v", err)
		}

		if len(modules) != 1 {
			t.Fatalf("expected only the outer module, got %d modules", len(modules))
		}

		if _, ok := modules["outer"]; !ok {
			t.Errorf("expected outer in result")
		}
	})

	t.Run("depth limit bounds the walk", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a", "b", "c", "deep", "__manifest__.py"), `{}`)

		modules, err := newTestDiscovery().Discover(context.Background(), m.Path(root), 3)
		if err != nil {
			t.Fatalf("Discover error: %v", err)
		}

		if len(modules) != 0 {
			t.Fatalf("expected no modules within depth 3, got %d", len(modules))
		}

		modules, err = newTestDiscovery().Discover(context.Background(), m.Path(root), 4)
		if err != nil {
			t.Fatalf("Discover error: %v", err)
		}

		if _, ok := modules["deep"]; !ok {
			t.Errorf("expected deep to be found with depth 4")
		}
	})

	t.Run("malformed manifest skips the module, not the walk", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "broken", "__manifest__.py"), `{'name': open('x')}`)
		writeFile(t, filepath.Join(root, "good", "__manifest__.py"), `{'name': 'Good'}`)

		modules, err := newTestDiscovery().Discover(context.Background(), m.Path(root), DefaultMaxDepth)
		if err != nil {
			t.Fatalf("Discover error: %v", err)
		}

		if len(modules) != 1 {
			t.Fatalf("expected 1 module, got %d", len(modules))
		}

		if _, ok := modules["good"]; !ok {
			t.Errorf("expected good in result")
		}
	})

	t.Run("manifest key with wrong type skips the module", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "typed", "__manifest__.py"), `{'depends': 'base'}`)

		modules, err := newTestDiscovery().Discover(context.Background(), m.Path(root), DefaultMaxDepth)
		if err != nil {
			t.Fatalf("Discover error: %v", err)
		}

		if len(modules) != 0 {
			t.Fatalf("expected no modules, got %d", len(modules))
		}
	})

	t.Run("all historical manifest names are honored", func(t *testing.T) {
		root := t.TempDir()
		for i, name := range ManifestFilenames {
			dir := filepath.Join(root, "mod_"+string(rune('a'+i)))
			writeFile(t, filepath.Join(dir, name), `{}`)
		}

		modules, err := newTestDiscovery().Discover(context.Background(), m.Path(root), DefaultMaxDepth)
		if err != nil {
			t.Fatalf("Discover error: %v", err)
		}

		if len(modules) != len(ManifestFilenames) {
			t.Fatalf("expected %d modules, got %d", len(ManifestFilenames), len(modules))
		}
	})

	t.Run("duplicate names collapse to one entry", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "first", "sale", "__manifest__.py"), `{}`)
		writeFile(t, filepath.Join(root, "second", "sale", "__manifest__.py"), `{}`)

		modules, err := newTestDiscovery().Discover(context.Background(), m.Path(root), DefaultMaxDepth)
		if err != nil {
			t.Fatalf("Discover error: %v", err)
		}

		if len(modules) != 1 {
			t.Fatalf("expected duplicate names to collapse, got %d modules", len(modules))
		}
	})

	t.Run("unknown keys are preserved in the raw manifest", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "mod", "__manifest__.py"), `{'category': 'Sales', 'sequence': 10}`)

		modules, err := newTestDiscovery().Discover(context.Background(), m.Path(root), DefaultMaxDepth)
		if err != nil {
			t.Fatalf("Discover error: %v", err)
		}

		manifest := modules["mod"].Manifest
		if manifest["category"] != "Sales" {
			t.Errorf("expected category preserved, got %v", manifest["category"])
		}

		if manifest["sequence"] != 10 {
			t.Errorf("expected sequence preserved, got %v", manifest["sequence"])
		}
	})

	t.Run("nonexistent root returns an error", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "no_such_dir")

		_, err := newTestDiscovery().Discover(context.Background(), m.Path(root), DefaultMaxDepth)
		if err == nil {
			t.Fatalf("expected error for nonexistent root")
		}
	})
}
