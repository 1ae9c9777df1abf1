package domain

import (
	"context"
	"fmt"
	"log/slog"

	"odoscan.dev/pkg/odoscan/internal/adapter"
	"odoscan.dev/pkg/odoscan/internal/manifest"
	m "odoscan.dev/pkg/odoscan/internal/model"
)

// ManifestFilenames lists the manifest descriptors recognized during
// discovery, newest naming first. All four historical names are honored;
// the first one present in a directory wins.
var ManifestFilenames = []string{
	"__manifest__.py",
	"__odoo__.py",
	"__openerp__.py",
	"__terp__.py",
}

// DefaultMaxDepth bounds how many directory levels below the installation
// root are searched for modules.
const DefaultMaxDepth = 3

// Discovery locates addon modules under an installation root.
type Discovery interface {
	// Discover walks subdirectories of root down to maxDepth levels and
	// returns the modules found, keyed by directory name. A module found
	// later with an already-seen name silently replaces the earlier one.
	Discover(ctx context.Context, root m.Path, maxDepth int) (map[string]m.Module, error)
}

type discovery struct {
	fs adapter.ModuleFSAdapter
}

// NewDiscovery constructs a Discovery backed by the provided filesystem
// adapter.
func NewDiscovery(fs adapter.ModuleFSAdapter) Discovery {
	return &discovery{fs: fs}
}

func (d *discovery) Discover(ctx context.Context, root m.Path, maxDepth int) (map[string]m.Module, error) {
	modules := map[string]m.Module{}

	if err := d.walk(ctx, root, maxDepth, modules, true); err != nil {
		return nil, err
	}

	return modules, nil
}

// walk visits one directory level. depth is the remaining levels; 0 stops
// descent without error. A directory that carries a manifest is a module
// and a leaf: its subdirectories are never descended into.
func (d *discovery) walk(ctx context.Context, dir m.Path, depth int, modules map[string]m.Module, isRoot bool) error {
	if depth == 0 {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := d.fs.ReadDir(dir)
	if err != nil {
		// An unreadable root is fatal; an unreadable subtree is skipped
		// so one bad directory cannot abort the whole walk.
		if isRoot {
			return fmt.Errorf("read installation root %s: %w", dir, err)
		}

		slog.Error("Skipping unreadable directory", "dir", dir, "error", err)

		return nil
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		entryPath := d.fs.JoinPath(string(dir), entry.Name())

		manifestPath, found, err := d.findManifest(entryPath)
		if err != nil {
			slog.Error("Skipping directory with unreadable manifest", "dir", entryPath, "error", err)
			continue
		}

		if !found {
			if err := d.walk(ctx, entryPath, depth-1, modules, false); err != nil {
				return err
			}

			continue
		}

		module, err := d.loadModule(entry.Name(), entryPath, manifestPath)
		if err != nil {
			slog.Error("Error reading manifest for module", "module", entry.Name(), "error", err)
			continue
		}

		modules[module.Name] = module
	}

	return nil
}

func (d *discovery) findManifest(dir m.Path) (m.Path, bool, error) {
	for _, name := range ManifestFilenames {
		candidate := d.fs.JoinPath(string(dir), name)

		exists, err := d.fs.FileExists(candidate)
		if err != nil {
			return "", false, err
		}

		if exists {
			return candidate, true, nil
		}
	}

	return "", false, nil
}

func (d *discovery) loadModule(name string, dir, manifestPath m.Path) (m.Module, error) {
	content, err := d.fs.ReadFile(manifestPath)
	if err != nil {
		return m.Module{}, fmt.Errorf("read %s: %w", manifestPath, err)
	}

	dict, err := manifest.ParseDict(content)
	if err != nil {
		return m.Module{}, fmt.Errorf("parse %s: %w", manifestPath, err)
	}

	meta, err := manifest.ExtractMeta(dict)
	if err != nil {
		return m.Module{}, fmt.Errorf("validate %s: %w", manifestPath, err)
	}

	return m.Module{
		Name:        name,
		Dir:         dir,
		Manifest:    dict,
		Application: meta.Application,
		Depends:     meta.Depends,
		AutoInstall: meta.AutoInstall,
	}, nil
}
