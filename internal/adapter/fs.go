// Package adapter contains infrastructure adapters for the odoscan CLI.
package adapter

import (
	"os"
	"path/filepath"

	m "odoscan.dev/pkg/odoscan/internal/model"
)

// ModuleFSAdapter abstracts the filesystem operations discovery relies on,
// so the domain layer can be tested without touching the disk.
type ModuleFSAdapter interface {
	// ReadDir lists the entries of a directory.
	ReadDir(path m.Path) ([]os.DirEntry, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// DirExists reports whether path exists and is a directory.
	DirExists(path m.Path) (bool, error)

	// FileExists reports whether path exists and is a regular file.
	FileExists(path m.Path) (bool, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalModuleFSAdapter backs ModuleFSAdapter with the local filesystem.
type LocalModuleFSAdapter struct{}

// NewLocalModuleFSAdapter constructs a LocalModuleFSAdapter ready to be
// wired into the workflow.
func NewLocalModuleFSAdapter() *LocalModuleFSAdapter {
	return &LocalModuleFSAdapter{}
}

// ReadDir lists the entries of a directory.
func (a *LocalModuleFSAdapter) ReadDir(path m.Path) ([]os.DirEntry, error) {
	return os.ReadDir(string(path))
}

// ReadFile loads file contents from disk.
func (a *LocalModuleFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// DirExists reports whether path is an existing directory.
func (a *LocalModuleFSAdapter) DirExists(path m.Path) (bool, error) {
	info, err := os.Stat(string(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	return info.IsDir(), nil
}

// FileExists reports whether path is an existing regular file.
func (a *LocalModuleFSAdapter) FileExists(path m.Path) (bool, error) {
	info, err := os.Stat(string(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	return info.Mode().IsRegular(), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalModuleFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
