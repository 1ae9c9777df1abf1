// Package model defines the data structures shared by the odoscan pipeline.
package model

// Path represents a file system path.
type Path string

// Module describes a single addon discovered under the installation root.
// It is created once during discovery and never mutated afterwards.
type Module struct {
	// Name is the directory name and the unique key for the module.
	Name string
	// Dir is the filesystem path of the module directory.
	Dir Path
	// Manifest holds the raw parsed manifest content. Keys the scanner
	// does not interpret are preserved here verbatim.
	Manifest map[string]any
	// Application reports whether the manifest declares the module as a
	// standalone application.
	Application bool
	// Depends lists the module names this module depends on, in manifest order.
	Depends []string
	// AutoInstall reports whether the module installs automatically once
	// its dependencies are present.
	AutoInstall bool
}

// ModuleSummary is the reduced module view included in the final report.
type ModuleSummary struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Application bool     `json:"application"`
	Depends     []string `json:"depends"`
	AutoInstall bool     `json:"auto_install"`
}

// Summary strips the raw manifest from a module for report serialization.
func (m Module) Summary() ModuleSummary {
	depends := m.Depends
	if depends == nil {
		depends = []string{}
	}

	return ModuleSummary{
		Name:        m.Name,
		Path:        string(m.Dir),
		Application: m.Application,
		Depends:     depends,
		AutoInstall: m.AutoInstall,
	}
}
