// Package controller provides output adapters for displaying scan progress
// and results.
package controller

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "odoscan.dev/pkg/odoscan/internal/model"
)

// Format selects how an inventory listing is rendered.
type Format string

// Available Format values.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatTable, FormatJSON, FormatYAML:
		return Format(value), nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, json or yaml)", value)
	}
}

// UI defines the interface for displaying scan progress and results.
// Implementations can use different output methods (simple text, TUI).
type UI interface {
	Start(ctx context.Context) error
	Close(ctx context.Context)
	DisplayModuleCount(ctx context.Context, count int)
	DisplayConcurrencyInfo(ctx context.Context, threads int)
	TestStarted(ctx context.Context, module string)
	TestCompleted(ctx context.Context, result m.TestResult)
	DisplayScanSummary(ctx context.Context, report m.Report, output m.Path) error
	DisplayModules(ctx context.Context, modules []m.ModuleSummary, format Format) error
	DisplayErrorPatterns(ctx context.Context, patterns map[string]int) error
}

// NewUI selects the interactive TUI when the output is a terminal and the
// plain printer otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	simple := NewSimpleUI(cmd)

	if isTTY {
		return NewTUI(simple)
	}

	return simple
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
