package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"odoscan.dev/pkg/odoscan/internal/adapter"
	"odoscan.dev/pkg/odoscan/internal/controller"
	m "odoscan.dev/pkg/odoscan/internal/model"
)

// ScanArgs carries the parameters for a full scan.
type ScanArgs struct {
	Root        m.Path
	LogPath     m.Path
	Output      m.Path
	Depth       int
	Threads     int
	TestTimeout time.Duration
	SkipLog     bool
	SkipTests   bool
}

// Workflow is the top-level entry point behind the CLI commands.
type Workflow interface {
	// Scan runs the full pipeline: discovery, log analysis, test
	// execution, report generation.
	Scan(ctx context.Context, args ScanArgs) error

	// Modules runs discovery only and returns the inventory sorted by
	// name.
	Modules(ctx context.Context, root m.Path, depth int) ([]m.ModuleSummary, error)

	// ErrorTally runs log analysis only and returns the error-frequency
	// table.
	ErrorTally(ctx context.Context, logPath m.Path) (map[string]int, error)
}

type workflow struct {
	adapter.ReportStore
	controller.UI
	Discovery
	LogAnalyzer
	Orchestrator
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	discovery Discovery,
	analyzer LogAnalyzer,
	orchestrator Orchestrator,
	store adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		ReportStore:  store,
		UI:           ui,
		Discovery:    discovery,
		LogAnalyzer:  analyzer,
		Orchestrator: orchestrator,
	}
}

func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	slog.Info("Starting scan", "root", args.Root, "log", args.LogPath, "output", args.Output)

	if err := w.Start(ctx); err != nil {
		return err
	}

	modules, err := w.Discover(ctx, args.Root, args.Depth)
	if err != nil {
		w.Close(ctx)
		slog.Error("Discovery failed", "error", err)

		return fmt.Errorf("discover modules: %w", err)
	}

	slog.Info("Discovery finished", "modules", len(modules))
	w.DisplayModuleCount(ctx, len(modules))

	collector := NewCollector()

	if !args.SkipLog {
		if err := w.Analyze(ctx, args.LogPath, collector); err != nil {
			w.Close(ctx)
			slog.Error("Log analysis failed", "error", err)

			return fmt.Errorf("analyze log: %w", err)
		}
	}

	if !args.SkipTests {
		w.DisplayConcurrencyInfo(ctx, args.Threads)

		if err := w.RunTests(ctx, modules, collector, args.Threads, args.TestTimeout); err != nil {
			w.Close(ctx)

			return fmt.Errorf("run tests: %w", err)
		}
	}

	// All workers joined; the dataset is complete.
	w.Close(ctx)

	report := m.NewReport(modules, collector.ErrorPatterns(), collector.Dataset())

	if err := w.Save(args.Output, report); err != nil {
		slog.Error("Report write failed", "error", err)

		return err
	}

	slog.Info("Report generated", "path", args.Output)

	return w.DisplayScanSummary(ctx, report, args.Output)
}

func (w *workflow) Modules(ctx context.Context, root m.Path, depth int) ([]m.ModuleSummary, error) {
	modules, err := w.Discover(ctx, root, depth)
	if err != nil {
		return nil, fmt.Errorf("discover modules: %w", err)
	}

	return m.NewReport(modules, nil, nil).ModulesFound, nil
}

func (w *workflow) ErrorTally(ctx context.Context, logPath m.Path) (map[string]int, error) {
	collector := NewCollector()

	if err := w.Analyze(ctx, logPath, collector); err != nil {
		return nil, fmt.Errorf("analyze log: %w", err)
	}

	return collector.ErrorPatterns(), nil
}
