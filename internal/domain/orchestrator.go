package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"odoscan.dev/pkg/odoscan/internal/adapter"
	"odoscan.dev/pkg/odoscan/internal/controller"
	m "odoscan.dev/pkg/odoscan/internal/model"
)

// testsDirName is the conventional per-module test directory.
const testsDirName = "tests"

// Orchestrator runs module test suites on a bounded worker pool. Every
// submitted module produces exactly one test_result event: a worker that
// breaks (runner error, timeout, panic) is recorded as a degraded result,
// never dropped. RunTests returns only after all workers finished, so the
// report is always complete.
type Orchestrator interface {
	RunTests(ctx context.Context, modules map[string]m.Module, collector *Collector, threads int, timeout time.Duration) error
}

type orchestrator struct {
	fs     adapter.ModuleFSAdapter
	runner adapter.TestRunnerAdapter
	ui     controller.UI
}

// NewOrchestrator constructs an Orchestrator backed by the provided
// filesystem and test runner adapters.
func NewOrchestrator(fs adapter.ModuleFSAdapter, runner adapter.TestRunnerAdapter, ui controller.UI) Orchestrator {
	return &orchestrator{fs: fs, runner: runner, ui: ui}
}

func (o *orchestrator) RunTests(ctx context.Context, modules map[string]m.Module, collector *Collector, threads int, timeout time.Duration) error {
	if threads < 1 {
		threads = 1
	}

	// Submit in name order so runs are reproducible.
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}

	sort.Strings(names)

	var group errgroup.Group
	group.SetLimit(threads)

	for _, name := range names {
		module := modules[name]

		testsDir := o.fs.JoinPath(string(module.Dir), testsDirName)

		hasTests, err := o.fs.DirExists(testsDir)
		if err != nil {
			slog.Warn("Cannot check tests directory", "module", module.Name, "error", err)
			continue
		}

		if !hasTests {
			continue
		}

		group.Go(func() error {
			o.ui.TestStarted(ctx, module.Name)

			result := o.runOne(ctx, module, testsDir, timeout)

			collector.AddTestResult(result)
			o.ui.TestCompleted(ctx, result)

			return nil
		})
	}

	// Join point: the report must not be generated while workers are
	// still producing results.
	if err := group.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

// runOne executes a single module's suite under the per-module timeout.
// It never lets a failure escape the worker: errors and panics both come
// back as degraded test results.
func (o *orchestrator) runOne(ctx context.Context, module m.Module, testsDir m.Path, timeout time.Duration) (result m.TestResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Test worker panicked", "module", module.Name, "panic", r)

			result = m.DegradedTestResult(module.Name, fmt.Sprintf("worker panic: %v", r))
		}
	}()

	runCtx := ctx

	if timeout > 0 {
		var cancel context.CancelFunc

		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	slog.Info("Running tests for module", "module", module.Name)

	summary, output, err := o.runner.RunSuite(runCtx, module.Dir, testsDir)
	if err != nil {
		slog.Warn("Test run failed", "module", module.Name, "error", err)
		slog.Debug("Test runner output", "module", module.Name, "output", output)

		return m.DegradedTestResult(module.Name, err.Error())
	}

	slog.Info("Tests finished",
		"module", module.Name,
		"tests_run", summary.TestsRun,
		"errors", summary.Errors,
		"failures", summary.Failures,
	)

	return m.TestResult{Module: module.Name, Summary: summary, Status: m.TestOK}
}
