package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"

	m "odoscan.dev/pkg/odoscan/internal/model"
)

// TestRunnerAdapter abstracts execution of a module's unit test suite.
type TestRunnerAdapter interface {
	// RunSuite discovers and runs the tests under testsDir, rooted at
	// moduleDir. It returns the aggregate counts the test framework
	// reported plus the combined stdout/stderr output. A non-nil error
	// means the run itself broke, not that tests failed.
	RunSuite(ctx context.Context, moduleDir, testsDir m.Path) (m.TestSummary, string, error)
}

// DefaultPythonBinary is the interpreter used to drive unittest discovery.
const DefaultPythonBinary = "python3"

// LocalTestRunnerAdapter runs module test suites through the Python
// unittest discovery convention via os/exec.
type LocalTestRunnerAdapter struct {
	python string
}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter using the
// default interpreter.
func NewLocalTestRunnerAdapter() *LocalTestRunnerAdapter {
	return &LocalTestRunnerAdapter{python: DefaultPythonBinary}
}

// NewTestRunnerAdapterWithPython constructs an adapter driving a specific
// interpreter binary. Used by tests to substitute a stub.
func NewTestRunnerAdapterWithPython(python string) *LocalTestRunnerAdapter {
	return &LocalTestRunnerAdapter{python: python}
}

// RunSuite runs `python -m unittest discover -v` on the module's tests
// directory and parses the framework summary into counts.
func (a *LocalTestRunnerAdapter) RunSuite(ctx context.Context, moduleDir, testsDir m.Path) (m.TestSummary, string, error) {
	cmd := exec.CommandContext(ctx, a.python,
		"-m", "unittest", "discover", "-v",
		"-s", string(testsDir),
		"-t", string(moduleDir),
	)
	cmd.Dir = string(moduleDir)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	output := stdout.String() + stderr.String()

	if err := ctx.Err(); err != nil {
		return m.TestSummary{}, output, fmt.Errorf("test run aborted: %w", err)
	}

	summary, parseErr := ParseUnittestOutput(output)
	if parseErr != nil {
		// A failing suite still produces a parsable summary and exits
		// non-zero; only an unparsable run is an adapter error.
		if runErr != nil {
			return m.TestSummary{}, output, fmt.Errorf("test run failed before producing a summary: %w", runErr)
		}

		return m.TestSummary{}, output, parseErr
	}

	return summary, output, nil
}

var (
	ranPattern      = regexp.MustCompile(`(?m)^Ran (\d+) tests? in `)
	failedPattern   = regexp.MustCompile(`(?m)^FAILED \((.+)\)`)
	failuresPattern = regexp.MustCompile(`failures=(\d+)`)
	errorsPattern   = regexp.MustCompile(`errors=(\d+)`)
)

// ParseUnittestOutput extracts the aggregate counts from a unittest text
// runner summary ("Ran N tests in ...s" followed by "OK" or
// "FAILED (failures=X, errors=Y)").
func ParseUnittestOutput(output string) (m.TestSummary, error) {
	ran := ranPattern.FindStringSubmatch(output)
	if ran == nil {
		return m.TestSummary{}, fmt.Errorf("no unittest summary found in output")
	}

	testsRun, err := strconv.Atoi(ran[1])
	if err != nil {
		return m.TestSummary{}, fmt.Errorf("invalid test count %q: %w", ran[1], err)
	}

	summary := m.TestSummary{TestsRun: testsRun}

	failed := failedPattern.FindStringSubmatch(output)
	if failed == nil {
		return summary, nil
	}

	if match := failuresPattern.FindStringSubmatch(failed[1]); match != nil {
		summary.Failures, _ = strconv.Atoi(match[1])
	}

	if match := errorsPattern.FindStringSubmatch(failed[1]); match != nil {
		summary.Errors, _ = strconv.Atoi(match[1])
	}

	return summary, nil
}
