package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "odoscan.dev/pkg/odoscan/internal/model"
)

// SimpleUI implements UI using cobra Command's print helpers.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(_ context.Context) {}

// DisplayModuleCount prints how many modules discovery found.
func (s *SimpleUI) DisplayModuleCount(ctx context.Context, count int) {
	if ctx.Err() != nil {
		return
	}

	s.cmd.Printf("Found %d modules\n", count)
}

// DisplayConcurrencyInfo prints the worker pool size for test execution.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, threads int) {
	if ctx.Err() != nil {
		return
	}

	s.cmd.Printf("Running module test suites on %d workers\n", threads)
}

// TestStarted prints that a module's suite was dispatched.
func (s *SimpleUI) TestStarted(ctx context.Context, module string) {
	if ctx.Err() != nil {
		return
	}

	s.cmd.Printf("  testing %s ...\n", module)
}

// TestCompleted prints one module's test outcome.
func (s *SimpleUI) TestCompleted(ctx context.Context, result m.TestResult) {
	if ctx.Err() != nil {
		return
	}

	if result.Status == m.TestError {
		s.cmd.Printf("  %s: test run broke: %s\n", result.Module, result.Message)
		return
	}

	s.cmd.Printf("  %s: ran %d, errors %d, failures %d\n",
		result.Module, result.Summary.TestsRun, result.Summary.Errors, result.Summary.Failures)
}

// DisplayScanSummary prints the final scan totals and the report location.
func (s *SimpleUI) DisplayScanSummary(ctx context.Context, report m.Report, output m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var errorEvents, cronEvents, testOK, testBroken int

	for _, event := range report.Dataset {
		switch event.Type {
		case m.EventError:
			errorEvents++
		case m.EventCron:
			cronEvents++
		case m.EventTestResult:
			if event.Test.Status == m.TestError {
				testBroken++
			} else {
				testOK++
			}
		}
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Metric", "Count"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	table.Append([]string{"Modules found", fmt.Sprintf("%d", len(report.ModulesFound))})
	table.Append([]string{"Distinct error patterns", fmt.Sprintf("%d", len(report.ErrorPatterns))})
	table.Append([]string{"Error events", fmt.Sprintf("%d", errorEvents)})
	table.Append([]string{"Cron events", fmt.Sprintf("%d", cronEvents)})
	table.Append([]string{"Test suites completed", fmt.Sprintf("%d", testOK)})
	table.Append([]string{"Test suites broken", fmt.Sprintf("%d", testBroken)})
	table.Render()

	s.cmd.Printf("\n%s\n", buf.String())
	s.cmd.Printf("Report generated: %s\n", output)

	return nil
}

// DisplayModules renders the module inventory in the requested format.
func (s *SimpleUI) DisplayModules(ctx context.Context, modules []m.ModuleSummary, format Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(modules, "", "  ")
		if err != nil {
			return err
		}

		s.cmd.Println(string(data))

		return nil
	case FormatYAML:
		data, err := yaml.Marshal(modules)
		if err != nil {
			return err
		}

		s.cmd.Print(string(data))

		return nil
	default:
		s.cmd.Print(renderModulesTable(modules))
		return nil
	}
}

func renderModulesTable(modules []m.ModuleSummary) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Name", "Path", "Application", "Auto Install", "Depends"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, mod := range modules {
		table.Append([]string{
			mod.Name,
			mod.Path,
			fmt.Sprintf("%t", mod.Application),
			fmt.Sprintf("%t", mod.AutoInstall),
			fmt.Sprintf("%v", mod.Depends),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(modules)), "", "", "", ""})
	table.Render()

	return buf.String()
}

// DisplayErrorPatterns renders the error tally, most frequent first.
func (s *SimpleUI) DisplayErrorPatterns(ctx context.Context, patterns map[string]int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	type row struct {
		text  string
		count int
	}

	rows := make([]row, 0, len(patterns))
	for text, count := range patterns {
		rows = append(rows, row{text: text, count: count})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}

		return rows[i].text < rows[j].text
	})

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Count", "Error"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	total := 0

	for _, r := range rows {
		table.Append([]string{fmt.Sprintf("%d", r.count), r.text})

		total += r.count
	}

	table.SetFooter([]string{fmt.Sprintf("%d", total), fmt.Sprintf("%d distinct patterns", len(rows))})
	table.Render()

	s.cmd.Print(buf.String())

	return nil
}
