package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "odoscan.dev/pkg/odoscan/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	brokenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI with a live Bubble Tea progress view while the scan is
// running. Final summaries print through the embedded SimpleUI once the
// program has exited.
type TUI struct {
	*SimpleUI

	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a TUI that falls back to simple for static displays.
func NewTUI(simple *SimpleUI) *TUI {
	return &TUI{SimpleUI: simple}
}

// Start launches the progress view.
func (t *TUI) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.program = tea.NewProgram(newScanModel(), tea.WithOutput(os.Stdout))
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)

		_, _ = t.program.Run()
	}()

	return nil
}

// Close stops the progress view and waits for the terminal to be released.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.program.Quit()
	<-t.done
	t.program = nil
}

func (t *TUI) send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

// DisplayModuleCount updates the progress view header.
func (t *TUI) DisplayModuleCount(_ context.Context, count int) {
	t.send(moduleCountMsg(count))
}

// DisplayConcurrencyInfo updates the progress view header.
func (t *TUI) DisplayConcurrencyInfo(_ context.Context, threads int) {
	t.send(threadsMsg(threads))
}

// TestStarted marks a module as running.
func (t *TUI) TestStarted(_ context.Context, module string) {
	t.send(testStartedMsg(module))
}

// TestCompleted records a module's outcome line.
func (t *TUI) TestCompleted(_ context.Context, result m.TestResult) {
	t.send(testCompletedMsg(result))
}

type (
	moduleCountMsg   int
	threadsMsg       int
	testStartedMsg   string
	testCompletedMsg m.TestResult
)

type scanModel struct {
	spinner     spinner.Model
	moduleCount int
	threads     int
	running     []string
	completed   []m.TestResult
}

func newScanModel() scanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return scanModel{spinner: s, moduleCount: -1}
}

func (sm scanModel) Init() tea.Cmd {
	return sm.spinner.Tick
}

func (sm scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return sm, tea.Quit
		}

		return sm, nil
	case moduleCountMsg:
		sm.moduleCount = int(msg)
		return sm, nil
	case threadsMsg:
		sm.threads = int(msg)
		return sm, nil
	case testStartedMsg:
		sm.running = append(sm.running, string(msg))
		return sm, nil
	case testCompletedMsg:
		sm.running = removeString(sm.running, msg.Module)
		sm.completed = append(sm.completed, m.TestResult(msg))

		return sm, nil
	case spinner.TickMsg:
		var cmd tea.Cmd

		sm.spinner, cmd = sm.spinner.Update(msg)

		return sm, cmd
	default:
		return sm, nil
	}
}

func (sm scanModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("odoscan"))

	if sm.moduleCount >= 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf("  %d modules", sm.moduleCount)))
	}

	if sm.threads > 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf("  %d workers", sm.threads)))
	}

	b.WriteString("\n")

	for _, result := range sm.completed {
		if result.Status == m.TestError {
			b.WriteString(brokenStyle.Render(fmt.Sprintf("  ✗ %s: %s", result.Module, result.Message)))
		} else {
			b.WriteString(okStyle.Render(fmt.Sprintf("  ✓ %s: ran %d, errors %d, failures %d",
				result.Module, result.Summary.TestsRun, result.Summary.Errors, result.Summary.Failures)))
		}

		b.WriteString("\n")
	}

	for _, module := range sm.running {
		b.WriteString(runningStyle.Render(fmt.Sprintf("  %s testing %s", sm.spinner.View(), module)))
		b.WriteString("\n")
	}

	return b.String()
}

func removeString(items []string, target string) []string {
	out := items[:0]

	for _, item := range items {
		if item != target {
			out = append(out, item)
		}
	}

	return out
}
