package domain

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	m "odoscan.dev/pkg/odoscan/internal/model"
)

var (
	// errorPattern captures the line suffix starting at the first ERROR
	// marker. The matched suffix is both the tally key and the event
	// content, so two errors differing only in an embedded timestamp or
	// row id tally separately.
	errorPattern = regexp.MustCompile(`ERROR.*`)

	// cronPattern flags scheduled-task lines; the whole line is recorded.
	cronPattern = regexp.MustCompile(`Running cron`)
)

// maxLogLineSize bounds a single log line; Odoo tracebacks are written as
// separate lines, so 1 MiB is generous.
const maxLogLineSize = 1 << 20

// LogAnalyzer classifies server log lines into collector events.
type LogAnalyzer interface {
	// Analyze streams the log at logPath line by line, appending error
	// and cron events onto the collector. Failing to open the log is a
	// fatal error for the run.
	Analyze(ctx context.Context, logPath m.Path, collector *Collector) error
}

type logAnalyzer struct{}

// NewLogAnalyzer constructs a LogAnalyzer.
func NewLogAnalyzer() LogAnalyzer {
	return &logAnalyzer{}
}

func (a *logAnalyzer) Analyze(ctx context.Context, logPath m.Path, collector *Collector) error {
	file, err := os.Open(string(logPath))
	if err != nil {
		return fmt.Errorf("open log file %s: %w", logPath, err)
	}

	defer func() {
		_ = file.Close()
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLogLineSize)

	lines := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Invalid bytes are replaced rather than rejected; server logs
		// routinely contain mixed encodings.
		line := strings.ToValidUTF8(scanner.Text(), "�")

		processLine(line, collector)

		lines++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log file %s: %w", logPath, err)
	}

	slog.Info("Log analysis complete", "path", logPath, "lines", lines)

	return nil
}

// processLine applies both classifiers independently; a line matching both
// is recorded twice, once per kind.
func processLine(line string, collector *Collector) {
	if match := errorPattern.FindString(line); match != "" {
		collector.AddError(match)
	}

	if cronPattern.MatchString(line) {
		collector.AddCron(line)
	}
}
