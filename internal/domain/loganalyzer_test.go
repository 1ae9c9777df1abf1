package domain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	m "odoscan.dev/pkg/odoscan/internal/model"
)

func writeLog(t *testing.T, lines ...string) m.Path {
	t.Helper()

	path := filepath.Join(t.TempDir(), "odoo.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	return m.Path(path)
}

func TestAnalyze(t *testing.T) {
	t.Run("classifies error and cron lines", func(t *testing.T) {
		logPath := writeLog(t,
			"2024-01-01 ERROR Disk full",
			"2024-01-01 INFO Running cron job X",
		)

		collector := NewCollector()

		if err := NewLogAnalyzer().Analyze(context.Background(), logPath, collector); err != nil {
			t.Fatalf("Analyze error: %v", err)
		}

		dataset := collector.Dataset()
		if len(dataset) != 2 {
			t.Fatalf("expected 2 events, got %d", len(dataset))
		}

		if dataset[0].Type != m.EventError || dataset[0].Content != "ERROR Disk full" {
			t.Errorf("unexpected first event: %+v", dataset[0])
		}

		if dataset[1].Type != m.EventCron || dataset[1].Content != "2024-01-01 INFO Running cron job X" {
			t.Errorf("unexpected second event: %+v", dataset[1])
		}

		patterns := collector.ErrorPatterns()
		if patterns["ERROR Disk full"] != 1 {
			t.Errorf("expected tally 1 for disk full, got %d", patterns["ERROR Disk full"])
		}
	})

	t.Run("line matching both kinds is recorded twice", func(t *testing.T) {
		logPath := writeLog(t, "ERROR while Running cron job Y")

		collector := NewCollector()

		if err := NewLogAnalyzer().Analyze(context.Background(), logPath, collector); err != nil {
			t.Fatalf("Analyze error: %v", err)
		}

		dataset := collector.Dataset()
		if len(dataset) != 2 {
			t.Fatalf("expected 2 events for the dual-match line, got %d", len(dataset))
		}

		if dataset[0].Type != m.EventError || dataset[1].Type != m.EventCron {
			t.Errorf("expected error then cron, got %v then %v", dataset[0].Type, dataset[1].Type)
		}
	})

	t.Run("identical errors tally together, distinct errors separately", func(t *testing.T) {
		logPath := writeLog(t,
			"ERROR connection lost",
			"ERROR connection lost",
			"ERROR connection lost",
			"ERROR row 17 missing",
			"ERROR row 18 missing",
		)

		collector := NewCollector()

		if err := NewLogAnalyzer().Analyze(context.Background(), logPath, collector); err != nil {
			t.Fatalf("Analyze error: %v", err)
		}

		patterns := collector.ErrorPatterns()
		if len(patterns) != 3 {
			t.Fatalf("expected 3 distinct patterns, got %d", len(patterns))
		}

		if patterns["ERROR connection lost"] != 3 {
			t.Errorf("expected count 3, got %d", patterns["ERROR connection lost"])
		}

		if patterns["ERROR row 17 missing"] != 1 {
			t.Errorf("expected count 1, got %d", patterns["ERROR row 17 missing"])
		}
	})

	t.Run("error suffix starts at the marker", func(t *testing.T) {
		logPath := writeLog(t, "2024-01-01 12:00:00 odoo.sql_db ERROR db: bad query")

		collector := NewCollector()

		if err := NewLogAnalyzer().Analyze(context.Background(), logPath, collector); err != nil {
			t.Fatalf("Analyze error: %v", err)
		}

		dataset := collector.Dataset()
		if len(dataset) != 1 || dataset[0].Content != "ERROR db: bad query" {
			t.Fatalf("expected matched suffix only, got %+v", dataset)
		}
	})

	t.Run("invalid bytes are replaced, not fatal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "odoo.log")
		if err := os.WriteFile(path, []byte("ERROR bad \xff byte\n"), 0o644); err != nil {
			t.Fatalf("write log: %v", err)
		}

		collector := NewCollector()

		if err := NewLogAnalyzer().Analyze(context.Background(), m.Path(path), collector); err != nil {
			t.Fatalf("Analyze error: %v", err)
		}

		dataset := collector.Dataset()
		if len(dataset) != 1 {
			t.Fatalf("expected 1 event, got %d", len(dataset))
		}

		if !strings.Contains(dataset[0].Content, "�") {
			t.Errorf("expected replacement character in content, got %q", dataset[0].Content)
		}
	})

	t.Run("missing log file is a fatal error", func(t *testing.T) {
		logPath := m.Path(filepath.Join(t.TempDir(), "no_such.log"))

		err := NewLogAnalyzer().Analyze(context.Background(), logPath, NewCollector())
		if err == nil {
			t.Fatalf("expected error for missing log file")
		}
	})
}
