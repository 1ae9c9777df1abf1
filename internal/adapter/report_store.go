package adapter

import (
	"encoding/json"
	"fmt"
	"os"

	m "odoscan.dev/pkg/odoscan/internal/model"
)

// ReportStore persists scan reports.
type ReportStore interface {
	Save(path m.Path, report m.Report) error
	Load(path m.Path) (m.Report, error)
}

// JSONReportStore writes reports as UTF-8 JSON with 2-space indentation,
// overwriting any existing file at the target path.
type JSONReportStore struct{}

// NewJSONReportStore constructs a JSONReportStore.
func NewJSONReportStore() *JSONReportStore {
	return &JSONReportStore{}
}

// Save serializes the report and writes it to path. A write failure is
// returned with its underlying cause; the caller treats it as fatal.
func (s *JSONReportStore) Save(path m.Path, report m.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := os.WriteFile(string(path), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

// Load reads a previously saved report back.
func (s *JSONReportStore) Load(path m.Path) (m.Report, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Report{}, fmt.Errorf("read report %s: %w", path, err)
	}

	var report m.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}
