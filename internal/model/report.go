package model

import "sort"

// Report is the terminal structure of a scan: the module inventory, the
// error-frequency table, and the full event dataset. It is assembled once
// and serialized once.
type Report struct {
	ModulesFound  []ModuleSummary `json:"modules_found"`
	ErrorPatterns map[string]int  `json:"error_patterns"`
	Dataset       []Event         `json:"dataset"`
}

// NewReport assembles a report from the discovery result and the collector
// output. Module summaries are sorted by name so identical scans produce
// identical reports.
func NewReport(modules map[string]Module, patterns map[string]int, dataset []Event) Report {
	summaries := make([]ModuleSummary, 0, len(modules))
	for _, mod := range modules {
		summaries = append(summaries, mod.Summary())
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})

	if patterns == nil {
		patterns = map[string]int{}
	}

	if dataset == nil {
		dataset = []Event{}
	}

	return Report{
		ModulesFound:  summaries,
		ErrorPatterns: patterns,
		Dataset:       dataset,
	}
}
