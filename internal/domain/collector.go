// Package domain implements the odoscan pipeline: module discovery, log
// analysis, test orchestration and report assembly.
package domain

import (
	"sync"

	m "odoscan.dev/pkg/odoscan/internal/model"
	"odoscan.dev/pkg/odoscan/pkg"
)

// Collector accumulates the event dataset and the error-frequency tally
// for one run. It is written to by the sequential log scan and by
// concurrent test workers, so every mutation goes through a lock.
type Collector struct {
	dataset pkg.AppendLog[m.Event]

	mu       sync.Mutex
	patterns map[string]int
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		dataset:  pkg.NewAppendLog[m.Event](),
		patterns: map[string]int{},
	}
}

// AddError records one matched error line: the tally count for the exact
// matched text is incremented and an error event is appended.
func (c *Collector) AddError(content string) {
	c.mu.Lock()
	c.patterns[content]++
	c.mu.Unlock()

	c.dataset.Append(m.ErrorEvent(content))
}

// AddCron appends a cron event for the full matched line.
func (c *Collector) AddCron(content string) {
	c.dataset.Append(m.CronEvent(content))
}

// AddTestResult appends a test_result event for one module.
func (c *Collector) AddTestResult(result m.TestResult) {
	c.dataset.Append(m.TestEvent(result))
}

// ErrorPatterns returns a copy of the tally.
func (c *Collector) ErrorPatterns() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]int, len(c.patterns))
	for k, v := range c.patterns {
		out[k] = v
	}

	return out
}

// Dataset returns a copy of the accumulated events in append order.
func (c *Collector) Dataset() []m.Event {
	return c.dataset.Snapshot()
}
