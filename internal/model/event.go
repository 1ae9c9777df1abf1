package model

import (
	"encoding/json"
	"fmt"
)

// EventType identifies the kind of a dataset event.
type EventType string

const (
	// EventError is a log line carrying an ERROR marker.
	EventError EventType = "error"
	// EventCron is a log line reporting a scheduled-task run.
	EventCron EventType = "cron"
	// EventTestResult is the outcome of one module's test suite.
	EventTestResult EventType = "test_result"
)

// TestStatus reports whether a module's test run completed normally.
type TestStatus string

const (
	// TestOK means the suite was discovered and executed; the counts are
	// whatever the test framework reported (failures included).
	TestOK TestStatus = "ok"
	// TestError means the run itself broke (runner missing, timeout,
	// unparsable output). The counts are sentinel values.
	TestError TestStatus = "error"
)

// TestSummary holds the aggregate counts reported by a test framework for
// one module. The scanner does not distinguish error vs. failure semantics
// itself; it records what the framework said.
type TestSummary struct {
	TestsRun int
	Errors   int
	Failures int
}

// TestResult is a TestSummary attributed to a module, with the run status.
type TestResult struct {
	Module  string
	Summary TestSummary
	Status  TestStatus
	Message string
}

// DegradedTestResult builds the record for a module whose test run broke.
// The -1 error count marks the record as a sentinel rather than a framework
// count.
func DegradedTestResult(module, message string) TestResult {
	return TestResult{
		Module:  module,
		Summary: TestSummary{TestsRun: 0, Errors: -1, Failures: 0},
		Status:  TestError,
		Message: message,
	}
}

// Event is one record in the dataset. Exactly one of the kind-specific
// payloads is populated, selected by Type: Content for error and cron
// events, Test for test_result events.
type Event struct {
	Type    EventType
	Content string
	Test    TestResult
}

// ErrorEvent builds an error event from the matched log suffix.
func ErrorEvent(content string) Event {
	return Event{Type: EventError, Content: content}
}

// CronEvent builds a cron event from the full log line.
func CronEvent(content string) Event {
	return Event{Type: EventCron, Content: content}
}

// TestEvent wraps a test result as a dataset event.
func TestEvent(result TestResult) Event {
	return Event{Type: EventTestResult, Test: result}
}

type contentEventJSON struct {
	Type    EventType `json:"type"`
	Content string    `json:"content"`
}

type testEventJSON struct {
	Type     EventType  `json:"type"`
	Module   string     `json:"module"`
	TestsRun int        `json:"tests_run"`
	Errors   int        `json:"errors"`
	Failures int        `json:"failures"`
	Status   TestStatus `json:"status"`
	Message  string     `json:"message,omitempty"`
}

// MarshalJSON emits the wire shape matching the event kind.
func (e Event) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EventError, EventCron:
		return json.Marshal(contentEventJSON{Type: e.Type, Content: e.Content})
	case EventTestResult:
		return json.Marshal(testEventJSON{
			Type:     e.Type,
			Module:   e.Test.Module,
			TestsRun: e.Test.Summary.TestsRun,
			Errors:   e.Test.Summary.Errors,
			Failures: e.Test.Summary.Failures,
			Status:   e.Test.Status,
			Message:  e.Test.Message,
		})
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
}

// UnmarshalJSON restores an event from either wire shape.
func (e *Event) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type EventType `json:"type"`
	}

	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch probe.Type {
	case EventError, EventCron:
		var raw contentEventJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}

		*e = Event{Type: raw.Type, Content: raw.Content}

		return nil
	case EventTestResult:
		var raw testEventJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}

		*e = Event{
			Type: raw.Type,
			Test: TestResult{
				Module:  raw.Module,
				Summary: TestSummary{TestsRun: raw.TestsRun, Errors: raw.Errors, Failures: raw.Failures},
				Status:  raw.Status,
				Message: raw.Message,
			},
		}

		return nil
	default:
		return fmt.Errorf("unknown event type %q", probe.Type)
	}
}
