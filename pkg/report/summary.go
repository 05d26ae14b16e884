package report

import (
	"encoding/json"
	"time"

	"digital.vasic.coccyx/pkg/assertion"
	"digital.vasic.coccyx/pkg/metrics"
	"digital.vasic.coccyx/pkg/runner"
)

// FailureRecord carries everything needed to describe a failed
// assertion without re-evaluating it.
type FailureRecord struct {
	Group     string         `json:"group"`
	Test      string         `json:"test"`
	Assertion string         `json:"assertion"`
	Kind      assertion.Kind `json:"kind"`
	Actual    any            `json:"actual"`
	Expected  any            `json:"expected"`
	Diff      string         `json:"diff,omitempty"`
}

// MarshalJSON encodes Actual and Expected as JSON when they
// can be, and as their failure-line text otherwise. NaN, ±Inf,
// funcs and channels have no JSON form.
func (f FailureRecord) MarshalJSON() ([]byte, error) {
	type record FailureRecord
	r := record(f)
	r.Actual = encodable(f.Actual)
	r.Expected = encodable(f.Expected)
	return json.Marshal(r)
}

func encodable(v any) any {
	if _, err := json.Marshal(v); err != nil {
		return formatValue(v)
	}
	return v
}

// Summary is the final hand-off to the presentation layer.
type Summary struct {
	RunID          string          `json:"run_id"`
	GeneratedAt    time.Time       `json:"generated_at"`
	Totals         Totals          `json:"totals"`
	Skipped        int             `json:"skipped"`
	ShortCircuited bool            `json:"short_circuited"`
	Duration       time.Duration   `json:"duration"`
	Fault          string          `json:"fault,omitempty"`
	Failures       []FailureRecord `json:"failures"`
}

// Failures extracts a record for every failed result, in order.
func Failures(results []runner.Result) []FailureRecord {
	records := make([]FailureRecord, 0)
	for _, r := range results {
		if r.Passed {
			continue
		}
		records = append(records, FailureRecord{
			Group:     r.GroupLabel,
			Test:      r.TestLabel,
			Assertion: r.Label,
			Kind:      r.Kind,
			Actual:    r.Actual,
			Expected:  r.Expectation,
			Diff:      r.Diff,
		})
	}
	return records
}

// BuildSummary aggregates a finished (or aborted) run. fault is
// the error that aborted the run, if any.
func BuildSummary(
	runID string,
	status QueueStatus,
	outcome *runner.Outcome,
	fault error,
) *Summary {
	summary := &Summary{
		RunID:       runID,
		GeneratedAt: time.Now(),
		Totals:      Rollup(status, outcome),
		Failures:    make([]FailureRecord, 0),
	}

	if outcome != nil {
		summary.Skipped = outcome.Skipped
		summary.ShortCircuited = outcome.ShortCircuited
		summary.Duration = outcome.Duration
		summary.Failures = Failures(outcome.Results)
	}
	if fault != nil {
		summary.Fault = fault.Error()
	}
	return summary
}

// Passed reports whether every queued assertion ran and passed.
func (s *Summary) Passed() bool {
	return s.Fault == "" && s.Skipped == 0 &&
		s.Totals.AssertionsFailed == 0
}

// MetricsTotals converts the summary for a metrics recorder.
func (s *Summary) MetricsTotals() metrics.RunTotals {
	t := s.Totals
	return metrics.RunTotals{
		Groups:           t.Groups,
		GroupsPassed:     t.GroupsPassed,
		GroupsFailed:     t.GroupsFailed,
		Tests:            t.Tests,
		TestsPassed:      t.TestsPassed,
		TestsFailed:      t.TestsFailed,
		Assertions:       t.Assertions,
		AssertionsPassed: t.AssertionsPassed,
		AssertionsFailed: t.AssertionsFailed,
		Skipped:          s.Skipped,
		Duration:         s.Duration,
	}
}
