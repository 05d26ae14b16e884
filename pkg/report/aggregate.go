// Package report derives group- and test-level tallies from the
// ordered result list and renders them for the presentation
// layer.
package report

import (
	"digital.vasic.coccyx/pkg/runner"
	"digital.vasic.coccyx/pkg/suite"
)

// QueueStatus holds the totals announced once the queue is
// built, before anything runs.
type QueueStatus struct {
	Assertions int `json:"assertions"`
	Tests      int `json:"tests"`
	Groups     int `json:"groups"`
}

// Totals are the pass/fail tallies at all three levels.
type Totals struct {
	Groups           int `json:"groups"`
	GroupsPassed     int `json:"groups_passed"`
	GroupsFailed     int `json:"groups_failed"`
	Tests            int `json:"tests"`
	TestsPassed      int `json:"tests_passed"`
	TestsFailed      int `json:"tests_failed"`
	Assertions       int `json:"assertions"`
	AssertionsPassed int `json:"assertions_passed"`
	AssertionsFailed int `json:"assertions_failed"`
}

// labelTracker counts label changes in a scan. The first label
// seen always counts, including the empty label.
type labelTracker struct {
	seen bool
	prev string
}

func (t *labelTracker) changed(label string) bool {
	if t.seen && t.prev == label {
		return false
	}
	t.seen = true
	t.prev = label
	return true
}

// QueueTotals counts groups and tests by scanning items in
// queue order and counting every change of label. The count is
// positional: a label that reappears after another label is
// counted again.
func QueueTotals(items []suite.Item) QueueStatus {
	var groups, tests labelTracker
	status := QueueStatus{Assertions: len(items)}

	for _, item := range items {
		if groups.changed(item.GroupLabel) {
			status.Groups++
		}
		if tests.changed(item.TestLabel) {
			status.Tests++
		}
	}
	return status
}

// FailedCounts applies the first-failure rule to results in
// queue order: a group or test is counted failed when a failing
// result carries a label different from the previous failing
// result's label. Repeated failures in the still-current group or
// test do not count again.
func FailedCounts(results []runner.Result) (groups, tests int) {
	var g, t labelTracker

	for _, r := range results {
		if r.Passed {
			continue
		}
		if g.changed(r.GroupLabel) {
			groups++
		}
		if t.changed(r.TestLabel) {
			tests++
		}
	}
	return groups, tests
}

// Rollup combines the queue totals with the run outcome. Passed
// counts at group and test level are total minus failed.
func Rollup(status QueueStatus, outcome *runner.Outcome) Totals {
	totals := Totals{
		Groups:     status.Groups,
		Tests:      status.Tests,
		Assertions: status.Assertions,
	}
	if outcome == nil {
		return totals
	}

	totals.GroupsFailed, totals.TestsFailed = FailedCounts(outcome.Results)
	totals.GroupsPassed = totals.Groups - totals.GroupsFailed
	totals.TestsPassed = totals.Tests - totals.TestsFailed
	totals.AssertionsPassed = outcome.AssertionsPassed
	totals.AssertionsFailed = outcome.AssertionsFailed
	return totals
}
