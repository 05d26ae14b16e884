package report

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"digital.vasic.coccyx/pkg/assertion"
)

const (
	buildingMessage  = "Building queue. Please wait..."
	queueBuiltHeader = "Queue built."
	completedHeader  = "Testing has completed."
)

// pluralize appends an "s" for a count of zero or more than one.
func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// triple renders "N assertions/M tests/K groups".
func triple(assertions, tests, groups int) string {
	return fmt.Sprintf("%d %s/%d %s/%d %s",
		assertions, pluralize("assertion", assertions),
		tests, pluralize("test", tests),
		groups, pluralize("group", groups),
	)
}

// BuildingText is the status line shown while the queue is
// being built.
func BuildingText() string {
	return buildingMessage
}

// QueueBuiltText announces the totals that are about to run.
func QueueBuiltText(status QueueStatus) string {
	return queueBuiltHeader + "\n" + "Running " +
		triple(status.Assertions, status.Tests, status.Groups) +
		"..."
}

// SummaryLine renders the one-line outcome. There are three
// variants: nothing failed, nothing passed, and mixed.
func SummaryLine(t Totals) string {
	passed := triple(t.AssertionsPassed, t.TestsPassed, t.GroupsPassed)
	failed := triple(t.AssertionsFailed, t.TestsFailed, t.GroupsFailed)

	switch {
	case t.AssertionsFailed == 0:
		return passed + " passed, 0 tests failed."
	case t.AssertionsPassed == 0:
		return "0 tests passed, " + failed + " failed."
	default:
		return passed + " passed, " + failed + " failed."
	}
}

// FailureLine describes a single failed assertion.
func FailureLine(f FailureRecord) string {
	return fmt.Sprintf(
		`Assertion "%s" (%s) in test "%s", group "%s" failed! Expected "%s" %s "%s".`,
		f.Assertion, f.Kind, f.Test, f.Group,
		formatValue(f.Actual), f.Kind.Operator(), formatValue(f.Expected),
	)
}

// CompletedText renders the summary, any abort notes and every
// failure line, one per line.
func CompletedText(s *Summary) string {
	lines := []string{completedHeader, SummaryLine(s.Totals)}
	lines = append(lines, notes(s)...)
	for _, f := range s.Failures {
		lines = append(lines, FailureLine(f))
	}
	return strings.Join(lines, "\n")
}

func notes(s *Summary) []string {
	var out []string
	if s.Fault != "" {
		out = append(out, "Run aborted: "+s.Fault)
	}
	if s.ShortCircuited {
		out = append(out, "Stopped at the first failure.")
	}
	if s.Skipped > 0 {
		out = append(out, fmt.Sprintf("%d %s not run.",
			s.Skipped, pluralize("assertion", s.Skipped)))
	}
	return out
}

// formatValue renders a value for a failure line. Strings are
// shown raw, composites as JSON.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return x
	case *assertion.OrderedMap:
		if x == nil {
			return "nil"
		}
	}

	switch reflect.Indirect(reflect.ValueOf(v)).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return fmt.Sprintf("%v", v)
}
