package runner

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"digital.vasic.coccyx/pkg/suite"
)

// Result is a queued item together with the outcome of
// evaluating it. Results are produced once, in queue order, and
// never mutated afterwards.
type Result struct {
	suite.Item

	// Actual is the resolved value the predicate was applied
	// to.
	Actual any `json:"actual"`

	// Passed is the boolean outcome of the predicate.
	Passed bool `json:"passed"`

	// Message describes the outcome.
	Message string `json:"message,omitempty"`

	// Diff is the structural diff for failed equality checks.
	Diff string `json:"diff,omitempty"`
}

// Outcome is everything the run phase produced.
type Outcome struct {
	Results          []Result      `json:"results"`
	AssertionsPassed int           `json:"assertions_passed"`
	AssertionsFailed int           `json:"assertions_failed"`
	Skipped          int           `json:"skipped"`
	ShortCircuited   bool          `json:"short_circuited"`
	StartTime        time.Time     `json:"start_time"`
	EndTime          time.Time     `json:"end_time"`
	Duration         time.Duration `json:"duration"`
}

// EvaluationFault reports an error raised while resolving a
// deferred value or comparing values. It aborts the run.
type EvaluationFault struct {
	// Index is the queue position of the faulting item.
	Index int

	// Item is the assertion that could not be evaluated.
	Item suite.Item

	// Err is the underlying cause, carrying a stack trace.
	Err error
}

// Error implements error.
func (f *EvaluationFault) Error() string {
	return fmt.Sprintf(
		"evaluation fault at item %d (group %q, test %q, assertion %q): %v",
		f.Index, f.Item.GroupLabel, f.Item.TestLabel,
		f.Item.Label, f.Err,
	)
}

// Unwrap returns the underlying cause.
func (f *EvaluationFault) Unwrap() error {
	return f.Err
}

func newFault(index int, item suite.Item, cause any) *EvaluationFault {
	var err error
	switch c := cause.(type) {
	case panicCause:
		err = errors.Errorf("panic during evaluation: %v", c.value)
	case error:
		err = errors.Wrap(c, "resolve value")
	default:
		err = errors.Errorf("evaluation failed: %v", c)
	}
	return &EvaluationFault{Index: index, Item: item, Err: err}
}
