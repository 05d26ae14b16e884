// Package runner provides the sequential run phase: it walks a
// stabilized queue in registration order, resolves deferred
// values, evaluates each assertion and tallies assertion-level
// pass/fail counts.
package runner

import (
	"context"
	"time"

	"digital.vasic.coccyx/pkg/assertion"
	"digital.vasic.coccyx/pkg/logging"
	"digital.vasic.coccyx/pkg/metrics"
	"digital.vasic.coccyx/pkg/suite"
)

// Runner defines the interface for the run phase.
type Runner interface {
	// Run evaluates items strictly in order. On an
	// evaluation fault or context cancellation it returns the
	// partial outcome together with the error.
	Run(ctx context.Context, items []suite.Item) (*Outcome, error)
}

// Observer is notified of every recorded result.
type Observer interface {
	AssertionEvaluated(index int, result Result)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(index int, result Result)

// AssertionEvaluated calls f.
func (f ObserverFunc) AssertionEvaluated(index int, result Result) {
	f(index, result)
}

// DefaultRunner is the standard Runner implementation.
type DefaultRunner struct {
	engine       assertion.Engine
	logger       logging.Logger
	metrics      metrics.Recorder
	shortCircuit bool
	observers    []Observer
}

// NewRunner creates a DefaultRunner with the supplied options.
func NewRunner(opts ...RunnerOption) *DefaultRunner {
	r := &DefaultRunner{
		engine:  assertion.NewEngine(),
		logger:  logging.NullLogger{},
		metrics: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates items in queue order. With short-circuit enabled
// it stops after the first failure; the remaining items are
// never evaluated and are counted as skipped.
func (r *DefaultRunner) Run(
	ctx context.Context,
	items []suite.Item,
) (*Outcome, error) {
	outcome := &Outcome{
		Results:   make([]Result, 0, len(items)),
		StartTime: time.Now(),
	}
	defer func() {
		outcome.EndTime = time.Now()
		outcome.Duration = outcome.EndTime.Sub(outcome.StartTime)
	}()

	r.logger.Info("run_started",
		logging.IntField("assertions", len(items)),
		logging.BoolField("short_circuit", r.shortCircuit),
	)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			outcome.Skipped = len(items) - i
			r.logger.Warn("run_cancelled",
				logging.IntField("index", i),
				logging.ErrorField(err),
			)
			return outcome, err
		}

		result, err := r.evaluate(i, item)
		if err != nil {
			outcome.Skipped = len(items) - i
			r.logger.Error("evaluation_fault", logging.AssertionFields(
				item.GroupLabel, item.TestLabel, item.Label,
				logging.IntField("index", i),
				logging.ErrorField(err),
			)...)
			return outcome, err
		}

		outcome.Results = append(outcome.Results, result)
		if result.Passed {
			outcome.AssertionsPassed++
		} else {
			outcome.AssertionsFailed++
		}

		r.metrics.RecordAssertion(item.Kind.String(), result.Passed)
		r.logger.Debug("assertion_evaluated", logging.AssertionFields(
			item.GroupLabel, item.TestLabel, item.Label,
			logging.IntField("index", i),
			logging.StringField("kind", item.Kind.String()),
			logging.BoolField("passed", result.Passed),
		)...)
		for _, o := range r.observers {
			o.AssertionEvaluated(i, result)
		}

		if r.shortCircuit && !result.Passed {
			outcome.ShortCircuited = true
			outcome.Skipped = len(items) - i - 1
			r.logger.Info("run_short_circuited",
				logging.IntField("index", i),
				logging.IntField("skipped", outcome.Skipped),
			)
			return outcome, nil
		}
	}

	r.logger.Info("run_completed",
		logging.IntField("passed", outcome.AssertionsPassed),
		logging.IntField("failed", outcome.AssertionsFailed),
		logging.DurationField("elapsed", time.Since(outcome.StartTime)),
	)
	return outcome, nil
}

// evaluate resolves the item's value exactly once and applies
// its predicate. Producer errors and panics become an
// EvaluationFault.
func (r *DefaultRunner) evaluate(
	index int,
	item suite.Item,
) (result Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = newFault(index, item, panicCause{p})
		}
	}()

	actual, resolveErr := item.Value.Resolve()
	if resolveErr != nil {
		return Result{}, newFault(index, item, resolveErr)
	}

	out := r.engine.Evaluate(item.Kind, actual, item.Expectation)
	return Result{
		Item:    item,
		Actual:  actual,
		Passed:  out.Passed,
		Message: out.Message,
		Diff:    out.Diff,
	}, nil
}

// panicCause keeps a recovered value from being mistaken for a
// returned error when it happens to implement error.
type panicCause struct {
	value any
}
