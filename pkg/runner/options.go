package runner

import (
	"digital.vasic.coccyx/pkg/assertion"
	"digital.vasic.coccyx/pkg/logging"
	"digital.vasic.coccyx/pkg/metrics"
)

// RunnerOption configures a DefaultRunner.
type RunnerOption func(*DefaultRunner)

// WithEngine sets the assertion engine used to evaluate items.
func WithEngine(engine assertion.Engine) RunnerOption {
	return func(r *DefaultRunner) {
		r.engine = engine
	}
}

// WithLogger sets the logger used by the runner.
func WithLogger(logger logging.Logger) RunnerOption {
	return func(r *DefaultRunner) {
		r.logger = logger
	}
}

// WithMetrics sets the recorder notified of every evaluated
// assertion.
func WithMetrics(m metrics.Recorder) RunnerOption {
	return func(r *DefaultRunner) {
		r.metrics = m
	}
}

// WithShortCircuit stops the run after the first failing
// assertion when enabled.
func WithShortCircuit(enabled bool) RunnerOption {
	return func(r *DefaultRunner) {
		r.shortCircuit = enabled
	}
}

// WithObserver adds observers notified after each result is
// recorded.
func WithObserver(o ...Observer) RunnerOption {
	return func(r *DefaultRunner) {
		r.observers = append(r.observers, o...)
	}
}
