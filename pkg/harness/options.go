package harness

import (
	"time"

	"digital.vasic.coccyx/pkg/assertion"
	"digital.vasic.coccyx/pkg/config"
	"digital.vasic.coccyx/pkg/logging"
	"digital.vasic.coccyx/pkg/metrics"
	"digital.vasic.coccyx/pkg/report"
	"digital.vasic.coccyx/pkg/runner"
	"digital.vasic.coccyx/pkg/stabilizer"
)

// Option configures a Harness.
type Option func(*Harness)

// WithConfig applies the run-related fields of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(h *Harness) {
		h.shortCircuit = cfg.ShortCircuit
		h.pollInterval = cfg.PollInterval
		h.preRunDelay = cfg.PreRunDelay
		h.resultsDir = cfg.ResultsDir
	}
}

// WithShortCircuit stops the run at the first failing
// assertion.
func WithShortCircuit(enabled bool) Option {
	return func(h *Harness) {
		h.shortCircuit = enabled
	}
}

// WithPollInterval sets the stabilizer period.
func WithPollInterval(d time.Duration) Option {
	return func(h *Harness) {
		h.pollInterval = d
	}
}

// WithPreRunDelay sets the pause between "queue built" and the
// first evaluation.
func WithPreRunDelay(d time.Duration) Option {
	return func(h *Harness) {
		h.preRunDelay = d
	}
}

// WithResultsDir persists summaries and history under dir.
func WithResultsDir(dir string) Option {
	return func(h *Harness) {
		h.resultsDir = dir
	}
}

// WithPresenter adds presenters notified of run progress.
func WithPresenter(p ...report.Presenter) Option {
	return func(h *Harness) {
		h.presenters = append(h.presenters, p...)
	}
}

// WithObserver adds observers notified of every result.
func WithObserver(o ...runner.Observer) Option {
	return func(h *Harness) {
		h.observers = append(h.observers, o...)
	}
}

// WithLogger sets the logger shared by every phase.
func WithLogger(l logging.Logger) Option {
	return func(h *Harness) {
		h.logger = l
	}
}

// WithMetrics sets the recorder shared by every phase.
func WithMetrics(m metrics.Recorder) Option {
	return func(h *Harness) {
		h.metrics = m
	}
}

// WithEngine replaces the assertion engine.
func WithEngine(e assertion.Engine) Option {
	return func(h *Harness) {
		h.engine = e
	}
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(h *Harness) {
		h.runID = id
	}
}

// WithTicker replaces the stabilizer's time source.
func WithTicker(t stabilizer.TickerFunc) Option {
	return func(h *Harness) {
		h.ticker = t
	}
}
