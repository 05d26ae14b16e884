// Package harness owns a single run: it waits for registration
// to settle, freezes the queue, evaluates it and hands the
// aggregated summary to the presenters.
package harness

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"digital.vasic.coccyx/pkg/assertion"
	"digital.vasic.coccyx/pkg/config"
	"digital.vasic.coccyx/pkg/logging"
	"digital.vasic.coccyx/pkg/metrics"
	"digital.vasic.coccyx/pkg/report"
	"digital.vasic.coccyx/pkg/runner"
	"digital.vasic.coccyx/pkg/stabilizer"
	"digital.vasic.coccyx/pkg/suite"
)

// ErrAlreadyRun is returned by a second call to Run.
var ErrAlreadyRun = errors.New("harness has already run")

// HistoryFile is the history log written under the results
// directory.
const HistoryFile = "history.jsonl"

// Harness drives build, stabilize, run and report for one suite.
type Harness struct {
	suite        *suite.Suite
	presenters   []report.Presenter
	observers    []runner.Observer
	logger       logging.Logger
	metrics      metrics.Recorder
	engine       assertion.Engine
	ticker       stabilizer.TickerFunc
	shortCircuit bool
	pollInterval time.Duration
	preRunDelay  time.Duration
	resultsDir   string
	runID        string
	ran          atomic.Bool
}

// New creates a Harness for s with the default configuration.
func New(s *suite.Suite, opts ...Option) *Harness {
	defaults := config.Default()
	h := &Harness{
		suite:        s,
		logger:       logging.NullLogger{},
		metrics:      metrics.NoopRecorder{},
		engine:       assertion.NewEngine(),
		pollInterval: defaults.PollInterval,
		preRunDelay:  defaults.PreRunDelay,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.runID == "" {
		h.runID = uuid.NewString()
	}
	h.logger = h.logger.WithFields(logging.StringField("run_id", h.runID))
	return h
}

// Suite returns the suite whose queue this harness runs.
func (h *Harness) Suite() *suite.Suite {
	return h.suite
}

// RunID returns the identifier of this harness's run.
func (h *Harness) RunID() string {
	return h.runID
}

// Run executes the single run. It blocks until the queue is
// stable, runs it and reports. When the run is aborted by an
// evaluation fault the summary of the partial run is still
// presented and returned together with the error.
func (h *Harness) Run(ctx context.Context) (*report.Summary, error) {
	if !h.ran.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRun
	}

	queue := h.suite.Queue()
	presenter := report.MultiPresenter(h.presenters)

	h.present("building", presenter.Building())

	stab := stabilizer.New(queue,
		stabilizer.WithInterval(h.pollInterval),
		stabilizer.WithTicker(h.ticker),
		stabilizer.WithLogger(h.logger),
		stabilizer.WithMetrics(h.metrics),
	)
	stable, err := stab.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("stabilize queue: %w", err)
	}

	items := queue.Snapshot()
	status := report.QueueTotals(items)
	h.logger.Info("queue_built",
		logging.IntField("assertions", status.Assertions),
		logging.IntField("tests", status.Tests),
		logging.IntField("groups", status.Groups),
		logging.IntField("ticks", stable.Ticks),
		logging.BoolField("sealed", stable.Sealed),
	)
	h.present("queue_built", presenter.QueueBuilt(status))

	if err := sleep(ctx, h.preRunDelay); err != nil {
		return nil, fmt.Errorf("pre-run delay: %w", err)
	}

	r := runner.NewRunner(
		runner.WithEngine(h.engine),
		runner.WithLogger(h.logger),
		runner.WithMetrics(h.metrics),
		runner.WithShortCircuit(h.shortCircuit),
		runner.WithObserver(h.observers...),
	)
	outcome, runErr := r.Run(ctx, items)

	summary := report.BuildSummary(h.runID, status, outcome, runErr)
	h.metrics.RecordRun(summary.MetricsTotals())
	h.present("completed", presenter.Completed(summary))
	h.persist(summary)

	h.logger.Info("summary_reported",
		logging.BoolField("passed", summary.Passed()),
		logging.IntField("groups_failed", summary.Totals.GroupsFailed),
		logging.IntField("tests_failed", summary.Totals.TestsFailed),
		logging.IntField("assertions_failed", summary.Totals.AssertionsFailed),
		logging.IntField("dropped", h.suite.Dropped()),
	)
	return summary, runErr
}

func (h *Harness) present(stage string, err error) {
	if err != nil {
		h.logger.Warn("presenter_failed",
			logging.StringField("stage", stage),
			logging.ErrorField(err),
		)
	}
}

func (h *Harness) persist(summary *report.Summary) {
	if h.resultsDir == "" {
		return
	}

	path, err := report.SaveSummary(summary, h.resultsDir)
	if err != nil {
		h.logger.Error("summary_save_failed", logging.ErrorField(err))
		return
	}

	history := filepath.Join(h.resultsDir, HistoryFile)
	if err := report.AppendToHistory(history, summary, path); err != nil {
		h.logger.Error("history_append_failed", logging.ErrorField(err))
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
