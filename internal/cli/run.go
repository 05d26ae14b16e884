package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"digital.vasic.coccyx/internal/sample"
	"digital.vasic.coccyx/pkg/bank"
	"digital.vasic.coccyx/pkg/config"
	"digital.vasic.coccyx/pkg/harness"
	"digital.vasic.coccyx/pkg/logging"
	"digital.vasic.coccyx/pkg/metrics"
	"digital.vasic.coccyx/pkg/monitor"
	"digital.vasic.coccyx/pkg/report"
	"digital.vasic.coccyx/pkg/suite"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ShortCircuit bool
	PollInterval time.Duration
	PreRunDelay  time.Duration
	Output       string
	ResultsDir   string
	HTML         bool
	MetricsFile  string
	MonitorAddr  string
	WithFailures bool
	Suites       []string
}

// ValidOutputs defines the accepted --output values.
var ValidOutputs = []string{"console", "text", "json"}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the bundled assertion suite or suite files",
		Long: `Run the bundled suite, or the suites declared in --suite files:
build the queue, wait for it to settle, evaluate every assertion in
order and print the summary.

Example:
  coccyx run
  coccyx run --short-circuit --with-failures
  coccyx run --output json --results-dir ./results --html
  coccyx run --suite ./suites --suite extra.yaml
  coccyx run --monitor-addr 127.0.0.1:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.ShortCircuit, "short-circuit", false, "stop at the first failing assertion")
	f.DurationVar(&opts.PollInterval, "poll-interval", config.DefaultPollInterval, "queue stabilization period")
	f.DurationVar(&opts.PreRunDelay, "pre-run-delay", config.DefaultPreRunDelay, "pause between queue built and run")
	f.StringVarP(&opts.Output, "output", "o", "console", "presenter (console|text|json)")
	f.StringVar(&opts.ResultsDir, "results-dir", "", "directory for summaries and history")
	f.BoolVar(&opts.HTML, "html", false, "write an HTML report into the results directory")
	f.StringVar(&opts.MetricsFile, "metrics-file", "", "write a Prometheus textfile after the run")
	f.StringVar(&opts.MonitorAddr, "monitor-addr", "", "serve the live dashboard on this address")
	f.BoolVar(&opts.WithFailures, "with-failures", false, "include the deliberately failing group")
	f.StringSliceVar(&opts.Suites, "suite", nil, "suite file or directory to run instead of the bundled suite")

	return cmd
}

// applyRunFlags overrides cfg with explicitly set run flags.
func applyRunFlags(cmd *cobra.Command, opts *RunOptions, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("short-circuit") {
		cfg.ShortCircuit = opts.ShortCircuit
	}
	if f.Changed("poll-interval") && opts.PollInterval > 0 {
		cfg.PollInterval = opts.PollInterval
	}
	if f.Changed("pre-run-delay") && opts.PreRunDelay >= 0 {
		cfg.PreRunDelay = opts.PreRunDelay
	}
	if f.Changed("output") {
		cfg.Output = opts.Output
	}
	if f.Changed("results-dir") {
		cfg.ResultsDir = opts.ResultsDir
	}
	if f.Changed("html") {
		cfg.HTML = opts.HTML
	}
	if f.Changed("metrics-file") {
		cfg.MetricsFile = opts.MetricsFile
	}
	if f.Changed("monitor-addr") {
		cfg.MonitorAddr = opts.MonitorAddr
	}
}

func newPresenter(output string, w io.Writer) (report.Presenter, error) {
	switch output {
	case "", "console":
		return report.NewConsolePresenter(w), nil
	case "text":
		return report.NewTextPresenter(w), nil
	case "json":
		return report.NewJSONPresenter(w), nil
	default:
		return nil, fmt.Errorf("invalid output %q: must be one of %v", output, ValidOutputs)
	}
}

func runSuite(cmd *cobra.Command, opts *RunOptions) error {
	cfg, err := loadConfig(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	applyRunFlags(cmd, opts, cfg)
	if cfg.HTML && cfg.ResultsDir == "" {
		return NewExitError(ExitCommandError,
			"html report requires a results directory (--results-dir or results_dir)")
	}

	logger, err := logging.New(cfg.LoggingOptions())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create logger", err)
	}
	defer func() { _ = logger.Close() }()

	suites := bank.New()
	for _, path := range opts.Suites {
		if err := suites.LoadPath(path); err != nil {
			return WrapExitError(ExitCommandError, "failed to load suite", err)
		}
	}

	presenter, err := newPresenter(cfg.Output, cmd.OutOrStdout())
	if err != nil {
		return WrapExitError(ExitCommandError, "bad output", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runID := uuid.NewString()
	recorder := metrics.NewPrometheusRecorder()
	hopts := []harness.Option{
		harness.WithConfig(cfg),
		harness.WithRunID(runID),
		harness.WithLogger(logger),
		harness.WithMetrics(recorder),
		harness.WithPresenter(presenter),
	}
	if cfg.HTML {
		hopts = append(hopts, harness.WithPresenter(
			report.NewHTMLPresenter(filepath.Join(cfg.ResultsDir, "html")),
		))
	}

	if cfg.MonitorAddr != "" {
		stop, collector, err := startMonitor(ctx, cfg.MonitorAddr, runID, recorder, logger)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to start monitor", err)
		}
		defer stop()
		hopts = append(hopts,
			harness.WithPresenter(collector),
			harness.WithObserver(collector),
		)
	}

	s := suite.New(suite.WithLogger(logger))
	if len(opts.Suites) > 0 {
		logger.Info("suites_loaded",
			logging.IntField("files", len(suites.Sources())),
			logging.IntField("assertions", suites.Count()),
		)
		suites.Register(s)
	} else {
		sample.Register(s, opts.WithFailures)
	}

	summary, runErr := harness.New(s, hopts...).Run(ctx)

	if cfg.MetricsFile != "" {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("metrics_textfile_failed", logging.ErrorField(err))
		}
	}

	if runErr != nil {
		return WrapExitError(ExitFailure, "run aborted", runErr)
	}
	if !summary.Passed() {
		return NewExitError(ExitFailure, "assertions failed")
	}
	return nil
}

func startMonitor(
	ctx context.Context,
	addr, runID string,
	recorder *metrics.PrometheusRecorder,
	logger logging.Logger,
) (func(), *monitor.EventCollector, error) {
	collector := monitor.NewEventCollector(runID)
	srv := monitor.NewServer(collector, monitor.NewDashboard(runID),
		monitor.WithMetricsHandler(recorder.Handler()),
		monitor.WithServerLogger(logger),
	)
	if err := srv.Listen(addr); err != nil {
		return nil, nil, err
	}
	logger.Info("monitor_listening", logging.StringField("addr", srv.Addr()))

	go func() {
		if err := srv.Serve(ctx); err != nil {
			logger.Error("monitor_failed", logging.ErrorField(err))
		}
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Stop(shutdownCtx)
	}
	return stop, collector, nil
}
