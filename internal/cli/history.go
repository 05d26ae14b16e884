package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"digital.vasic.coccyx/pkg/harness"
	"digital.vasic.coccyx/pkg/report"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	ResultsDir string
	JSON       bool
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous runs recorded in the results directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.ResultsDir
			if dir == "" {
				cfg, err := loadConfig(cmd, rootOpts)
				if err != nil {
					return err
				}
				dir = cfg.ResultsDir
			}
			if dir == "" {
				return NewExitError(ExitCommandError,
					"no results directory: use --results-dir or set results_dir")
			}

			entries, err := report.LoadHistory(filepath.Join(dir, harness.HistoryFile))
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read history", err)
			}
			return printHistory(cmd, entries, opts.JSON)
		},
	}

	cmd.Flags().StringVar(&opts.ResultsDir, "results-dir", "", "results directory (defaults to config)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print entries as JSON")

	return cmd
}

func printHistory(cmd *cobra.Command, entries []report.HistoricalEntry, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		if entries == nil {
			entries = []report.HistoricalEntry{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "No runs recorded.")
		return err
	}
	for _, e := range entries {
		status := "PASSED"
		if !e.Passed {
			status = "FAILED"
		}
		if _, err := fmt.Fprintf(out, "%s  %s  %-6s  %d/%d assertions  %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.RunID, status,
			e.AssertionsPassed, e.AssertionsTotal, e.Duration,
		); err != nil {
			return err
		}
	}
	return nil
}
