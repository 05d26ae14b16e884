// Package cli implements the coccyx command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"digital.vasic.coccyx/pkg/config"
	"digital.vasic.coccyx/pkg/env"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	EnvFiles   []string
	Verbose    bool
	LogFormat  string
	LogLevel   string
}

// ValidLogFormats defines the accepted --log-format values.
var ValidLogFormats = []string{"console", "json", "zap", "zap-console"}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "coccyx",
		Short: "coccyx - a queued assertion runner",
		Long: `coccyx stages assertions into a queue, waits for registration to settle,
then evaluates them in order and reports pass/fail totals per assertion,
test and group.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("log-format") && !isValidLogFormat(opts.LogFormat) {
				return NewExitError(ExitCommandError, fmt.Sprintf(
					"invalid log format %q: must be one of %v",
					opts.LogFormat, ValidLogFormats,
				))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringSliceVar(&opts.EnvFiles, "env-file", []string{".env"}, ".env files to load (missing files are skipped)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (console|json|zap|zap-console)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// loadConfig resolves the effective configuration: defaults,
// then the YAML file, then .env files and the environment, then
// global flags.
func loadConfig(cmd *cobra.Command, opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	loader := env.NewLoader()
	if err := config.LoadEnvFiles(loader, opts.EnvFiles...); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load env files", err)
	}
	if err := cfg.ApplyEnv(loader); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid environment", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.LogFormat
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Verbose {
		cfg.Verbose = true
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func isValidLogFormat(format string) bool {
	for _, f := range ValidLogFormats {
		if f == format {
			return true
		}
	}
	return false
}
