package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command, which prints the
// effective configuration with secrets masked.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, rootOpts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), cfg.String())
			return err
		},
	}
}
