package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"digital.vasic.coccyx/pkg/bank"
)

// NewValidateCommand creates the validate command, which checks
// suite files without running them.
func NewValidateCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|dir>...",
		Short: "Validate suite files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0
			for _, path := range args {
				reports, err := bank.ValidatePath(path)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to validate", err)
				}
				for _, r := range reports {
					if len(r.Errors) == 0 {
						fmt.Fprintf(out, "%s: ok\n", r.Path)
						continue
					}
					invalid++
					for _, e := range r.Errors {
						fmt.Fprintf(out, "%s: %s\n", r.Path, e)
					}
				}
			}
			if invalid > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d invalid suite file(s)", invalid))
			}
			return nil
		},
	}
}
