package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the catalog file loads",
		Long: `Load the catalog file and validate every record: field formats,
non-negative counts, borrowed copies within stock, and unique ISSNs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(cmd, rootOpts)
			lib := newLibrary(cmd, rootOpts)

			if _, err := lib.Startup(cmd.Context()); err != nil {
				return out.Error(ExitFailure, ErrCodeStorage, err.Error(), nil)
			}
			return out.Message(fmt.Sprintf("catalog ok: %d records", lib.Catalog().Len()))
		},
	}
}
