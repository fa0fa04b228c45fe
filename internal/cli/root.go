// Package cli implements the catalog command-line tool. Every invocation is
// one session: restore the catalog file, run one operation, and flush the
// file again when the operation changed the catalog.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	File          string // Flat catalog file
	Format        string // "text" | "json"
	ContinueEmpty bool   // Start from an empty catalog when the file cannot be loaded
	Verbose       bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the catalog tool.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Magazine catalog inventory",
		Long:          "Add magazines, look them up by title or ISSN, and lend or take back copies.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				msg := fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
				fmt.Fprintln(cmd.ErrOrStderr(), msg)
				return NewExitError(ExitCommandError, msg)
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprintln(c.ErrOrStderr(), err)
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", "magazine.txt", "catalog file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVar(&opts.ContinueEmpty, "continue-empty", false, "start a new catalog when the file is missing or unreadable")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log catalog load and save")

	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewFindCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewBorrowCommand(opts))
	cmd.AddCommand(NewReturnCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
