package cli

import (
	"github.com/spf13/cobra"

	"github.com/aoideee/magazine-catalog/internal/data"
	"github.com/aoideee/magazine-catalog/internal/validator"
)

const notFoundMessage = "magazine not found"

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Show every magazine with exactly the given title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			if !validator.IsValidText(title) {
				return s.out.Error(ExitFailure, ErrCodeValidation, "title must contain only printable ASCII characters", nil)
			}
			return s.out.Magazines(s.lib.SearchByTitle(title), notFoundMessage)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "exact, case-sensitive title")
	cmd.MarkFlagRequired("title")

	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <issn>",
		Short: "Show the magazine with the given ISSN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}

			issn := args[0]
			if !validator.IsValidISSN(issn) {
				return s.out.Error(ExitFailure, ErrCodeValidation, "issn must have the format DDDD-DDDX", nil)
			}

			magazine, found := s.lib.SearchByISSN(issn)
			if !found {
				return s.out.Error(ExitFailure, ErrCodeNotFound, notFoundMessage, nil)
			}
			return s.out.Magazines([]data.Magazine{magazine}, notFoundMessage)
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every magazine in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			return s.out.Magazines(s.lib.Catalog().All(), "catalog is empty")
		},
	}
}
