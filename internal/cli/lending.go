package cli

import (
	"github.com/spf13/cobra"

	"github.com/aoideee/magazine-catalog/internal/library"
	"github.com/aoideee/magazine-catalog/internal/validator"
)

// NewBorrowCommand creates the borrow command.
func NewBorrowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "borrow <issn>",
		Short: "Lend out one copy of a magazine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openLending(cmd, rootOpts, args[0])
			if err != nil {
				return err
			}

			switch s.lib.Borrow(args[0]) {
			case library.BorrowNotFound:
				return s.out.Error(ExitFailure, ErrCodeNotFound, notFoundMessage, nil)
			case library.NoCopiesAvailable:
				return s.out.Error(ExitFailure, ErrCodeConflict, "no copies available to borrow", nil)
			}

			if err := s.flush(cmd); err != nil {
				return err
			}
			return s.out.Message("magazine borrowed")
		},
	}
}

// NewReturnCommand creates the return command.
func NewReturnCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "return <issn>",
		Short: "Take back one lent copy of a magazine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openLending(cmd, rootOpts, args[0])
			if err != nil {
				return err
			}

			switch s.lib.ReturnCopy(args[0]) {
			case library.ReturnNotFound:
				return s.out.Error(ExitFailure, ErrCodeNotFound, notFoundMessage, nil)
			case library.NoneBorrowed:
				return s.out.Error(ExitFailure, ErrCodeConflict, "no borrowed copies to return", nil)
			}

			if err := s.flush(cmd); err != nil {
				return err
			}
			return s.out.Message("magazine returned")
		},
	}
}

func openLending(cmd *cobra.Command, opts *RootOptions, issn string) (*session, error) {
	if !validator.IsValidISSN(issn) {
		return nil, newFormatter(cmd, opts).Error(ExitFailure, ErrCodeValidation, "issn must have the format DDDD-DDDX", nil)
	}
	return openSession(cmd, opts)
}
