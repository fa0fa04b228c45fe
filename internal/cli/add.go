package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aoideee/magazine-catalog/internal/data"
	"github.com/aoideee/magazine-catalog/internal/library"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	var input data.MagazineInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a magazine, or restock it when the ISSN is already catalogued",
		Long: `Add a magazine to the catalog.

When a magazine with the same ISSN exists, only its stock is raised by
--stock; the other fields are ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, rootOpts, input)
		},
	}

	cmd.Flags().StringVar(&input.Author, "author", "", "author (printable ASCII)")
	cmd.Flags().StringVar(&input.Title, "title", "", "title (printable ASCII)")
	cmd.Flags().StringVar(&input.Publisher, "publisher", "", "publisher (printable ASCII)")
	cmd.Flags().StringVar(&input.ISSN, "issn", "", "ISSN in the format DDDD-DDDX")
	cmd.Flags().IntVar(&input.Stock, "stock", 1, "number of copies to add")
	cmd.Flags().StringVar(&input.PublicationDate, "date", "", "publication date DD.MM.YYYY")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "price without currency sign")
	cmd.MarkFlagRequired("issn")

	return cmd
}

func runAdd(cmd *cobra.Command, opts *RootOptions, input data.MagazineInput) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}

	outcome, err := s.lib.AddOrRestock(input)
	if err != nil {
		var verr *library.ValidationError
		if errors.As(err, &verr) {
			return s.out.Error(ExitFailure, ErrCodeValidation, "invalid magazine", verr.Errors)
		}
		return s.out.Error(ExitFailure, ErrCodeValidation, err.Error(), nil)
	}

	if err := s.flush(cmd); err != nil {
		return err
	}

	if outcome == library.Restocked {
		return s.out.Message(fmt.Sprintf("magazine %s already exists, stock increased by %d", input.ISSN, input.Stock))
	}
	return s.out.Message(fmt.Sprintf("magazine %s added", input.ISSN))
}
