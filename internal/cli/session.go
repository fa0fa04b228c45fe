package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aoideee/magazine-catalog/internal/data"
	"github.com/aoideee/magazine-catalog/internal/library"
)

// session is one restore/operate/flush cycle over the catalog file.
type session struct {
	lib *library.Library
	out *OutputFormatter
}

func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
}

func newLibrary(cmd *cobra.Command, opts *RootOptions) *library.Library {
	logger := slog.New(slog.DiscardHandler)
	if opts.Verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	}
	return library.New(data.NewModels(data.FileArchive{Path: opts.File}), logger)
}

// openSession restores the catalog. When the file cannot be loaded and
// --continue-empty is not set, the operator has declined to go on without
// a catalog: the command stops with ExitSuccess.
func openSession(cmd *cobra.Command, opts *RootOptions) (*session, error) {
	s := &session{
		lib: newLibrary(cmd, opts),
		out: newFormatter(cmd, opts),
	}

	loaded, err := s.lib.Startup(cmd.Context())
	if !loaded && !opts.ContinueEmpty {
		msg := fmt.Sprintf("catalog %s not loaded: %v", opts.File, err)
		s.out.Message(msg + "\nrerun with --continue-empty to start a new catalog")
		return nil, NewExitError(ExitSuccess, msg)
	}
	return s, nil
}

// flush writes the catalog back to the file.
func (s *session) flush(cmd *cobra.Command) error {
	if err := s.lib.Shutdown(cmd.Context()); err != nil {
		return s.out.Error(ExitCommandError, ErrCodeStorage, "catalog not saved: "+err.Error(), nil)
	}
	return nil
}
