package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/aoideee/magazine-catalog/internal/data"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution, including declining to start without a catalog
	ExitFailure      = 1 // Business failure (not found, no copies, invalid input)
	ExitCommandError = 2 // Command error (bad flags, unwritable catalog file)
)

// Error codes reported in output.
const (
	ErrCodeNotFound   = "not_found"
	ErrCodeConflict   = "conflict"
	ErrCodeValidation = "invalid_input"
	ErrCodeStorage    = "storage"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Errors that are not ExitErrors come from cobra itself (missing required
// flags, wrong argument count) or from writing output, so they map to
// ExitCommandError (2).
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter writes command results as text or JSON.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
}

// CLIResponse is the JSON envelope of every result.
type CLIResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
	Error   *CLIError `json:"error,omitempty"`
}

// CLIError is the error part of a JSON response.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Message reports a one-line outcome.
func (f *OutputFormatter) Message(message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Message: message})
	}
	_, err := fmt.Fprintln(f.Writer, message)
	return err
}

// Magazines reports entries, or emptyMessage in text mode when there are none.
func (f *OutputFormatter) Magazines(magazines []data.Magazine, emptyMessage string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: magazines})
	}
	if len(magazines) == 0 {
		_, err := fmt.Fprintln(f.Writer, emptyMessage)
		return err
	}
	for _, m := range magazines {
		if err := writeMagazine(f.Writer, m); err != nil {
			return err
		}
	}
	return nil
}

// Error reports a failure and returns the ExitError the command should
// return.
func (f *OutputFormatter) Error(exitCode int, code, message string, details any) error {
	if f.Format == "json" {
		json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	} else {
		w := f.ErrWriter
		if w == nil {
			w = f.Writer
		}
		fmt.Fprintf(w, "Error [%s]: %s\n", code, message)
		if m, ok := details.(map[string]string); ok {
			for _, k := range sortedKeys(m) {
				fmt.Fprintf(w, "  %s: %s\n", k, m[k])
			}
		}
	}
	return NewExitError(exitCode, message)
}

func writeMagazine(w io.Writer, m data.Magazine) error {
	_, err := fmt.Fprintf(w,
		"Author: %s\nTitle: %s\nPublisher: %s\nISSN: %s\nPublication date: %s\nPrice: %s\nStock: %d\nBorrowed: %d\n------------------------\n",
		m.Author, m.Title, m.Publisher, m.ISSN, m.PublicationDate, formatPrice(m.Price), m.Stock, m.BorrowedCopies)
	return err
}

func formatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
