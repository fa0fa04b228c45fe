// Package library exposes the catalog operations a front end drives:
// add-or-restock, search, borrow, return, and the startup/shutdown pair
// that restores and flushes the catalog.
package library

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/aoideee/magazine-catalog/internal/data"
	"github.com/aoideee/magazine-catalog/internal/validator"
)

// AddOutcome tells whether AddOrRestock created an entry or restocked one.
type AddOutcome int

const (
	Added AddOutcome = iota
	Restocked
)

func (o AddOutcome) String() string {
	switch o {
	case Added:
		return "added"
	case Restocked:
		return "restocked"
	default:
		return fmt.Sprintf("AddOutcome(%d)", int(o))
	}
}

// BorrowResult is the outcome of a borrow request.
type BorrowResult int

const (
	Borrowed BorrowResult = iota
	BorrowNotFound
	NoCopiesAvailable
)

func (r BorrowResult) String() string {
	switch r {
	case Borrowed:
		return "borrowed"
	case BorrowNotFound:
		return "not found"
	case NoCopiesAvailable:
		return "no copies available"
	default:
		return fmt.Sprintf("BorrowResult(%d)", int(r))
	}
}

// ReturnResult is the outcome of a return request.
type ReturnResult int

const (
	Returned ReturnResult = iota
	ReturnNotFound
	NoneBorrowed
)

func (r ReturnResult) String() string {
	switch r {
	case Returned:
		return "returned"
	case ReturnNotFound:
		return "not found"
	case NoneBorrowed:
		return "none borrowed"
	default:
		return fmt.Sprintf("ReturnResult(%d)", int(r))
	}
}

// ValidationError carries the per-field messages of a rejected input.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Errors[k])
	}
	return "invalid magazine: " + strings.Join(parts, "; ")
}

// Library runs catalog operations against a store and the archive it is
// persisted to.
type Library struct {
	addMu   sync.Mutex // serializes the exists/add decision of AddOrRestock
	catalog *data.CatalogModel
	archive data.Archive
	logger  *slog.Logger
}

// New wires a Library around models. A nil logger discards log output.
func New(models data.Models, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Library{
		catalog: models.Magazines,
		archive: models.Archive,
		logger:  logger,
	}
}

// Catalog exposes the underlying store.
func (l *Library) Catalog() *data.CatalogModel {
	return l.catalog
}

// AddOrRestock increases the stock of the entry with the input's ISSN when
// one exists, ignoring the other fields. Otherwise it validates the input and
// adds a new entry with no borrowed copies.
func (l *Library) AddOrRestock(input data.MagazineInput) (AddOutcome, error) {
	v := validator.New()
	v.Struct(input)

	l.addMu.Lock()
	defer l.addMu.Unlock()

	if l.catalog.Exists(input.ISSN) {
		if msg, bad := v.Errors["stock"]; bad {
			return Restocked, &ValidationError{Errors: map[string]string{"stock": msg}}
		}
		err := l.catalog.IncreaseStock(input.ISSN, input.Stock)
		if errors.Is(err, data.ErrStockOverflow) {
			return Restocked, &ValidationError{Errors: map[string]string{"stock": "must not raise the stock past the largest supported count"}}
		}
		if err != nil {
			return Restocked, err
		}
		l.logger.Info("magazine restocked", "issn", input.ISSN, "amount", input.Stock)
		return Restocked, nil
	}

	magazine := input.Magazine()
	data.ValidateMagazine(v, magazine)
	if !v.Valid() {
		return Added, &ValidationError{Errors: v.Errors}
	}

	l.catalog.Add(magazine)
	l.logger.Info("magazine added", "issn", magazine.ISSN, "title", magazine.Title)
	return Added, nil
}

// SearchByTitle returns every entry whose title equals title exactly.
func (l *Library) SearchByTitle(title string) []data.Magazine {
	return l.catalog.FindByTitle(title)
}

// SearchByISSN returns the entry with issn, if any.
func (l *Library) SearchByISSN(issn string) (data.Magazine, bool) {
	return l.catalog.FindByISSN(issn)
}

// List returns one page of the catalog.
func (l *Library) List(filters data.Filters) ([]data.Magazine, data.Metadata) {
	return l.catalog.List(filters)
}

// Borrow lends out one copy of the entry with issn.
func (l *Library) Borrow(issn string) BorrowResult {
	if !l.catalog.Exists(issn) {
		return BorrowNotFound
	}
	if !l.catalog.Borrow(issn) {
		return NoCopiesAvailable
	}
	l.logger.Info("magazine borrowed", "issn", issn)
	return Borrowed
}

// ReturnCopy takes back one lent copy of the entry with issn.
func (l *Library) ReturnCopy(issn string) ReturnResult {
	if !l.catalog.Exists(issn) {
		return ReturnNotFound
	}
	if !l.catalog.Return(issn) {
		return NoneBorrowed
	}
	l.logger.Info("magazine returned", "issn", issn)
	return Returned
}

// Startup replaces the catalog with the archived entries. It reports false,
// with the reason, when the archive is missing, empty or malformed; the
// catalog is then left as it was so the caller may carry on without it.
func (l *Library) Startup(ctx context.Context) (bool, error) {
	if err := l.catalog.LoadFrom(ctx, l.archive); err != nil {
		l.logger.Warn("catalog not loaded", "archive", archiveName(l.archive), "error", err.Error())
		return false, err
	}
	l.logger.Info("catalog loaded", "archive", archiveName(l.archive), "records", l.catalog.Len())
	return true, nil
}

// Shutdown flushes the catalog to the archive. Stopping the process is left
// to the caller once Shutdown returns; a save error is fatal for it.
func (l *Library) Shutdown(ctx context.Context) error {
	if err := l.catalog.SaveTo(ctx, l.archive); err != nil {
		l.logger.Error("catalog not saved", "archive", archiveName(l.archive), "error", err.Error())
		return err
	}
	l.logger.Info("catalog saved", "archive", archiveName(l.archive), "records", l.catalog.Len())
	return nil
}

func archiveName(a data.Archive) string {
	if s, ok := a.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", a)
}
