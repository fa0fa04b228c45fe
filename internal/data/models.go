package data

import (
	"context"
	"math"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrRecordNotFound is returned when no entry matches an ISSN.
	ErrRecordNotFound = errors.New("record not found")

	// ErrEmptyCatalog is returned by an archive that holds no records.
	ErrEmptyCatalog = errors.New("catalog archive is empty")

	// ErrMalformedRecord is returned when an archived record fails to parse
	// or breaks an entry invariant.
	ErrMalformedRecord = errors.New("malformed catalog record")

	// ErrDuplicateISSN is returned when an archive holds two entries with
	// the same ISSN.
	ErrDuplicateISSN = errors.New("duplicate issn in catalog archive")

	// ErrStockOverflow is returned when a restock would push the stock past
	// the largest representable count.
	ErrStockOverflow = errors.New("stock would overflow")
)

// Models is a top-level container that groups the catalog store with the
// archive it is restored from and flushed to.
type Models struct {
	Magazines *CatalogModel // In-memory catalog
	Archive   Archive       // Where the catalog lives between runs
}

// NewModels constructs a Models value with an empty catalog backed by archive.
// Call this once during application startup.
func NewModels(archive Archive) Models {
	return Models{
		Magazines: NewCatalogModel(),
		Archive:   archive,
	}
}

// CatalogModel holds the catalog entries in insertion order. Entries handed
// out are copies; mutations address an entry by its ISSN.
type CatalogModel struct {
	mu        sync.RWMutex
	magazines []Magazine
}

// NewCatalogModel returns an empty catalog.
func NewCatalogModel() *CatalogModel {
	return &CatalogModel{}
}

// Len returns the number of entries.
func (m *CatalogModel) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.magazines)
}

// Exists reports whether an entry with issn is present.
func (m *CatalogModel) Exists(issn string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indexOf(issn) >= 0
}

// Add appends magazine unconditionally. Callers check Exists first; keeping
// uniqueness out of Add lets "add new" and "restock" stay separate decisions.
func (m *CatalogModel) Add(magazine Magazine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.magazines = append(m.magazines, magazine)
}

// IncreaseStock adds amount to the stock of the entry with issn. The entry is
// left untouched when issn is unknown or the sum would overflow.
func (m *CatalogModel) IncreaseStock(issn string, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(issn)
	if i < 0 {
		return ErrRecordNotFound
	}
	if amount > math.MaxInt-m.magazines[i].Stock {
		return ErrStockOverflow
	}
	m.magazines[i].Stock += amount
	return nil
}

// FindByTitle returns every entry whose title equals title exactly.
// The result is empty, never nil, when nothing matches.
func (m *CatalogModel) FindByTitle(title string) []Magazine {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := []Magazine{}
	for _, magazine := range m.magazines {
		if magazine.Title == title {
			matches = append(matches, magazine)
		}
	}
	return matches
}

// FindByISSN returns the entry with issn, if any.
func (m *CatalogModel) FindByISSN(issn string) (Magazine, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(issn); i >= 0 {
		return m.magazines[i], true
	}
	return Magazine{}, false
}

// All returns every entry in insertion order.
func (m *CatalogModel) All() []Magazine {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]Magazine, len(m.magazines))
	copy(all, m.magazines)
	return all
}

// Borrow lends out one copy of the entry with issn. It returns false, leaving
// the entry untouched, when every copy is already lent out or issn is unknown.
func (m *CatalogModel) Borrow(issn string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(issn)
	if i < 0 || m.magazines[i].Stock <= m.magazines[i].BorrowedCopies {
		return false
	}
	m.magazines[i].BorrowedCopies++
	return true
}

// Return takes back one lent copy of the entry with issn. It returns false
// when no copy is lent out or issn is unknown.
func (m *CatalogModel) Return(issn string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(issn)
	if i < 0 || m.magazines[i].BorrowedCopies <= 0 {
		return false
	}
	m.magazines[i].BorrowedCopies--
	return true
}

// Replace swaps the whole collection for magazines.
func (m *CatalogModel) Replace(magazines []Magazine) {
	replacement := make([]Magazine, len(magazines))
	copy(replacement, magazines)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.magazines = replacement
}

// Save writes every entry to the flat file at path, overwriting it.
func (m *CatalogModel) Save(path string) error {
	return m.SaveTo(context.Background(), FileArchive{Path: path})
}

// Load replaces the catalog with the records of the flat file at path.
// On any error the catalog is left unchanged.
func (m *CatalogModel) Load(path string) error {
	return m.LoadFrom(context.Background(), FileArchive{Path: path})
}

// SaveTo writes a snapshot of the catalog to archive.
func (m *CatalogModel) SaveTo(ctx context.Context, archive Archive) error {
	return archive.Save(ctx, m.All())
}

// LoadFrom replaces the catalog with the records held by archive.
// On any error the catalog is left unchanged.
func (m *CatalogModel) LoadFrom(ctx context.Context, archive Archive) error {
	magazines, err := archive.Load(ctx)
	if err != nil {
		return err
	}
	m.Replace(magazines)
	return nil
}

// indexOf must be called with mu held.
func (m *CatalogModel) indexOf(issn string) int {
	for i := range m.magazines {
		if m.magazines[i].ISSN == issn {
			return i
		}
	}
	return -1
}
