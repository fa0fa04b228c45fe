// Package data provides the catalog entry model, the in-memory catalog
// store and the archives the catalog is persisted to between runs.
package data

import (
	"math"

	"github.com/aoideee/magazine-catalog/internal/validator"
)

// Magazine represents a single catalog entry. ISSN identifies the entry
// within a catalog.
type Magazine struct {
	Author          string  `json:"author"`           // Free text, printable ASCII only
	Title           string  `json:"title"`            // Free text, printable ASCII only
	Publisher       string  `json:"publisher"`        // Free text, printable ASCII only
	ISSN            string  `json:"issn"`             // DDDD-DDDX identifier
	Stock           int     `json:"stock"`            // Copies owned, on shelf or lent out
	PublicationDate string  `json:"publication_date"` // DD.MM.YYYY
	Price           float64 `json:"price"`            // Currency-agnostic
	BorrowedCopies  int     `json:"borrowed_copies"`  // Copies currently lent out
}

// NewMagazine builds a fresh entry with no borrowed copies.
func NewMagazine(author, title, publisher, issn string, stock int, publicationDate string, price float64) Magazine {
	return Magazine{
		Author:          author,
		Title:           title,
		Publisher:       publisher,
		ISSN:            issn,
		Stock:           stock,
		PublicationDate: publicationDate,
		Price:           price,
	}
}

// Available returns the number of copies currently on the shelf.
func (m Magazine) Available() int {
	return m.Stock - m.BorrowedCopies
}

// MagazineInput holds the fields a client supplies when adding a magazine
// or restocking an existing one. Borrowed copies are never client-supplied.
type MagazineInput struct {
	Author          string  `json:"author"           validate:"printable"`
	Title           string  `json:"title"            validate:"printable"`
	Publisher       string  `json:"publisher"        validate:"printable"`
	ISSN            string  `json:"issn"             validate:"required,issn"`
	Stock           int     `json:"stock"            validate:"min=0"`
	PublicationDate string  `json:"publication_date" validate:"required,catdate"`
	Price           float64 `json:"price"            validate:"gte=0"`
}

// Magazine converts the input into a new catalog entry.
func (in MagazineInput) Magazine() Magazine {
	return NewMagazine(in.Author, in.Title, in.Publisher, in.ISSN, in.Stock, in.PublicationDate, in.Price)
}

// ValidateMagazine records every invariant m breaks in v.
func ValidateMagazine(v *validator.Validator, m Magazine) {
	v.Check(validator.IsValidText(m.Author), "author", "must contain only printable ASCII characters")
	v.Check(validator.IsValidText(m.Title), "title", "must contain only printable ASCII characters")
	v.Check(validator.IsValidText(m.Publisher), "publisher", "must contain only printable ASCII characters")
	v.Check(validator.IsValidISSN(m.ISSN), "issn", "must have the format DDDD-DDDX")
	v.Check(m.Stock >= 0, "stock", "must not be negative")
	v.Check(validator.IsValidDate(m.PublicationDate), "publication_date", "must be a valid date in the format DD.MM.YYYY")
	v.Check(m.Price >= 0 && !math.IsInf(m.Price, 1), "price", "must be a finite, non-negative number")
	v.Check(m.BorrowedCopies >= 0, "borrowed_copies", "must not be negative")
	v.Check(m.BorrowedCopies <= m.Stock, "borrowed_copies", "must not exceed stock")
}
