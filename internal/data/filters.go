package data

import (
	"math"
	"sort"
	"strings"
)

// Filters holds pagination and sorting parameters for catalog listings.
type Filters struct {
	Page         int      // Current page number (1-indexed)
	PageSize     int      // Number of records per page
	Sort         string   // Field to sort by (prefix with "-" for descending)
	SortSafeList []string // Allowed sort values
}

// sortColumn returns the validated field name, defaulting to insertion order.
func (f Filters) sortColumn() string {
	for _, safe := range f.SortSafeList {
		if f.Sort == safe {
			return strings.TrimPrefix(f.Sort, "-")
		}
	}
	return ""
}

func (f Filters) descending() bool {
	return strings.HasPrefix(f.Sort, "-")
}

func (f Filters) limit() int { return f.PageSize }

func (f Filters) offset() int { return (f.Page - 1) * f.PageSize }

// Metadata contains pagination information returned alongside list responses.
type Metadata struct {
	CurrentPage  int `json:"current_page,omitempty"`
	PageSize     int `json:"page_size,omitempty"`
	FirstPage    int `json:"first_page,omitempty"`
	LastPage     int `json:"last_page,omitempty"`
	TotalRecords int `json:"total_records,omitempty"`
}

func calculateMetadata(totalRecords, page, pageSize int) Metadata {
	if totalRecords == 0 {
		return Metadata{}
	}
	return Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		FirstPage:    1,
		LastPage:     int(math.Ceil(float64(totalRecords) / float64(pageSize))),
		TotalRecords: totalRecords,
	}
}

// List returns one page of entries sorted per filters. With no valid sort
// field the entries keep insertion order. Page and PageSize must be >= 1.
func (m *CatalogModel) List(filters Filters) ([]Magazine, Metadata) {
	all := m.All()

	if column := filters.sortColumn(); column != "" {
		less := lessBy(column)
		desc := filters.descending()
		sort.SliceStable(all, func(i, j int) bool {
			if desc {
				return less(all[j], all[i])
			}
			return less(all[i], all[j])
		})
	}

	metadata := calculateMetadata(len(all), filters.Page, filters.PageSize)

	start := filters.offset()
	if start >= len(all) {
		return []Magazine{}, metadata
	}
	end := start + filters.limit()
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], metadata
}

func lessBy(column string) func(a, b Magazine) bool {
	switch column {
	case "title":
		return func(a, b Magazine) bool { return a.Title < b.Title }
	case "issn":
		return func(a, b Magazine) bool { return a.ISSN < b.ISSN }
	case "stock":
		return func(a, b Magazine) bool { return a.Stock < b.Stock }
	case "price":
		return func(a, b Magazine) bool { return a.Price < b.Price }
	default:
		return func(a, b Magazine) bool { return false }
	}
}
