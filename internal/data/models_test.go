package data

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMagazine(issn, title string, stock int) Magazine {
	return NewMagazine("Anna Author", title, "Conde Nast", issn, stock, "01.06.2023", 7.99)
}

func TestAddAndExists(t *testing.T) {
	catalog := NewCatalogModel()
	assert.False(t, catalog.Exists("1059-1028"))

	catalog.Add(sampleMagazine("1059-1028", "Wired", 2))

	assert.Equal(t, 1, catalog.Len())
	assert.True(t, catalog.Exists("1059-1028"))
	assert.False(t, catalog.Exists("0044-2070"))
}

func TestIncreaseStock(t *testing.T) {
	catalog := NewCatalogModel()
	catalog.Add(sampleMagazine("1059-1028", "Wired", 2))

	require.NoError(t, catalog.IncreaseStock("1059-1028", 3))
	assert.ErrorIs(t, catalog.IncreaseStock("0000-0000", 10), ErrRecordNotFound)

	m, ok := catalog.FindByISSN("1059-1028")
	require.True(t, ok)
	assert.Equal(t, 5, m.Stock)
	assert.Equal(t, 1, catalog.Len())
}

func TestIncreaseStockOverflow(t *testing.T) {
	catalog := NewCatalogModel()
	catalog.Add(sampleMagazine("1059-1028", "Wired", 2))

	assert.ErrorIs(t, catalog.IncreaseStock("1059-1028", math.MaxInt-1), ErrStockOverflow)

	m, _ := catalog.FindByISSN("1059-1028")
	assert.Equal(t, 2, m.Stock)

	require.NoError(t, catalog.IncreaseStock("1059-1028", math.MaxInt-2))
	m, _ = catalog.FindByISSN("1059-1028")
	assert.Equal(t, math.MaxInt, m.Stock)
}

func TestFindByTitle(t *testing.T) {
	catalog := NewCatalogModel()
	catalog.Add(sampleMagazine("1059-1028", "Wired", 1))
	catalog.Add(sampleMagazine("0044-2070", "Die Zeit", 1))
	catalog.Add(sampleMagazine("1234-567X", "Wired", 1))

	matches := catalog.FindByTitle("Wired")
	require.Len(t, matches, 2)
	assert.Equal(t, "1059-1028", matches[0].ISSN)
	assert.Equal(t, "1234-567X", matches[1].ISSN)

	assert.Empty(t, catalog.FindByTitle("wired"))
	assert.Empty(t, catalog.FindByTitle("Wire"))
	assert.NotNil(t, catalog.FindByTitle("missing"))
}

func TestFindByISSNReturnsCopy(t *testing.T) {
	catalog := NewCatalogModel()
	catalog.Add(sampleMagazine("1059-1028", "Wired", 1))

	m, ok := catalog.FindByISSN("1059-1028")
	require.True(t, ok)
	m.Stock = 99

	again, _ := catalog.FindByISSN("1059-1028")
	assert.Equal(t, 1, again.Stock)

	_, ok = catalog.FindByISSN("0000-0000")
	assert.False(t, ok)
}

func TestBorrowAndReturn(t *testing.T) {
	catalog := NewCatalogModel()
	catalog.Add(sampleMagazine("1059-1028", "Wired", 1))

	assert.True(t, catalog.Borrow("1059-1028"))
	assert.False(t, catalog.Borrow("1059-1028"))

	m, _ := catalog.FindByISSN("1059-1028")
	assert.Equal(t, 1, m.BorrowedCopies)
	assert.Equal(t, 0, m.Available())

	assert.True(t, catalog.Return("1059-1028"))
	assert.False(t, catalog.Return("1059-1028"))

	m, _ = catalog.FindByISSN("1059-1028")
	assert.Equal(t, 0, m.BorrowedCopies)
}

func TestBorrowUnknownOrEmptyStock(t *testing.T) {
	catalog := NewCatalogModel()
	catalog.Add(sampleMagazine("1059-1028", "Wired", 0))

	assert.False(t, catalog.Borrow("1059-1028"))
	assert.False(t, catalog.Borrow("0000-0000"))
	assert.False(t, catalog.Return("0000-0000"))
}

func TestReplaceAndAll(t *testing.T) {
	catalog := NewCatalogModel()
	catalog.Add(sampleMagazine("1059-1028", "Wired", 1))

	replacement := []Magazine{
		sampleMagazine("0044-2070", "Die Zeit", 1),
		sampleMagazine("1234-567X", "Spiegel", 1),
	}
	catalog.Replace(replacement)
	replacement[0].Title = "changed"

	all := catalog.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Die Zeit", all[0].Title)
	assert.False(t, catalog.Exists("1059-1028"))
}
