package data

import (
	"context"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestArchive(t *testing.T) *SQLArchive {
	t.Helper()

	archive, err := OpenSQLArchive(context.Background(), "sqlite3", filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })
	return archive
}

func TestSQLArchiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	archive := openTestArchive(t)

	catalog := NewCatalogModel()
	for _, m := range goldenCatalog() {
		catalog.Add(m)
	}
	require.NoError(t, catalog.SaveTo(ctx, archive))

	restored := NewCatalogModel()
	require.NoError(t, restored.LoadFrom(ctx, archive))
	assert.Equal(t, catalog.All(), restored.All())
}

func TestSQLArchiveSaveReplaces(t *testing.T) {
	ctx := context.Background()
	archive := openTestArchive(t)

	require.NoError(t, archive.Save(ctx, goldenCatalog()))
	require.NoError(t, archive.Save(ctx, goldenCatalog()[1:]))

	magazines, err := archive.Load(ctx)
	require.NoError(t, err)
	require.Len(t, magazines, 1)
	assert.Equal(t, "0044-207X", magazines[0].ISSN)
}

func TestSQLArchiveEmpty(t *testing.T) {
	archive := openTestArchive(t)

	_, err := archive.Load(context.Background())
	assert.True(t, errors.Is(err, ErrEmptyCatalog))
}

func TestSQLArchiveRejectsInvalidRow(t *testing.T) {
	ctx := context.Background()
	archive := openTestArchive(t)

	_, err := archive.DB.ExecContext(ctx, `
		INSERT INTO magazines (position, author, title, publisher, issn, stock, publication_date, price, borrowed_copies)
		VALUES (1, 'A', 'T', 'P', 'bad', 1, '01.01.2000', 1.5, 0)`)
	require.NoError(t, err)

	_, err = archive.Load(ctx)
	assert.True(t, errors.Is(err, ErrMalformedRecord))
}
