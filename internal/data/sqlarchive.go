package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

const magazinesSchema = `
	CREATE TABLE IF NOT EXISTS magazines (
		position         INTEGER PRIMARY KEY,
		author           TEXT NOT NULL,
		title            TEXT NOT NULL,
		publisher        TEXT NOT NULL,
		issn             TEXT NOT NULL UNIQUE,
		stock            INTEGER NOT NULL,
		publication_date TEXT NOT NULL,
		price            DOUBLE PRECISION NOT NULL,
		borrowed_copies  INTEGER NOT NULL
	)`

// SQLArchive keeps the catalog in a "magazines" table. The queries use
// $N placeholders understood by both the postgres and sqlite3 drivers.
type SQLArchive struct {
	DB *sql.DB
}

// OpenSQLArchive opens a connection pool for driver, pings it with a
// 5-second timeout and creates the magazines table when missing.
func OpenSQLArchive(ctx context.Context, driver, dsn string) (*SQLArchive, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", driver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "ping %s database", driver)
	}

	archive := &SQLArchive{DB: db}
	if err := archive.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return archive, nil
}

// EnsureSchema creates the magazines table if it does not exist yet.
func (a *SQLArchive) EnsureSchema(ctx context.Context) error {
	if _, err := a.DB.ExecContext(ctx, magazinesSchema); err != nil {
		return errors.Wrap(err, "create magazines table")
	}
	return nil
}

// Save replaces the table contents with magazines inside one transaction.
func (a *SQLArchive) Save(ctx context.Context, magazines []Magazine) error {
	tx, err := a.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin catalog save")
	}
	// Rollback after Commit is a no-op.
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM magazines`); err != nil {
		return errors.Wrap(err, "clear magazines")
	}

	query := `
		INSERT INTO magazines (position, author, title, publisher, issn, stock, publication_date, price, borrowed_copies)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return errors.Wrap(err, "prepare magazine insert")
	}
	defer stmt.Close()

	for i, m := range magazines {
		args := []any{
			i + 1,
			m.Author,
			m.Title,
			m.Publisher,
			m.ISSN,
			m.Stock,
			m.PublicationDate,
			m.Price,
			m.BorrowedCopies,
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return errors.Wrapf(err, "insert magazine %s", m.ISSN)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit catalog save")
	}
	return nil
}

// Load returns every stored entry ordered by position. Rows are held to the
// same rules as flat-file records.
func (a *SQLArchive) Load(ctx context.Context) ([]Magazine, error) {
	query := `
		SELECT author, title, publisher, issn, stock, publication_date, price, borrowed_copies
		FROM magazines
		ORDER BY position`

	rows, err := a.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "query magazines")
	}
	defer rows.Close()

	magazines := []Magazine{}
	for rows.Next() {
		var m Magazine
		err := rows.Scan(
			&m.Author,
			&m.Title,
			&m.Publisher,
			&m.ISSN,
			&m.Stock,
			&m.PublicationDate,
			&m.Price,
			&m.BorrowedCopies,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan magazine")
		}
		if err := checkRecord(m); err != nil {
			return nil, errors.Wrapf(err, "row %d", len(magazines)+1)
		}
		magazines = append(magazines, m)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate magazines")
	}
	if len(magazines) == 0 {
		return nil, ErrEmptyCatalog
	}
	return magazines, nil
}

// Close releases the connection pool.
func (a *SQLArchive) Close() error {
	return a.DB.Close()
}

// String names the archive in log output.
func (a *SQLArchive) String() string {
	return "sql:magazines"
}
