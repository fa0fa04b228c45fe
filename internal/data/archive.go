package data

import (
	"context"
	"os"

	"github.com/pkg/errors"
)

// Archive is where a catalog is kept between runs. Save replaces whatever
// the archive held; Load returns the archived entries in insertion order.
type Archive interface {
	Save(ctx context.Context, magazines []Magazine) error
	Load(ctx context.Context) ([]Magazine, error)
}

// FileArchive keeps the catalog in a flat text file.
type FileArchive struct {
	Path string
}

// Save overwrites the file with magazines, creating it when absent.
func (a FileArchive) Save(ctx context.Context, magazines []Magazine) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(a.Path)
	if err != nil {
		return errors.Wrapf(err, "create catalog file %s", a.Path)
	}

	if err := Encode(f, magazines); err != nil {
		f.Close()
		return errors.Wrapf(err, "write catalog file %s", a.Path)
	}

	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close catalog file %s", a.Path)
	}
	return nil
}

// Load reads every record of the file.
func (a FileArchive) Load(ctx context.Context) ([]Magazine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(a.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open catalog file %s", a.Path)
	}
	defer f.Close()

	magazines, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load catalog file %s", a.Path)
	}
	return magazines, nil
}

// String names the archive in log output.
func (a FileArchive) String() string {
	return "file:" + a.Path
}
