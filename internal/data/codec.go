package data

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/aoideee/magazine-catalog/internal/validator"
)

// fieldsPerRecord is the fixed stride of the flat file: author, title,
// publisher, issn, stock, publication date, price, borrowed copies.
const fieldsPerRecord = 8

// Encode writes magazines to w in the flat catalog format, one field per
// line and eight lines per entry.
func Encode(w io.Writer, magazines []Magazine) error {
	bw := bufio.NewWriter(w)
	for _, m := range magazines {
		fields := [fieldsPerRecord]string{
			m.Author,
			m.Title,
			m.Publisher,
			m.ISSN,
			strconv.Itoa(m.Stock),
			m.PublicationDate,
			strconv.FormatFloat(m.Price, 'f', -1, 64),
			strconv.Itoa(m.BorrowedCopies),
		}
		for _, f := range fields {
			if _, err := bw.WriteString(f); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Decode reads every record of the flat catalog format from r. A file with
// no records yields ErrEmptyCatalog. A truncated record, a field that fails
// validation or a repeated ISSN fails the whole decode.
func Decode(r io.Reader) ([]Magazine, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog")
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCatalog
	}
	if rem := len(lines) % fieldsPerRecord; rem != 0 {
		return nil, errors.Wrapf(ErrMalformedRecord, "record %d truncated after %d of %d fields",
			len(lines)/fieldsPerRecord+1, rem, fieldsPerRecord)
	}

	magazines := make([]Magazine, 0, len(lines)/fieldsPerRecord)
	seen := make(map[string]bool)
	for start := 0; start < len(lines); start += fieldsPerRecord {
		n := start/fieldsPerRecord + 1

		m, err := parseRecord(lines[start : start+fieldsPerRecord])
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", n)
		}
		if seen[m.ISSN] {
			return nil, errors.Wrapf(ErrDuplicateISSN, "record %d: %s", n, m.ISSN)
		}
		seen[m.ISSN] = true

		magazines = append(magazines, m)
	}
	return magazines, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// parseRecord builds a Magazine from one eight-line record. Text fields are
// taken verbatim; numeric and date fields may carry surrounding blanks.
func parseRecord(fields []string) (Magazine, error) {
	m := Magazine{
		Author:          fields[0],
		Title:           fields[1],
		Publisher:       fields[2],
		ISSN:            fields[3],
		PublicationDate: strings.TrimSpace(fields[5]),
	}

	var err error
	if m.Stock, err = strconv.Atoi(strings.TrimSpace(fields[4])); err != nil {
		return Magazine{}, errors.Wrapf(ErrMalformedRecord, "stock %q is not an integer", fields[4])
	}
	if m.Price, err = strconv.ParseFloat(strings.TrimSpace(fields[6]), 64); err != nil {
		return Magazine{}, errors.Wrapf(ErrMalformedRecord, "price %q is not a number", fields[6])
	}
	if m.BorrowedCopies, err = strconv.Atoi(strings.TrimSpace(fields[7])); err != nil {
		return Magazine{}, errors.Wrapf(ErrMalformedRecord, "borrowed copies %q is not an integer", fields[7])
	}

	if err := checkRecord(m); err != nil {
		return Magazine{}, err
	}
	return m, nil
}

// checkRecord runs ValidateMagazine and folds the failures into one
// ErrMalformedRecord, fields listed alphabetically.
func checkRecord(m Magazine) error {
	v := validator.New()
	ValidateMagazine(v, m)
	if v.Valid() {
		return nil
	}

	keys := make([]string, 0, len(v.Errors))
	for k := range v.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	problems := make([]string, 0, len(keys))
	for _, k := range keys {
		problems = append(problems, fmt.Sprintf("%s %s", k, v.Errors[k]))
	}
	return errors.Wrap(ErrMalformedRecord, strings.Join(problems, "; "))
}
