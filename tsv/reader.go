// Package tsv reads the tab-separated survey exports.
package tsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Record maps a raw header label to the field value of one row. Fields
// missing from a short row are absent from the map.
type Record map[string]string

// Dataset is one parsed file: header labels in file order plus its rows.
type Dataset struct {
	Name    string
	Fields  []string
	Records []Record
}

// Values returns the column of field in record order, "" where absent.
func (d Dataset) Values(field string) []string {
	values := make([]string, 0, len(d.Records))
	for _, r := range d.Records {
		values = append(values, r[field])
	}
	return values
}

// Read parses the TSV file at path. The dataset is named after the file
// without its extension, e.g. "Comunidades".
func Read(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed opening %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ds, err := Parse(name, f)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed reading %s: %w", path, err)
	}
	return ds, nil
}

// Parse reads a UTF-8 tab-separated stream whose first line is the header.
// A leading byte order mark is dropped and blank lines are skipped. Rows
// may be shorter or longer than the header; surplus fields are ignored.
// Bytes that are not valid UTF-8 fail the parse with encoding.ErrInvalidUTF8
// instead of being replaced.
func Parse(name string, in io.Reader) (Dataset, error) {
	decoded := transform.NewReader(in, transform.Chain(encoding.UTF8Validator, unicode.BOMOverride(transform.Nop)))

	r := csv.NewReader(decoded)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, errors.New("missing header line")
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("header: %w", err)
	}

	ds := Dataset{Name: name, Fields: header}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("row %d: %w", len(ds.Records)+1, err)
		}

		rec := make(Record, len(header))
		for i, field := range header {
			if i < len(row) {
				rec[field] = row[i]
			}
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}
