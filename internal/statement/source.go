// Package statement reads raw statement rows from delimited exports and
// merges them into a deduplicated transaction set.
package statement

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Tinclon/transaction-tracker/internal/fileutils"
	"github.com/Tinclon/transaction-tracker/internal/models"

	"github.com/gocarina/gocsv"
)

// recordFields is the number of columns of a statement row.
const recordFields = 5

// Source produces the raw rows of one statement.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Read returns every row in file order.
	Read(ctx context.Context) ([]models.RawRecord, error)
}

// FileSource reads a headerless delimited statement file.
type FileSource struct {
	Path      string
	Delimiter rune
}

// NewFileSource creates a FileSource. A zero delimiter means a comma.
func NewFileSource(path string, delimiter rune) *FileSource {
	return &FileSource{Path: path, Delimiter: delimiter}
}

// Name returns the base name of the file.
func (s *FileSource) Name() string {
	return filepath.Base(s.Path)
}

// Read implements Source.
func (s *FileSource) Read(ctx context.Context) ([]models.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(s.Path) // #nosec G304 -- statement paths come from the configured directory
	if err != nil {
		return nil, fmt.Errorf("error opening statement: %w", err)
	}
	defer func() { _ = file.Close() }()

	return decode(file, s.Delimiter)
}

// ReaderSource reads statement rows from an in-memory reader.
type ReaderSource struct {
	name      string
	r         io.Reader
	delimiter rune
}

// NewReaderSource wraps r as a source called name.
func NewReaderSource(name string, r io.Reader, delimiter rune) *ReaderSource {
	return &ReaderSource{name: name, r: r, delimiter: delimiter}
}

// Name implements Source.
func (s *ReaderSource) Name() string {
	return s.name
}

// Read implements Source.
func (s *ReaderSource) Read(ctx context.Context) ([]models.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decode(s.r, s.delimiter)
}

func decode(r io.Reader, delimiter rune) ([]models.RawRecord, error) {
	reader := csv.NewReader(r)
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	reader.FieldsPerRecord = recordFields
	reader.LazyQuotes = true

	var records []models.RawRecord
	if err := gocsv.UnmarshalCSVWithoutHeaders(reader, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("error decoding statement rows: %w", err)
	}
	return records, nil
}

// DiscoverSources returns a FileSource for every regular file in dir whose
// name ends with extension, sorted by name.
func DiscoverSources(dir, extension string, delimiter rune) ([]Source, error) {
	names, err := fileutils.ListFilesWithExtension(dir, extension)
	if err != nil {
		return nil, fmt.Errorf("error reading statements directory: %w", err)
	}

	sources := make([]Source, 0, len(names))
	for _, name := range names {
		sources = append(sources, NewFileSource(filepath.Join(dir, name), delimiter))
	}
	return sources, nil
}
