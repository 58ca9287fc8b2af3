package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeName = regexp.MustCompile(`[^a-z0-9]+`)

// CSVWriter exports report tables as one CSV file per table inside a directory.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates the export directory if needed.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create export dir: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

// FileName returns the file a table called name is written to.
func (c *CSVWriter) FileName(name string) string {
	slug := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if slug == "" {
		slug = "table"
	}
	return filepath.Join(c.dir, slug+".csv")
}

// WriteTable writes header and rows, truncating any previous export of the same table.
func (c *CSVWriter) WriteTable(name string, header []string, rows [][]string) (err error) {
	path := c.FileName(name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("csv: close %q: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("csv: write rows: %w", err)
	}
	return nil
}
