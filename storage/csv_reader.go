package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// CSVReader reads the transactions dataset from a CSV file.
type CSVReader struct {
	path string
}

// NewCSVReader returns a reader for the CSV file at path.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// ReadAll opens the file and parses every row.
func (c *CSVReader) ReadAll() (*RawDataset, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", c.path, err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV parses a header row followed by data rows. Rows may have a ragged
// number of fields; missing trailing cells read as empty.
func ParseCSV(r io.Reader) (*RawDataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	mapping, present, err := mapHeader(header)
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read rows: %w", err)
	}

	return &RawDataset{Columns: present, Rows: buildRaw(mapping, records)}, nil
}
