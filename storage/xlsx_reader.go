package storage

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads the transactions dataset from the first sheet of a workbook.
type XLSXReader struct {
	path string
}

// NewXLSXReader returns a reader for the workbook at path.
func NewXLSXReader(path string) *XLSXReader {
	return &XLSXReader{path: path}
}

// ReadAll opens the workbook and parses the first sheet.
func (x *XLSXReader) ReadAll() (*RawDataset, error) {
	f, err := excelize.OpenFile(x.path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %q: %w", x.path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("xlsx: %q has no sheets", x.path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx: sheet %q is empty", sheet)
	}

	mapping, present, err := mapHeader(rows[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	return &RawDataset{Columns: present, Rows: buildRaw(mapping, rows[1:])}, nil
}
