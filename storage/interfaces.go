package storage

import "sales-dashboard/models"

// RawDataset is an unparsed dataset together with the columns its header declared.
type RawDataset struct {
	Columns []models.Column
	Rows    []*models.RawTransaction
}

// HasColumn reports whether the source declared col.
func (d *RawDataset) HasColumn(col models.Column) bool {
	for _, c := range d.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// RawReader is the interface any file-based dataset source must satisfy.
type RawReader interface {
	ReadAll() (*RawDataset, error)
}

// TransactionStore persists and returns already-cleaned rows.
type TransactionStore interface {
	Write(rows []models.TransactionRow) error
	FetchAll() ([]models.TransactionRow, error)
	Close() error
}
