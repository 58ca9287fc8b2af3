package services

import (
	"sort"
	"time"

	"sales-dashboard/models"
)

// emptyRange contains no days: its end precedes its start.
var emptyRange = models.DateRange{
	Start: time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC),
	End:   time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
}

// Dataset is the read-only provider of the loaded transaction table. It is
// built once and shared by every view; none of its methods mutate it.
type Dataset struct {
	rows    []models.TransactionRow
	columns map[models.Column]bool
	bounds  models.DateRange
}

// NewDataset wraps cleaned rows. columns lists the columns the source declared;
// a nil slice means every column is present.
func NewDataset(rows []models.TransactionRow, columns []models.Column) *Dataset {
	ds := &Dataset{rows: rows}
	if columns != nil {
		ds.columns = make(map[models.Column]bool, len(columns))
		for _, c := range columns {
			ds.columns[c] = true
		}
		if ds.columns[models.ColOrderDate] {
			ds.columns[models.ColOrderMonth] = true
		}
	}

	for i, r := range rows {
		if i == 0 || r.OrderDate.Before(ds.bounds.Start) {
			ds.bounds.Start = r.OrderDate
		}
		if i == 0 || r.OrderDate.After(ds.bounds.End) {
			ds.bounds.End = r.OrderDate
		}
	}
	return ds
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Rows returns a copy of every row.
func (d *Dataset) Rows() []models.TransactionRow {
	out := make([]models.TransactionRow, len(d.rows))
	copy(out, d.rows)
	return out
}

// Each calls fn for every row in load order.
func (d *Dataset) Each(fn func(models.TransactionRow)) {
	for _, r := range d.rows {
		fn(r)
	}
}

// HasColumn reports whether the source provided col.
func (d *Dataset) HasColumn(col models.Column) bool {
	if d.columns == nil {
		return true
	}
	return d.columns[col]
}

// Bounds returns the earliest and latest order dates. It is empty for an empty dataset.
func (d *Dataset) Bounds() models.DateRange {
	if len(d.rows) == 0 {
		return emptyRange
	}
	return d.bounds
}

// MaxDelay returns the largest line-item shipping delay in days, 0 for an empty dataset.
func (d *Dataset) MaxDelay() int {
	maxDelay := 0
	for i, r := range d.rows {
		if delay := r.DelayDays(); i == 0 || delay > maxDelay {
			maxDelay = delay
		}
	}
	return maxDelay
}

// DistinctValues returns the sorted non-empty values of col.
func (d *Dataset) DistinctValues(col models.Column) []string {
	if !d.HasColumn(col) {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, r := range d.rows {
		v := r.Value(col)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
