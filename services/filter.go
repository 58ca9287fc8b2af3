package services

import (
	"time"

	"sales-dashboard/models"
)

// Predicate reports whether a row passes a filter.
type Predicate func(models.TransactionRow) bool

// Filter is a set of allowed values per facet plus an inclusive order date interval.
// A facet with no allowed values is unconstrained. A zero Start or End leaves
// that side of the interval open.
type Filter struct {
	Facets map[models.Column][]string
	Start  time.Time
	End    time.Time
}

// NewFilter returns a Filter constrained only by the given interval.
func NewFilter(start, end time.Time) Filter {
	return Filter{Facets: make(map[models.Column][]string), Start: start, End: end}
}

// With returns a copy of f that allows only values for col.
func (f Filter) With(col models.Column, values ...string) Filter {
	out := f.clone()
	out.Facets[col] = append([]string(nil), values...)
	return out
}

// Without returns a copy of f with no constraint on col.
func (f Filter) Without(col models.Column) Filter {
	out := f.clone()
	delete(out.Facets, col)
	return out
}

// WithRange returns a copy of f restricted to r.
func (f Filter) WithRange(r models.DateRange) Filter {
	out := f.clone()
	out.Start, out.End = r.Start, r.End
	return out
}

// Selected returns the allowed values of col, nil when unconstrained.
func (f Filter) Selected(col models.Column) []string {
	if len(f.Facets[col]) == 0 {
		return nil
	}
	return f.Facets[col]
}

func (f Filter) clone() Filter {
	out := Filter{Facets: make(map[models.Column][]string, len(f.Facets)), Start: f.Start, End: f.End}
	for k, v := range f.Facets {
		out.Facets[k] = v
	}
	return out
}

// Predicate builds the row predicate of f against ds. Facets on columns the
// dataset does not have are skipped. An interval whose end precedes its start
// matches nothing.
func (f Filter) Predicate(ds *Dataset) Predicate {
	start, end := truncateDay(f.Start), truncateDay(f.End)
	if !f.Start.IsZero() && !f.End.IsZero() && end.Before(start) {
		return func(models.TransactionRow) bool { return false }
	}

	type facetSet struct {
		col     models.Column
		allowed map[string]struct{}
	}
	var sets []facetSet
	for col, values := range f.Facets {
		if len(values) == 0 || (ds != nil && !ds.HasColumn(col)) {
			continue
		}
		allowed := make(map[string]struct{}, len(values))
		for _, v := range values {
			allowed[v] = struct{}{}
		}
		sets = append(sets, facetSet{col: col, allowed: allowed})
	}

	return func(r models.TransactionRow) bool {
		day := truncateDay(r.OrderDate)
		if !f.Start.IsZero() && day.Before(start) {
			return false
		}
		if !f.End.IsZero() && day.After(end) {
			return false
		}
		for _, s := range sets {
			if _, ok := s.allowed[r.Value(s.col)]; !ok {
				return false
			}
		}
		return true
	}
}

// Apply returns the rows of ds that pass f, as a new slice.
func (f Filter) Apply(ds *Dataset) []models.TransactionRow {
	pred := f.Predicate(ds)
	var out []models.TransactionRow
	ds.Each(func(r models.TransactionRow) {
		if pred(r) {
			out = append(out, r)
		}
	})
	return out
}

// Where returns the rows that satisfy pred, as a new slice.
func Where(rows []models.TransactionRow, pred Predicate) []models.TransactionRow {
	var out []models.TransactionRow
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
