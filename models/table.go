package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggRow is one group of an AggregatedTable: the key values in table key
// order plus one value per named reduction.
type AggRow struct {
	Key    []string
	Values map[string]decimal.Decimal
	// Rank is 1-based once the table has been ranked, 0 otherwise.
	Rank int
}

// Metric returns the named reduction value, zero when absent.
func (r AggRow) Metric(name string) decimal.Decimal {
	return r.Values[name]
}

// AggregatedTable is the output of a group-by: one row per observed key combination.
type AggregatedTable struct {
	Keys    []Column
	Metrics []string
	Rows    []AggRow
	// RankedBy is the metric the rows were ranked by, empty when unranked.
	RankedBy string
}

// Len returns the number of groups.
func (t AggregatedTable) Len() int { return len(t.Rows) }

// KeyValue returns the value of key column col for row, or "" if col is not a key.
func (t AggregatedTable) KeyValue(row AggRow, col Column) string {
	for i, k := range t.Keys {
		if k == col && i < len(row.Key) {
			return row.Key[i]
		}
	}
	return ""
}

// RankWindow is an inclusive range of 1-based ranks.
type RankWindow struct {
	Min int
	Max int
}

// Span returns the number of ranks covered by the window.
func (w RankWindow) Span() int { return w.Max - w.Min + 1 }

// RankedTable is an aggregated table sorted by a metric and sliced to a rank window.
type RankedTable struct {
	AggregatedTable
	Requested RankWindow
	Window    RankWindow
	// Truncated is set when the requested window exceeded the display cap.
	Truncated bool
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Empty reports whether the range contains no days.
func (r DateRange) Empty() bool { return r.End.Before(r.Start) }

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// PeriodPoint is the summed sales of one period, optionally for one category.
type PeriodPoint struct {
	Period   time.Time
	Category string
	Sales    decimal.Decimal
}

// TimeSeries is a resampled sales series.
type TimeSeries struct {
	Granularity string
	ByCategory  bool
	Points      []PeriodPoint
}

// Periods returns the number of distinct periods in the series.
func (s TimeSeries) Periods() int {
	seen := make(map[time.Time]struct{}, len(s.Points))
	for _, p := range s.Points {
		seen[p.Period] = struct{}{}
	}
	return len(seen)
}

// Total sums sales across every point of the series.
func (s TimeSeries) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Points {
		total = total.Add(p.Sales)
	}
	return total
}
