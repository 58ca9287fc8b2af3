package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/models"
)

// AllCategories labels a series that is not broken down by category.
const AllCategories = "All Categories"

// Granularity is the calendar period used to bucket order dates.
type Granularity int

const (
	Daily Granularity = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

func (g Granularity) String() string {
	switch g {
	case Daily:
		return "Daily"
	case Weekly:
		return "Weekly"
	case Quarterly:
		return "Quarterly"
	case Yearly:
		return "Yearly"
	}
	return "Monthly"
}

// ParseGranularity accepts "Daily"/"D", "Weekly"/"W", "Monthly"/"M",
// "Quarterly"/"Q" and "Yearly"/"Y" in any case. Unknown input yields Monthly and false.
func ParseGranularity(s string) (Granularity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return Daily, true
	case "weekly", "week", "w":
		return Weekly, true
	case "monthly", "month", "m":
		return Monthly, true
	case "quarterly", "quarter", "q":
		return Quarterly, true
	case "yearly", "year", "annual", "y":
		return Yearly, true
	}
	return Monthly, false
}

// PeriodStart returns the first day of the period containing t. Weeks start on Monday.
func PeriodStart(t time.Time, g Granularity) time.Time {
	y, m, d := t.Date()
	switch g {
	case Daily:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case Weekly:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, time.UTC)
	case Quarterly:
		qm := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, qm, 1, 0, 0, 0, 0, time.UTC)
	case Yearly:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// NextPeriod returns the start of the period after the one containing t.
func NextPeriod(t time.Time, g Granularity) time.Time {
	start := PeriodStart(t, g)
	switch g {
	case Daily:
		return start.AddDate(0, 0, 1)
	case Weekly:
		return start.AddDate(0, 0, 7)
	case Quarterly:
		return start.AddDate(0, 3, 0)
	case Yearly:
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}

// PeriodEnd returns the last day of the period containing t.
func PeriodEnd(t time.Time, g Granularity) time.Time {
	return NextPeriod(t, g).AddDate(0, 0, -1)
}

// SnapRange widens r outward to whole periods of g and clips the result to
// bounds. Zero ends of r default to the bounds. The bool reports whether the
// returned range differs from the requested one. An inverted r is returned as is.
func SnapRange(r models.DateRange, g Granularity, bounds models.DateRange) (models.DateRange, bool) {
	if r.Start.IsZero() {
		r.Start = bounds.Start
	}
	if r.End.IsZero() {
		r.End = bounds.End
	}
	requested := models.DateRange{Start: truncateDay(r.Start), End: truncateDay(r.End)}
	if requested.Empty() {
		return requested, false
	}

	snapped := models.DateRange{
		Start: PeriodStart(requested.Start, g),
		End:   PeriodEnd(requested.End, g),
	}
	if !bounds.Empty() {
		if snapped.Start.Before(bounds.Start) {
			snapped.Start = truncateDay(bounds.Start)
		}
		if snapped.End.After(bounds.End) {
			snapped.End = truncateDay(bounds.End)
		}
	}

	adjusted := !snapped.Start.Equal(requested.Start) || !snapped.End.Equal(requested.End)
	return snapped, adjusted
}

// ResampleOptions controls Resample.
type ResampleOptions struct {
	// ByCategory produces one series per product category.
	ByCategory bool
	// Continuous fills periods without sales with zero between the first and
	// last observed period of each series.
	Continuous bool
}

// Resample sums sales per period of g. Series are ordered by category name and
// points by period.
func Resample(rows []models.TransactionRow, g Granularity, opts ResampleOptions) models.TimeSeries {
	ts := models.TimeSeries{Granularity: g.String(), ByCategory: opts.ByCategory}
	if len(rows) == 0 {
		return ts
	}

	sums := make(map[string]map[time.Time]decimal.Decimal)
	for _, r := range rows {
		label := AllCategories
		if opts.ByCategory {
			label = r.Category
		}
		if sums[label] == nil {
			sums[label] = make(map[time.Time]decimal.Decimal)
		}
		p := PeriodStart(r.OrderDate, g)
		sums[label][p] = sums[label][p].Add(r.Sales)
	}

	labels := make([]string, 0, len(sums))
	for label := range sums {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		periods := make([]time.Time, 0, len(sums[label]))
		for p := range sums[label] {
			periods = append(periods, p)
		}
		sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

		if opts.Continuous {
			first, last := periods[0], periods[len(periods)-1]
			periods = periods[:0]
			for p := first; !p.After(last); p = NextPeriod(p, g) {
				periods = append(periods, p)
			}
		}

		for _, p := range periods {
			ts.Points = append(ts.Points, models.PeriodPoint{
				Period:   p,
				Category: label,
				Sales:    sums[label][p],
			})
		}
	}
	return ts
}
