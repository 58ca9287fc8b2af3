package services

import (
	"sort"

	"sales-dashboard/models"
)

// MaxRankSpan is the most rows a rank window may show.
const MaxRankSpan = 25

// ClampWindow makes w usable: Min is at least 1, the span is at least 1 and at
// most MaxRankSpan. The bool reports whether the span had to be cut.
func ClampWindow(w models.RankWindow) (models.RankWindow, bool) {
	if w.Min < 1 {
		w.Min = 1
	}
	if w.Max < w.Min {
		w.Max = w.Min
	}
	if w.Span() > MaxRankSpan {
		w.Max = w.Min + MaxRankSpan - 1
		return w, true
	}
	return w, false
}

// SortDesc returns a copy of t sorted descending by metric with 1-based ranks
// assigned. Ties keep their original order. A table already ranked by the
// same metric keeps its ranks.
func SortDesc(t models.AggregatedTable, metric string) models.AggregatedTable {
	out := t
	out.Rows = append([]models.AggRow(nil), t.Rows...)

	if t.RankedBy == metric {
		sort.SliceStable(out.Rows, func(i, j int) bool { return out.Rows[i].Rank < out.Rows[j].Rank })
		return out
	}

	sort.SliceStable(out.Rows, func(i, j int) bool {
		return out.Rows[i].Metric(metric).GreaterThan(out.Rows[j].Metric(metric))
	})
	for i := range out.Rows {
		out.Rows[i].Rank = i + 1
	}
	out.RankedBy = metric
	return out
}

// Rank sorts t by metric and keeps the rows whose rank lies in the clamped window.
// An out-of-range window yields an empty table.
func Rank(t models.AggregatedTable, metric string, w models.RankWindow) models.RankedTable {
	window, truncated := ClampWindow(w)
	sorted := SortDesc(t, metric)

	kept := make([]models.AggRow, 0, min(window.Span(), len(sorted.Rows)))
	for _, row := range sorted.Rows {
		if row.Rank >= window.Min && row.Rank <= window.Max {
			kept = append(kept, row)
		}
	}
	sorted.Rows = kept

	return models.RankedTable{
		AggregatedTable: sorted,
		Requested:       w,
		Window:          window,
		Truncated:       truncated,
	}
}
