package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"sales-dashboard/models"
)

// customerTable returns n customers whose sales grow with their index.
func customerTable(n int) models.AggregatedTable {
	rows := make([]models.TransactionRow, n)
	for i := range rows {
		rows[i] = models.TransactionRow{
			OrderID:    fmt.Sprintf("O%d", i),
			CustomerID: fmt.Sprintf("C%03d", i),
			OrderDate:  day("2015-06-01"),
			Sales:      decimal.NewFromInt(int64(i + 1)),
		}
	}
	return Aggregate(rows, []models.Column{models.ColCustomerID}, SumSales())
}

func TestClampWindow(t *testing.T) {
	tests := []struct {
		name      string
		in        models.RankWindow
		want      models.RankWindow
		truncated bool
	}{
		{"unchanged", models.RankWindow{Min: 1, Max: 10}, models.RankWindow{Min: 1, Max: 10}, false},
		{"min below one", models.RankWindow{Min: -3, Max: 5}, models.RankWindow{Min: 1, Max: 5}, false},
		{"max below min", models.RankWindow{Min: 8, Max: 2}, models.RankWindow{Min: 8, Max: 8}, false},
		{"exactly the cap", models.RankWindow{Min: 1, Max: 25}, models.RankWindow{Min: 1, Max: 25}, false},
		{"too wide", models.RankWindow{Min: 1, Max: 300}, models.RankWindow{Min: 1, Max: 25}, true},
		{"too wide offset", models.RankWindow{Min: 11, Max: 100}, models.RankWindow{Min: 11, Max: 35}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := ClampWindow(tt.in)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("got %+v %v, want %+v %v", got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestRankWideWindowIsCapped(t *testing.T) {
	ranked := Rank(customerTable(300), MetricSales, models.RankWindow{Min: 1, Max: 300})

	if ranked.Len() != 25 {
		t.Errorf("rows: got %d, want 25", ranked.Len())
	}
	if ranked.Window.Max != 25 || !ranked.Truncated {
		t.Errorf("window: got %+v truncated=%v, want Max 25 truncated", ranked.Window, ranked.Truncated)
	}
	if ranked.Requested.Max != 300 {
		t.Errorf("requested: got %+v", ranked.Requested)
	}
	if first := ranked.Rows[0]; first.Rank != 1 || first.Key[0] != "C299" {
		t.Errorf("top row: got rank %d key %v, want 1 C299", first.Rank, first.Key)
	}
}

func TestRankWindowSlice(t *testing.T) {
	ranked := Rank(customerTable(30), MetricSales, models.RankWindow{Min: 3, Max: 5})
	want := []string{"C027", "C026", "C025"}
	if ranked.Len() != len(want) {
		t.Fatalf("rows: got %d, want %d", ranked.Len(), len(want))
	}
	for i, w := range want {
		if got := ranked.Rows[i]; got.Key[0] != w || got.Rank != i+3 {
			t.Errorf("row %d: got %v rank %d, want %s rank %d", i, got.Key, got.Rank, w, i+3)
		}
	}
}

func TestRankIsIdempotent(t *testing.T) {
	w := models.RankWindow{Min: 2, Max: 6}
	once := Rank(customerTable(10), MetricSales, w)
	twice := Rank(once.AggregatedTable, MetricSales, w)

	if once.Len() != twice.Len() {
		t.Fatalf("rows: got %d, want %d", twice.Len(), once.Len())
	}
	for i := range once.Rows {
		a, b := once.Rows[i], twice.Rows[i]
		if a.Rank != b.Rank || a.Key[0] != b.Key[0] {
			t.Errorf("row %d: got %v rank %d, want %v rank %d", i, b.Key, b.Rank, a.Key, a.Rank)
		}
	}
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	table := models.AggregatedTable{
		Keys:    []models.Column{models.ColCustomerID},
		Metrics: []string{MetricSales},
		Rows: []models.AggRow{
			{Key: []string{"a"}, Values: map[string]decimal.Decimal{MetricSales: decimal.NewFromInt(5)}},
			{Key: []string{"b"}, Values: map[string]decimal.Decimal{MetricSales: decimal.NewFromInt(9)}},
			{Key: []string{"c"}, Values: map[string]decimal.Decimal{MetricSales: decimal.NewFromInt(5)}},
		},
	}
	sorted := SortDesc(table, MetricSales)
	got := []string{sorted.Rows[0].Key[0], sorted.Rows[1].Key[0], sorted.Rows[2].Key[0]}
	if got[0] != "b" || got[1] != "a" || got[2] != "c" {
		t.Errorf("order: got %v, want [b a c]", got)
	}
	if table.Rows[0].Rank != 0 {
		t.Error("SortDesc modified its input")
	}
}

func TestRankOutOfRangeWindowIsEmpty(t *testing.T) {
	ranked := Rank(customerTable(5), MetricSales, models.RankWindow{Min: 10, Max: 20})
	if ranked.Len() != 0 {
		t.Errorf("rows: got %d, want 0", ranked.Len())
	}
	empty := Rank(models.AggregatedTable{}, MetricSales, models.RankWindow{Min: 1, Max: 10})
	if empty.Len() != 0 {
		t.Errorf("empty table: got %d rows", empty.Len())
	}
}
