package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"sales-dashboard/models"
	"sales-dashboard/utils"
)

type exportedTable struct {
	header []string
	rows   [][]string
}

type memExporter struct {
	tables map[string]exportedTable
	err    error
}

func (m *memExporter) WriteTable(name string, header []string, rows [][]string) error {
	if m.tables == nil {
		m.tables = make(map[string]exportedTable)
	}
	m.tables[name] = exportedTable{header: header, rows: rows}
	return m.err
}

func TestPrinterFormatting(t *testing.T) {
	pr := NewPrinter(&bytes.Buffer{}, "en-US", nil, utils.Discard())

	if got := pr.Money(dec("1234.5")); got != "$1,234.50" {
		t.Errorf("Money: got %q, want $1,234.50", got)
	}
	if got := pr.Count(1234567); got != "1,234,567" {
		t.Errorf("Count: got %q, want 1,234,567", got)
	}
	if got := pr.Percent(12.345); got != "12.3%" {
		t.Errorf("Percent: got %q, want 12.3%%", got)
	}
	if got := pr.Days(2.5); got != "2.50" {
		t.Errorf("Days: got %q, want 2.50", got)
	}
}

func TestPrinterUnknownLocale(t *testing.T) {
	pr := NewPrinter(&bytes.Buffer{}, "not a locale!", nil, utils.Discard())
	if got := pr.Count(1000); got != "1,000" {
		t.Errorf("Count: got %q, want 1,000", got)
	}
}

func TestPrintSalesExportsCharts(t *testing.T) {
	var out bytes.Buffer
	exp := &memExporter{}
	pr := NewPrinter(&out, "en-US", exp, utils.Discard())

	pr.PrintSales(newTestService(sampleDataset()).Sales(Filter{}))

	text := out.String()
	for _, want := range []string{"Total Sales", "$560.85", "Sales by Category", "Technology"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}

	cat, ok := exp.tables["sales_by_category"]
	if !ok {
		t.Fatalf("exported tables: got %v", exp.tables)
	}
	if len(cat.rows) != 3 || cat.rows[0][0] != "Technology" || cat.rows[0][1] != "350.20" {
		t.Errorf("sales_by_category rows: got %v", cat.rows)
	}
	if _, ok := exp.tables["sales_by_region"]; !ok {
		t.Error("sales_by_region not exported")
	}
}

func TestPrintCustomersExportsPerSegment(t *testing.T) {
	exp := &memExporter{}
	pr := NewPrinter(&bytes.Buffer{}, "en-US", exp, utils.Discard())

	pr.PrintCustomers(newTestService(sampleDataset()).CustomerSpend(Filter{}, models.RankWindow{Min: 1, Max: 10}))

	consumer, ok := exp.tables["top_customers_Consumer"]
	if !ok {
		t.Fatalf("exported tables: got %v", exp.tables)
	}
	want := []string{"1", "C3", "Cid", "1", "$300.00", "$300.00"}
	row := consumer.rows[0]
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %s: got %q, want %q", consumer.header[i], row[i], want[i])
		}
	}
	if len(exp.tables) != 3 {
		t.Errorf("tables: got %d, want one per segment", len(exp.tables))
	}
}

func TestPrintShippingAndTimeline(t *testing.T) {
	var out bytes.Buffer
	exp := &memExporter{}
	pr := NewPrinter(&out, "en-US", exp, utils.Discard())
	svc := newTestService(sampleDataset())

	pr.PrintShipping(svc.Shipping(Filter{}, 3))
	pr.PrintTimeline(svc.SalesOverTime(Filter{}, Monthly, ResampleOptions{}))
	pr.PrintStates(svc.StateMap(Filter{}))

	for _, name := range []string{
		"delay_distribution", "delay_by_ship_mode", "late_orders_over_time",
		"late_line_items", "sales_over_time", "state_sales",
	} {
		if _, ok := exp.tables[name]; !ok {
			t.Errorf("table %q not exported", name)
		}
	}
	if got := len(exp.tables["late_line_items"].rows); got != 3 {
		t.Errorf("late line items: got %d, want 3", got)
	}
	if got := exp.tables["sales_over_time"].rows[1]; got[0] != "2014-02-01" || got[1] != "$325.00" {
		t.Errorf("sales_over_time row: got %v", got)
	}
	if !strings.Contains(out.String(), "40.0%") {
		t.Error("shipping output missing the late percentage")
	}
}

func TestPrinterExportErrorIsLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := utils.NewLoggerTo(&logs, &logs, utils.LevelWarn)
	exp := &memExporter{err: errors.New("disk full")}
	pr := NewPrinter(&bytes.Buffer{}, "en-US", exp, logger)

	pr.PrintStates(newTestService(sampleDataset()).StateMap(Filter{}))

	if !strings.Contains(logs.String(), "disk full") {
		t.Errorf("logs: got %q, want the export error", logs.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"Office Supplies", 20, "Office Supplies"},
		{"A very long category name", 10, "A very ..."},
		{"Über-Möbelhaus Zürich", 8, "Über-..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d): got %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
