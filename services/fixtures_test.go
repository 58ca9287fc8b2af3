package services

import (
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type lineSpec struct {
	order, customer, name, segment, region, state, category, shipMode string
	date                                                              string
	delay                                                             int
	sales                                                             string
}

func makeRow(s lineSpec) models.TransactionRow {
	od := day(s.date)
	return models.TransactionRow{
		OrderID:      s.order,
		CustomerID:   s.customer,
		CustomerName: s.name,
		Segment:      s.segment,
		Region:       s.region,
		State:        s.state,
		Category:     s.category,
		ShipMode:     s.shipMode,
		OrderDate:    od,
		ShipDate:     od.AddDate(0, 0, s.delay),
		Sales:        decimal.RequireFromString(s.sales),
	}
}

// sampleRows is a small dataset spanning 2014-01-05 to 2014-03-25.
func sampleRows() []models.TransactionRow {
	lines := []lineSpec{
		{"O1", "C1", "Ann", "Consumer", "West", "California", "Furniture", "Standard Class", "2014-01-05", 4, "100.10"},
		{"O1", "C1", "Ann", "Consumer", "West", "California", "Technology", "Standard Class", "2014-01-05", 6, "50.20"},
		{"O2", "C2", "Bob", "Corporate", "East", "New York", "Office Supplies", "First Class", "2014-02-11", 1, "25.00"},
		{"O3", "C3", "Cid", "Consumer", "South", "Texas", "Technology", "Second Class", "2014-02-20", 3, "300.00"},
		{"O4", "C1", "Ann", "Consumer", "West", "Hawaii", "Furniture", "Same Day", "2014-03-12", 0, "75.50"},
		{"O5", "C4", "Dee", "Home Office", "Central", "Illinois", "Office Supplies", "Standard Class", "2014-03-25", 5, "10.05"},
	}
	rows := make([]models.TransactionRow, len(lines))
	for i, s := range lines {
		rows[i] = makeRow(s)
		rows[i].RowID = int64(i + 1)
	}
	return rows
}

func sampleDataset() *Dataset {
	return NewDataset(sampleRows(), nil)
}
