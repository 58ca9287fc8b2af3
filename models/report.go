package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoticeLevel classifies a message shown alongside a report.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeSuccess NoticeLevel = "success"
)

// Notice is an informational message for the reader, never an error.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// SalesReport backs the overall sales page.
type SalesReport struct {
	TotalSales    decimal.Decimal
	TotalOrders   int
	AvgOrderValue decimal.Decimal
	ByCategory    AggregatedTable
	ByRegion      AggregatedTable
	Notices       []Notice
}

// SegmentCustomers is the ranked customer table of one segment.
type SegmentCustomers struct {
	Segment   string
	Customers RankedTable
}

// CustomerSpendReport backs the top customers page.
type CustomerSpendReport struct {
	Window    RankWindow
	Truncated bool
	Segments  []SegmentCustomers
	Notices   []Notice
}

// StateSales is the total sales of one mappable US state.
type StateSales struct {
	State  string
	Abbrev string
	Sales  decimal.Decimal
}

// StateSalesReport backs the choropleth page.
type StateSalesReport struct {
	States   []StateSales
	MinSales decimal.Decimal
	MaxSales decimal.Decimal
	Notices  []Notice
}

// OrderDelay is the order-level roll-up of shipping delay.
type OrderDelay struct {
	OrderID   string
	OrderDate time.Time
	DelayDays int
	Late      bool
}

// HistogramBin counts line items whose delay falls in [Lower, Upper).
// The last bin of a histogram is closed on both ends.
type HistogramBin struct {
	Lower  float64
	Upper  float64
	OnTime int
	Late   int
}

// LateMonth summarises late orders for one order month.
type LateMonth struct {
	Month       time.Time
	TotalOrders int
	LateOrders  int
	PctLate     float64
}

// ShippingReport backs the shipping delay KPI page.
type ShippingReport struct {
	Threshold    int
	MaxThreshold int
	TotalOrders  int
	LateOrders   int
	AvgDelay     float64
	P95Delay     float64
	PctLate      float64
	Histogram    []HistogramBin
	ByShipMode   AggregatedTable
	LateOverTime []LateMonth
	LateLines    []TransactionRow
	Notices      []Notice
}

// TimelineReport backs the sales over time page.
type TimelineReport struct {
	Granularity  string
	Requested    DateRange
	Range        DateRange
	Adjusted     bool
	Series       TimeSeries
	TotalSales   decimal.Decimal
	AvgPerPeriod decimal.Decimal
	Periods      int
	Notices      []Notice
}
