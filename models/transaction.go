package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction holds one unparsed row exactly as read from the dataset file.
// Cleaning turns it into a TransactionRow.
type RawTransaction struct {
	RowID        string
	OrderID      string
	OrderDate    string
	ShipDate     string
	ShipMode     string
	CustomerID   string
	CustomerName string
	Segment      string
	Country      string
	City         string
	State        string
	PostalCode   string
	Region       string
	ProductID    string
	Category     string
	SubCategory  string
	ProductName  string
	Sales        string
}

// TransactionRow is a cleaned, typed line item of the retail dataset.
type TransactionRow struct {
	RowID        int64
	OrderID      string
	OrderDate    time.Time
	ShipDate     time.Time
	ShipMode     string
	CustomerID   string
	CustomerName string
	Segment      string
	Country      string
	City         string
	State        string
	PostalCode   string
	Region       string
	ProductID    string
	Category     string
	SubCategory  string
	ProductName  string
	Sales        decimal.Decimal
}

// DelayDays is the shipping delay in whole days. It is negative when the
// ship date precedes the order date.
func (r TransactionRow) DelayDays() int {
	return int(r.ShipDate.Sub(r.OrderDate).Hours() / 24)
}

// Column names a field of TransactionRow that can be used for grouping or filtering.
type Column string

const (
	ColRowID        Column = "Row ID"
	ColOrderID      Column = "Order ID"
	ColOrderDate    Column = "Order Date"
	ColShipDate     Column = "Ship Date"
	ColShipMode     Column = "Ship Mode"
	ColCustomerID   Column = "Customer ID"
	ColCustomerName Column = "Customer Name"
	ColSegment      Column = "Segment"
	ColCountry      Column = "Country"
	ColCity         Column = "City"
	ColState        Column = "State"
	ColPostalCode   Column = "Postal Code"
	ColRegion       Column = "Region"
	ColProductID    Column = "Product ID"
	ColCategory     Column = "Category"
	ColSubCategory  Column = "Sub-Category"
	ColProductName  Column = "Product Name"
	ColSales        Column = "Sales"

	// ColOrderMonth is a derived column: the first day of the order month.
	ColOrderMonth Column = "Order Month"
)

// Value returns the string value of a categorical column. Unknown columns yield "".
func (r TransactionRow) Value(col Column) string {
	switch col {
	case ColOrderID:
		return r.OrderID
	case ColShipMode:
		return r.ShipMode
	case ColCustomerID:
		return r.CustomerID
	case ColCustomerName:
		return r.CustomerName
	case ColSegment:
		return r.Segment
	case ColCountry:
		return r.Country
	case ColCity:
		return r.City
	case ColState:
		return r.State
	case ColPostalCode:
		return r.PostalCode
	case ColRegion:
		return r.Region
	case ColProductID:
		return r.ProductID
	case ColCategory:
		return r.Category
	case ColSubCategory:
		return r.SubCategory
	case ColProductName:
		return r.ProductName
	case ColOrderMonth:
		return time.Date(r.OrderDate.Year(), r.OrderDate.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}
	return ""
}
