package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"sales-dashboard/models"
	"sales-dashboard/utils"
)

var (
	// amountNoise strips the currency symbol and thousands separators.
	amountNoise = strings.NewReplacer("$", "", ",", "")

	// dateLayouts are tried in order; the dataset stores dates day-first.
	dateLayouts = []string{"2/1/2006", "2-1-2006", "2.1.2006", "2006-01-02"}
)

// Cleaner transforms RawTransactions into typed TransactionRows.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean parses raw rows. Rows without an order id or with unparsable dates or
// sales are dropped with a warning. Duplicate row ids keep the first
// occurrence. Rows without a usable row id get ids above the largest id in the file.
func (c *Cleaner) Clean(raw []*models.RawTransaction) []models.TransactionRow {
	seen := make(map[int64]struct{})
	result := make([]models.TransactionRow, 0, len(raw))
	var missingID []int
	var maxID int64

	for i, r := range raw {
		row, err := c.cleanRow(r)
		if err != nil {
			c.logger.Warn("[cleaner] Dropping line %d: %v", i+2, err)
			continue
		}
		if row.RowID <= 0 {
			missingID = append(missingID, len(result))
			result = append(result, row)
			continue
		}
		if _, dup := seen[row.RowID]; dup {
			c.logger.Warn("[cleaner] Dropping line %d: duplicate row id %d", i+2, row.RowID)
			continue
		}
		seen[row.RowID] = struct{}{}
		maxID = max(maxID, row.RowID)
		result = append(result, row)
	}

	for n, idx := range missingID {
		result[idx].RowID = maxID + int64(n) + 1
	}
	if len(missingID) > 0 {
		c.logger.Debug("[cleaner] Assigned row ids to %d rows without one", len(missingID))
	}

	c.logger.Info("[cleaner] Cleaned %d → %d rows (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

func (c *Cleaner) cleanRow(r *models.RawTransaction) (models.TransactionRow, error) {
	orderID := strings.TrimSpace(r.OrderID)
	if orderID == "" {
		return models.TransactionRow{}, fmt.Errorf("empty order id")
	}

	orderDate, err := ParseDayFirst(r.OrderDate)
	if err != nil {
		return models.TransactionRow{}, fmt.Errorf("order %s: order date: %w", orderID, err)
	}
	shipDate := orderDate
	if strings.TrimSpace(r.ShipDate) != "" {
		if shipDate, err = ParseDayFirst(r.ShipDate); err != nil {
			return models.TransactionRow{}, fmt.Errorf("order %s: ship date: %w", orderID, err)
		}
	}

	sales, err := parseAmount(r.Sales)
	if err != nil {
		return models.TransactionRow{}, fmt.Errorf("order %s: sales: %w", orderID, err)
	}

	rowID, _ := strconv.ParseInt(strings.TrimSpace(r.RowID), 10, 64)

	return models.TransactionRow{
		RowID:        rowID,
		OrderID:      orderID,
		OrderDate:    orderDate,
		ShipDate:     shipDate,
		ShipMode:     normaliseText(r.ShipMode),
		CustomerID:   normaliseText(r.CustomerID),
		CustomerName: normaliseText(r.CustomerName),
		Segment:      normaliseText(r.Segment),
		Country:      normaliseText(r.Country),
		City:         normaliseText(r.City),
		State:        normaliseText(r.State),
		PostalCode:   normaliseText(r.PostalCode),
		Region:       normaliseText(r.Region),
		ProductID:    normaliseText(r.ProductID),
		Category:     normaliseText(r.Category),
		SubCategory:  normaliseText(r.SubCategory),
		ProductName:  normaliseText(r.ProductName),
		Sales:        sales,
	}, nil
}

// ParseDayFirst parses a calendar date written day-first ("08/11/2017" is 8 November).
// The result is midnight UTC.
func ParseDayFirst(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// parseAmount reads "1,200.50", "$14.62", "-3" or "1.2e3" as an exact decimal.
// Empty is zero. Anything else left after removing "$" and "," is an error.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(amountNoise.Replace(raw))
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return d, nil
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
