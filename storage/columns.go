package storage

import (
	"fmt"
	"strings"

	"sales-dashboard/models"
)

// requiredColumns must be present in every dataset source.
var requiredColumns = []models.Column{
	models.ColOrderID,
	models.ColOrderDate,
	models.ColSales,
}

// knownColumns lists every column the loader understands, in file order.
var knownColumns = []models.Column{
	models.ColRowID, models.ColOrderID, models.ColOrderDate, models.ColShipDate,
	models.ColShipMode, models.ColCustomerID, models.ColCustomerName, models.ColSegment,
	models.ColCountry, models.ColCity, models.ColState, models.ColPostalCode,
	models.ColRegion, models.ColProductID, models.ColCategory, models.ColSubCategory,
	models.ColProductName, models.ColSales,
}

// normaliseHeader folds "Sub-Category", "sub_category" and " SUB CATEGORY " to one key.
func normaliseHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer("_", " ", "-", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

// mapHeader resolves header cells to known columns. Unknown headers are skipped.
func mapHeader(header []string) (map[int]models.Column, []models.Column, error) {
	lookup := make(map[string]models.Column, len(knownColumns))
	for _, c := range knownColumns {
		lookup[normaliseHeader(string(c))] = c
	}

	mapping := make(map[int]models.Column)
	var present []models.Column
	seen := make(map[models.Column]bool)
	for i, h := range header {
		col, ok := lookup[normaliseHeader(h)]
		if !ok || seen[col] {
			continue
		}
		seen[col] = true
		mapping[i] = col
		present = append(present, col)
	}

	for _, req := range requiredColumns {
		if !seen[req] {
			return nil, nil, fmt.Errorf("missing required column %q", req)
		}
	}
	return mapping, present, nil
}

// buildRaw converts positional records into RawTransactions using a header mapping.
func buildRaw(mapping map[int]models.Column, records [][]string) []*models.RawTransaction {
	rows := make([]*models.RawTransaction, 0, len(records))
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		raw := &models.RawTransaction{}
		for i, val := range rec {
			if col, ok := mapping[i]; ok {
				setRaw(raw, col, strings.TrimSpace(val))
			}
		}
		rows = append(rows, raw)
	}
	return rows
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func setRaw(r *models.RawTransaction, col models.Column, val string) {
	switch col {
	case models.ColRowID:
		r.RowID = val
	case models.ColOrderID:
		r.OrderID = val
	case models.ColOrderDate:
		r.OrderDate = val
	case models.ColShipDate:
		r.ShipDate = val
	case models.ColShipMode:
		r.ShipMode = val
	case models.ColCustomerID:
		r.CustomerID = val
	case models.ColCustomerName:
		r.CustomerName = val
	case models.ColSegment:
		r.Segment = val
	case models.ColCountry:
		r.Country = val
	case models.ColCity:
		r.City = val
	case models.ColState:
		r.State = val
	case models.ColPostalCode:
		r.PostalCode = val
	case models.ColRegion:
		r.Region = val
	case models.ColProductID:
		r.ProductID = val
	case models.ColCategory:
		r.Category = val
	case models.ColSubCategory:
		r.SubCategory = val
	case models.ColProductName:
		r.ProductName = val
	case models.ColSales:
		r.Sales = val
	}
}
