package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"sales-dashboard/models"
)

// Metric names produced by the predefined reductions.
const (
	MetricSales         = "sales"
	MetricOrders        = "orders"
	MetricCustomers     = "customers"
	MetricAvgOrderValue = "avg_order_value"
	MetricLines         = "lines"
	MetricMinDelay      = "min_delay"
	MetricMaxDelay      = "max_delay"
	MetricMeanDelay     = "mean_delay"
)

// ReductionKind selects how a Reduction folds the rows of a group.
type ReductionKind int

const (
	ReduceSum ReductionKind = iota
	ReduceCountDistinct
	ReduceCount
	ReduceOrderMean
	ReduceDelayQuantile
	ReduceDelayMin
	ReduceDelayMax
	ReduceDelayMean
)

// Reduction is one named output column of an aggregation.
type Reduction struct {
	Name   string
	Kind   ReductionKind
	Column models.Column
	P      float64
}

// SumSales is sum(sales).
func SumSales() Reduction { return Reduction{Name: MetricSales, Kind: ReduceSum} }

// CountOrders is count_distinct(order_id).
func CountOrders() Reduction {
	return Reduction{Name: MetricOrders, Kind: ReduceCountDistinct, Column: models.ColOrderID}
}

// CountCustomers is count_distinct(customer_id).
func CountCustomers() Reduction {
	return Reduction{Name: MetricCustomers, Kind: ReduceCountDistinct, Column: models.ColCustomerID}
}

// AvgOrderValue is sum(sales) / max(count_distinct(order_id), 1).
func AvgOrderValue() Reduction { return Reduction{Name: MetricAvgOrderValue, Kind: ReduceOrderMean} }

// CountLines counts line items.
func CountLines() Reduction { return Reduction{Name: MetricLines, Kind: ReduceCount} }

// DelayQuantile is quantile(delay_days, p).
func DelayQuantile(p float64) Reduction {
	return Reduction{Name: QuantileName(p), Kind: ReduceDelayQuantile, P: p}
}

// DelayMin, DelayMax and DelayMean summarise line-item delay.
func DelayMin() Reduction  { return Reduction{Name: MetricMinDelay, Kind: ReduceDelayMin} }
func DelayMax() Reduction  { return Reduction{Name: MetricMaxDelay, Kind: ReduceDelayMax} }
func DelayMean() Reduction { return Reduction{Name: MetricMeanDelay, Kind: ReduceDelayMean} }

// QuantileName is the metric name of DelayQuantile(p), e.g. "delay_p95".
func QuantileName(p float64) string {
	return "delay_p" + strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", p*100), "0"), ".")
}

// group accumulates the rows sharing one key combination.
type group struct {
	key      []string
	sales    decimal.Decimal
	lines    int
	distinct map[models.Column]map[string]struct{}
	delays   []float64
}

// Aggregate groups rows by keys and evaluates reductions per group. Only key
// combinations present in rows appear; groups keep first-encounter order.
// With no keys the whole input forms one group, unless the input is empty.
func Aggregate(rows []models.TransactionRow, keys []models.Column, reductions ...Reduction) models.AggregatedTable {
	table := models.AggregatedTable{
		Keys:    append([]models.Column(nil), keys...),
		Metrics: make([]string, 0, len(reductions)),
	}
	for _, red := range reductions {
		table.Metrics = append(table.Metrics, red.Name)
	}
	if len(rows) == 0 {
		return table
	}

	needDistinct := map[models.Column]bool{}
	needDelays := false
	for _, red := range reductions {
		switch red.Kind {
		case ReduceCountDistinct:
			needDistinct[red.Column] = true
		case ReduceOrderMean:
			needDistinct[models.ColOrderID] = true
		case ReduceDelayQuantile, ReduceDelayMin, ReduceDelayMax, ReduceDelayMean:
			needDelays = true
		}
	}

	index := make(map[string]*group)
	var order []*group
	for _, r := range rows {
		key := make([]string, len(keys))
		for i, k := range keys {
			key[i] = r.Value(k)
		}
		id := strings.Join(key, "\x1f")

		g, ok := index[id]
		if !ok {
			g = &group{key: key, distinct: make(map[models.Column]map[string]struct{})}
			for col := range needDistinct {
				g.distinct[col] = make(map[string]struct{})
			}
			index[id] = g
			order = append(order, g)
		}

		g.sales = g.sales.Add(r.Sales)
		g.lines++
		for col := range needDistinct {
			g.distinct[col][r.Value(col)] = struct{}{}
		}
		if needDelays {
			g.delays = append(g.delays, float64(r.DelayDays()))
		}
	}

	table.Rows = make([]models.AggRow, 0, len(order))
	for _, g := range order {
		table.Rows = append(table.Rows, g.reduce(reductions))
	}
	return table
}

func (g *group) reduce(reductions []Reduction) models.AggRow {
	row := models.AggRow{Key: g.key, Values: make(map[string]decimal.Decimal, len(reductions))}
	if len(g.delays) > 0 {
		sort.Float64s(g.delays)
	}

	for _, red := range reductions {
		var v decimal.Decimal
		switch red.Kind {
		case ReduceSum:
			v = g.sales
		case ReduceCountDistinct:
			v = decimal.NewFromInt(int64(len(g.distinct[red.Column])))
		case ReduceCount:
			v = decimal.NewFromInt(int64(g.lines))
		case ReduceOrderMean:
			orders := max(len(g.distinct[models.ColOrderID]), 1)
			v = g.sales.Div(decimal.NewFromInt(int64(orders)))
		case ReduceDelayQuantile:
			v = decimal.NewFromFloat(quantileSorted(g.delays, red.P))
		case ReduceDelayMin:
			if len(g.delays) > 0 {
				v = decimal.NewFromFloat(g.delays[0])
			}
		case ReduceDelayMax:
			if len(g.delays) > 0 {
				v = decimal.NewFromFloat(g.delays[len(g.delays)-1])
			}
		case ReduceDelayMean:
			v = decimal.NewFromFloat(mean(g.delays))
		}
		row.Values[red.Name] = v
	}
	return row
}

// Quantile returns the p-quantile of values using linear interpolation
// between closest ranks. It returns 0 for no values.
func Quantile(values []float64, p float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return quantileSorted(sorted, p)
}

func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	p = math.Min(math.Max(p, 0), 1)
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
