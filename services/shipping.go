package services

import (
	"math"
	"sort"
	"time"

	"sales-dashboard/models"
)

// DelayHistogramBins is the number of equal-width bins of the delay distribution.
const DelayHistogramBins = 20

// IsLate reports whether a delay exceeds the threshold.
func IsLate(delayDays, threshold int) bool { return delayDays > threshold }

// RollUpOrders collapses line items to one record per order: the earliest order
// date, the largest delay and late if any line is late. Orders keep
// first-encounter order.
func RollUpOrders(rows []models.TransactionRow, threshold int) []models.OrderDelay {
	index := make(map[string]int)
	var orders []models.OrderDelay

	for _, r := range rows {
		delay := r.DelayDays()
		late := IsLate(delay, threshold)

		i, ok := index[r.OrderID]
		if !ok {
			index[r.OrderID] = len(orders)
			orders = append(orders, models.OrderDelay{
				OrderID:   r.OrderID,
				OrderDate: r.OrderDate,
				DelayDays: delay,
				Late:      late,
			})
			continue
		}

		o := &orders[i]
		if r.OrderDate.Before(o.OrderDate) {
			o.OrderDate = r.OrderDate
		}
		if delay > o.DelayDays {
			o.DelayDays = delay
		}
		o.Late = o.Late || late
	}
	return orders
}

// ShippingKPIs are the order-level headline figures of the shipping page.
type ShippingKPIs struct {
	TotalOrders int
	LateOrders  int
	AvgDelay    float64
	P95Delay    float64
	PctLate     float64
}

// SummariseOrders computes the shipping KPIs of rolled-up orders.
func SummariseOrders(orders []models.OrderDelay) ShippingKPIs {
	k := ShippingKPIs{TotalOrders: len(orders)}
	if len(orders) == 0 {
		return k
	}
	delays := make([]float64, len(orders))
	for i, o := range orders {
		delays[i] = float64(o.DelayDays)
		if o.Late {
			k.LateOrders++
		}
	}
	k.AvgDelay = mean(delays)
	k.P95Delay = Quantile(delays, 0.95)
	k.PctLate = float64(k.LateOrders) / float64(k.TotalOrders) * 100
	return k
}

// LateOverTime counts total and late orders per order month, oldest first.
func LateOverTime(orders []models.OrderDelay) []models.LateMonth {
	byMonth := make(map[time.Time]*models.LateMonth)
	for _, o := range orders {
		m := PeriodStart(o.OrderDate, Monthly)
		lm, ok := byMonth[m]
		if !ok {
			lm = &models.LateMonth{Month: m}
			byMonth[m] = lm
		}
		lm.TotalOrders++
		if o.Late {
			lm.LateOrders++
		}
	}

	out := make([]models.LateMonth, 0, len(byMonth))
	for _, lm := range byMonth {
		lm.PctLate = float64(lm.LateOrders) / float64(lm.TotalOrders) * 100
		out = append(out, *lm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// LateLines returns the late line items, longest delay first. Ties keep input order.
func LateLines(rows []models.TransactionRow, threshold int) []models.TransactionRow {
	late := Where(rows, func(r models.TransactionRow) bool { return IsLate(r.DelayDays(), threshold) })
	sort.SliceStable(late, func(i, j int) bool { return late[i].DelayDays() > late[j].DelayDays() })
	return late
}

// DelayHistogram splits line-item delays into equal-width bins between the
// smallest and largest delay, counting on-time and late lines separately.
func DelayHistogram(rows []models.TransactionRow, threshold, bins int) []models.HistogramBin {
	if len(rows) == 0 {
		return nil
	}
	if bins < 1 {
		bins = 1
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		d := float64(r.DelayDays())
		lo, hi = math.Min(lo, d), math.Max(hi, d)
	}
	if hi == lo {
		bins = 1
		hi = lo + 1
	}

	width := (hi - lo) / float64(bins)
	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, r := range rows {
		delay := r.DelayDays()
		i := int((float64(delay) - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if IsLate(delay, threshold) {
			out[i].Late++
		} else {
			out[i].OnTime++
		}
	}
	return out
}

// ThresholdBounds returns the usable threshold range for a dataset's largest
// delay: the maximum is at least 1, and the default is min(3, maximum).
func ThresholdBounds(maxDelay int) (maxThreshold, defaultThreshold int) {
	maxThreshold = max(maxDelay, 1)
	return maxThreshold, min(3, maxThreshold)
}
