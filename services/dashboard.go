package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"sales-dashboard/models"
	"sales-dashboard/utils"
)

// AllSegments labels the single customer table used when the dataset has no Segment column.
const AllSegments = "All Segments"

// DashboardService builds the page views of the dashboard from a shared dataset.
// Every call recomputes from the dataset; nothing is cached between calls.
type DashboardService struct {
	ds     *Dataset
	logger *utils.Logger
}

// NewDashboardService creates a DashboardService over ds.
func NewDashboardService(ds *Dataset, logger *utils.Logger) *DashboardService {
	return &DashboardService{ds: ds, logger: logger}
}

// Dataset returns the provider the service reads from.
func (s *DashboardService) Dataset() *Dataset { return s.ds }

func info(format string, args ...any) models.Notice {
	return models.Notice{Level: models.NoticeInfo, Message: fmt.Sprintf(format, args...)}
}

func warning(format string, args ...any) models.Notice {
	return models.Notice{Level: models.NoticeWarning, Message: fmt.Sprintf(format, args...)}
}

// Sales computes headline KPIs and sales by category and region.
func (s *DashboardService) Sales(f Filter) models.SalesReport {
	var report models.SalesReport
	rows := f.Apply(s.ds)
	s.logger.Debug("[dashboard] sales: %d of %d rows after filtering", len(rows), s.ds.Len())
	if len(rows) == 0 {
		report.Notices = append(report.Notices, info("No data for the current filters."))
		return report
	}

	totals := Aggregate(rows, nil, SumSales(), CountOrders(), AvgOrderValue())
	t := totals.Rows[0]
	report.TotalSales = t.Metric(MetricSales)
	report.TotalOrders = int(t.Metric(MetricOrders).IntPart())
	report.AvgOrderValue = t.Metric(MetricAvgOrderValue)

	if s.ds.HasColumn(models.ColCategory) {
		report.ByCategory = SortDesc(Aggregate(rows, []models.Column{models.ColCategory}, SumSales()), MetricSales)
	} else {
		report.Notices = append(report.Notices, info("No `Category` column found in data."))
	}
	if s.ds.HasColumn(models.ColRegion) {
		report.ByRegion = SortDesc(Aggregate(rows, []models.Column{models.ColRegion}, SumSales()), MetricSales)
	} else {
		report.Notices = append(report.Notices, info("No `Region` column found in data."))
	}
	return report
}

// CustomerSpend ranks customers by total sales within each selected segment.
// No segment selection means every segment.
func (s *DashboardService) CustomerSpend(f Filter, w models.RankWindow) models.CustomerSpendReport {
	window, truncated := ClampWindow(w)
	report := models.CustomerSpendReport{Window: window, Truncated: truncated}
	if truncated {
		report.Notices = append(report.Notices,
			warning("Maximum display is %d customers. Range has been limited.", MaxRankSpan))
	}

	base := f.Without(models.ColSegment).Apply(s.ds)
	if len(base) == 0 {
		report.Notices = append(report.Notices, info("No data for the current filters."))
		return report
	}

	hasSegment := s.ds.HasColumn(models.ColSegment)
	segments := []string{AllSegments}
	if hasSegment {
		segments = f.Selected(models.ColSegment)
		if len(segments) == 0 {
			segments = s.ds.DistinctValues(models.ColSegment)
		}
	}

	keys := []models.Column{models.ColCustomerID, models.ColCustomerName}
	for _, seg := range segments {
		segRows := base
		if hasSegment {
			segRows = Where(base, func(r models.TransactionRow) bool { return r.Segment == seg })
		}
		if len(segRows) == 0 {
			report.Notices = append(report.Notices, info("No data for %s in this date range.", seg))
			report.Segments = append(report.Segments, models.SegmentCustomers{Segment: seg})
			continue
		}

		table := Aggregate(segRows, keys, SumSales(), CountOrders(), AvgOrderValue())
		ranked := Rank(table, MetricSales, w)
		if ranked.Len() == 0 {
			report.Notices = append(report.Notices, info("No customers in the selected rank range for %s.", seg))
		}
		report.Segments = append(report.Segments, models.SegmentCustomers{Segment: seg, Customers: ranked})
	}
	return report
}

// StateMap totals sales per contiguous US state for the choropleth.
func (s *DashboardService) StateMap(f Filter) models.StateSalesReport {
	var report models.StateSalesReport
	if !s.ds.HasColumn(models.ColState) {
		report.Notices = append(report.Notices, info("No `State` column found in data."))
		return report
	}

	rows := Where(f.Apply(s.ds), func(r models.TransactionRow) bool { return r.State != "" })
	if len(rows) == 0 {
		report.Notices = append(report.Notices, info("No data for the current filters."))
		return report
	}

	table := SortDesc(Aggregate(rows, []models.Column{models.ColState}, SumSales()), MetricSales)
	for _, row := range table.Rows {
		state := table.KeyValue(row, models.ColState)
		code, mappable := StateAbbrev(state)
		if !mappable {
			s.logger.Debug("[dashboard] state %q not drawn on the map", state)
			continue
		}
		sales := row.Metric(MetricSales)
		if len(report.States) == 0 || sales.LessThan(report.MinSales) {
			report.MinSales = sales
		}
		if len(report.States) == 0 || sales.GreaterThan(report.MaxSales) {
			report.MaxSales = sales
		}
		report.States = append(report.States, models.StateSales{State: state, Abbrev: code, Sales: sales})
	}

	if len(report.States) == 0 {
		report.Notices = append(report.Notices, info("No mappable state-level data for current filters."))
	}
	return report
}

// Shipping computes delay KPIs, distributions and late orders for a late threshold.
// The threshold is clamped to [0, max(largest delay, 1)].
func (s *DashboardService) Shipping(f Filter, threshold int) models.ShippingReport {
	maxThreshold, _ := ThresholdBounds(s.ds.MaxDelay())
	threshold = min(max(threshold, 0), maxThreshold)
	report := models.ShippingReport{Threshold: threshold, MaxThreshold: maxThreshold}

	if !s.ds.HasColumn(models.ColShipDate) {
		report.Notices = append(report.Notices, info("No `Ship Date` column found in data."))
		return report
	}

	rows := f.Apply(s.ds)
	if len(rows) == 0 {
		report.Notices = append(report.Notices, warning("No data available for the selected filters."))
		return report
	}

	orders := RollUpOrders(rows, threshold)
	kpis := SummariseOrders(orders)
	report.TotalOrders = kpis.TotalOrders
	report.LateOrders = kpis.LateOrders
	report.AvgDelay = kpis.AvgDelay
	report.P95Delay = kpis.P95Delay
	report.PctLate = kpis.PctLate

	report.Histogram = DelayHistogram(rows, threshold, DelayHistogramBins)
	report.LateOverTime = LateOverTime(orders)

	if s.ds.HasColumn(models.ColShipMode) {
		report.ByShipMode = Aggregate(rows, []models.Column{models.ColShipMode},
			CountLines(), DelayMin(), DelayQuantile(0.25), DelayQuantile(0.5),
			DelayQuantile(0.75), DelayMax(), DelayMean())
		sort.SliceStable(report.ByShipMode.Rows, func(i, j int) bool {
			return strings.Join(report.ByShipMode.Rows[i].Key, "") < strings.Join(report.ByShipMode.Rows[j].Key, "")
		})
	} else {
		report.Notices = append(report.Notices, info("No `Ship Mode` column found in data."))
	}

	report.LateLines = LateLines(rows, threshold)
	if len(report.LateLines) == 0 {
		report.Notices = append(report.Notices, models.Notice{
			Level:   models.NoticeSuccess,
			Message: "Great! No orders exceed the late threshold for the current filters.",
		})
	}
	return report
}

// SalesOverTime aligns the filter's date range to whole periods of g and
// resamples sales over it.
func (s *DashboardService) SalesOverTime(f Filter, g Granularity, opts ResampleOptions) models.TimelineReport {
	bounds := s.ds.Bounds()
	requested := models.DateRange{Start: f.Start, End: f.End}
	if requested.Start.IsZero() {
		requested.Start = bounds.Start
	}
	if requested.End.IsZero() {
		requested.End = bounds.End
	}

	snapped, adjusted := SnapRange(requested, g, bounds)
	report := models.TimelineReport{
		Granularity: g.String(),
		Requested:   requested,
		Range:       snapped,
		Adjusted:    adjusted,
	}
	if adjusted {
		report.Notices = append(report.Notices, info("Date range aligned to full %s periods: %s → %s.",
			strings.ToLower(g.String()), snapped.Start.Format("2006-01-02"), snapped.End.Format("2006-01-02")))
	}

	rows := f.WithRange(snapped).Apply(s.ds)
	if len(rows) == 0 {
		report.Notices = append(report.Notices, warning("No data available for the selected filters and date range."))
		return report
	}

	if opts.ByCategory && !s.ds.HasColumn(models.ColCategory) {
		opts.ByCategory = false
		report.Notices = append(report.Notices, info("No `Category` column found in data."))
	}

	report.Series = Resample(rows, g, opts)
	report.TotalSales = report.Series.Total()
	report.Periods = report.Series.Periods()
	if report.Periods > 0 {
		report.AvgPerPeriod = report.TotalSales.Div(decimal.NewFromInt(int64(report.Periods)))
	}
	return report
}
