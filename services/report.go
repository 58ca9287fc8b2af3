package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sales-dashboard/models"
	"sales-dashboard/utils"
)

const (
	barWidth  = 36
	ruleWidth = 60
)

// TableExporter receives every table a Printer renders.
type TableExporter interface {
	WriteTable(name string, header []string, rows [][]string) error
}

// Printer renders dashboard reports as terminal text and formats money,
// counts and percentages for the configured locale.
type Printer struct {
	w      io.Writer
	p      *message.Printer
	export TableExporter
	logger *utils.Logger
}

// NewPrinter writes to w using locale (a BCP 47 tag such as "en-US"). export may be nil.
func NewPrinter(w io.Writer, locale string, export TableExporter, logger *utils.Logger) *Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		logger.Warn("[report] Unknown locale %q, using en-US", locale)
		tag = language.AmericanEnglish
	}
	return &Printer{w: w, p: message.NewPrinter(tag), export: export, logger: logger}
}

// Money formats an amount as dollars with two decimals and digit grouping.
func (pr *Printer) Money(d decimal.Decimal) string {
	return pr.p.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

// Count formats an integer with digit grouping.
func (pr *Printer) Count(n int) string { return pr.p.Sprintf("%d", n) }

// Percent formats a percentage with one decimal.
func (pr *Printer) Percent(v float64) string { return pr.p.Sprintf("%.1f%%", v) }

// Days formats a delay in days with two decimals.
func (pr *Printer) Days(v float64) string { return pr.p.Sprintf("%.2f", v) }

func (pr *Printer) banner(title string) {
	sep := strings.Repeat("═", ruleWidth)
	fmt.Fprintf(pr.w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(pr.w, "\033[1;35m  %s\033[0m\n", title)
	fmt.Fprintf(pr.w, "\033[1;35m%s\033[0m\n\n", sep)
}

func (pr *Printer) section(title string) {
	fmt.Fprintf(pr.w, "\033[1;33m  %s\033[0m\n", title)
	fmt.Fprintf(pr.w, "  %s\n", strings.Repeat("─", ruleWidth))
}

func (pr *Printer) kpi(label, value string) {
	fmt.Fprintf(pr.w, "  %-30s: \033[1m%s\033[0m\n", label, value)
}

func (pr *Printer) notices(ns []models.Notice) {
	for _, n := range ns {
		colour := "36"
		switch n.Level {
		case models.NoticeWarning:
			colour = "33"
		case models.NoticeSuccess:
			colour = "32"
		}
		fmt.Fprintf(pr.w, "  \033[%sm[%s]\033[0m %s\n", colour, n.Level, n.Message)
	}
	if len(ns) > 0 {
		fmt.Fprintln(pr.w)
	}
}

// table prints an aligned table and hands it to the exporter.
func (pr *Printer) table(name string, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(pr.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\n", strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintf(tw, "  %s\n", strings.Join(row, "\t"))
	}
	_ = tw.Flush()
	fmt.Fprintln(pr.w)

	if pr.export == nil {
		return
	}
	if err := pr.export.WriteTable(name, header, rows); err != nil {
		pr.logger.Warn("[report] Export of %q failed: %v", name, err)
	}
}

// bars prints a horizontal bar chart of one metric keyed by the first table key.
func (pr *Printer) bars(name string, t models.AggregatedTable, metric string) {
	if t.Len() == 0 || len(t.Keys) == 0 {
		return
	}
	top := decimal.Zero
	for _, row := range t.Rows {
		top = decimal.Max(top, row.Metric(metric))
	}

	rows := make([][]string, 0, t.Len())
	for _, row := range t.Rows {
		v := row.Metric(metric)
		n := 0
		if top.IsPositive() {
			n = int(v.Div(top).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
		}
		label := t.KeyValue(row, t.Keys[0])
		fmt.Fprintf(pr.w, "  %-20s %s %s\n", truncate(label, 20), strings.Repeat("█", max(n, 0)), pr.Money(v))
		rows = append(rows, []string{label, v.StringFixed(2)})
	}
	fmt.Fprintln(pr.w)

	if pr.export != nil {
		if err := pr.export.WriteTable(name, []string{string(t.Keys[0]), "Sales"}, rows); err != nil {
			pr.logger.Warn("[report] Export of %q failed: %v", name, err)
		}
	}
}

// PrintSales renders the sales overview page.
func (pr *Printer) PrintSales(r models.SalesReport) {
	pr.banner("📊 SALES")
	pr.notices(r.Notices)
	if r.TotalOrders == 0 {
		return
	}

	pr.section("Overview")
	pr.kpi("Total Sales", pr.Money(r.TotalSales))
	pr.kpi("Total Orders", pr.Count(r.TotalOrders))
	pr.kpi("Average Order Value", pr.Money(r.AvgOrderValue))
	fmt.Fprintln(pr.w)

	if r.ByCategory.Len() > 0 {
		pr.section("Sales by Category")
		pr.bars("sales_by_category", r.ByCategory, MetricSales)
	}
	if r.ByRegion.Len() > 0 {
		pr.section("Sales by Region")
		pr.bars("sales_by_region", r.ByRegion, MetricSales)
	}
}

// PrintCustomers renders one ranked customer table per segment.
func (pr *Printer) PrintCustomers(r models.CustomerSpendReport) {
	pr.banner("🏆 TOP CUSTOMERS BY SEGMENT")
	pr.notices(r.Notices)

	header := []string{"Rank", "Customer ID", "Customer Name", "Num Orders", "Total Sales", "Avg Order Value"}
	for _, seg := range r.Segments {
		if seg.Customers.Len() == 0 {
			continue
		}
		pr.section(fmt.Sprintf("%s: customers rank %d–%d by total sales", seg.Segment, r.Window.Min, r.Window.Max))
		t := seg.Customers
		rows := make([][]string, 0, t.Len())
		for _, row := range t.Rows {
			rows = append(rows, []string{
				strconv.Itoa(row.Rank),
				t.KeyValue(row, models.ColCustomerID),
				t.KeyValue(row, models.ColCustomerName),
				pr.Count(int(row.Metric(MetricOrders).IntPart())),
				pr.Money(row.Metric(MetricSales)),
				pr.Money(row.Metric(MetricAvgOrderValue)),
			})
		}
		pr.table("top_customers_"+seg.Segment, header, rows)
	}
}

// PrintStates renders state totals for the choropleth.
func (pr *Printer) PrintStates(r models.StateSalesReport) {
	pr.banner("🗺  US SALES BY STATE (CONTIGUOUS 48 + DC)")
	pr.notices(r.Notices)
	if len(r.States) == 0 {
		return
	}

	pr.section("Colour range")
	pr.kpi("Lowest state", pr.Money(r.MinSales))
	pr.kpi("Highest state", pr.Money(r.MaxSales))
	fmt.Fprintln(pr.w)

	pr.section("Total Sales by State")
	rows := make([][]string, 0, len(r.States))
	for _, s := range r.States {
		rows = append(rows, []string{s.Abbrev, s.State, pr.Money(s.Sales)})
	}
	pr.table("state_sales", []string{"Code", "State", "Sales"}, rows)
}

// PrintShipping renders the shipping delay KPI page.
func (pr *Printer) PrintShipping(r models.ShippingReport) {
	pr.banner(fmt.Sprintf("🚚 SHIPPING DELAY (late if > %d days, max %d)", r.Threshold, r.MaxThreshold))
	pr.notices(r.Notices)
	if r.TotalOrders == 0 {
		return
	}

	pr.section("Shipping KPI Overview")
	pr.kpi("Total Orders", pr.Count(r.TotalOrders))
	pr.kpi("Average Delay (days)", pr.Days(r.AvgDelay))
	pr.kpi("95th Percentile Delay (days)", pr.Days(r.P95Delay))
	pr.kpi("Late Orders", pr.Count(r.LateOrders))
	pr.kpi("% Orders Late", pr.Percent(r.PctLate))
	fmt.Fprintln(pr.w)

	pr.section("Delay Distribution (line items)")
	hist := make([][]string, 0, len(r.Histogram))
	for _, b := range r.Histogram {
		hist = append(hist, []string{
			fmt.Sprintf("%.1f–%.1f", b.Lower, b.Upper), pr.Count(b.OnTime), pr.Count(b.Late),
		})
	}
	pr.table("delay_distribution", []string{"Delay (days)", "On time", "Late"}, hist)

	if t := r.ByShipMode; t.Len() > 0 {
		pr.section("Delay by Ship Mode (line items)")
		rows := make([][]string, 0, t.Len())
		for _, row := range t.Rows {
			rows = append(rows, []string{
				t.KeyValue(row, models.ColShipMode),
				row.Metric(MetricLines).String(),
				row.Metric(MetricMinDelay).String(),
				row.Metric(QuantileName(0.25)).StringFixed(1),
				row.Metric(QuantileName(0.5)).StringFixed(1),
				row.Metric(QuantileName(0.75)).StringFixed(1),
				row.Metric(MetricMaxDelay).String(),
				row.Metric(MetricMeanDelay).StringFixed(2),
			})
		}
		pr.table("delay_by_ship_mode",
			[]string{"Ship Mode", "Lines", "Min", "Q1", "Median", "Q3", "Max", "Mean"}, rows)
	}

	pr.section("Late Orders Over Time (order level)")
	months := make([][]string, 0, len(r.LateOverTime))
	for _, m := range r.LateOverTime {
		months = append(months, []string{
			m.Month.Format("2006-01"), pr.Count(m.TotalOrders), pr.Count(m.LateOrders), pr.Percent(m.PctLate),
		})
	}
	pr.table("late_orders_over_time", []string{"Order Month", "Orders", "Late", "% Late"}, months)

	if len(r.LateLines) > 0 {
		pr.section(fmt.Sprintf("Orders Exceeding Threshold (> %d days)", r.Threshold))
		lines := make([][]string, 0, len(r.LateLines))
		for _, l := range r.LateLines {
			lines = append(lines, []string{
				l.OrderID, l.OrderDate.Format("2006-01-02"), l.ShipDate.Format("2006-01-02"),
				strconv.Itoa(l.DelayDays()), l.CustomerID, l.CustomerName, l.Region, l.State,
				l.City, l.ShipMode, pr.Money(l.Sales),
			})
		}
		pr.table("late_line_items", []string{"Order ID", "Order Date", "Ship Date", "Delay Days",
			"Customer ID", "Customer Name", "Region", "State", "City", "Ship Mode", "Sales"}, lines)
	}
}

// PrintTimeline renders the sales over time page.
func (pr *Printer) PrintTimeline(r models.TimelineReport) {
	pr.banner(fmt.Sprintf("📈 SALES OVER TIME (%s)", r.Granularity))
	pr.notices(r.Notices)
	if r.Periods == 0 {
		return
	}

	pr.section("Summary")
	pr.kpi("Total Sales", pr.Money(r.TotalSales))
	pr.kpi(fmt.Sprintf("Avg %s Sales", r.Granularity), pr.Money(r.AvgPerPeriod))
	pr.kpi("Number of Periods", pr.Count(r.Periods))
	fmt.Fprintln(pr.w)

	pr.section("Aggregated data")
	header := []string{"Period", "Sales"}
	if r.Series.ByCategory {
		header = []string{"Period", "Category", "Sales"}
	}
	rows := make([][]string, 0, len(r.Series.Points))
	for _, p := range r.Series.Points {
		row := []string{p.Period.Format("2006-01-02")}
		if r.Series.ByCategory {
			row = append(row, p.Category)
		}
		rows = append(rows, append(row, pr.Money(p.Sales)))
	}
	pr.table("sales_over_time", header, rows)
}

func truncate(s string, limit int) string {
	if len([]rune(s)) <= limit {
		return s
	}
	return string([]rune(s)[:limit-3]) + "..."
}
