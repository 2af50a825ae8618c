package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/spendr/internal/spending"
)

// HeaderLabel is the caption above the running total.
func HeaderLabel(sel spending.Selection) string {
	if sel.IsSet() {
		return sel.SelectedDate.Format("January") + " spending"
	}
	return "This month spending"
}

// FormatSummary renders the header total, the selected month's metric and
// both transaction segments.
func FormatSummary(series *spending.TimeSeriesStore, sel spending.Selection, currency string) string {
	spends := spending.FilteredTransactions(sel, series)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", StyleHeader.Render(HeaderLabel(sel)), Money(currency, spending.Total(spends)))
	if sel.IsSet() {
		if m, ok := series.FindMonth(*sel.SelectedDate); ok {
			fmt.Fprintf(&b, "%s views\n", Count(m.Value))
		} else {
			b.WriteString(StyleDim.Render("No views recorded for "+sel.SelectedDate.Format("January 2006")) + "\n")
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Latest (%d)\n", len(spends))
	if len(spends) == 0 {
		b.WriteString(StyleDim.Render("No transactions for this month") + "\n")
	} else {
		rows := make([][]string, 0, len(spends))
		for _, s := range spends {
			rows = append(rows, []string{s.Date.Format("2006-01-02"), string(s.Category), s.Label, Money(currency, s.Amount)})
		}
		b.WriteString(RenderTable([]string{"DATE", "CATEGORY", "LABEL", "AMOUNT"}, rows))
	}

	breakdown := spending.CategoryBreakdown(spends)
	fmt.Fprintf(&b, "\nBreakdown (%d)\n", len(breakdown))
	if len(breakdown) > 0 {
		rows := make([][]string, 0, len(breakdown))
		for _, t := range breakdown {
			rows = append(rows, []string{string(t.Category), Money(currency, t.Amount), fmt.Sprint(t.Count)})
		}
		b.WriteString(RenderTable([]string{"CATEGORY", "TOTAL", "COUNT"}, rows))
	}
	return b.String()
}

// FormatMonths lists the metric series one month per row.
func FormatMonths(metrics []spending.MonthlyMetric) string {
	if len(metrics) == 0 {
		return StyleDim.Render("No monthly data") + "\n"
	}
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{m.Month.Format("2006-01"), Count(m.Value)})
	}
	return RenderTable([]string{"MONTH", "VIEWS"}, rows)
}

// FormatScreenTime lists daily totals in day then category rank order.
func FormatScreenTime(totals []spending.ScreenTimeDailyTotal) string {
	if len(totals) == 0 {
		return StyleDim.Render("No screen time samples") + "\n"
	}
	rows := make([][]string, 0, len(totals))
	var last time.Time
	for _, t := range totals {
		day := ""
		if !t.Day.Equal(last) {
			day = t.Day.Format("Mon 2006-01-02")
			last = t.Day
		}
		rows = append(rows, []string{day, string(t.Category), Clock(t.DurationSeconds)})
	}
	return RenderTable([]string{"DAY", "CATEGORY", "DURATION"}, rows)
}
