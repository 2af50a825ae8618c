package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/spendr/internal/formatter"
	"github.com/sadopc/spendr/internal/spending"
)

type segment int

const (
	segmentLatest segment = iota
	segmentBreakdown
)

var segmentNames = []string{"Latest", "Breakdown"}

// overviewModel is the spending tracker screen: header total, month chart
// and the transaction list for the current selection.
type overviewModel struct {
	width  int
	height int

	resolver *spending.Resolver
	metrics  []spending.MonthlyMetric
	currency string

	sel     spending.Selection
	cursor  int // index into metrics, -1 when nothing is selected
	chart   chartKind
	segment segment

	bars barchart.Model
	line timeserieslinechart.Model

	formActive bool
	form       *huh.Form
	jumpMonth  *int
}

func newOverviewModel(currency string, chart chartKind) overviewModel {
	jump := 0
	return overviewModel{
		currency:  currency,
		chart:     chart,
		cursor:    -1,
		jumpMonth: &jump,
	}
}

func (o *overviewModel) setSize(w, h int) {
	o.width = w
	o.height = h
	o.buildCharts()
}

// setData swaps in a freshly loaded series. A selection survives the reload
// when its month still exists.
func (o *overviewModel) setData(series *spending.TimeSeriesStore) {
	o.resolver = spending.NewResolver(series)
	o.metrics = series.Metrics()

	o.cursor = -1
	if o.sel.IsSet() {
		for i, m := range o.metrics {
			if spending.SameMonth(m.Month, *o.sel.SelectedDate) {
				o.cursor = i
				break
			}
		}
		if o.cursor < 0 {
			o.sel.Clear()
		}
	}
	o.buildCharts()
}

func (o *overviewModel) selectCursor() {
	if o.cursor < 0 || o.cursor >= len(o.metrics) {
		o.cursor = -1
		o.sel.Clear()
	} else {
		// The metric's month stands in for the date a chart tap decodes to.
		o.sel = spending.NewSelection(o.metrics[o.cursor].Month)
	}
	o.buildCharts()
}

func (o *overviewModel) buildCharts() {
	if o.resolver == nil {
		return
	}
	w, h := chartSize(o.width, o.height)
	o.bars = buildMonthBars(o.metrics, o.sel.SelectedDate, w, h)
	o.line = buildMonthLine(o.metrics, w, h)
}

func (o overviewModel) transactions() []spending.CategorySpend {
	if o.resolver == nil {
		return nil
	}
	return o.resolver.Transactions(o.sel)
}

func (o overviewModel) update(msg tea.Msg) (overviewModel, tea.Cmd) {
	if o.formActive && o.form != nil {
		return o.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}
	switch {
	case key.Matches(km, keys.Left):
		if len(o.metrics) == 0 {
			return o, nil
		}
		if o.cursor < 0 {
			o.cursor = len(o.metrics) - 1
		} else if o.cursor > 0 {
			o.cursor--
		}
		o.selectCursor()
	case key.Matches(km, keys.Right):
		if len(o.metrics) == 0 {
			return o, nil
		}
		if o.cursor < len(o.metrics)-1 {
			o.cursor++
		}
		o.selectCursor()
	case key.Matches(km, keys.Clear):
		o.cursor = -1
		o.selectCursor()
	case key.Matches(km, keys.Chart):
		if o.chart == chartBar {
			o.chart = chartLine
		} else {
			o.chart = chartBar
		}
	case key.Matches(km, keys.Segment):
		o.segment = (o.segment + 1) % segment(len(segmentNames))
	case key.Matches(km, keys.Jump):
		if len(o.metrics) > 0 {
			return o.showJumpForm()
		}
	}
	return o, nil
}

func (o overviewModel) showJumpForm() (overviewModel, tea.Cmd) {
	*o.jumpMonth = max(o.cursor, 0)

	opts := make([]huh.Option[int], len(o.metrics))
	for i, m := range o.metrics {
		opts[i] = huh.NewOption(m.Month.Format("January 2006"), i)
	}

	o.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title("Go to month").Options(opts...).Value(o.jumpMonth),
		),
	).WithShowHelp(true)

	o.formActive = true
	return o, o.form.Init()
}

func (o overviewModel) updateForm(msg tea.Msg) (overviewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			o.formActive = false
			o.form = nil
			return o, nil
		}
	}

	form, cmd := o.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		o.form = f
	}

	if o.form.State == huh.StateCompleted {
		o.formActive = false
		o.form = nil
		o.cursor = *o.jumpMonth
		o.selectCursor()
		return o, nil
	}
	return o, cmd
}

func (o overviewModel) headerLabel() string {
	return formatter.HeaderLabel(o.sel)
}

func (o overviewModel) view() string {
	w := o.width - 4

	if o.formActive && o.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Spending tracker"), "", o.form.View()),
		)
	}
	if o.resolver == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading..."))
	}

	spends := o.transactions()
	return lipgloss.JoinVertical(lipgloss.Left,
		o.renderChartPanel(w, spends),
		o.renderListPanel(w, spends),
	)
}

func (o overviewModel) renderChartPanel(w int, spends []spending.CategorySpend) string {
	summary := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Spending tracker"),
		subtitleStyle.Render(o.headerLabel()),
		totalStyle.Render(formatMoney(o.currency, spending.Total(spends))),
	)

	var toggles []string
	for _, k := range []chartKind{chartBar, chartLine} {
		if k == o.chart {
			toggles = append(toggles, activeTabStyle.Render(chartNames[k]))
		} else {
			toggles = append(toggles, inactiveTabStyle.Render(chartNames[k]))
		}
	}
	toggleRow := lipgloss.JoinHorizontal(lipgloss.Bottom, toggles...)

	gap := w - 6 - lipgloss.Width(summary) - lipgloss.Width(toggleRow)
	if gap < 1 {
		gap = 1
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		summary, lipgloss.NewStyle().Width(gap).Render(""), toggleRow,
	)

	var chartView string
	if len(o.metrics) == 0 {
		chartView = mutedStyle.Render("No monthly data")
	} else if o.chart == chartLine {
		chartView = o.line.View()
	} else {
		chartView = o.bars.View()
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", chartView, o.renderSelectedMetric()),
	)
}

func (o overviewModel) renderSelectedMetric() string {
	if !o.sel.IsSet() {
		return mutedStyle.Render("  ←/→ select a month  g: go to month")
	}
	month := o.sel.SelectedDate.Format("January 2006")
	m, ok := o.resolver.Store().FindMonth(*o.sel.SelectedDate)
	if !ok {
		return warningStyle.Render("  No views recorded for " + month)
	}
	return fmt.Sprintf("  %s  %s views", highlightStyle.Render(month), formatCount(m.Value))
}

func (o overviewModel) renderListPanel(w int, spends []spending.CategorySpend) string {
	breakdown := spending.CategoryBreakdown(spends)
	counts := []int{len(spends), len(breakdown)}

	var tabs []string
	for i, name := range segmentNames {
		label := name + " " + badgeStyle.Render(fmt.Sprint(counts[i]))
		if segment(i) == o.segment {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	var body string
	switch o.segment {
	case segmentBreakdown:
		body = o.renderBreakdown(breakdown)
	default:
		body = o.renderTransactions(spends)
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...), "", body,
	))
}

func (o overviewModel) renderTransactions(spends []spending.CategorySpend) string {
	if len(spends) == 0 {
		return mutedStyle.Render("  No transactions for this month")
	}

	var rows []string
	for _, s := range spends {
		rows = append(rows, fmt.Sprintf("  %s %-18s %-24s %-12s %12s",
			categoryDot(s.Category),
			s.Label,
			mutedStyle.Render(string(s.Category)),
			s.Date.Format("Jan 02"),
			formatMoney(o.currency, s.Amount),
		))
	}
	return strings.Join(rows, "\n")
}

func (o overviewModel) renderBreakdown(totals []spending.CategoryTotal) string {
	if len(totals) == 0 {
		return mutedStyle.Render("  No transactions for this month")
	}

	var rows []string
	for _, t := range totals {
		rows = append(rows, fmt.Sprintf("  %s %-24s %12s  (%d)",
			categoryDot(t.Category),
			string(t.Category),
			formatMoney(o.currency, t.Amount),
			t.Count,
		))
	}
	return strings.Join(rows, "\n")
}
