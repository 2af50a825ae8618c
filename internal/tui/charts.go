package tui

import (
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/spendr/internal/spending"
)

type chartKind int

const (
	chartBar chartKind = iota
	chartLine
)

var chartNames = map[chartKind]string{
	chartBar:  "Bar",
	chartLine: "Line",
}

func parseChartKind(s string) chartKind {
	if s == "line" {
		return chartLine
	}
	return chartBar
}

func chartSize(width, height int) (int, int) {
	w := width - 8
	if w < 20 {
		w = 20
	}
	h := 10
	if height > 36 {
		h = 14
	}
	return w, h
}

// buildMonthBars draws one bar per metric. When a month is selected the
// other bars are dimmed.
func buildMonthBars(metrics []spending.MonthlyMetric, selected *time.Time, w, h int) barchart.Model {
	chart := barchart.New(w, h)

	bright := lipgloss.NewStyle().Foreground(colorPrimary)
	dim := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for _, m := range metrics {
		style := bright
		if selected != nil && !spending.SameMonth(m.Month, *selected) {
			style = dim
		}
		bars = append(bars, barchart.BarData{
			Label: m.Month.Format("Jan"),
			Values: []barchart.BarValue{{
				Name:  m.Month.Format("2006-01"),
				Value: m.Value,
				Style: style,
			}},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart
}

// buildMonthLine plots metrics over time as a braille line.
func buildMonthLine(metrics []spending.MonthlyMetric, w, h int) timeserieslinechart.Model {
	if len(metrics) == 0 {
		return timeserieslinechart.New(w, h)
	}

	maxV := 0.0
	for _, m := range metrics {
		maxV = max(maxV, m.Value)
	}
	first := metrics[0].Month
	last := metrics[len(metrics)-1].Month
	if !last.After(first) {
		last = first.AddDate(0, 1, 0)
	}

	chart := timeserieslinechart.New(w, h,
		timeserieslinechart.WithTimeRange(first, last),
		timeserieslinechart.WithYRange(0, maxV*1.1),
	)
	for _, m := range metrics {
		chart.Push(timeserieslinechart.TimePoint{Time: m.Month, Value: m.Value})
	}
	chart.DrawBraille()
	return chart
}

// buildDailyStacks draws one stacked bar per day from AggregateByDay output,
// in hours. Days in [from, to) without totals get an empty bar.
func buildDailyStacks(totals []spending.ScreenTimeDailyTotal, from, to time.Time, w, h int) barchart.Model {
	chart := barchart.New(w, h)

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		var values []barchart.BarValue
		for _, t := range totals {
			if !t.Day.Equal(d) {
				continue
			}
			values = append(values, barchart.BarValue{
				Name:  string(t.Category),
				Value: t.DurationSeconds / 3600,
				Style: lipgloss.NewStyle().Foreground(categoryColor(t.Category)),
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}
		bars = append(bars, barchart.BarData{
			Label:  d.Format("Mon 02"),
			Values: values,
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart
}
