package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/spendr/internal/spending"
)

// screenTimeModel pages through the screen-time samples a week at a time
// and charts the per-day, per-category totals.
type screenTimeModel struct {
	width  int
	height int

	samples []spending.ScreenTimeSample
	anchor  time.Time // first day with samples
	offset  int       // weeks after anchor

	totals []spending.ScreenTimeDailyTotal
	chart  barchart.Model
}

func newScreenTimeModel() screenTimeModel {
	return screenTimeModel{
		chart: barchart.New(60, 12),
	}
}

func (m *screenTimeModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.rebuild()
}

func (m *screenTimeModel) setSamples(samples []spending.ScreenTimeSample) {
	m.samples = samples
	m.offset = 0
	m.anchor = time.Time{}
	for _, s := range samples {
		if spending.ValidateSample(s) != nil {
			continue
		}
		d := spending.TruncateDay(s.Timestamp)
		if m.anchor.IsZero() || d.Before(m.anchor) {
			m.anchor = d
		}
	}
	m.rebuild()
}

// weeks is the number of 7-day pages the samples span.
func (m screenTimeModel) weeks() int {
	if m.anchor.IsZero() {
		return 0
	}
	last := m.anchor
	for _, s := range m.samples {
		if s.Timestamp.After(last) {
			last = s.Timestamp
		}
	}
	return int(last.Sub(m.anchor).Hours()/24)/7 + 1
}

func (m screenTimeModel) dateRange() (time.Time, time.Time) {
	start := m.anchor.AddDate(0, 0, 7*m.offset)
	return start, start.AddDate(0, 0, 7)
}

func (m *screenTimeModel) rebuild() {
	if m.anchor.IsZero() {
		m.totals = nil
		return
	}
	from, to := m.dateRange()

	var inRange []spending.ScreenTimeSample
	for _, s := range m.samples {
		if !s.Timestamp.Before(from) && s.Timestamp.Before(to) {
			inRange = append(inRange, s)
		}
	}
	m.totals = spending.AggregateByDay(inRange)

	w, h := chartSize(m.width, m.height)
	m.chart = buildDailyStacks(m.totals, from, to, w, h)
}

func (m screenTimeModel) update(msg tea.Msg) (screenTimeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Left):
			if m.offset > 0 {
				m.offset--
				m.rebuild()
			}
		case key.Matches(msg, keys.Right):
			if m.offset < m.weeks()-1 {
				m.offset++
				m.rebuild()
			}
		}
	}
	return m, nil
}

func (m screenTimeModel) view() string {
	w := m.width - 4

	if m.anchor.IsZero() {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Screen Time"), "", mutedStyle.Render("  No screen time samples"),
		))
	}

	from, to := m.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s to %s", from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))
	var week float64
	for _, t := range m.totals {
		week += t.DurationSeconds
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Screen Time"), "  ", dateLabel, "  ", highlightStyle.Render(formatHours(week)),
	)

	nav := mutedStyle.Render(fmt.Sprintf("  ←/→: week %d of %d", m.offset+1, m.weeks()))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.chart.View(), "", renderLegend(), "", m.renderSummaryTable(w), "", nav,
		),
	)
}

func (m screenTimeModel) renderSummaryTable(w int) string {
	if len(m.totals) == 0 {
		return mutedStyle.Render("  No data for this period")
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %-26s %10s", "Day", "Category", "Duration"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 50))))

	for _, t := range m.totals {
		rows = append(rows, fmt.Sprintf("  %-12s %s %-24s %10s",
			t.Day.Format("Mon Jan 02"), categoryDot(t.Category), string(t.Category), formatSeconds(t.DurationSeconds),
		))
	}

	return strings.Join(rows, "\n")
}

func renderLegend() string {
	var items []string
	for _, c := range spending.CategoryOrder {
		items = append(items, fmt.Sprintf("%s %s", categoryDot(c), c))
	}
	return "  " + strings.Join(items, "  ")
}
