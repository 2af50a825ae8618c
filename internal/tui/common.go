package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/spendr/internal/config"
	"github.com/sadopc/spendr/internal/formatter"
	"github.com/sadopc/spendr/internal/spending"
)

// viewState represents the currently active view.
type viewState int

const (
	viewOverview viewState = iota
	viewScreenTime
	viewSettings
)

var viewNames = []string{"Overview", "Screen Time", "Settings"}

// --- Messages ---

type dataLoadedMsg struct {
	series  *spending.TimeSeriesStore
	samples []spending.ScreenTimeSample
	err     error
}

type settingsSavedMsg struct {
	prefs config.Preferences
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatMoney(currency string, v float64) string {
	return formatter.Money(currency, v)
}

func formatCount(v float64) string {
	return formatter.Count(v)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSeconds(secs float64) string {
	return formatDuration(time.Duration(secs) * time.Second)
}

func formatHours(secs float64) string {
	return fmt.Sprintf("%.1fh", secs/3600)
}

var categoryColors = map[spending.Category]lipgloss.Color{
	spending.Social:              lipgloss.Color("#6C63FF"),
	spending.Entertainment:       lipgloss.Color("#FF6B6B"),
	spending.ProductivityFinance: lipgloss.Color("#2EC4B6"),
	spending.Other:               lipgloss.Color("#F39C12"),
}

func categoryColor(c spending.Category) lipgloss.Color {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return colorMuted
}

func categoryDot(c spending.Category) string {
	return lipgloss.NewStyle().Foreground(categoryColor(c)).Render("●")
}
