package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/spendr/internal/config"
	"github.com/sadopc/spendr/internal/export"
	"github.com/sadopc/spendr/internal/spending"
	"github.com/sadopc/spendr/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	logger *slog.Logger
	prefs  config.Preferences
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	loaded  bool
	samples []spending.ScreenTimeSample

	overview   overviewModel
	screenTime screenTimeModel
	settings   settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, prefs config.Preferences, logger *slog.Logger) App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		logger:     logger,
		prefs:      prefs,
		activeView: viewOverview,
		overview:   newOverviewModel(prefs.Currency, parseChartKind(prefs.DefaultChart)),
		screenTime: newScreenTimeModel(),
		settings:   newSettingsModel(s, logger, prefs),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.loadData()
}

// loadData reads the fixture tables off the update loop.
func (a App) loadData() tea.Cmd {
	s, policy, logger := a.store, a.prefs.EmptySelection, a.logger
	return func() tea.Msg {
		series, err := s.TimeSeries(spending.WithEmptySelectionPolicy(policy))
		if err != nil {
			logger.Error("load time series", "error", err)
			return dataLoadedMsg{err: err}
		}
		samples, err := s.ListSamples(store.SampleFilter{})
		if err != nil {
			logger.Error("load screen time", "error", err)
			return dataLoadedMsg{err: err}
		}
		logger.Debug("data loaded", "metrics", len(series.Metrics()), "spends", len(series.Spends()), "samples", len(samples))
		return dataLoadedMsg{series: series, samples: samples}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.overview.setSize(a.width, contentHeight)
		a.screenTime.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A child form captures all input until it closes.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			if !a.loaded {
				return a, nil
			}
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewOverview
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewScreenTime
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, nil
		}

	case dataLoadedMsg:
		if msg.err != nil {
			a.status, a.statusErr = fmt.Sprintf("Load error: %v", msg.err), true
			return a, nil
		}
		a.loaded = true
		a.samples = msg.samples
		a.overview.setData(msg.series)
		a.screenTime.setSamples(msg.samples)
		return a, nil

	case settingsSavedMsg:
		a.prefs = msg.prefs
		a.overview.currency = msg.prefs.Currency
		a.overview.chart = parseChartKind(msg.prefs.DefaultChart)
		a.settings, _ = a.settings.update(msg)
		a.status, a.statusErr = "Settings saved", false
		// The empty-selection policy lives on the store, so rebuild it.
		return a, a.loadData()

	case statusMsg:
		a.status, a.statusErr = msg.text, msg.isError
		return a, nil

	case exportDoneMsg:
		a.status, a.statusErr = "Exported to "+msg.path, false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewOverview:
		a.overview, cmd = a.overview.update(msg)
	case viewScreenTime:
		a.screenTime, cmd = a.screenTime.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewOverview:
		return a.overview.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch {
	case !a.loaded:
		content = mutedStyle.Render("  Loading spending data...")
	case a.activeView == viewOverview:
		content = a.overview.view()
	case a.activeView == viewScreenTime:
		content = a.screenTime.view()
	case a.activeView == viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(a.height-headerHeight-footerHeight, 1)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("spendr")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	switch {
	case a.status == "":
	case a.statusErr:
		status = errorStyle.Render(" " + a.status)
	default:
		status = successStyle.Render(" " + a.status)
	}

	selected := ""
	if a.overview.sel.IsSet() {
		selected = accentStyle.Render(" ● " + a.overview.sel.SelectedDate.Format("Jan 2006"))
	}

	left := footerStyle.Render(helpView)
	right := selected + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	scope := "first month"
	if a.prefs.EmptySelection == spending.AllMonths {
		scope = "all months"
	}
	if a.overview.sel.IsSet() {
		scope = a.overview.sel.SelectedDate.Format("January 2006")
	}

	rows := []string{title, mutedStyle.Render("  Transactions: " + scope), ""}
	for i, f := range []string{"CSV", "JSON"} {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// exportReport snapshots what the overview currently shows.
func (a App) exportReport() export.Report {
	return export.Report{
		Month:        a.overview.sel.SelectedDate,
		Currency:     a.prefs.Currency,
		Transactions: a.overview.transactions(),
		ScreenTime:   spending.AggregateByDay(a.samples),
	}
}

func (a App) doExport(format int) tea.Cmd {
	report := a.exportReport()
	logger := a.logger
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("spendr-export-%s.csv", dateStr))
			if err := export.ToCSV(report, path); err != nil {
				logger.Error("csv export", "path", path, "error", err)
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("spendr-export-%s.json", dateStr))
			if err := export.ToJSON(report, path); err != nil {
				logger.Error("json export", "path", path, "error", err)
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		logger.Info("exported", "path", path, "transactions", len(report.Transactions))
		return exportDoneMsg{path: path}
	}
}
