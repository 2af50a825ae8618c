package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/spendr/internal/config"
	"github.com/sadopc/spendr/internal/spending"
	"github.com/sadopc/spendr/internal/store"
)

type settingsModel struct {
	store  *store.Store
	logger *slog.Logger
	width  int
	height int

	prefs      config.Preferences
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	currency       *string
	emptySelection *string
	defaultChart   *string
}

func newSettingsModel(s *store.Store, logger *slog.Logger, prefs config.Preferences) settingsModel {
	cur, sel, chart := "", "", ""
	return settingsModel{
		store:          s,
		logger:         logger,
		prefs:          prefs,
		currency:       &cur,
		emptySelection: &sel,
		defaultChart:   &chart,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsSavedMsg:
		s.prefs = msg.prefs
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.currency = s.prefs.Currency
	*s.emptySelection = s.prefs.EmptySelection.String()
	if s.prefs.DefaultChart == "line" {
		*s.defaultChart = "line"
	} else {
		*s.defaultChart = "bar"
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Currency (ISO code)").Value(s.currency).
				Validate(func(v string) error {
					if len(strings.TrimSpace(v)) != 3 {
						return fmt.Errorf("use a 3-letter code such as USD")
					}
					return nil
				}),
			huh.NewSelect[string]().Title("Without a selection, list").
				Options(
					huh.NewOption("First month's transactions", spending.FirstMonth.String()),
					huh.NewOption("All transactions", spending.AllMonths.String()),
				).Value(s.emptySelection),
			huh.NewSelect[string]().Title("Default chart").
				Options(
					huh.NewOption("Bar", "bar"),
					huh.NewOption("Line", "line"),
				).Value(s.defaultChart),
		).Title("Display"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		return s, s.save()
	}

	return s, cmd
}

// save persists the form values and reports the new preferences.
func (s settingsModel) save() tea.Cmd {
	currency := strings.ToUpper(strings.TrimSpace(*s.currency))
	policy, err := spending.ParseEmptySelectionPolicy(*s.emptySelection)
	if err != nil {
		return func() tea.Msg { return statusMsg{text: err.Error(), isError: true} }
	}
	prefs := config.Preferences{Currency: currency, EmptySelection: policy, DefaultChart: *s.defaultChart}

	return func() tea.Msg {
		values := []store.Setting{
			{Key: store.SettingCurrency, Value: prefs.Currency},
			{Key: store.SettingEmptySelection, Value: prefs.EmptySelection.String()},
			{Key: store.SettingDefaultChart, Value: prefs.DefaultChart},
		}
		if err := s.store.SetSettings(values); err != nil {
			s.logger.Error("save settings", "error", err)
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		s.logger.Info("settings saved", "currency", prefs.Currency, "empty_selection", prefs.EmptySelection, "default_chart", prefs.DefaultChart)
		return settingsSavedMsg{prefs: prefs}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	rows := []string{titleStyle.Render("Settings"), ""}
	for _, item := range []struct{ label, value string }{
		{"Currency", s.prefs.Currency},
		{"Without a selection", formatPolicy(s.prefs.EmptySelection)},
		{"Default chart", s.prefs.DefaultChart},
	} {
		label := lipgloss.NewStyle().Width(24).Render(item.label)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(item.value)))
	}
	rows = append(rows, "", mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatPolicy(p spending.EmptySelectionPolicy) string {
	switch p {
	case spending.AllMonths:
		return "all transactions"
	default:
		return "first month's transactions"
	}
}
