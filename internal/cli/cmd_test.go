package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/spendr/internal/config"
	"github.com/sadopc/spendr/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires an App against a fresh database under t.TempDir.
func testApp(t *testing.T) *App {
	t.Helper()
	app := &App{Config: &config.Config{
		DBPath:   filepath.Join(t.TempDir(), "spendr.db"),
		LogLevel: "error",
	}}
	t.Cleanup(func() { app.Close() })
	return app
}

// executeCmd runs a cobra command and captures stdout and stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- Root command ---

func TestRootCmd_NonInteractivePrintsSummary(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "This month spending")
	assert.Contains(t, out, "$1,300.00")
}

func TestRootCmd_InteractiveRunsTUI(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }

	var gotPrefs config.Preferences
	called := false
	app.RunTUI = func(s *store.Store, prefs config.Preferences, logger *slog.Logger) error {
		called = true
		gotPrefs = prefs
		assert.NotNil(t, s)
		assert.NotNil(t, logger)
		return nil
	}

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "USD", gotPrefs.Currency)
	assert.Empty(t, out)
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	app := testApp(t)
	app.Config.Currency = "GBP"

	out, err := executeCmd(t, app, "--currency", "EUR", "--empty-selection", "all_months")
	require.NoError(t, err)
	assert.Contains(t, out, "€")
	assert.Contains(t, out, "Latest (17)")
}

func TestRootCmd_LowercaseCurrencyFlag(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "summary", "--currency", "eur")
	require.NoError(t, err)
	assert.Contains(t, out, "€1,300.00")
	assert.NotContains(t, out, "eur ")
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "--empty-selection", "sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid empty selection")
}

func TestRootCmd_StoredSettingsApply(t *testing.T) {
	app := testApp(t)
	s, err := store.New(app.Config.DBPath)
	require.NoError(t, err)
	require.NoError(t, s.SetSetting(store.SettingCurrency, "JPY"))
	require.NoError(t, s.Close())

	out, err := executeCmd(t, app, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "¥1,300.00")
}

// --- summary / months ---

func TestSummaryCmd_Month(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "summary", "--month", "2024-07")
	require.NoError(t, err)
	assert.Contains(t, out, "July spending")
	assert.Contains(t, out, "$1,200.00")
	assert.Contains(t, out, "Latest (3)")
	assert.Contains(t, out, "88,000 views")
}

func TestSummaryCmd_EmptyMonth(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "summary", "--month", "2024-08")
	require.NoError(t, err)
	assert.Contains(t, out, "Latest (0)")
	assert.Contains(t, out, "No transactions for this month")
}

func TestSummaryCmd_BadMonth(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "summary", "--month", "July")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM")
}

func TestMonthsCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "months")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header, separator and twelve months
	assert.Len(t, lines, 14)
	assert.Contains(t, lines[2], "2024-01")
	assert.Contains(t, lines[13], "2024-12")
}

// --- screentime ---

func TestScreenTimeCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "screentime")
	require.NoError(t, err)
	assert.Contains(t, out, "2022-06-20")
	assert.Contains(t, out, "2022-06-26")
}

func TestScreenTimeCmd_Range(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "screentime", "--from", "2022-06-21", "--to", "2022-06-22")
	require.NoError(t, err)
	assert.NotContains(t, out, "2022-06-20")
	assert.Contains(t, out, "2022-06-21")
	assert.Contains(t, out, "2022-06-22")
	assert.NotContains(t, out, "2022-06-23")
}

func TestScreenTimeCmd_InvertedRange(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "screentime", "--from", "2022-06-25", "--to", "2022-06-21")
	require.Error(t, err)
}

// --- export ---

func TestExportCmd_JSONToStdout(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "export", "--format", "json", "--month", "2024-02")
	require.NoError(t, err)

	var doc struct {
		Month        string  `json:"month"`
		Total        float64 `json:"total"`
		Count        int     `json:"count"`
		Transactions []struct {
			Label string `json:"label"`
		} `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2024-02", doc.Month)
	assert.Equal(t, 1800.0, doc.Total)
	assert.Equal(t, 2, doc.Count)
}

func TestExportCmd_CSVFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "out.csv")

	out, err := executeCmd(t, app, "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ID,Date,Category,Label,Amount,Currency"))
	assert.Contains(t, string(data), "Amazon")
}

func TestExportCmd_BadFormat(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "export", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv or json")
}

// --- helpers ---

func TestSelection(t *testing.T) {
	sel, err := selection("")
	require.NoError(t, err)
	assert.False(t, sel.IsSet())

	sel, err = selection("2024-03")
	require.NoError(t, err)
	require.True(t, sel.IsSet())
	assert.Equal(t, "2024-03-01", sel.SelectedDate.Format("2006-01-02"))
}

func TestAppClose_Idempotent(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "months")
	require.NoError(t, err)
	require.NoError(t, app.Close())
	require.NoError(t, app.Close())
}
