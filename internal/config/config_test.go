package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/sadopc/spendr/internal/spending"
	"github.com/sadopc/spendr/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SPENDR_DB", "SPENDR_CURRENCY", "SPENDR_EMPTY_SELECTION",
	"SPENDR_DEFAULT_CHART", "SPENDR_LOG_LEVEL", "SPENDR_LOG_FILE",
}

// isolate runs the test in an empty directory with a clean SPENDR_* environment.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

type fakeSettings map[string]string

func (f fakeSettings) GetSetting(key string) (string, error) {
	if v, ok := f[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("get setting %q: %w", key, store.ErrSettingNotFound)
}

type brokenSettings struct{}

func (brokenSettings) GetSetting(string) (string, error) {
	return "", errors.New("database is locked")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.DBPath, filepath.Join("spendr", "spendr.db"))
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Currency)
	assert.Empty(t, cfg.EmptySelection)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SPENDR_DB", "/tmp/x.db")
	t.Setenv("SPENDR_CURRENCY", "eur")
	t.Setenv("SPENDR_EMPTY_SELECTION", "all_months")
	t.Setenv("SPENDR_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, "all_months", cfg.EmptySelection)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	// godotenv does not override variables that are already set, even empty ones.
	for _, k := range envKeys {
		require.NoError(t, os.Unsetenv(k))
	}
	env := "SPENDR_DB=" + filepath.Join(dir, "fixtures.db") + "\nSPENDR_DEFAULT_CHART=line\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))
	t.Cleanup(func() {
		for _, k := range envKeys {
			os.Unsetenv(k)
		}
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fixtures.db"), cfg.DBPath)
	assert.Equal(t, "line", cfg.DefaultChart)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty db", func(c *Config) { c.DBPath = "" }, "database path"},
		{"bad currency", func(c *Config) { c.Currency = "DOLLARS" }, "invalid currency"},
		{"bad policy", func(c *Config) { c.EmptySelection = "everything" }, "invalid empty selection"},
		{"bad chart", func(c *Config) { c.DefaultChart = "pie" }, "invalid default chart"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DBPath: "x.db", LogLevel: "info"}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolve(t *testing.T) {
	stored := fakeSettings{
		"currency":        "GBP",
		"empty_selection": "all_months",
		"default_chart":   "line",
	}

	t.Run("stored settings", func(t *testing.T) {
		p, err := (&Config{}).Resolve(stored)
		require.NoError(t, err)
		assert.Equal(t, Preferences{Currency: "GBP", EmptySelection: spending.AllMonths, DefaultChart: "line"}, p)
	})

	t.Run("config wins", func(t *testing.T) {
		p, err := (&Config{Currency: "JPY", EmptySelection: "first_month"}).Resolve(stored)
		require.NoError(t, err)
		assert.Equal(t, "JPY", p.Currency)
		assert.Equal(t, spending.FirstMonth, p.EmptySelection)
		assert.Equal(t, "line", p.DefaultChart)
	})

	t.Run("currency case from any source", func(t *testing.T) {
		p, err := (&Config{Currency: "eur"}).Resolve(stored)
		require.NoError(t, err)
		assert.Equal(t, "EUR", p.Currency)

		p, err = (&Config{}).Resolve(fakeSettings{"currency": " gbp"})
		require.NoError(t, err)
		assert.Equal(t, "GBP", p.Currency)
	})

	t.Run("fallbacks", func(t *testing.T) {
		p, err := (&Config{}).Resolve(fakeSettings{})
		require.NoError(t, err)
		assert.Equal(t, Preferences{Currency: "USD", EmptySelection: spending.FirstMonth, DefaultChart: "bar"}, p)
	})

	t.Run("bad stored policy", func(t *testing.T) {
		_, err := (&Config{}).Resolve(fakeSettings{"empty_selection": "nope"})
		assert.Error(t, err)
	})

	t.Run("read failure", func(t *testing.T) {
		_, err := (&Config{}).Resolve(brokenSettings{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database is locked")
	})
}
