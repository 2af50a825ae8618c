package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sadopc/spendr/internal/spending"
	"github.com/sadopc/spendr/internal/store"
)

type Config struct {
	// Database
	DBPath string

	// Presentation
	Currency       string
	EmptySelection string
	DefaultChart   string

	// Logging
	LogLevel string
	LogFile  string
}

var (
	validCharts    = []string{"bar", "line"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Load reads an optional .env file in the working directory and then the
// process environment. Unset values keep their defaults; Currency,
// EmptySelection and DefaultChart stay empty so stored settings can fill them.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	dbPath := os.Getenv("SPENDR_DB")
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("default db path: %w", err)
		}
		dbPath = p
	}

	return &Config{
		DBPath:         dbPath,
		Currency:       strings.ToUpper(getEnv("SPENDR_CURRENCY", "")),
		EmptySelection: getEnv("SPENDR_EMPTY_SELECTION", ""),
		DefaultChart:   getEnv("SPENDR_DEFAULT_CHART", ""),
		LogLevel:       getEnv("SPENDR_LOG_LEVEL", "info"),
		LogFile:        getEnv("SPENDR_LOG_FILE", ""),
	}, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if c.DBPath == "" {
		errs = append(errs, "database path cannot be empty")
	}
	if cur := strings.TrimSpace(c.Currency); cur != "" && len(cur) != 3 {
		errs = append(errs, fmt.Sprintf("invalid currency '%s': must be a 3-letter ISO code", c.Currency))
	}
	if c.EmptySelection != "" {
		if _, err := spending.ParseEmptySelectionPolicy(c.EmptySelection); err != nil {
			errs = append(errs, fmt.Sprintf("invalid empty selection '%s': must be first_month or all_months", c.EmptySelection))
		}
	}
	if c.DefaultChart != "" && !slices.Contains(validCharts, c.DefaultChart) {
		errs = append(errs, fmt.Sprintf("invalid default chart '%s': must be one of %v", c.DefaultChart, validCharts))
	}
	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Level maps LogLevel onto slog. Unknown values map to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Preferences are the presentation settings after merging config over the
// values stored in the fixture database.
type Preferences struct {
	Currency       string
	EmptySelection spending.EmptySelectionPolicy
	DefaultChart   string
}

// SettingsReader is the subset of *store.Store that Resolve needs.
type SettingsReader interface {
	GetSetting(key string) (string, error)
}

// Resolve merges the config with stored settings. Config values win, then
// stored values, then the built-in defaults.
func (c *Config) Resolve(s SettingsReader) (Preferences, error) {
	var firstErr error
	pick := func(override, key, fallback string) string {
		if override != "" {
			return override
		}
		v, err := s.GetSetting(key)
		if err != nil {
			if !errors.Is(err, store.ErrSettingNotFound) && firstErr == nil {
				firstErr = err
			}
			return fallback
		}
		if v == "" {
			return fallback
		}
		return v
	}

	p := Preferences{
		Currency:     strings.ToUpper(strings.TrimSpace(pick(c.Currency, store.SettingCurrency, "USD"))),
		DefaultChart: pick(c.DefaultChart, store.SettingDefaultChart, "bar"),
	}
	policy, err := spending.ParseEmptySelectionPolicy(pick(c.EmptySelection, store.SettingEmptySelection, "first_month"))
	if err != nil {
		return Preferences{}, err
	}
	if firstErr != nil {
		return Preferences{}, fmt.Errorf("read settings: %w", firstErr)
	}
	p.EmptySelection = policy
	return p, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
