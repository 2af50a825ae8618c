package store

import (
	"errors"
	"testing"
	"time"

	"github.com/sadopc/spendr/internal/spending"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/spendr.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	// Replace the demo data so a reopen can prove it is not re-seeded.
	if err := s.ImportSeed(spending.Seed{Metrics: []spending.MonthlyMetric{
		spending.NewMonthlyMetric(day(2030, time.March, 1), 1),
	}}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	metrics, err := s2.ListMetrics()
	if err != nil {
		t.Fatal(err)
	}
	if len(metrics) != 1 || metrics[0].Month.Year() != 2030 {
		t.Fatalf("reopen should keep imported fixtures, got %+v", metrics)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running migrate again should be a no-op
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
	metrics, _ := s.ListMetrics()
	if len(metrics) != 12 {
		t.Fatalf("expected 12 metrics after second migrate, got %d", len(metrics))
	}
}

// ============================================================
// Demo fixtures
// ============================================================

func TestDemoSeedLoaded(t *testing.T) {
	s := newTestStore(t)
	demo := spending.DemoSeed()

	seed, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(seed.Metrics) != len(demo.Metrics) {
		t.Fatalf("metrics: got %d, want %d", len(seed.Metrics), len(demo.Metrics))
	}
	if len(seed.Spends) != len(demo.Spends) {
		t.Fatalf("spends: got %d, want %d", len(seed.Spends), len(demo.Spends))
	}
	if len(seed.Samples) != len(demo.Samples) {
		t.Fatalf("samples: got %d, want %d", len(seed.Samples), len(demo.Samples))
	}

	for i, m := range seed.Metrics {
		if m.Month.Month() != time.Month(i+1) || m.Month.Day() != 1 {
			t.Fatalf("metric %d has month %v", i, m.Month)
		}
	}
	if seed.Metrics[4].Value != 130000 {
		t.Fatalf("expected May views 130000, got %v", seed.Metrics[4].Value)
	}
}

func TestListSpendsOrderedByDate(t *testing.T) {
	s := newTestStore(t)
	spends, err := s.ListSpends()
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(spends); i++ {
		if spends[i].Date.Before(spends[i-1].Date) {
			t.Fatalf("spend %d out of order: %v before %v", i, spends[i].Date, spends[i-1].Date)
		}
	}
}

func TestImportSeedRoundTrip(t *testing.T) {
	s := newTestStore(t)
	metric := spending.NewMonthlyMetric(day(2024, time.January, 1), 10)
	spend := spending.NewCategorySpend(spending.Entertainment, "Cinema", 12.5, day(2024, time.January, 6))
	sample := spending.ScreenTimeSample{
		Timestamp:       time.Date(2024, time.January, 6, 21, 30, 0, 0, time.UTC),
		Category:        spending.Entertainment,
		DurationSeconds: 5400,
	}

	err := s.ImportSeed(spending.Seed{
		Metrics: []spending.MonthlyMetric{metric},
		Spends:  []spending.CategorySpend{spend},
		Samples: []spending.ScreenTimeSample{sample},
	})
	if err != nil {
		t.Fatal(err)
	}

	seed, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(seed.Metrics) != 1 || seed.Metrics[0].ID != metric.ID {
		t.Fatalf("unexpected metrics: %+v", seed.Metrics)
	}
	if len(seed.Spends) != 1 {
		t.Fatalf("unexpected spends: %+v", seed.Spends)
	}
	got := seed.Spends[0]
	if got.ID != spend.ID || got.Category != spend.Category || got.Label != "Cinema" || got.Amount != 12.5 || !got.Date.Equal(spend.Date) {
		t.Fatalf("spend mismatch: %+v vs %+v", got, spend)
	}
	if len(seed.Samples) != 1 || !seed.Samples[0].Timestamp.Equal(sample.Timestamp) || seed.Samples[0].DurationSeconds != 5400 {
		t.Fatalf("unexpected samples: %+v", seed.Samples)
	}
}

func TestImportSeedDuplicateMonthRollsBack(t *testing.T) {
	s := newTestStore(t)
	err := s.ImportSeed(spending.Seed{Metrics: []spending.MonthlyMetric{
		spending.NewMonthlyMetric(day(2024, time.May, 1), 1),
		spending.NewMonthlyMetric(day(2024, time.May, 9), 2),
	}})
	if err == nil {
		t.Fatal("expected unique constraint error")
	}

	metrics, _ := s.ListMetrics()
	if len(metrics) != 12 {
		t.Fatalf("failed import should roll back, got %d metrics", len(metrics))
	}
}

func TestImportSeedAssignsMissingIDs(t *testing.T) {
	s := newTestStore(t)
	err := s.ImportSeed(spending.Seed{
		Metrics: []spending.MonthlyMetric{{Month: day(2024, time.June, 1), Value: 5}},
	})
	if err != nil {
		t.Fatal(err)
	}
	metrics, _ := s.ListMetrics()
	if len(metrics) != 1 || metrics[0].ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("expected generated id, got %+v", metrics)
	}
}

func TestListSamplesFilter(t *testing.T) {
	s := newTestStore(t)
	from := day(2022, time.June, 21)
	to := day(2022, time.June, 23)

	samples, err := s.ListSamples(SampleFilter{From: &from, To: &to})
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) == 0 {
		t.Fatal("expected samples in range")
	}
	for _, smp := range samples {
		if smp.Timestamp.Before(from) || !smp.Timestamp.Before(to) {
			t.Fatalf("sample %v outside [%v, %v)", smp.Timestamp, from, to)
		}
	}

	totals := spending.AggregateByDay(samples)
	if days := spending.Days(totals); len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
}

func TestTimeSeries(t *testing.T) {
	s := newTestStore(t)

	ts, err := s.TimeSeries(spending.WithEmptySelectionPolicy(spending.AllMonths))
	if err != nil {
		t.Fatal(err)
	}
	if ts.Policy() != spending.AllMonths {
		t.Fatal("policy option not applied")
	}
	if got := len(ts.CategoriesForMonth(nil)); got != 17 {
		t.Fatalf("expected all 17 spends, got %d", got)
	}
	m, ok := ts.FindMonth(day(2024, time.February, 29))
	if !ok || m.Value != 89000 {
		t.Fatalf("FindMonth Feb: %+v %v", m, ok)
	}
}

func TestUnknownCategoryRejected(t *testing.T) {
	s := newTestStore(t)
	_, err := s.db.Exec(
		`INSERT INTO category_spends (id, category, label, amount, spent_on) VALUES (?, ?, ?, ?, ?)`,
		"6f9619ff-8b86-d011-b42d-00cf4fc964ff", "Gaming", "Steam", 60, day(2024, time.March, 1).Format(time.RFC3339),
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ListSpends(); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

// ============================================================
// Settings
// ============================================================

func TestDefaultSettings(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		key  string
		want string
	}{
		{SettingCurrency, "USD"},
		{SettingEmptySelection, "first_month"},
		{SettingDefaultChart, "bar"},
	}
	for _, tt := range tests {
		got, err := s.GetSetting(tt.key)
		if err != nil {
			t.Fatalf("get %s: %v", tt.key, err)
		}
		if got != tt.want {
			t.Errorf("setting %s = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestSetSetting(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting(SettingCurrency, "EUR"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetSetting(SettingCurrency)
	if got != "EUR" {
		t.Fatalf("expected EUR, got %q", got)
	}

	if err := s.SetSetting("new_key", "v"); err != nil {
		t.Fatal(err)
	}
	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 settings, got %d", len(all))
	}
}

func TestGetSettingMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSetting("nope")
	if !errors.Is(err, ErrSettingNotFound) {
		t.Fatalf("expected ErrSettingNotFound, got %v", err)
	}
}

func TestSetSettingsBatch(t *testing.T) {
	s := newTestStore(t)
	err := s.SetSettings([]Setting{
		{Key: SettingCurrency, Value: "GBP"},
		{Key: SettingDefaultChart, Value: "line"},
	})
	if err != nil {
		t.Fatal(err)
	}

	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]string{}
	for _, st := range all {
		got[st.Key] = st.Value
	}
	if got[SettingCurrency] != "GBP" || got[SettingDefaultChart] != "line" {
		t.Fatalf("unexpected settings %v", got)
	}
	if got[SettingEmptySelection] != "first_month" {
		t.Fatal("untouched settings should keep their values")
	}
}
