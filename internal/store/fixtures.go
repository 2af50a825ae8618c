package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/spendr/internal/spending"
)

const monthLayout = "2006-01"

// ImportSeed replaces all fixture rows with seed in a single transaction.
func (s *Store) ImportSeed(seed spending.Seed) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"monthly_metrics", "category_spends", "screen_time_samples"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, m := range seed.Metrics {
		_, err := tx.Exec(
			`INSERT INTO monthly_metrics (id, month, value) VALUES (?, ?, ?)`,
			idOrNew(m.ID), m.Month.UTC().Format(monthLayout), m.Value,
		)
		if err != nil {
			return fmt.Errorf("insert metric %s: %w", m.Month.Format(monthLayout), err)
		}
	}

	for _, sp := range seed.Spends {
		_, err := tx.Exec(
			`INSERT INTO category_spends (id, category, label, amount, spent_on) VALUES (?, ?, ?, ?, ?)`,
			idOrNew(sp.ID), string(sp.Category), sp.Label, sp.Amount, sp.Date.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("insert spend %q: %w", sp.Label, err)
		}
	}

	for _, smp := range seed.Samples {
		_, err := tx.Exec(
			`INSERT INTO screen_time_samples (recorded_at, category, duration_seconds) VALUES (?, ?, ?)`,
			smp.Timestamp.UTC().Format(time.RFC3339), string(smp.Category), smp.DurationSeconds,
		)
		if err != nil {
			return fmt.Errorf("insert sample: %w", err)
		}
	}

	return tx.Commit()
}

func idOrNew(id uuid.UUID) string {
	if id == uuid.Nil {
		return uuid.NewString()
	}
	return id.String()
}

// ListMetrics returns the stored monthly metrics ordered by month.
func (s *Store) ListMetrics() ([]spending.MonthlyMetric, error) {
	rows, err := s.db.Query(`SELECT id, month, value FROM monthly_metrics ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	defer rows.Close()

	var metrics []spending.MonthlyMetric
	for rows.Next() {
		var m spending.MonthlyMetric
		var id, month string
		if err := rows.Scan(&id, &month, &m.Value); err != nil {
			return nil, err
		}
		if m.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("metric %s: parse id: %w", month, err)
		}
		if m.Month, err = time.Parse(monthLayout, month); err != nil {
			return nil, fmt.Errorf("metric %s: parse month: %w", id, err)
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// ListSpends returns the stored spends ordered by date.
func (s *Store) ListSpends() ([]spending.CategorySpend, error) {
	rows, err := s.db.Query(`SELECT id, category, label, amount, spent_on FROM category_spends ORDER BY spent_on, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list spends: %w", err)
	}
	defer rows.Close()

	var spends []spending.CategorySpend
	for rows.Next() {
		var sp spending.CategorySpend
		var id, category, spentOn string
		if err := rows.Scan(&id, &category, &sp.Label, &sp.Amount, &spentOn); err != nil {
			return nil, err
		}
		if sp.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("spend %q: parse id: %w", sp.Label, err)
		}
		if sp.Category, err = spending.ParseCategory(category); err != nil {
			return nil, fmt.Errorf("spend %s: %w", id, err)
		}
		if sp.Date, err = time.Parse(time.RFC3339, spentOn); err != nil {
			return nil, fmt.Errorf("spend %s: parse date: %w", id, err)
		}
		spends = append(spends, sp)
	}
	return spends, rows.Err()
}

// SampleFilter narrows ListSamples to [From, To).
type SampleFilter struct {
	From *time.Time
	To   *time.Time
}

func (s *Store) ListSamples(f SampleFilter) ([]spending.ScreenTimeSample, error) {
	query := `SELECT recorded_at, category, duration_seconds FROM screen_time_samples WHERE 1=1`
	var args []any

	if f.From != nil {
		query += ` AND recorded_at >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		query += ` AND recorded_at < ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY recorded_at, id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	var samples []spending.ScreenTimeSample
	for rows.Next() {
		var smp spending.ScreenTimeSample
		var recordedAt, category string
		var duration sql.NullFloat64
		if err := rows.Scan(&recordedAt, &category, &duration); err != nil {
			return nil, err
		}
		if smp.Timestamp, err = time.Parse(time.RFC3339, recordedAt); err != nil {
			return nil, fmt.Errorf("sample %s: parse time: %w", recordedAt, err)
		}
		if smp.Category, err = spending.ParseCategory(category); err != nil {
			return nil, fmt.Errorf("sample %s: %w", recordedAt, err)
		}
		smp.DurationSeconds = duration.Float64
		samples = append(samples, smp)
	}
	return samples, rows.Err()
}

// Load reads every fixture table into a spending.Seed.
func (s *Store) Load() (spending.Seed, error) {
	var seed spending.Seed
	var err error
	if seed.Metrics, err = s.ListMetrics(); err != nil {
		return spending.Seed{}, err
	}
	if seed.Spends, err = s.ListSpends(); err != nil {
		return spending.Seed{}, err
	}
	if seed.Samples, err = s.ListSamples(SampleFilter{}); err != nil {
		return spending.Seed{}, err
	}
	return seed, nil
}

// TimeSeries loads the fixtures into a read-only TimeSeriesStore.
func (s *Store) TimeSeries(opts ...spending.StoreOption) (*spending.TimeSeriesStore, error) {
	metrics, err := s.ListMetrics()
	if err != nil {
		return nil, err
	}
	spends, err := s.ListSpends()
	if err != nil {
		return nil, err
	}
	ts, err := spending.NewTimeSeriesStore(metrics, spends, opts...)
	if err != nil {
		return nil, fmt.Errorf("build time series: %w", err)
	}
	return ts, nil
}
