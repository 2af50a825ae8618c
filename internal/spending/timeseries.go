package spending

import (
	"fmt"
	"slices"
	"time"
)

// EmptySelectionPolicy decides what CategoriesForMonth returns without a date.
type EmptySelectionPolicy int

const (
	// FirstMonth returns the spends of the first stored metric's month.
	FirstMonth EmptySelectionPolicy = iota
	// AllMonths returns every stored spend.
	AllMonths
)

var policyNames = map[EmptySelectionPolicy]string{
	FirstMonth: "first_month",
	AllMonths:  "all_months",
}

func (p EmptySelectionPolicy) String() string {
	if n, ok := policyNames[p]; ok {
		return n
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParseEmptySelectionPolicy accepts the names produced by String.
func ParseEmptySelectionPolicy(s string) (EmptySelectionPolicy, error) {
	for p, n := range policyNames {
		if n == s {
			return p, nil
		}
	}
	return FirstMonth, fmt.Errorf("unknown empty selection policy %q", s)
}

type StoreOption func(*TimeSeriesStore)

func WithEmptySelectionPolicy(p EmptySelectionPolicy) StoreOption {
	return func(s *TimeSeriesStore) { s.policy = p }
}

// TimeSeriesStore holds the monthly metrics and categorised spends and
// answers month-granularity queries. It is read-only after construction.
type TimeSeriesStore struct {
	metrics []MonthlyMetric
	spends  []CategorySpend
	policy  EmptySelectionPolicy
}

// NewTimeSeriesStore copies the seed data, orders metrics by month and
// rejects more than one metric for the same month.
func NewTimeSeriesStore(metrics []MonthlyMetric, spends []CategorySpend, opts ...StoreOption) (*TimeSeriesStore, error) {
	s := &TimeSeriesStore{
		metrics: slices.Clone(metrics),
		spends:  slices.Clone(spends),
	}
	for _, opt := range opts {
		opt(s)
	}

	for i := range s.metrics {
		s.metrics[i].Month = TruncateMonth(s.metrics[i].Month)
	}
	slices.SortStableFunc(s.metrics, func(a, b MonthlyMetric) int {
		return a.Month.Compare(b.Month)
	})
	for i := 1; i < len(s.metrics); i++ {
		if SameMonth(s.metrics[i-1].Month, s.metrics[i].Month) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMonth, s.metrics[i].Month.Format("2006-01"))
		}
	}
	return s, nil
}

func (s *TimeSeriesStore) Policy() EmptySelectionPolicy { return s.policy }

// Metrics returns the metrics ordered by month.
func (s *TimeSeriesStore) Metrics() []MonthlyMetric { return slices.Clone(s.metrics) }

func (s *TimeSeriesStore) Spends() []CategorySpend { return slices.Clone(s.spends) }

// FindMonth returns the metric for t's calendar month.
func (s *TimeSeriesStore) FindMonth(t time.Time) (MonthlyMetric, bool) {
	for _, m := range s.metrics {
		if SameMonth(m.Month, t) {
			return m, true
		}
	}
	return MonthlyMetric{}, false
}

// CategoriesForMonth returns the spends dated in the same month as *t.
// A nil t falls back to the store's EmptySelectionPolicy.
func (s *TimeSeriesStore) CategoriesForMonth(t *time.Time) []CategorySpend {
	if t == nil {
		return s.emptySelection()
	}
	return s.spendsIn(*t)
}

func (s *TimeSeriesStore) emptySelection() []CategorySpend {
	switch s.policy {
	case AllMonths:
		return s.Spends()
	default:
		if len(s.metrics) == 0 {
			return nil
		}
		return s.spendsIn(s.metrics[0].Month)
	}
}

func (s *TimeSeriesStore) spendsIn(t time.Time) []CategorySpend {
	var out []CategorySpend
	for _, sp := range s.spends {
		if SameMonth(sp.Date, t) {
			out = append(out, sp)
		}
	}
	return out
}
