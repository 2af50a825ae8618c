package spending

import (
	"slices"
	"sync"
	"time"
)

// ResolveDate turns a date picked on the chart axis into the canonical
// selected date: the start of its calendar day.
func ResolveDate(t time.Time) time.Time {
	return TruncateDay(t)
}

// Selection is the transient chart selection. The zero value selects nothing.
type Selection struct {
	SelectedDate *time.Time
}

func NewSelection(t time.Time) Selection {
	d := ResolveDate(t)
	return Selection{SelectedDate: &d}
}

func (s Selection) IsSet() bool { return s.SelectedDate != nil }

func (s *Selection) Clear() { s.SelectedDate = nil }

// FilteredTransactions returns the spends to list for sel. Without a
// selection the store's empty-selection policy applies.
func FilteredTransactions(sel Selection, store *TimeSeriesStore) []CategorySpend {
	if !sel.IsSet() {
		return store.CategoriesForMonth(nil)
	}
	d := *sel.SelectedDate
	spends := store.CategoriesForMonth(&d)
	return slices.DeleteFunc(spends, func(sp CategorySpend) bool {
		return !SameMonth(sp.Date, d)
	})
}

// Total sums the amounts of spends.
func Total(spends []CategorySpend) float64 {
	var sum float64
	for _, s := range spends {
		sum += s.Amount
	}
	return sum
}

// CategoryBreakdown totals spends per category, in category rank order.
// Categories without spends are omitted.
func CategoryBreakdown(spends []CategorySpend) []CategoryTotal {
	idx := make(map[Category]int)
	var out []CategoryTotal
	for _, s := range spends {
		i, ok := idx[s.Category]
		if !ok {
			i = len(out)
			idx[s.Category] = i
			out = append(out, CategoryTotal{Category: s.Category})
		}
		out[i].Amount += s.Amount
		out[i].Count++
	}
	slices.SortStableFunc(out, func(a, b CategoryTotal) int {
		return Rank(a.Category) - Rank(b.Category)
	})
	return out
}

// Resolver memoises FilteredTransactions per selected day.
type Resolver struct {
	store *TimeSeriesStore

	mu    sync.Mutex
	cache map[resolverKey][]CategorySpend
}

type resolverKey struct {
	set bool
	day int64
	loc string
}

func NewResolver(store *TimeSeriesStore) *Resolver {
	return &Resolver{store: store, cache: make(map[resolverKey][]CategorySpend)}
}

func (r *Resolver) Store() *TimeSeriesStore { return r.store }

// Transactions returns FilteredTransactions(sel, store). Callers must not
// modify the returned slice.
func (r *Resolver) Transactions(sel Selection) []CategorySpend {
	var k resolverKey
	if sel.IsSet() {
		k = resolverKey{set: true, day: sel.SelectedDate.Unix(), loc: sel.SelectedDate.Location().String()}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.cache[k]; ok {
		return v
	}
	v := FilteredTransactions(sel, r.store)
	r.cache[k] = v
	return v
}
