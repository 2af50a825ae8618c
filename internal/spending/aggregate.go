package spending

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"
)

// ValidateSample reports why s cannot be aggregated, if at all.
func ValidateSample(s ScreenTimeSample) error {
	switch {
	case s.Timestamp.IsZero():
		return fmt.Errorf("%w: zero timestamp", ErrInvalidSample)
	case math.IsNaN(s.DurationSeconds), math.IsInf(s.DurationSeconds, 0):
		return fmt.Errorf("%w: duration %v at %s", ErrInvalidSample, s.DurationSeconds, s.Timestamp.Format(time.RFC3339))
	case s.DurationSeconds < 0:
		return fmt.Errorf("%w: negative duration %v at %s", ErrInvalidSample, s.DurationSeconds, s.Timestamp.Format(time.RFC3339))
	}
	return nil
}

// ValidateSamples joins the errors of every invalid sample.
func ValidateSamples(samples []ScreenTimeSample) error {
	var errs []error
	for i, s := range samples {
		if err := ValidateSample(s); err != nil {
			errs = append(errs, fmt.Errorf("sample %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// dayCategory identifies a calendar day in a zone. time.Time is not used as
// the key because equal days in the same zone may carry distinct *Location
// pointers (time.Parse offsets, repeated time.LoadLocation).
type dayCategory struct {
	midnight int64
	zone     string
	offset   int
	category Category
}

func dayKey(day time.Time, c Category) dayCategory {
	zone, offset := day.Zone()
	return dayCategory{midnight: day.Unix(), zone: zone, offset: offset, category: c}
}

// AggregateByDay sums sample durations per (calendar day, category).
// Samples rejected by ValidateSample are skipped. The result is ordered by
// day, then by category rank; a category without samples on a day yields
// no record. Each record's Day is the first contributing sample's day start.
func AggregateByDay(samples []ScreenTimeSample) []ScreenTimeDailyTotal {
	index := make(map[dayCategory]int)
	var out []ScreenTimeDailyTotal
	for _, s := range samples {
		if ValidateSample(s) != nil {
			continue
		}
		day := TruncateDay(s.Timestamp)
		k := dayKey(day, s.Category)
		if i, ok := index[k]; ok {
			out[i].DurationSeconds += s.DurationSeconds
			continue
		}
		index[k] = len(out)
		out = append(out, ScreenTimeDailyTotal{Day: day, Category: s.Category, DurationSeconds: s.DurationSeconds})
	}
	if len(out) == 0 {
		return nil
	}

	slices.SortFunc(out, func(a, b ScreenTimeDailyTotal) int {
		if c := a.Day.Compare(b.Day); c != 0 {
			return c
		}
		// same instant, different zones
		az, _ := a.Day.Zone()
		bz, _ := b.Day.Zone()
		if c := cmp.Compare(az, bz); c != 0 {
			return c
		}
		if c := Rank(a.Category) - Rank(b.Category); c != 0 {
			return c
		}
		// unknown categories share a rank
		return cmp.Compare(a.Category, b.Category)
	})
	return out
}

// Days returns the distinct days of totals in ascending order. The input
// need not be sorted.
func Days(totals []ScreenTimeDailyTotal) []time.Time {
	if len(totals) == 0 {
		return nil
	}
	days := make([]time.Time, 0, len(totals))
	for _, t := range totals {
		days = append(days, t.Day)
	}
	slices.SortFunc(days, time.Time.Compare)
	return slices.CompactFunc(days, time.Time.Equal)
}
