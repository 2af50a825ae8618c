package spending

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDuplicateMonth = errors.New("duplicate month")
	ErrInvalidSample  = errors.New("invalid screen time sample")
)

// MonthlyMetric is one month's aggregate, e.g. view count or spend.
type MonthlyMetric struct {
	ID    uuid.UUID
	Month time.Time // first day of the month, 00:00
	Value float64
}

// NewMonthlyMetric normalises month to the first of its month.
func NewMonthlyMetric(month time.Time, value float64) MonthlyMetric {
	return MonthlyMetric{
		ID:    uuid.New(),
		Month: TruncateMonth(month),
		Value: value,
	}
}

// CategorySpend is a single categorised spend attributed to a date.
type CategorySpend struct {
	ID       uuid.UUID
	Category Category
	Label    string
	Amount   float64
	Date     time.Time
}

func NewCategorySpend(c Category, label string, amount float64, date time.Time) CategorySpend {
	return CategorySpend{
		ID:       uuid.New(),
		Category: c,
		Label:    label,
		Amount:   amount,
		Date:     date,
	}
}

// ScreenTimeSample is a raw, sub-daily usage record.
type ScreenTimeSample struct {
	Timestamp       time.Time
	Category        Category
	DurationSeconds float64
}

// ScreenTimeDailyTotal is the summed duration for one (day, category) pair.
type ScreenTimeDailyTotal struct {
	Day             time.Time
	Category        Category
	DurationSeconds float64
}

// CategoryTotal is the summed amount of one category within a set of spends.
type CategoryTotal struct {
	Category Category
	Amount   float64
	Count    int
}

// TruncateMonth returns 00:00 on the first day of t's month, in t's location.
func TruncateMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// TruncateDay returns the start of t's calendar day, in t's location.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameMonth reports whether a and b fall in the same calendar (year, month),
// as seen from a's location.
func SameMonth(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month()
}
