package spending

import "time"

// Seed is the raw data a TimeSeriesStore and the screen-time view are built from.
type Seed struct {
	Metrics []MonthlyMetric
	Spends  []CategorySpend
	Samples []ScreenTimeSample
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var demoViews = []float64{55000, 89000, 64000, 79000, 130000, 90000, 88000, 64000, 74000, 99000, 110000, 94000}

var demoSpends = []struct {
	category Category
	label    string
	amount   float64
	month    time.Month
}{
	{Social, "Amazon", 1200, time.January},
	{Entertainment, "Target", 800, time.October},
	{ProductivityFinance, "Finance Apps", 600, time.April},
	{Other, "Walmart", 700, time.May},
	{Other, "Miscellaneous", 400, time.July},
	{Social, "Miscellaneous", 100, time.January},
	{Entertainment, "Target", 900, time.March},
	{ProductivityFinance, "Finance Apps", 600, time.May},
	{Other, "Walmart", 400, time.June},
	{Other, "Miscellaneous", 400, time.July},
	{Social, "Amazon", 1200, time.February},
	{Entertainment, "Target", 800, time.September},
	{ProductivityFinance, "Finance Apps", 600, time.February},
	{Other, "Walmart", 400, time.December},
	{Other, "Miscellaneous", 400, time.November},
	{Other, "Walmart", 400, time.July},
	{Other, "Miscellaneous", 400, time.September},
}

// DemoSeed returns the bundled demo data set: twelve months of 2024 view
// counts, a year of categorised spends and a week of half-hourly
// screen-time samples starting 2022-06-20. All times are UTC.
func DemoSeed() Seed {
	var seed Seed
	for i, v := range demoViews {
		seed.Metrics = append(seed.Metrics, NewMonthlyMetric(date(2024, time.Month(i+1), 1), v))
	}
	for _, s := range demoSpends {
		seed.Spends = append(seed.Spends, NewCategorySpend(s.category, s.label, s.amount, date(2024, s.month, 1)))
	}
	seed.Samples = demoSamples(date(2022, time.June, 20), 7)
	return seed
}

// demoSamples produces deterministic half-hour samples between 08:00 and
// 22:00. Durations cycle so each day has a different category mix.
func demoSamples(start time.Time, days int) []ScreenTimeSample {
	var out []ScreenTimeSample
	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d)
		for slot := 16; slot < 44; slot++ {
			n := d*31 + slot*7
			if n%5 == 0 {
				continue
			}
			out = append(out, ScreenTimeSample{
				Timestamp:       day.Add(time.Duration(slot) * 30 * time.Minute),
				Category:        CategoryOrder[(n/3)%len(CategoryOrder)],
				DurationSeconds: float64(300 + (n%6)*250),
			})
		}
	}
	return out
}
