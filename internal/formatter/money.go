package formatter

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
}

// Money renders v with two decimals and thousands separators. Unknown
// currency codes are used as a prefix.
func Money(currency string, v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = math.Abs(v)
	}
	sym, ok := currencySymbols[currency]
	if !ok {
		sym = currency + " "
	}
	return sign + sym + humanize.FormatFloat("#,###.##", v)
}

// Count renders a metric value such as a view count.
func Count(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// Clock renders seconds as HH:MM:SS. Hours are not capped at 24.
func Clock(secs float64) string {
	d := time.Duration(secs) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
