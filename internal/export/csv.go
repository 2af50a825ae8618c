package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/spendr/internal/spending"
)

// ToCSV writes the report's transactions, followed by a blank line and the
// screen-time daily totals when there are any.
func ToCSV(r Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, r); err != nil {
		return err
	}
	return f.Close()
}

func WriteCSV(out io.Writer, r Report) error {
	w := csv.NewWriter(out)

	// Header
	if err := w.Write([]string{"ID", "Date", "Category", "Label", "Amount", "Currency"}); err != nil {
		return err
	}

	for _, s := range r.Transactions {
		row := []string{
			s.ID.String(),
			s.Date.Format("2006-01-02"),
			string(s.Category),
			s.Label,
			strconv.FormatFloat(s.Amount, 'f', 2, 64),
			r.Currency,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	if len(r.ScreenTime) > 0 {
		// csv.Writer has no way to emit an empty record, so flush and write
		// the separator by hand.
		w.Flush()
		if _, err := io.WriteString(out, "\n"); err != nil {
			return err
		}
		if err := w.Write([]string{"Day", "Category", "Duration (s)", "Duration"}); err != nil {
			return err
		}
		for _, t := range r.ScreenTime {
			secs := int64(t.DurationSeconds)
			row := []string{
				t.Day.Format("2006-01-02"),
				string(t.Category),
				strconv.FormatInt(secs, 10),
				formatDuration(secs),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

// Report is the exportable view of one selection.
type Report struct {
	Month        *time.Time
	Currency     string
	Transactions []spending.CategorySpend
	ScreenTime   []spending.ScreenTimeDailyTotal
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
