package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/spendr/internal/spending"
)

type jsonExport struct {
	ExportedAt   string            `json:"exported_at"`
	Month        string            `json:"month,omitempty"`
	Currency     string            `json:"currency"`
	Total        float64           `json:"total"`
	Count        int               `json:"count"`
	Transactions []jsonTransaction `json:"transactions"`
	Breakdown    []jsonCategory    `json:"breakdown"`
	ScreenTime   []jsonDailyTotal  `json:"screen_time,omitempty"`
}

type jsonTransaction struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Amount   float64 `json:"amount"`
}

type jsonCategory struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Count    int     `json:"count"`
}

type jsonDailyTotal struct {
	Day         string `json:"day"`
	Category    string `json:"category"`
	DurationSec int64  `json:"duration_seconds"`
	Duration    string `json:"duration"`
}

func ToJSON(r Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, r); err != nil {
		return err
	}
	return f.Close()
}

func WriteJSON(w io.Writer, r Report) error {
	export := jsonExport{
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		Currency:     r.Currency,
		Total:        spending.Total(r.Transactions),
		Count:        len(r.Transactions),
		Transactions: []jsonTransaction{},
		Breakdown:    []jsonCategory{},
	}
	if r.Month != nil {
		export.Month = r.Month.Format("2006-01")
	}

	for _, s := range r.Transactions {
		export.Transactions = append(export.Transactions, jsonTransaction{
			ID:       s.ID.String(),
			Date:     s.Date.Format("2006-01-02"),
			Category: string(s.Category),
			Label:    s.Label,
			Amount:   s.Amount,
		})
	}
	for _, c := range spending.CategoryBreakdown(r.Transactions) {
		export.Breakdown = append(export.Breakdown, jsonCategory{
			Category: string(c.Category),
			Amount:   c.Amount,
			Count:    c.Count,
		})
	}
	for _, t := range r.ScreenTime {
		secs := int64(t.DurationSeconds)
		export.ScreenTime = append(export.ScreenTime, jsonDailyTotal{
			Day:         t.Day.Format("2006-01-02"),
			Category:    string(t.Category),
			DurationSec: secs,
			Duration:    formatDuration(secs),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
