package cli

import (
	"fmt"
	"time"

	"github.com/sadopc/spendr/internal/formatter"
	"github.com/sadopc/spendr/internal/spending"
	"github.com/sadopc/spendr/internal/store"
	"github.com/spf13/cobra"
)

func newScreenTimeCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "screentime",
		Short: "Show screen time per day and category",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := sampleFilter(from, to)
			if err != nil {
				return err
			}
			samples, err := app.store.ListSamples(filter)
			if err != nil {
				return err
			}
			if err := spending.ValidateSamples(samples); err != nil {
				app.logger.Warn("dropping invalid samples", "error", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScreenTime(spending.AggregateByDay(samples)))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day to include (YYYY-MM-DD)")

	return cmd
}

// sampleFilter turns inclusive day bounds into the store's [From, To) range.
func sampleFilter(from, to string) (store.SampleFilter, error) {
	var f store.SampleFilter
	if from != "" {
		t, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return f, fmt.Errorf("invalid --from %q: use YYYY-MM-DD", from)
		}
		f.From = &t
	}
	if to != "" {
		t, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return f, fmt.Errorf("invalid --to %q: use YYYY-MM-DD", to)
		}
		end := t.AddDate(0, 0, 1)
		f.To = &end
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return f, fmt.Errorf("--from %s is after --to %s", from, to)
	}
	return f, nil
}
