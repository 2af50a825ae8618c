package cli

import (
	"fmt"

	"github.com/sadopc/spendr/internal/formatter"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the spending total and transactions for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := selection(month)
			if err != nil {
				return err
			}
			series, err := app.series()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(series, sel, app.prefs.Currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to select (YYYY-MM)")

	return cmd
}

func newMonthsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List the monthly metric series",
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := app.series()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMonths(series.Metrics()))
			return nil
		},
	}
}
