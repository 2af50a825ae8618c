package cli

import (
	"fmt"
	"io"

	"github.com/sadopc/spendr/internal/export"
	"github.com/sadopc/spendr/internal/spending"
	"github.com/sadopc/spendr/internal/store"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var format, month, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions and screen time as CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("invalid format %q: use csv or json", format)
			}
			sel, err := selection(month)
			if err != nil {
				return err
			}
			series, err := app.series()
			if err != nil {
				return err
			}
			samples, err := app.store.ListSamples(store.SampleFilter{})
			if err != nil {
				return err
			}

			report := export.Report{
				Month:        sel.SelectedDate,
				Currency:     app.prefs.Currency,
				Transactions: spending.FilteredTransactions(sel, series),
				ScreenTime:   spending.AggregateByDay(samples),
			}

			if out == "" || out == "-" {
				return write(cmd.OutOrStdout(), format, report)
			}
			if format == "csv" {
				err = export.ToCSV(report, out)
			} else {
				err = export.ToJSON(report, out)
			}
			if err != nil {
				return err
			}
			app.logger.Info("exported", "path", out, "format", format, "transactions", len(report.Transactions))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or json")
	cmd.Flags().StringVar(&month, "month", "", "Month to export (YYYY-MM)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func write(w io.Writer, format string, r export.Report) error {
	if format == "csv" {
		return export.WriteCSV(w, r)
	}
	return export.WriteJSON(w, r)
}
