package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jwulff/bptrack/internal/alert"
	"github.com/jwulff/bptrack/internal/bloodpressure"
)

func alertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Show the active trend alert",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				out := cmd.OutOrStdout()
				active, ok := a.alerts.Active()
				if !ok {
					fmt.Fprintln(out, "No active alerts")
					return nil
				}
				printAlert(out, active)
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dismiss",
		Short: "Dismiss the active alert for the rest of the day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				out := cmd.OutOrStdout()
				active, ok := a.alerts.Active()
				if !ok {
					fmt.Fprintln(out, "No active alerts")
					return nil
				}
				if err := a.alerts.Dismiss(cmd.Context()); err != nil {
					return fmt.Errorf("dismissal was not saved: %w", err)
				}
				fmt.Fprintf(out, "✓ Dismissed %s\n", active.ID())
				return nil
			})
		},
	})

	return cmd
}

func printAlert(out io.Writer, a alert.Alert) {
	title := "High Blood Pressure Alert"
	c := highColor
	if a.Type == alert.KindLow {
		title = "Low Blood Pressure Alert"
		c = lowColor
	}
	fmt.Fprintf(out, "%s %s\n", c.Sprint("⚠"), c.Sprint(title))
	fmt.Fprintf(out, "  %s\n", a.Message)
	fmt.Fprintf(out, "  Dismiss with: bptrack alert dismiss\n")
}

func trendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Show the most recent readings used for trend detection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				out := cmd.OutOrStdout()
				all := a.readings.All()
				recent := bloodpressure.SortByTimestamp(all, true)
				if len(recent) > bloodpressure.TrendWindow {
					recent = recent[:bloodpressure.TrendWindow]
				}

				if len(recent) > 0 {
					w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
					fmt.Fprintln(w, "DATE\tTIME\tPRESSURE\tSTATUS")
					for _, r := range recent {
						fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\n", r.Date, r.Time, r.Systolic, r.Diastolic, statusText(r.Status()))
					}
					w.Flush()
					fmt.Fprintln(out)
				}

				trend := bloodpressure.DetectTrend(all)
				switch {
				case len(all) < bloodpressure.TrendWindow:
					fmt.Fprintf(out, "Not enough readings for a trend (%d of %d)\n", len(all), bloodpressure.TrendWindow)
				case trend.IsHigh:
					fmt.Fprintf(out, "Trend: %s for the last %d readings\n", statusText(bloodpressure.StatusHigh), bloodpressure.TrendWindow)
				case trend.IsLow:
					fmt.Fprintf(out, "Trend: %s for the last %d readings\n", statusText(bloodpressure.StatusLow), bloodpressure.TrendWindow)
				default:
					fmt.Fprintln(out, "No sustained trend")
				}
				return nil
			})
		},
	}
}

func rangesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ranges",
		Short: "Show the blood pressure reference ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STATUS\tSYSTOLIC\tDIASTOLIC")
			for _, r := range bloodpressure.ReferenceRanges() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", statusText(r.Status), r.Systolic, r.Diastolic)
			}
			return w.Flush()
		},
	}
}
