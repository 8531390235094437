package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwulff/bptrack/internal/bloodpressure"
	"github.com/jwulff/bptrack/internal/storage"
	"github.com/jwulff/bptrack/internal/view"
)

// atLayout is the --at flag format.
const atLayout = bloodpressure.DateLayout + " " + bloodpressure.TimeLayout

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <systolic> <diastolic>",
		Short: "Record a blood pressure reading",
		Long: `Record a reading in mmHg. Systolic must be 50-250 and diastolic 30-150.
The reading is stamped with the current local date and time unless --at is given.`,
		Example: `  bptrack add 120 80
  bptrack add 145 92 --notes "after coffee"
  bptrack add 118 76 --at "2024-01-15 08:30"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _ := cmd.Flags().GetString("notes")
			atFlag, _ := cmd.Flags().GetString("at")

			systolic, diastolic, err := bloodpressure.ParseMeasurement(args[0], args[1])
			if err != nil {
				return err
			}

			at := now()
			if atFlag != "" {
				at, err = time.ParseInLocation(atLayout, atFlag, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --at %q: expected YYYY-MM-DD HH:MM", atFlag)
				}
			}

			reading := bloodpressure.NewReading(systolic, diastolic, notes, at)

			return withApp(cmd.Context(), func(a *app) error {
				if err := a.readings.Add(cmd.Context(), reading); err != nil {
					if storage.IsPersistence(err) {
						return fmt.Errorf("reading was not saved: %w", err)
					}
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Added %d/%d mmHg (%s)\n", systolic, diastolic, statusText(reading.Status()))
				fmt.Fprintf(out, "  ID:    %s\n", reading.ID)
				fmt.Fprintf(out, "  Taken: %s %s\n", reading.Date, reading.Time)
				if reading.Notes != "" {
					fmt.Fprintf(out, "  Notes: %s\n", reading.Notes)
				}

				if active, ok := a.alerts.Active(); ok {
					fmt.Fprintln(out)
					printAlert(out, active)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringP("notes", "n", "", "Free-text notes for the reading")
	cmd.Flags().String("at", "", "Reading time as \"YYYY-MM-DD HH:MM\" (default now)")
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List readings",
		RunE: func(cmd *cobra.Command, args []string) error {
			orderFlag, _ := cmd.Flags().GetString("order")
			statusFlag, _ := cmd.Flags().GetString("status")

			opts, err := listOptions(orderFlag, statusFlag)
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app) error {
				out := cmd.OutOrStdout()
				if a.readings.Len() == 0 {
					fmt.Fprintln(out, "No readings recorded yet. Add one with: bptrack add 120 80")
					return nil
				}

				list := view.BuildList(a.readings.All(), opts)
				if len(list.Rows) > 0 {
					w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
					fmt.Fprintln(w, "DATE\tTIME\tPRESSURE\tSTATUS\tNOTES\tID")
					for _, row := range list.Rows {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
							row.Reading.Date, row.Reading.Time, row.Pressure(),
							statusText(row.Status), row.Notes(), row.Reading.ID)
					}
					w.Flush()
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, list.Summary())
				return nil
			})
		},
	}

	cmd.Flags().StringP("order", "o", string(view.OrderNewestFirst), "Sort order: desc (newest first) or asc")
	cmd.Flags().StringP("status", "s", "all", "Filter by status: all, high, low or normal")
	return cmd
}

func listOptions(order, status string) (view.ListOptions, error) {
	var opts view.ListOptions

	switch view.Order(strings.ToLower(order)) {
	case view.OrderNewestFirst, "":
		opts.Order = view.OrderNewestFirst
	case view.OrderOldestFirst:
		opts.Order = view.OrderOldestFirst
	default:
		return opts, fmt.Errorf("invalid order %q (want desc or asc)", order)
	}

	if strings.EqualFold(status, "all") || status == "" {
		return opts, nil
	}
	s, ok := bloodpressure.ParseStatus(status)
	if !ok {
		return opts, fmt.Errorf("invalid status %q (want all, high, low or normal)", status)
	}
	opts.Filter = s
	return opts, nil
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a reading by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withApp(cmd.Context(), func(a *app) error {
				reading, ok := a.readings.Get(id)
				if !ok {
					return storage.ErrNotFound{Resource: "reading", ID: id}
				}
				if err := a.readings.Remove(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to remove reading: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %d/%d mmHg from %s %s\n",
					reading.Systolic, reading.Diastolic, reading.Date, reading.Time)
				return nil
			})
		},
	}
}
