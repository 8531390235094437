package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jwulff/bptrack/internal/bloodpressure"
	"github.com/jwulff/bptrack/internal/view"
)

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month of readings colored by daily status",
		RunE: func(cmd *cobra.Command, args []string) error {
			monthFlag, _ := cmd.Flags().GetString("month")

			today := now()
			year, month := today.Year(), today.Month()
			if monthFlag != "" {
				t, err := time.Parse("2006-01", monthFlag)
				if err != nil {
					return fmt.Errorf("invalid --month %q: expected YYYY-MM", monthFlag)
				}
				year, month = t.Year(), t.Month()
			}

			return withApp(cmd.Context(), func(a *app) error {
				printMonth(cmd.OutOrStdout(), view.BuildMonth(a.readings.All(), year, month, today))
				return nil
			})
		},
	}

	cmd.Flags().StringP("month", "m", "", "Month to show as YYYY-MM (default current month)")
	return cmd
}

func printMonth(out io.Writer, m view.Month) {
	fmt.Fprintln(out, m.Title())
	fmt.Fprintln(out, " Su  Mo  Tu  We  Th  Fr  Sa")

	for _, week := range m.Weeks {
		var line strings.Builder
		for _, day := range week {
			if day == nil {
				line.WriteString("    ")
				continue
			}
			marker := " "
			if day.IsToday {
				marker = "*"
			}
			line.WriteString(dayColor(day.Status).Sprintf("%3d", day.Day))
			line.WriteString(marker)
		}
		fmt.Fprintln(out, strings.TrimRight(line.String(), " "))
	}

	fmt.Fprintf(out, "\n%s  %s  %s  * today\n",
		statusText(bloodpressure.StatusNormal), statusText(bloodpressure.StatusHigh), statusText(bloodpressure.StatusLow))

	var recorded []*view.Day
	for _, day := range m.Days() {
		if day.HasReadings() {
			recorded = append(recorded, day)
		}
	}
	if len(recorded) == 0 {
		fmt.Fprintln(out, "\nNo readings this month")
		return
	}

	fmt.Fprintln(out)
	for _, day := range recorded {
		fmt.Fprintf(out, "  %s  %-6s  %s\n", day.Date, day.Status.Label(), day.Summary())
	}
}

func dayColor(s bloodpressure.Status) *color.Color {
	switch s {
	case bloodpressure.StatusHigh:
		return highColor
	case bloodpressure.StatusLow:
		return lowColor
	case bloodpressure.StatusNormal:
		return normalColor
	default:
		return dimColor
	}
}
