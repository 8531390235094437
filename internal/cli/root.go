package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jwulff/bptrack/internal/bloodpressure"
)

// NewRootCmd builds the bptrack command tree.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bptrack",
		Short:   "Track blood pressure readings and spot sustained trends",
		Version: version,
		Long: `bptrack records blood pressure readings, classifies them as normal, high
or low, and raises an alert when the seven most recent readings share an
abnormal status.

Readings are stored in ~/.bptrack/bptrack.db by default. See
~/.bptrack/config.yaml or the BPTRACK_* environment variables to change the
storage backend.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(removeCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(alertCmd())
	rootCmd.AddCommand(trendCmd())
	rootCmd.AddCommand(rangesCmd())

	// LED display
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(displayCmd())

	return rootCmd
}

var (
	highColor   = color.New(color.FgRed, color.Bold)
	lowColor    = color.New(color.FgBlue, color.Bold)
	normalColor = color.New(color.FgGreen)
	dimColor    = color.New(color.Faint)
)

// statusText renders a status label in its list badge color.
func statusText(s bloodpressure.Status) string {
	switch s {
	case bloodpressure.StatusHigh:
		return highColor.Sprint(s.Label())
	case bloodpressure.StatusLow:
		return lowColor.Sprint(s.Label())
	case bloodpressure.StatusNormal:
		return normalColor.Sprint(s.Label())
	default:
		return dimColor.Sprint("-")
	}
}
