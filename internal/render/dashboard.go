package render

import (
	"fmt"
	"strings"

	"github.com/jwulff/bptrack/internal/alert"
	"github.com/jwulff/bptrack/internal/bloodpressure"
	"github.com/jwulff/bptrack/internal/view"
)

// Layout constants
const (
	LatestY      = 1  // latest reading "120/80"
	TakenAtY     = 7  // date and time of the latest reading
	MonthTitleY  = 14 // "JAN 2024"
	WeekdayRowY  = 20 // S M T W T F S
	GridStartY   = 26
	CellWidth    = 8
	CellHeight   = 5
	CellGap      = 1
	GridMarginX  = 1
	AlertBandY   = 62
	AlertBandRow = 2
)

var weekdayInitials = []string{"S", "M", "T", "W", "T", "F", "S"}

// DashboardData contains everything drawn on the dashboard.
type DashboardData struct {
	Latest *bloodpressure.Reading
	Month  view.Month
	Alert  *alert.Alert
}

// ComposeDashboard renders the latest reading, the month heatmap and, when
// an alert is active, a colored band along the bottom edge.
func ComposeDashboard(data DashboardData) *Frame {
	frame := NewFrame(DisplayWidth, DisplayHeight, ColorBg)

	renderLatest(frame, data.Latest)
	renderMonth(frame, data.Month)
	renderAlertBand(frame, data.Alert)

	return frame
}

func renderLatest(frame *Frame, latest *bloodpressure.Reading) {
	if latest == nil {
		DrawTinyTextCentered(frame, "NO DATA", LatestY, ColorGray)
		return
	}

	pressure := fmt.Sprintf("%d/%d", latest.Systolic, latest.Diastolic)
	DrawTinyTextCentered(frame, pressure, LatestY, StatusColor(latest.Status()))

	takenAt := latest.Time
	if ts := latest.Timestamp(); !ts.IsZero() {
		takenAt = strings.ToUpper(ts.Format("Jan 2 15:04"))
	}
	DrawTinyTextCentered(frame, takenAt, TakenAtY, ColorDate)
}

func renderMonth(frame *Frame, month view.Month) {
	if len(month.Weeks) == 0 {
		return
	}

	title := fmt.Sprintf("%s %d", strings.ToUpper(month.Month.String()[:3]), month.Year)
	DrawTinyTextCentered(frame, title, MonthTitleY, ColorDate)

	for col, initial := range weekdayInitials {
		x := cellX(col) + (CellWidth-TinyCharWidth)/2
		DrawTinyText(frame, initial, x, WeekdayRowY, ColorWeekdayHd)
	}

	for row, week := range month.Weeks {
		for col, day := range week {
			if day == nil {
				continue
			}
			x, y := cellX(col), GridStartY+row*(CellHeight+CellGap)
			frame.FillRect(x, y, CellWidth, CellHeight, dayColor(day))
			if day.IsToday {
				frame.DrawRect(x, y, CellWidth, CellHeight, ColorWhite)
			}
		}
	}
}

func dayColor(day *view.Day) RGB {
	if !day.HasReadings() {
		return ColorEmptyDay
	}
	return DimColor(StatusColor(day.Status), 0.8)
}

func renderAlertBand(frame *Frame, a *alert.Alert) {
	if a == nil {
		return
	}
	color := ColorHigh
	if a.Type == alert.KindLow {
		color = ColorLow
	}
	frame.FillRect(0, AlertBandY, frame.Width, AlertBandRow, color)
}

func cellX(col int) int {
	return GridMarginX + col*(CellWidth+CellGap)
}
