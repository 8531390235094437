package render

import "github.com/jwulff/bptrack/internal/bloodpressure"

// Common colors for the display.
var (
	ColorBg        = NewRGB(0, 0, 0)
	ColorWhite     = NewRGB(255, 255, 255)
	ColorGray      = NewRGB(128, 128, 128)
	ColorDate      = NewRGB(180, 180, 180)
	ColorEmptyDay  = NewRGB(28, 28, 28)
	ColorWeekdayHd = NewRGB(90, 90, 90)

	// Status colors follow the list badges: red high, blue low, teal normal.
	ColorHigh   = NewRGB(230, 40, 40)
	ColorLow    = NewRGB(40, 110, 240)
	ColorNormal = NewRGB(0, 190, 150)
)

// StatusColor returns the color used for a status. Unknown or empty
// statuses map to the empty-day color.
func StatusColor(s bloodpressure.Status) RGB {
	switch s {
	case bloodpressure.StatusHigh:
		return ColorHigh
	case bloodpressure.StatusLow:
		return ColorLow
	case bloodpressure.StatusNormal:
		return ColorNormal
	default:
		return ColorEmptyDay
	}
}

// DimColor reduces the brightness of a color by a factor (0-1).
func DimColor(c RGB, factor float64) RGB {
	if factor <= 0 {
		return ColorBg
	}
	if factor >= 1 {
		return c
	}
	return NewRGB(
		uint8(float64(c.R)*factor),
		uint8(float64(c.G)*factor),
		uint8(float64(c.B)*factor),
	)
}
