package bloodpressure

import "sort"

// TrendWindow is how many of the most recent readings a trend considers.
const TrendWindow = 7

// Trend reports whether the most recent readings are unanimously high or low.
type Trend struct {
	IsHigh bool
	IsLow  bool
}

// DetectTrend checks the TrendWindow most recent readings by date and time.
// The window counts readings, not calendar days; gaps between dates are not
// inspected.
func DetectTrend(readings []Reading) Trend {
	if len(readings) < TrendWindow {
		return Trend{}
	}

	recent := SortByTimestamp(readings, true)[:TrendWindow]

	return Trend{
		IsHigh: allStatus(recent, StatusHigh),
		IsLow:  allStatus(recent, StatusLow),
	}
}

func allStatus(readings []Reading, want Status) bool {
	for _, r := range readings {
		if r.Status() != want {
			return false
		}
	}
	return true
}

// SortByTimestamp returns a copy of readings ordered by date and time.
// Readings sharing a timestamp keep their relative order.
func SortByTimestamp(readings []Reading, descending bool) []Reading {
	sorted := make([]Reading, len(readings))
	copy(sorted, readings)

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].Timestamp(), sorted[j].Timestamp()
		if descending {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
	return sorted
}
