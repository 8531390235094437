package view

import (
	"fmt"
	"math"
	"time"

	"github.com/jwulff/bptrack/internal/bloodpressure"
)

// Day is one populated calendar cell.
type Day struct {
	Day      int
	Date     string // YYYY-MM-DD
	Status   bloodpressure.Status // empty when there are no readings
	Readings []bloodpressure.Reading
	IsToday  bool
}

// HasReadings reports whether any reading falls on the day.
func (d Day) HasReadings() bool {
	return len(d.Readings) > 0
}

// Summary describes the day's readings; see DaySummary.
func (d Day) Summary() string {
	return DaySummary(d.Readings)
}

// Month is a calendar grid. Weeks start on Sunday; cells outside the month
// are nil.
type Month struct {
	Year  int
	Month time.Month
	Weeks [][]*Day
}

// Title returns e.g. "January 2024".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Days returns the populated cells in order.
func (m Month) Days() []*Day {
	var days []*Day
	for _, week := range m.Weeks {
		for _, d := range week {
			if d != nil {
				days = append(days, d)
			}
		}
	}
	return days
}

// BuildMonth lays out the month containing year/month. Readings are grouped
// by their stored date string; today marks the matching cell.
func BuildMonth(readings []bloodpressure.Reading, year int, month time.Month, today time.Time) Month {
	byDate := GroupByDate(readings)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())
	todayStr := today.Format(bloodpressure.DateLayout)

	cells := make([]*Day, 0, 42)
	for i := 0; i < lead; i++ {
		cells = append(cells, nil)
	}
	for d := 1; d <= daysInMonth; d++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), d)
		dayReadings := byDate[date]
		cells = append(cells, &Day{
			Day:      d,
			Date:     date,
			Status:   DayStatus(dayReadings),
			Readings: dayReadings,
			IsToday:  date == todayStr,
		})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}

	weeks := make([][]*Day, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}

	return Month{Year: year, Month: month, Weeks: weeks}
}

// GroupByDate buckets readings by their date string, oldest first within a day.
func GroupByDate(readings []bloodpressure.Reading) map[string][]bloodpressure.Reading {
	grouped := make(map[string][]bloodpressure.Reading)
	for _, r := range bloodpressure.SortByTimestamp(readings, false) {
		grouped[r.Date] = append(grouped[r.Date], r)
	}
	return grouped
}

// DayStatus summarizes a day: any high reading makes the day high, else any
// low makes it low. A day without readings has no status.
func DayStatus(readings []bloodpressure.Reading) bloodpressure.Status {
	if len(readings) == 0 {
		return ""
	}
	hasLow := false
	for _, r := range readings {
		switch r.Status() {
		case bloodpressure.StatusHigh:
			return bloodpressure.StatusHigh
		case bloodpressure.StatusLow:
			hasLow = true
		}
	}
	if hasLow {
		return bloodpressure.StatusLow
	}
	return bloodpressure.StatusNormal
}

// DaySummary is "120/80 mmHg" for a single reading and the rounded average
// "Avg: 121/81 mmHg" for several.
func DaySummary(readings []bloodpressure.Reading) string {
	switch len(readings) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%d/%d mmHg", readings[0].Systolic, readings[0].Diastolic)
	}

	var sys, dia int
	for _, r := range readings {
		sys += r.Systolic
		dia += r.Diastolic
	}
	n := float64(len(readings))
	return fmt.Sprintf("Avg: %d/%d mmHg", roundHalfUp(float64(sys)/n), roundHalfUp(float64(dia)/n))
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
