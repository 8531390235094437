package view

import (
	"testing"
	"time"

	"github.com/jwulff/bptrack/internal/bloodpressure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []bloodpressure.Reading {
	return []bloodpressure.Reading{
		{ID: "n1", Systolic: 120, Diastolic: 80, Date: "2024-01-15", Time: "08:00"},
		{ID: "h1", Systolic: 150, Diastolic: 95, Date: "2024-01-16", Time: "08:00", Notes: "stressful day"},
		{ID: "l1", Systolic: 85, Diastolic: 55, Date: "2024-01-14", Time: "21:00"},
		{ID: "h2", Systolic: 142, Diastolic: 88, Date: "2024-01-16", Time: "20:00"},
	}
}

func rowIDs(l List) []string {
	ids := make([]string, len(l.Rows))
	for i, r := range l.Rows {
		ids[i] = r.Reading.ID
	}
	return ids
}

func TestBuildListNewestFirstByDefault(t *testing.T) {
	l := BuildList(sample(), ListOptions{})

	assert.Equal(t, []string{"h2", "h1", "n1", "l1"}, rowIDs(l))
	assert.Equal(t, bloodpressure.StatusHigh, l.Rows[0].Status)
	assert.Equal(t, "Showing 4 of 4 readings", l.Summary())
}

func TestBuildListOldestFirst(t *testing.T) {
	l := BuildList(sample(), ListOptions{Order: OrderOldestFirst})

	assert.Equal(t, []string{"l1", "n1", "h1", "h2"}, rowIDs(l))
}

func TestBuildListFilter(t *testing.T) {
	l := BuildList(sample(), ListOptions{Filter: bloodpressure.StatusHigh})

	assert.Equal(t, []string{"h2", "h1"}, rowIDs(l))
	assert.Equal(t, "Showing 2 of 4 readings (filtered by high status)", l.Summary())

	empty := BuildList(sample(), ListOptions{Filter: bloodpressure.StatusNormal, Order: OrderOldestFirst})
	assert.Equal(t, []string{"n1"}, rowIDs(empty))
}

func TestRowFormatting(t *testing.T) {
	l := BuildList(sample(), ListOptions{})

	assert.Equal(t, "142/88", l.Rows[0].Pressure())
	assert.Equal(t, "-", l.Rows[0].Notes())
	assert.Equal(t, "stressful day", l.Rows[1].Notes())
}

func TestBuildMonthLayout(t *testing.T) {
	today := time.Date(2024, 1, 16, 12, 0, 0, 0, time.Local)
	m := BuildMonth(sample(), 2024, time.January, today)

	assert.Equal(t, "January 2024", m.Title())
	// January 1st 2024 is a Monday: one leading blank, 31 days, 3 trailing.
	require.Len(t, m.Weeks, 5)
	assert.Nil(t, m.Weeks[0][0])
	assert.Equal(t, 1, m.Weeks[0][1].Day)
	assert.Nil(t, m.Weeks[4][6])
	for _, week := range m.Weeks {
		assert.Len(t, week, 7)
	}

	days := m.Days()
	require.Len(t, days, 31)

	assert.Equal(t, "2024-01-16", days[15].Date)
	assert.True(t, days[15].IsToday)
	assert.False(t, days[14].IsToday)

	assert.Equal(t, bloodpressure.StatusLow, days[13].Status)
	assert.Equal(t, bloodpressure.StatusNormal, days[14].Status)
	assert.Equal(t, bloodpressure.StatusHigh, days[15].Status)
	assert.Equal(t, bloodpressure.Status(""), days[0].Status)
	assert.False(t, days[0].HasReadings())
}

func TestBuildMonthStartingSunday(t *testing.T) {
	m := BuildMonth(nil, 2026, time.February, time.Time{})

	require.Len(t, m.Weeks, 4)
	assert.Equal(t, 1, m.Weeks[0][0].Day)
	assert.Equal(t, 28, m.Weeks[3][6].Day)
}

func TestBuildMonthLeapYear(t *testing.T) {
	m := BuildMonth(nil, 2024, time.February, time.Time{})
	assert.Len(t, m.Days(), 29)
}

func TestDayStatusPriority(t *testing.T) {
	high := bloodpressure.Reading{Systolic: 150, Diastolic: 95}
	low := bloodpressure.Reading{Systolic: 85, Diastolic: 55}
	normal := bloodpressure.Reading{Systolic: 120, Diastolic: 80}

	assert.Equal(t, bloodpressure.Status(""), DayStatus(nil))
	assert.Equal(t, bloodpressure.StatusNormal, DayStatus([]bloodpressure.Reading{normal}))
	assert.Equal(t, bloodpressure.StatusLow, DayStatus([]bloodpressure.Reading{normal, low}))
	assert.Equal(t, bloodpressure.StatusHigh, DayStatus([]bloodpressure.Reading{low, normal, high}))
}

func TestDaySummary(t *testing.T) {
	assert.Equal(t, "", DaySummary(nil))
	assert.Equal(t, "120/80 mmHg", DaySummary([]bloodpressure.Reading{{Systolic: 120, Diastolic: 80}}))

	// 121.5 and 80.5 round up.
	avg := DaySummary([]bloodpressure.Reading{
		{Systolic: 120, Diastolic: 80},
		{Systolic: 123, Diastolic: 81},
	})
	assert.Equal(t, "Avg: 122/81 mmHg", avg)
}

func TestGroupByDate(t *testing.T) {
	grouped := GroupByDate(sample())

	assert.Len(t, grouped, 3)
	require.Len(t, grouped["2024-01-16"], 2)
	assert.Equal(t, "h1", grouped["2024-01-16"][0].ID)
}
