// Package bloodpressure holds the reading model, the status classifier and
// the trend detector.
package bloodpressure

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the blood pressure classification of a reading.
type Status string

const (
	StatusNormal Status = "normal"
	StatusHigh   Status = "high"
	StatusLow    Status = "low"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNormal, StatusHigh, StatusLow}

// Classification thresholds in mmHg.
const (
	SystolicHigh  = 140
	DiastolicHigh = 90
	SystolicLow   = 90
	DiastolicLow  = 60
)

// Accepted entry ranges in mmHg.
const (
	SystolicMin  = 50
	SystolicMax  = 250
	DiastolicMin = 30
	DiastolicMax = 150
)

// Layouts of the stored date and time fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Reading is a single recorded measurement.
type Reading struct {
	ID        string `json:"id"`
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	Date      string `json:"date"` // YYYY-MM-DD, local to the recording device
	Time      string `json:"time"` // HH:MM, local to the recording device
	Notes     string `json:"notes"`
}

// NewReading creates a reading stamped with the local date and time of at.
func NewReading(systolic, diastolic int, notes string, at time.Time) Reading {
	return Reading{
		ID:        uuid.NewString(),
		Systolic:  systolic,
		Diastolic: diastolic,
		Date:      at.Format(DateLayout),
		Time:      at.Format(TimeLayout),
		Notes:     strings.TrimSpace(notes),
	}
}

// Status classifies the reading.
func (r Reading) Status() Status {
	return Classify(r.Systolic, r.Diastolic)
}

// Timestamp combines date and time in the local zone. Malformed values
// yield the zero time so they sort as the oldest readings.
func (r Reading) Timestamp() time.Time {
	t, err := time.ParseInLocation(DateLayout+"T"+TimeLayout, r.Date+"T"+r.Time, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Classify determines the status for a systolic/diastolic pair.
// High is checked first, so 150/50 is high rather than low.
func Classify(systolic, diastolic int) Status {
	if systolic >= SystolicHigh || diastolic >= DiastolicHigh {
		return StatusHigh
	}
	if systolic < SystolicLow || diastolic < DiastolicLow {
		return StatusLow
	}
	return StatusNormal
}

// Label returns the capitalized display name.
func (s Status) Label() string {
	switch s {
	case StatusHigh:
		return "High"
	case StatusLow:
		return "Low"
	default:
		return "Normal"
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNormal, StatusHigh, StatusLow:
		return true
	}
	return false
}

// ParseStatus converts a case-insensitive name to a Status.
func ParseStatus(name string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(name)))
	return s, s.Valid()
}

// ReferenceRange describes the bounds shown to the user for a status.
type ReferenceRange struct {
	Status    Status
	Systolic  string
	Diastolic string
}

// ReferenceRanges returns the thresholds in human readable form.
func ReferenceRanges() []ReferenceRange {
	return []ReferenceRange{
		{Status: StatusNormal, Systolic: "90-139 mmHg", Diastolic: "60-89 mmHg"},
		{Status: StatusHigh, Systolic: "140+ mmHg", Diastolic: "90+ mmHg"},
		{Status: StatusLow, Systolic: "Below 90 mmHg", Diastolic: "Below 60 mmHg"},
	}
}
