package bloodpressure

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ValidationError lists the fields that failed validation and why.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid reading: " + strings.Join(parts, "; ")
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validate checks a reading before it enters the store.
func Validate(r Reading) error {
	verr := &ValidationError{}

	if strings.TrimSpace(r.ID) == "" {
		verr.add("id", "Reading id is required")
	}
	checkRange(verr, "systolic", r.Systolic, SystolicMin, SystolicMax)
	checkRange(verr, "diastolic", r.Diastolic, DiastolicMin, DiastolicMax)
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		verr.add("date", "Enter a valid date (YYYY-MM-DD)")
	}
	if _, err := time.Parse(TimeLayout, r.Time); err != nil {
		verr.add("time", "Enter a valid time (HH:MM)")
	}

	return verr.orNil()
}

// ParseMeasurement parses raw systolic and diastolic input the way the entry
// form does, reporting a message per field.
func ParseMeasurement(systolic, diastolic string) (int, int, error) {
	verr := &ValidationError{}
	sys := parseField(verr, "systolic", systolic, SystolicMin, SystolicMax)
	dia := parseField(verr, "diastolic", diastolic, DiastolicMin, DiastolicMax)
	if err := verr.orNil(); err != nil {
		return 0, 0, err
	}
	return sys, dia, nil
}

func parseField(verr *ValidationError, field, raw string, lo, hi int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		verr.add(field, fmt.Sprintf("%s pressure is required", capitalize(field)))
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		verr.add(field, rangeMessage(field, lo, hi))
		return 0
	}
	checkRange(verr, field, v, lo, hi)
	return v
}

func checkRange(verr *ValidationError, field string, v, lo, hi int) {
	if v < lo || v > hi {
		verr.add(field, rangeMessage(field, lo, hi))
	}
}

func rangeMessage(field string, lo, hi int) string {
	return fmt.Sprintf("Enter a valid %s pressure (%d-%d)", field, lo, hi)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
