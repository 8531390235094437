package bloodpressure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReading() Reading {
	return Reading{ID: "r-1", Systolic: 120, Diastolic: 80, Date: "2024-01-15", Time: "08:30"}
}

func TestValidateAcceptsBounds(t *testing.T) {
	for _, pair := range [][2]int{{50, 30}, {250, 150}, {120, 80}} {
		r := validReading()
		r.Systolic, r.Diastolic = pair[0], pair[1]
		assert.NoError(t, Validate(r), "%d/%d", pair[0], pair[1])
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Reading)
		field  string
	}{
		{"systolic too low", func(r *Reading) { r.Systolic = 49 }, "systolic"},
		{"systolic too high", func(r *Reading) { r.Systolic = 251 }, "systolic"},
		{"systolic zero", func(r *Reading) { r.Systolic = 0 }, "systolic"},
		{"diastolic too low", func(r *Reading) { r.Diastolic = 29 }, "diastolic"},
		{"diastolic too high", func(r *Reading) { r.Diastolic = 151 }, "diastolic"},
		{"missing id", func(r *Reading) { r.ID = "" }, "id"},
		{"bad date", func(r *Reading) { r.Date = "2024/01/15" }, "date"},
		{"bad time", func(r *Reading) { r.Time = "noon" }, "time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReading()
			tt.mutate(&r)

			err := Validate(r)
			require.Error(t, err)
			assert.True(t, IsValidation(err))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"systolic":  "Enter a valid systolic pressure (50-250)",
		"diastolic": "Diastolic pressure is required",
	}}

	assert.Equal(t,
		"invalid reading: diastolic: Diastolic pressure is required; systolic: Enter a valid systolic pressure (50-250)",
		err.Error())
}

func TestParseMeasurement(t *testing.T) {
	sys, dia, err := ParseMeasurement(" 128 ", "84")
	require.NoError(t, err)
	assert.Equal(t, 128, sys)
	assert.Equal(t, 84, dia)
}

func TestParseMeasurementErrors(t *testing.T) {
	_, _, err := ParseMeasurement("", "abc")
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Systolic pressure is required", verr.Fields["systolic"])
	assert.Equal(t, "Enter a valid diastolic pressure (30-150)", verr.Fields["diastolic"])

	_, _, err = ParseMeasurement("300", "20")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Enter a valid systolic pressure (50-250)", verr.Fields["systolic"])
	assert.Equal(t, "Enter a valid diastolic pressure (30-150)", verr.Fields["diastolic"])
}

func TestValidateZeroPressureReportsRange(t *testing.T) {
	r := validReading()
	r.Systolic, r.Diastolic = 0, 0

	var verr *ValidationError
	require.True(t, errors.As(Validate(r), &verr))
	assert.Equal(t, "Enter a valid systolic pressure (50-250)", verr.Fields["systolic"])
	assert.Equal(t, "Enter a valid diastolic pressure (30-150)", verr.Fields["diastolic"])

	// Only blank form input is "required"; a typed zero is out of range.
	_, _, err := ParseMeasurement("0", " ")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Enter a valid systolic pressure (50-250)", verr.Fields["systolic"])
	assert.Equal(t, "Diastolic pressure is required", verr.Fields["diastolic"])
}

func TestIsValidationFalse(t *testing.T) {
	assert.False(t, IsValidation(nil))
	assert.False(t, IsValidation(assert.AnError))
}
