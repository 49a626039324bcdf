package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotForm struct {
	Patient string `json:"patient" validate:"required"`
	Time    string `json:"time" validate:"required,hhmm"`
	Day     int    `json:"day" validate:"gte=1,lte=31"`
	Email   string `json:"email" validate:"omitempty,email"`
}

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	v := New()
	err := v.Validate(slotForm{Patient: "Ana", Time: "09:30", Day: 15, Email: "ana@x.com"})
	assert.NoError(t, err)
}

func TestFormatValidationErrors(t *testing.T) {
	v := New()
	err := v.Validate(slotForm{Time: "9:30", Day: 32, Email: "nope"})
	require.Error(t, err)

	fields := v.FormatValidationErrors(err)
	assert.Equal(t, map[string]string{
		"patient": "patient is required",
		"time":    "time must be a time in HH:MM format",
		"day":     "day must be less than or equal to 31",
		"email":   "email must be a valid email address",
	}, fields)
}

func TestIsClockTime(t *testing.T) {
	for _, ok := range []string{"00:00", "08:05", "19:59", "23:59"} {
		assert.True(t, IsClockTime(ok), ok)
	}
	for _, bad := range []string{"", "8:05", "24:00", "12:60", "12-30", "12:3", " 12:30"} {
		assert.False(t, IsClockTime(bad), bad)
	}
}
