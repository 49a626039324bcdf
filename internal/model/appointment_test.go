package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentLess(t *testing.T) {
	base := Appointment{Day: 15, Month: time.June, Year: 2024, Time: "09:30"}

	tests := []struct {
		name  string
		other Appointment
		less  bool
	}{
		{"earlier year", Appointment{Day: 15, Month: time.June, Year: 2023, Time: "09:30"}, true},
		{"later month", Appointment{Day: 1, Month: time.July, Year: 2024, Time: "00:00"}, false},
		{"earlier day", Appointment{Day: 14, Month: time.June, Year: 2024, Time: "23:59"}, true},
		{"earlier time", Appointment{Day: 15, Month: time.June, Year: 2024, Time: "08:00"}, true},
		{"same slot", Appointment{Day: 15, Month: time.June, Year: 2024, Time: "09:30"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := tt.other
			assert.Equal(t, tt.less, other.Less(&base))
		})
	}
}

func TestAppointmentStartsAt(t *testing.T) {
	a := Appointment{Day: 15, Month: time.June, Year: 2024, Time: "09:30"}

	start, err := a.StartsAt(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 15, 9, 30, 0, 0, time.UTC), start)

	a.Time = "soon"
	_, err = a.StartsAt(time.UTC)
	assert.Error(t, err)
}

func TestAppointmentProjection(t *testing.T) {
	a := Appointment{ID: 3, Patient: "Maria", Time: "08:00", Type: "Retorno", Status: AppointmentStatusPending, Day: 15, Month: time.June, Year: 2024}

	assert.True(t, a.OnDate(15, time.June, 2024))
	assert.False(t, a.OnDate(15, time.July, 2024))
	assert.Equal(t, DayAppointment{Patient: "Maria", Time: "08:00", Type: "Retorno", Status: AppointmentStatusPending}, a.DayView())
}
