package model

import (
	"fmt"
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment is a scheduled visit on a local wall-clock date.
// Time is always a zero-padded "HH:MM" string.
type Appointment struct {
	ID        int64             `json:"id"`
	Patient   string            `json:"patient"`
	Time      string            `json:"time"`
	Type      string            `json:"type"`
	Status    AppointmentStatus `json:"status"`
	Day       int               `json:"day"`
	Month     time.Month        `json:"month"`
	Year      int               `json:"year"`
	CreatedAt time.Time         `json:"created_at"`
}

// DayAppointment is the projection shown when a calendar day is selected.
type DayAppointment struct {
	Patient string            `json:"patient"`
	Time    string            `json:"time"`
	Type    string            `json:"type"`
	Status  AppointmentStatus `json:"status"`
}

type CreateAppointmentRequest struct {
	Patient string     `json:"patient" validate:"required"`
	Time    string     `json:"time" validate:"required,hhmm"`
	Type    string     `json:"type" validate:"required"`
	Day     int        `json:"day" validate:"required,gte=1,lte=31"`
	Month   time.Month `json:"month" validate:"required,gte=1,lte=12"`
	Year    int        `json:"year" validate:"required,gte=1"`
}

// OnDate reports whether the appointment falls on day/month/year.
func (a *Appointment) OnDate(day int, month time.Month, year int) bool {
	return a.Day == day && a.Month == month && a.Year == year
}

// Less orders appointments by year, month, day and then time of day.
func (a *Appointment) Less(b *Appointment) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	if a.Day != b.Day {
		return a.Day < b.Day
	}
	return a.Time < b.Time
}

// StartsAt builds the wall-clock start of the appointment in loc.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(a.Time, "%d:%d", &hour, &minute); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %q: %w", a.Time, err)
	}
	return time.Date(a.Year, a.Month, a.Day, hour, minute, 0, 0, loc), nil
}

// DayView returns the reduced projection used by day lookups.
func (a *Appointment) DayView() DayAppointment {
	return DayAppointment{
		Patient: a.Patient,
		Time:    a.Time,
		Type:    a.Type,
		Status:  a.Status,
	}
}
