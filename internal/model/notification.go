package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationKindPatientRegistered  NotificationKind = "patient_registered"
	NotificationKindAppointmentCreated NotificationKind = "appointment_created"
	NotificationKindGeneral            NotificationKind = "general"
)

// Notification is an in-app notice shown in the dashboard feed.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID uuid.UUID `json:"id"`

	// Kind identifies the domain event that produced it.
	Kind NotificationKind `json:"kind"`

	Title   string `json:"title"`
	Message string `json:"message"`

	// Read indicates whether the user has acknowledged this notification.
	Read bool `json:"read"`

	// CreatedAt is when this notification was posted.
	CreatedAt time.Time `json:"created_at"`
}
