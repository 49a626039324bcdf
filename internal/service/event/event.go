package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	PatientRegistered  EventType = "patient_registered"
	AppointmentCreated EventType = "appointment_created"
)

// Event is one domain event delivered to subscribers.
type Event struct {
	ID        uuid.UUID
	Type      EventType
	Payload   interface{}
	CreatedAt time.Time
}

// Handler reacts to an event. A returned error does not stop delivery to
// the remaining handlers.
type Handler func(ctx context.Context, evt Event) error

type EventService interface {
	Subscribe(eventType EventType, handler Handler)
	Emit(ctx context.Context, eventType EventType, payload interface{}) error
}
