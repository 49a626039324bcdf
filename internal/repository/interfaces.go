package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-agenda/internal/model"
)

// All repository interfaces in one file
type (
	// AppointmentRepository keeps appointments ordered by year, month, day
	// and time of day.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		List(ctx context.Context) ([]*model.Appointment, error)
		ListByDate(ctx context.Context, day int, month time.Month, year int) ([]*model.Appointment, error)
		Count(ctx context.Context) (int, error)
		CountByStatus(ctx context.Context, status model.AppointmentStatus) (int, error)
	}

	// PatientRepository keeps patients in registration order.
	PatientRepository interface {
		Create(ctx context.Context, patient *model.PatientProfile) error
		List(ctx context.Context) ([]*model.PatientProfile, error)
		Search(ctx context.Context, query string) ([]*model.PatientProfile, error)
		Count(ctx context.Context) (int, error)
	}

	// NotificationRepository keeps the feed most recent first.
	NotificationRepository interface {
		Prepend(ctx context.Context, notification *model.Notification) error
		List(ctx context.Context) ([]*model.Notification, error)
		MarkRead(ctx context.Context, id uuid.UUID) (bool, error)
		Remove(ctx context.Context, id uuid.UUID) (bool, error)
		UnreadCount(ctx context.Context) (int, error)
	}
)
