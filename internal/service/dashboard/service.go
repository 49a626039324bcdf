package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/clinic-agenda/internal/model"
)

type AppointmentReader interface {
	ListToday(ctx context.Context, ref time.Time) ([]*model.Appointment, error)
	ListUpcoming(ctx context.Context, ref time.Time) ([]*model.Appointment, error)
	CountByStatus(ctx context.Context, status model.AppointmentStatus) (int, error)
}

type PatientCounter interface {
	Count(ctx context.Context) (int, error)
}

type UnreadCounter interface {
	UnreadCount(ctx context.Context) (int, error)
}

type Service struct {
	appointments  AppointmentReader
	patients      PatientCounter
	notifications UnreadCounter
}

func NewService(appointments AppointmentReader, patients PatientCounter, notifications UnreadCounter) *Service {
	return &Service{
		appointments:  appointments,
		patients:      patients,
		notifications: notifications,
	}
}

// Summary computes the dashboard cards as seen at now.
func (s *Service) Summary(ctx context.Context, now time.Time) (*model.DashboardSummary, error) {
	today, err := s.appointments.ListToday(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	upcoming, err := s.appointments.ListUpcoming(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	pending, err := s.appointments.CountByStatus(ctx, model.AppointmentStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	patients, err := s.patients.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	unread, err := s.notifications.UnreadCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	return &model.DashboardSummary{
		Today:               len(today),
		Upcoming:            len(upcoming),
		Pending:             pending,
		Patients:            patients,
		UnreadNotifications: unread,
	}, nil
}
