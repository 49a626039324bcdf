package appointment

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jwalitptl/clinic-agenda/internal/model"
	"github.com/jwalitptl/clinic-agenda/internal/repository"
	"github.com/jwalitptl/clinic-agenda/internal/service/audit"
	"github.com/jwalitptl/clinic-agenda/internal/service/event"
	"github.com/jwalitptl/clinic-agenda/pkg/calendar"
	apperrors "github.com/jwalitptl/clinic-agenda/pkg/errors"
	"github.com/jwalitptl/clinic-agenda/pkg/logger"
	"github.com/jwalitptl/clinic-agenda/pkg/metrics"
	"github.com/jwalitptl/clinic-agenda/pkg/validator"
)

type Service struct {
	repo      repository.AppointmentRepository
	events    event.EventService
	auditor   *audit.Service
	validator validator.Validator
	metrics   *metrics.Metrics
	logger    *logger.Logger
	now       func() time.Time
}

func NewService(repo repository.AppointmentRepository, events event.EventService, auditor *audit.Service, v validator.Validator, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		events:    events,
		auditor:   auditor,
		validator: v,
		metrics:   m,
		logger:    log.With("appointment"),
		now:       time.Now,
	}
}

// validateRequest checks required fields, the HH:MM format and that the
// day exists in the given month.
func (s *Service) validateRequest(req *model.CreateAppointmentRequest) error {
	if req == nil {
		s.metrics.AppointmentsRejected.WithLabelValues("empty").Inc()
		return apperrors.NewBadRequest("appointment request is required", nil)
	}

	if err := s.validator.Validate(req); err != nil {
		s.metrics.AppointmentsRejected.WithLabelValues("validation").Inc()
		return apperrors.NewValidation("invalid appointment", s.validator.FormatValidationErrors(err))
	}

	if !calendar.ValidDate(req.Day, req.Month, req.Year) {
		s.metrics.AppointmentsRejected.WithLabelValues("date").Inc()
		return apperrors.NewValidation("invalid appointment", map[string]string{
			"day": fmt.Sprintf("day %d does not exist in %s %d", req.Day, req.Month, req.Year),
		})
	}

	return nil
}

// Create books a pending appointment.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := s.validateRequest(req); err != nil {
		s.logger.Warn("appointment rejected", "error", err.Error())
		return nil, err
	}

	apt := &model.Appointment{
		Patient:   req.Patient,
		Time:      req.Time,
		Type:      req.Type,
		Status:    model.AppointmentStatusPending,
		Day:       req.Day,
		Month:     req.Month,
		Year:      req.Year,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to create appointment: %w", err))
	}

	s.metrics.AppointmentsCreated.Inc()
	s.logger.Info("appointment created",
		"id", apt.ID,
		"patient", apt.Patient,
		"date", fmt.Sprintf("%04d-%02d-%02d", apt.Year, int(apt.Month), apt.Day),
		"time", apt.Time,
	)

	published := *apt
	if err := s.events.Emit(ctx, event.AppointmentCreated, &published); err != nil {
		s.logger.Error(err, "failed to publish appointment event", "id", apt.ID)
	}

	if err := s.auditor.Log(ctx, model.AuditActionCreate, model.AuditEntityAppointment, strconv.FormatInt(apt.ID, 10), &audit.LogOptions{
		Changes: apt,
	}); err != nil {
		s.logger.Error(err, "failed to audit appointment", "id", apt.ID)
	}

	return apt, nil
}

// List returns every appointment in chronological order.
func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	apts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to list appointments: %w", err))
	}
	return apts, nil
}

// ListToday returns the appointments on ref's calendar date, by time.
func (s *Service) ListToday(ctx context.Context, ref time.Time) ([]*model.Appointment, error) {
	apts, err := s.repo.ListByDate(ctx, ref.Day(), ref.Month(), ref.Year())
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to list today's appointments: %w", err))
	}

	sortByTime(apts)
	return apts, nil
}

// ListUpcoming returns the appointments whose wall-clock start, in ref's
// location, is strictly after ref.
func (s *Service) ListUpcoming(ctx context.Context, ref time.Time) ([]*model.Appointment, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to list upcoming appointments: %w", err))
	}

	upcoming := make([]*model.Appointment, 0, len(all))
	for _, apt := range all {
		start, err := apt.StartsAt(ref.Location())
		if err != nil {
			s.logger.Warn("skipping appointment with unreadable time", "id", apt.ID, "time", apt.Time)
			continue
		}
		if start.After(ref) {
			upcoming = append(upcoming, apt)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Less(upcoming[j])
	})
	return upcoming, nil
}

// ListForDay returns the reduced view of one calendar day, by time.
func (s *Service) ListForDay(ctx context.Context, day int, month time.Month, year int) ([]model.DayAppointment, error) {
	apts, err := s.repo.ListByDate(ctx, day, month, year)
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to list appointments for day: %w", err))
	}

	sortByTime(apts)

	out := make([]model.DayAppointment, 0, len(apts))
	for _, apt := range apts {
		out = append(out, apt.DayView())
	}
	return out, nil
}

func (s *Service) CountByStatus(ctx context.Context, status model.AppointmentStatus) (int, error) {
	count, err := s.repo.CountByStatus(ctx, status)
	if err != nil {
		return 0, apperrors.NewInternal(fmt.Errorf("failed to count appointments: %w", err))
	}
	return count, nil
}

func sortByTime(apts []*model.Appointment) {
	sort.SliceStable(apts, func(i, j int) bool {
		return apts[i].Time < apts[j].Time
	})
}
