package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-agenda/internal/model"
	"github.com/jwalitptl/clinic-agenda/internal/repository"
	"github.com/jwalitptl/clinic-agenda/internal/service/audit"
	"github.com/jwalitptl/clinic-agenda/internal/service/event"
	apperrors "github.com/jwalitptl/clinic-agenda/pkg/errors"
	"github.com/jwalitptl/clinic-agenda/pkg/logger"
	"github.com/jwalitptl/clinic-agenda/pkg/metrics"
	"github.com/jwalitptl/clinic-agenda/pkg/validator"
)

type PatientService interface {
	Register(ctx context.Context, req *model.CreatePatientRequest) (*model.PatientProfile, error)
	Search(ctx context.Context, query string) ([]*model.PatientProfile, error)
	List(ctx context.Context) ([]*model.PatientProfile, error)
	Count(ctx context.Context) (int, error)
}

type Service struct {
	repo      repository.PatientRepository
	events    event.EventService
	auditor   *audit.Service
	validator validator.Validator
	metrics   *metrics.Metrics
	logger    *logger.Logger
	now       func() time.Time
}

func NewService(repo repository.PatientRepository, events event.EventService, auditor *audit.Service, v validator.Validator, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		events:    events,
		auditor:   auditor,
		validator: v,
		metrics:   m,
		logger:    log.With("patient"),
		now:       time.Now,
	}
}

func (s *Service) validatePatient(req *model.CreatePatientRequest) error {
	if req == nil {
		return apperrors.NewBadRequest("patient request is required", nil)
	}
	if err := s.validator.Validate(req); err != nil {
		return apperrors.NewValidation("invalid patient data", s.validator.FormatValidationErrors(err))
	}
	return nil
}

// Register appends a new patient profile and announces it on the event bus.
func (s *Service) Register(ctx context.Context, req *model.CreatePatientRequest) (*model.PatientProfile, error) {
	if err := s.validatePatient(req); err != nil {
		s.logger.Warn("patient rejected", "error", err.Error())
		return nil, err
	}

	patient := &model.PatientProfile{
		ID:        uuid.New(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to create patient: %w", err))
	}

	s.metrics.PatientsRegistered.Inc()
	s.logger.Info("patient registered", "id", patient.ID.String())

	published := *patient
	if err := s.events.Emit(ctx, event.PatientRegistered, &published); err != nil {
		s.logger.Error(err, "failed to publish patient event", "id", patient.ID.String())
	}

	if err := s.auditor.Log(ctx, model.AuditActionCreate, model.AuditEntityPatient, patient.ID.String(), &audit.LogOptions{
		Changes: patient,
	}); err != nil {
		s.logger.Error(err, "failed to audit patient", "id", patient.ID.String())
	}

	return patient, nil
}

// Search matches name or email case-insensitively. An empty query
// returns no patients.
func (s *Service) Search(ctx context.Context, query string) ([]*model.PatientProfile, error) {
	s.metrics.PatientSearches.Inc()

	patients, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to search patients: %w", err))
	}
	return patients, nil
}

func (s *Service) List(ctx context.Context) ([]*model.PatientProfile, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to list patients: %w", err))
	}
	return patients, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, apperrors.NewInternal(fmt.Errorf("failed to count patients: %w", err))
	}
	return count, nil
}
