// Package ui holds presentation state for the terminal dashboard: the
// active view, open modal, the two calendar cursors and the sign-in
// session. It never talks to the stores.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/clinic-agenda/internal/model"
	"github.com/jwalitptl/clinic-agenda/internal/service/audit"
	"github.com/jwalitptl/clinic-agenda/pkg/calendar"
	apperrors "github.com/jwalitptl/clinic-agenda/pkg/errors"
	"github.com/jwalitptl/clinic-agenda/pkg/validator"
)

type View int

const (
	ViewLogin View = iota
	ViewForgotPassword
	ViewDashboard
)

func (v View) String() string {
	switch v {
	case ViewForgotPassword:
		return "forgot_password"
	case ViewDashboard:
		return "dashboard"
	default:
		return "login"
	}
}

type Modal int

const (
	ModalNone Modal = iota
	ModalNewAppointment
	ModalNewPatient
	ModalPatientSearch
	ModalAgenda
	ModalNotifications
	ModalAppointmentSaved
)

const recoveryKey = "recovery"

type credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type recoveryRequest struct {
	Email string `json:"email" validate:"required"`
}

// State is the view state of one terminal session.
type State struct {
	Modal Modal

	// Picker drives the day chooser of the new appointment form.
	Picker calendar.Cursor
	// PickedDay is the day chosen in Picker, 0 when none.
	PickedDay int

	// Agenda drives the agenda modal; Selected is the inspected day.
	Agenda   calendar.Cursor
	Selected *Day

	SearchTerm string

	view      View
	user      string
	recovery  bool
	notices   *cache.Cache
	validator validator.Validator
	auditor   *audit.Service
}

// Day is a fully qualified calendar day.
type Day struct {
	Day   int
	Month time.Month
	Year  int
}

// NewState opens on the login view with both cursors on now's month.
// Recovery notices disappear after noticeTTL. Sign-ins and sign-outs
// are recorded on auditor.
func NewState(now time.Time, noticeTTL time.Duration, v validator.Validator, auditor *audit.Service) *State {
	return &State{
		Picker:    calendar.CursorAt(now),
		Agenda:    calendar.CursorAt(now),
		view:      ViewLogin,
		notices:   cache.New(noticeTTL, 2*noticeTTL),
		validator: v,
		auditor:   auditor,
	}
}

// View returns the active view. An expired recovery notice sends the
// forgot password screen back to login.
func (s *State) View() View {
	if s.view == ViewForgotPassword && s.recovery {
		if _, ok := s.notices.Get(recoveryKey); !ok {
			s.closeRecovery()
		}
	}
	return s.view
}

func (s *State) User() string {
	return s.user
}

// SignIn accepts any non-empty email and password. There is no account
// check behind it.
func (s *State) SignIn(ctx context.Context, email, password string) error {
	req := credentials{Email: strings.TrimSpace(email), Password: password}
	if err := s.validator.Validate(req); err != nil {
		return apperrors.NewValidation("email and password are required", s.validator.FormatValidationErrors(err))
	}

	s.user = req.Email
	s.view = ViewDashboard
	s.Modal = ModalNone
	return s.auditor.Log(ctx, model.AuditActionLogin, model.AuditEntitySession, req.Email, nil)
}

// SignOut returns to the login view. Signing out while signed out is a
// no-op.
func (s *State) SignOut(ctx context.Context) error {
	if s.user == "" {
		return nil
	}
	user := s.user

	s.user = ""
	s.view = ViewLogin
	s.Modal = ModalNone
	s.PickedDay = 0
	s.Selected = nil
	s.SearchTerm = ""
	return s.auditor.Log(ctx, model.AuditActionLogout, model.AuditEntitySession, user, nil)
}

func (s *State) ForgotPassword() {
	if s.view == ViewLogin {
		s.view = ViewForgotPassword
	}
}

// RequestRecovery shows the "recovery e-mail sent" notice for email.
// Nothing is sent.
func (s *State) RequestRecovery(email string) error {
	req := recoveryRequest{Email: strings.TrimSpace(email)}
	if err := s.validator.Validate(req); err != nil {
		return apperrors.NewValidation("email is required", s.validator.FormatValidationErrors(err))
	}

	s.view = ViewForgotPassword
	s.recovery = true
	s.notices.SetDefault(recoveryKey, req.Email)
	return nil
}

// RecoveryNotice returns the address of a still visible recovery notice.
func (s *State) RecoveryNotice() (string, bool) {
	v, ok := s.notices.Get(recoveryKey)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// CancelRecovery closes the forgot password screen immediately.
func (s *State) CancelRecovery() {
	s.notices.Delete(recoveryKey)
	s.closeRecovery()
}

func (s *State) closeRecovery() {
	s.recovery = false
	if s.view == ViewForgotPassword {
		s.view = ViewLogin
	}
}

// OpenAgenda shows the agenda modal on now's month with nothing selected.
func (s *State) OpenAgenda(now time.Time) {
	s.Agenda = calendar.CursorAt(now)
	s.Selected = nil
	s.Modal = ModalAgenda
}

// SelectDay marks day of the agenda month as inspected.
func (s *State) SelectDay(day int) error {
	if !s.Agenda.Contains(day) {
		return apperrors.NewValidation("invalid day", map[string]string{
			"day": "day is not in the shown month",
		})
	}
	s.Selected = &Day{Day: day, Month: s.Agenda.Month, Year: s.Agenda.Year}
	return nil
}

// PickDay chooses day in the appointment picker month.
func (s *State) PickDay(day int) error {
	if !s.Picker.Contains(day) {
		return apperrors.NewValidation("invalid day", map[string]string{
			"day": "day is not in the shown month",
		})
	}
	s.PickedDay = day
	return nil
}

// AppointmentSaved clears the appointment form and shows the
// confirmation.
func (s *State) AppointmentSaved() {
	s.PickedDay = 0
	s.Modal = ModalAppointmentSaved
}

// OpenModal shows m over the dashboard. Only one modal is open at a time.
func (s *State) OpenModal(m Modal) {
	s.Modal = m
}

func (s *State) CloseModal() {
	s.Modal = ModalNone
}
