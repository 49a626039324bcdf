// Package app assembles the clinic services from configuration.
package app

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/clinic-agenda/internal/config"
	"github.com/jwalitptl/clinic-agenda/internal/locale"
	"github.com/jwalitptl/clinic-agenda/internal/repository/memory"
	"github.com/jwalitptl/clinic-agenda/internal/service/appointment"
	"github.com/jwalitptl/clinic-agenda/internal/service/audit"
	"github.com/jwalitptl/clinic-agenda/internal/service/dashboard"
	"github.com/jwalitptl/clinic-agenda/internal/service/event"
	"github.com/jwalitptl/clinic-agenda/internal/service/notification"
	"github.com/jwalitptl/clinic-agenda/internal/service/patient"
	"github.com/jwalitptl/clinic-agenda/internal/ui"
	"github.com/jwalitptl/clinic-agenda/pkg/logger"
	"github.com/jwalitptl/clinic-agenda/pkg/metrics"
	"github.com/jwalitptl/clinic-agenda/pkg/validator"
)

type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *prometheus.Registry

	Events        *event.Bus
	Audit         *audit.Service
	Appointments  *appointment.Service
	Patients      *patient.Service
	Notifications notification.Service
	Dashboard     *dashboard.Service

	Renderer *ui.Renderer
	State    *ui.State
}

// New wires every service against fresh in-memory stores. Logs go to
// logOut.
func New(cfg *config.Config, logOut io.Writer, now time.Time) *App {
	log := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     logOut,
		JSON:       cfg.Log.JSON,
	}).WithFields(map[string]interface{}{"env": cfg.App.Env})

	reg := prometheus.NewRegistry()
	m := metrics.New(cfg.Metrics.Namespace, reg)
	v := validator.New()
	catalog := locale.Lookup(cfg.Locale)

	bus := event.NewBus(log, m)
	auditor := audit.NewService(log, cfg.Audit.MaxEntries)

	appointments := appointment.NewService(memory.NewAppointmentRepository(), bus, auditor, v, m, log)
	patients := patient.NewService(memory.NewPatientRepository(), bus, auditor, v, m, log)
	notifications := notification.NewService(memory.NewNotificationRepository(), catalog, auditor, m, log)

	notification.Subscribe(bus, notifications, catalog, notification.SubscribeOptions{
		AppointmentCreated: cfg.Notifications.AppointmentCreated,
	})

	log.Info("clinic ready", "locale", catalog.Tag.String(), "appointment_notices", cfg.Notifications.AppointmentCreated)

	return &App{
		Config:        cfg,
		Logger:        log,
		Registry:      reg,
		Events:        bus,
		Audit:         auditor,
		Appointments:  appointments,
		Patients:      patients,
		Notifications: notifications,
		Dashboard:     dashboard.NewService(appointments, patients, notifications),
		Renderer:      ui.NewRenderer(catalog),
		State:         ui.NewState(now, cfg.UI.RecoveryNoticeTTL, v, auditor),
	}
}
