package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-agenda/internal/config"
	"github.com/jwalitptl/clinic-agenda/internal/model"
)

func testConfig(appointmentNotices bool) *config.Config {
	return &config.Config{
		App:           config.AppConfig{Env: "test"},
		Log:           config.LogConfig{Level: "debug", JSON: true},
		Locale:        "pt-BR",
		Notifications: config.NotificationConfig{AppointmentCreated: appointmentNotices},
		UI:            config.UIConfig{RecoveryNoticeTTL: time.Second},
		Metrics:       config.MetricsConfig{Namespace: "clinic"},
		Audit:         config.AuditConfig{MaxEntries: 10},
	}
}

func TestRegisterPatientPostsNotification(t *testing.T) {
	var logs bytes.Buffer
	now := time.Date(2024, time.June, 15, 9, 0, 0, 0, time.Local)
	a := New(testConfig(false), &logs, now)
	ctx := context.Background()

	_, err := a.Patients.Register(ctx, &model.CreatePatientRequest{Name: "Ana Silva", Phone: "11999990000", Email: "ana@x.com"})
	require.NoError(t, err)

	feed, err := a.Notifications.List(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Ana Silva foi cadastrado com sucesso no sistema.", feed[0].Message)

	unread, err := a.Notifications.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	_, err = a.Appointments.Create(ctx, &model.CreateAppointmentRequest{
		Patient: "Ana Silva", Time: "10:00", Type: "Consulta", Day: 15, Month: 6, Year: 2024,
	})
	require.NoError(t, err)

	feed, err = a.Notifications.List(ctx)
	require.NoError(t, err)
	assert.Len(t, feed, 1, "appointment notices are off by default")

	summary, err := a.Dashboard.Summary(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Today)
	assert.Equal(t, 1, summary.Upcoming)
	assert.Equal(t, 1, summary.Patients)
	assert.Equal(t, 1, summary.UnreadNotifications)

	assert.Len(t, a.Audit.Entries(), 3)
	assert.Contains(t, logs.String(), `"env":"test"`)

	count, err := testutil.GatherAndCount(a.Registry, "clinic_patients_registered_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAppointmentNoticesWhenEnabled(t *testing.T) {
	a := New(testConfig(true), &bytes.Buffer{}, time.Now())
	ctx := context.Background()

	_, err := a.Appointments.Create(ctx, &model.CreateAppointmentRequest{
		Patient: "Maria", Time: "08:00", Type: "Retorno", Day: 15, Month: 6, Year: 2024,
	})
	require.NoError(t, err)

	feed, err := a.Notifications.List(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, model.NotificationKindAppointmentCreated, feed[0].Kind)
}
