package memory

import (
	"context"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-agenda/internal/model"
)

func newAppointment(patient, clock string, day int, month time.Month, year int) *model.Appointment {
	return &model.Appointment{
		Patient: patient,
		Time:    clock,
		Type:    "Consulta",
		Status:  model.AppointmentStatusPending,
		Day:     day,
		Month:   month,
		Year:    year,
	}
}

func TestAppointmentRepositoryKeepsChronologicalOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		a := newAppointment("p", []string{"08:00", "09:30", "13:15", "17:45"}[rng.Intn(4)],
			1+rng.Intn(28), time.Month(1+rng.Intn(12)), 2023+rng.Intn(3))
		require.NoError(t, repo.Create(ctx, a))

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.True(t, sort.SliceIsSorted(all, func(i, j int) bool {
			return all[i].Less(all[j])
		}), "not sorted after %d inserts", i+1)
	}
}

func TestAppointmentRepositoryAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository()

	first := newAppointment("João", "09:30", 15, time.June, 2024)
	second := newAppointment("Maria", "08:00", 15, time.June, 2024)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	day, err := repo.ListByDate(ctx, 15, time.June, 2024)
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "Maria", day[0].Patient)
	assert.Equal(t, "João", day[1].Patient)
}

func TestAppointmentRepositoryEqualKeysKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository()

	require.NoError(t, repo.Create(ctx, newAppointment("first", "10:00", 2, time.May, 2024)))
	require.NoError(t, repo.Create(ctx, newAppointment("second", "10:00", 2, time.May, 2024)))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", all[0].Patient)
	assert.Equal(t, "second", all[1].Patient)
}

func TestAppointmentRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository()
	require.NoError(t, repo.Create(ctx, newAppointment("Ana", "10:00", 2, time.May, 2024)))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	all[0].Status = model.AppointmentStatusCompleted

	pending, err := repo.CountByStatus(ctx, model.AppointmentStatusPending)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}

func TestAppointmentRepositoryHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewAppointmentRepository()
	assert.ErrorIs(t, repo.Create(ctx, newAppointment("Ana", "10:00", 2, time.May, 2024)), context.Canceled)

	_, err := repo.Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPatientRepositorySearch(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientRepository()

	patients := []*model.PatientProfile{
		{ID: uuid.New(), Name: "Ana Silva", Phone: "11999990000", Email: "ana@x.com"},
		{ID: uuid.New(), Name: "João Souza", Phone: "11888880000", Email: "joao@clinica.com"},
		{ID: uuid.New(), Name: "Carla Dias", Phone: "11777770000", Email: "CARLA@Clinica.com"},
	}
	for _, p := range patients {
		require.NoError(t, repo.Create(ctx, p))
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"ana", []string{"Ana Silva"}},
		{"JOÃO", []string{"João Souza"}},
		{"clinica", []string{"João Souza", "Carla Dias"}},
		{"zzz", []string{}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			found, err := repo.Search(ctx, tt.query)
			require.NoError(t, err)

			names := make([]string, 0, len(found))
			for _, p := range found {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, patients[0].ID, all[0].ID)
	assert.Equal(t, patients[2].ID, all[2].ID)
}

func TestNotificationRepositoryFeed(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository()

	older := &model.Notification{ID: uuid.New(), Title: "older"}
	newer := &model.Notification{ID: uuid.New(), Title: "newer"}
	require.NoError(t, repo.Prepend(ctx, older))
	require.NoError(t, repo.Prepend(ctx, newer))

	feed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "newer", feed[0].Title)

	unread, err := repo.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	ok, err := repo.MarkRead(ctx, older.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkRead(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	unread, err = repo.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	ok, err = repo.Remove(ctx, newer.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Remove(ctx, newer.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	feed, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.True(t, feed[0].Read)
}
