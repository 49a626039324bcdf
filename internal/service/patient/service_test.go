package patient

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-agenda/internal/model"
	"github.com/jwalitptl/clinic-agenda/internal/repository/memory"
	"github.com/jwalitptl/clinic-agenda/internal/service/audit"
	"github.com/jwalitptl/clinic-agenda/internal/service/event"
	apperrors "github.com/jwalitptl/clinic-agenda/pkg/errors"
	"github.com/jwalitptl/clinic-agenda/pkg/logger"
	"github.com/jwalitptl/clinic-agenda/pkg/metrics"
	"github.com/jwalitptl/clinic-agenda/pkg/validator"
)

// Compile-time check that Service satisfies PatientService.
var _ PatientService = (*Service)(nil)

func newService(t *testing.T) (*Service, *event.Bus, *metrics.Metrics) {
	t.Helper()

	m := metrics.NewNop()
	bus := event.NewBus(logger.Nop(), m)
	svc := NewService(memory.NewPatientRepository(), bus, audit.NewService(logger.Nop(), 0), validator.New(), m, logger.Nop())
	return svc, bus, m
}

func TestRegisterAndSearch(t *testing.T) {
	svc, bus, m := newService(t)
	ctx := context.Background()

	var announced []string
	bus.Subscribe(event.PatientRegistered, func(_ context.Context, evt event.Event) error {
		announced = append(announced, evt.Payload.(*model.PatientProfile).Name)
		return nil
	})

	ana, err := svc.Register(ctx, &model.CreatePatientRequest{Name: "Ana Silva", Phone: "11999990000", Email: "ana@x.com"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, ana.ID)
	assert.Equal(t, []string{"Ana Silva"}, announced)

	found, err := svc.Search(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ana.ID, found[0].ID)

	found, err = svc.Search(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, found)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.PatientsRegistered))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.PatientSearches))
}

func TestRegisterPreservesInsertionOrderAndUniqueIDs(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	names := []string{"Zé", "Ana", "Maria"}
	seen := make(map[uuid.UUID]bool)
	for _, n := range names {
		p, err := svc.Register(ctx, &model.CreatePatientRequest{Name: n, Phone: "1", Email: "p@x.com"})
		require.NoError(t, err)
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, n := range names {
		assert.Equal(t, n, all[i].Name)
	}

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRegisterRequiresAllFields(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.CreatePatientRequest{Name: "Ana", Email: "ana@x.com"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "phone is required", appErr.Fields["phone"])

	_, err = svc.Register(ctx, nil)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStoreFailuresAreInternal(t *testing.T) {
	svc, _, _ := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Register(ctx, &model.CreatePatientRequest{Name: "Ana", Phone: "1", Email: "ana@x.com"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(err))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = svc.Search(ctx, "ana")
	assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(err))
}
