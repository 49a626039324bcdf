package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jwalitptl/clinic-agenda/internal/model"
	"github.com/jwalitptl/clinic-agenda/internal/repository"
)

type appointmentRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  []*model.Appointment
}

func NewAppointmentRepository() repository.AppointmentRepository {
	return &appointmentRepository{}
}

// Create assigns the next id and inserts the appointment after every
// stored appointment that does not sort after it.
func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	appointment.ID = r.nextID

	stored := *appointment
	idx := sort.Search(len(r.items), func(i int) bool {
		return stored.Less(r.items[i])
	})

	r.items = append(r.items, nil)
	copy(r.items[idx+1:], r.items[idx:])
	r.items[idx] = &stored

	return nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneAppointments(r.items, nil), nil
}

func (r *appointmentRepository) ListByDate(ctx context.Context, day int, month time.Month, year int) ([]*model.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneAppointments(r.items, func(a *model.Appointment) bool {
		return a.OnDate(day, month, year)
	}), nil
}

func (r *appointmentRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, status model.AppointmentStatus) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, a := range r.items {
		if a.Status == status {
			count++
		}
	}
	return count, nil
}

func cloneAppointments(items []*model.Appointment, keep func(*model.Appointment) bool) []*model.Appointment {
	out := make([]*model.Appointment, 0, len(items))
	for _, a := range items {
		if keep != nil && !keep(a) {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	return out
}
