package memory

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/jwalitptl/clinic-agenda/internal/model"
	"github.com/jwalitptl/clinic-agenda/internal/repository"
)

type patientRepository struct {
	mu    sync.RWMutex
	items []*model.PatientProfile
}

func NewPatientRepository() repository.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.PatientProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *patient
	r.items = append(r.items, &stored)
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.PatientProfile, error) {
	return r.filter(ctx, nil)
}

// Search matches query against name or email, ignoring case.
// An empty query matches nothing.
func (r *patientRepository) Search(ctx context.Context, query string) ([]*model.PatientProfile, error) {
	if query == "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []*model.PatientProfile{}, nil
	}

	fold := cases.Fold()
	needle := fold.String(query)

	return r.filter(ctx, func(p *model.PatientProfile) bool {
		return strings.Contains(fold.String(p.Name), needle) ||
			strings.Contains(fold.String(p.Email), needle)
	})
}

func (r *patientRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}

func (r *patientRepository) filter(ctx context.Context, keep func(*model.PatientProfile) bool) ([]*model.PatientProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.PatientProfile, 0, len(r.items))
	for _, p := range r.items {
		if keep != nil && !keep(p) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	return out, nil
}
