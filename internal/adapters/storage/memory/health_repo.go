package memory

import (
	"context"
	"slices"
	"strings"

	"cattle-records/internal/domain/health"
	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/platform/apperr"
	"cattle-records/internal/platform/paging"
)

type HealthRepo struct {
	s *Store
}

func (r *HealthRepo) Create(ctx context.Context, rec health.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return apperr.Validation("id", "is required")
	}
	if _, exists := r.s.health[rec.ID]; exists {
		return apperr.Duplicate("health record", "id", rec.ID)
	}
	r.s.health[rec.ID] = rec
	return nil
}

func (r *HealthRepo) Update(ctx context.Context, rec health.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.health[rec.ID]; !exists {
		return apperr.ErrNotFound
	}
	r.s.health[rec.ID] = rec
	return nil
}

func (r *HealthRepo) GetByID(ctx context.Context, id string) (health.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.health[id]
	if !ok {
		return health.Record{}, apperr.ErrNotFound
	}
	return rec, nil
}

func (r *HealthRepo) List(ctx context.Context, f health.ListFilter) ([]health.Record, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.filter(func(rec health.Record) bool {
		if f.AnimalID != "" && rec.AnimalID != f.AnimalID {
			return false
		}
		return inDay(rec.ObservationDate, f.From, f.To)
	})
	return paging.Window(out, f.Page), len(out), nil
}

func (r *HealthRepo) CountByAnimal(ctx context.Context, animalID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, rec := range r.s.health {
		if rec.AnimalID == animalID {
			n++
		}
	}
	return n, nil
}

func (r *HealthRepo) ListFollowUps(ctx context.Context, rg timewindow.Range) ([]health.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]health.Record, 0)
	for _, rec := range r.s.health {
		if rec.FollowUpDate != nil && rg.Contains(*rec.FollowUpDate) {
			out = append(out, rec)
		}
	}
	slices.SortFunc(out, func(a, b health.Record) int {
		if c := a.FollowUpDate.Compare(*b.FollowUpDate); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *HealthRepo) CountObserved(ctx context.Context, rg timewindow.Range) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, rec := range r.s.health {
		if rg.Contains(rec.ObservationDate) {
			n++
		}
	}
	return n, nil
}

func (r *HealthRepo) Recent(ctx context.Context, n int) ([]health.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.filter(func(health.Record) bool { return true })
	slices.SortFunc(out, func(a, b health.Record) int {
		return cmpTimeDesc(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return head(out, n), nil
}

func (r *HealthRepo) LatestByAnimal(ctx context.Context, animalID string, n int) ([]health.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.filter(func(rec health.Record) bool { return rec.AnimalID == animalID })
	return head(out, n), nil
}

func (r *HealthRepo) DateSamples(ctx context.Context, field health.DateField, rg timewindow.Range) ([]timewindow.Sample, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]timewindow.Sample, 0)
	for _, rec := range r.s.health {
		at := &rec.ObservationDate
		if field == health.FieldFollowUpDate {
			at = rec.FollowUpDate
		}
		if at != nil && rg.Contains(*at) {
			out = append(out, timewindow.Sample{At: *at, Quantity: 1})
		}
	}
	return out, nil
}

// filter devuelve por ObservationDate descendente. Requiere s.mu tomado.
func (r *HealthRepo) filter(keep func(health.Record) bool) []health.Record {
	out := make([]health.Record, 0)
	for _, rec := range r.s.health {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	slices.SortFunc(out, func(a, b health.Record) int {
		return cmpTimeDesc(a.ObservationDate, b.ObservationDate, a.ID, b.ID)
	})
	return out
}
