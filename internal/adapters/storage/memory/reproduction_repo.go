package memory

import (
	"context"
	"slices"
	"strings"

	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/reproduction"
	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/platform/apperr"
	"cattle-records/internal/platform/paging"
)

type ReproductionRepo struct {
	s *Store
}

func (r *ReproductionRepo) Create(ctx context.Context, ev reproduction.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(ev.ID) == "" {
		return apperr.Validation("id", "is required")
	}
	if _, exists := r.s.events[ev.ID]; exists {
		return apperr.Duplicate("reproduction event", "id", ev.ID)
	}
	r.s.events[ev.ID] = cloneEvent(ev)
	return nil
}

func (r *ReproductionRepo) Update(ctx context.Context, ev reproduction.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.s.events[ev.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	if prev.BirthDate != nil {
		return apperr.InvalidState("reproduction event", ev.ID, "birth already recorded, event is closed")
	}
	// el parto solo entra por RecordBirth
	ev.BirthDate = nil
	ev.NumberOfCalves = prev.NumberOfCalves
	ev.CalfDetails = prev.CalfDetails
	r.s.events[ev.ID] = cloneEvent(ev)
	return nil
}

func (r *ReproductionRepo) GetByID(ctx context.Context, id string) (reproduction.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ev, ok := r.s.events[id]
	if !ok {
		return reproduction.Event{}, apperr.ErrNotFound
	}
	return cloneEvent(ev), nil
}

func (r *ReproductionRepo) List(ctx context.Context, f reproduction.ListFilter) ([]reproduction.Event, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.newest(func(ev reproduction.Event) bool {
		if f.MotherID != "" && ev.MotherID != f.MotherID {
			return false
		}
		return f.State == "" || ev.State() == f.State
	})
	return paging.Window(out, f.Page), len(out), nil
}

func (r *ReproductionRepo) CountByMother(ctx context.Context, motherID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, ev := range r.s.events {
		if ev.MotherID == motherID {
			n++
		}
	}
	return n, nil
}

// RecordBirth valida caravanas y escribe crías y evento bajo el mismo lock.
func (r *ReproductionRepo) RecordBirth(ctx context.Context, ev reproduction.Event, calves []animals.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.events[ev.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	if cur.BirthDate != nil {
		return apperr.InvalidState("reproduction event", ev.ID, "birth already recorded")
	}

	seen := make(map[string]struct{}, len(calves))
	for _, c := range calves {
		if _, taken := r.s.tags[c.Tag]; taken {
			return apperr.Duplicate("animal", "tag", c.Tag)
		}
		if _, dup := seen[c.Tag]; dup {
			return apperr.Duplicate("animal", "tag", c.Tag)
		}
		if _, exists := r.s.animals[c.ID]; exists {
			return apperr.Duplicate("animal", "id", c.ID)
		}
		seen[c.Tag] = struct{}{}
	}

	for _, c := range calves {
		r.s.animals[c.ID] = c
		r.s.tags[c.Tag] = c.ID
	}
	r.s.events[ev.ID] = cloneEvent(ev)
	return nil
}

func (r *ReproductionRepo) ListOpen(ctx context.Context, f reproduction.OpenFilter) ([]reproduction.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return head(r.open(f), f.Limit), nil
}

func (r *ReproductionRepo) CountOpen(ctx context.Context, f reproduction.OpenFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(head(r.open(f), f.Limit)), nil
}

func (r *ReproductionRepo) ListByMother(ctx context.Context, motherID string) ([]reproduction.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.newest(func(ev reproduction.Event) bool { return ev.MotherID == motherID }), nil
}

func (r *ReproductionRepo) DateSamples(ctx context.Context, field reproduction.DateField, rg timewindow.Range) ([]timewindow.Sample, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]timewindow.Sample, 0)
	for _, ev := range r.s.events {
		at := ev.Date(field)
		if at != nil && rg.Contains(*at) {
			out = append(out, timewindow.Sample{At: *at, Quantity: ev.NumberOfCalves})
		}
	}
	return out, nil
}

// open: sin parto, por fecha probable ascendente y sin fecha al final. Requiere s.mu tomado.
func (r *ReproductionRepo) open(f reproduction.OpenFilter) []reproduction.Event {
	out := make([]reproduction.Event, 0)
	for _, ev := range r.s.events {
		if ev.BirthDate != nil {
			continue
		}
		if f.PregnantOnly && ev.PregnancyConfirmedDate == nil {
			continue
		}
		if !f.Due.ContainsPtr(ev.ExpectedDueDate) {
			continue
		}
		if f.ActiveOnly && !r.s.activeLocked(ev.MotherID) {
			continue
		}
		out = append(out, cloneEvent(ev))
	}
	slices.SortFunc(out, func(a, b reproduction.Event) int {
		if c := cmpOptionalAsc(a.ExpectedDueDate, b.ExpectedDueDate); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// newest ordena por CreatedAt descendente. Requiere s.mu tomado.
func (r *ReproductionRepo) newest(keep func(reproduction.Event) bool) []reproduction.Event {
	out := make([]reproduction.Event, 0)
	for _, ev := range r.s.events {
		if keep(ev) {
			out = append(out, cloneEvent(ev))
		}
	}
	slices.SortFunc(out, func(a, b reproduction.Event) int {
		return cmpTimeDesc(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out
}
