package memory

import (
	"context"
	"slices"
	"strings"

	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/domain/vaccinations"
	"cattle-records/internal/platform/apperr"
	"cattle-records/internal/platform/paging"
)

type VaccinationRepo struct {
	s *Store
}

func (r *VaccinationRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return apperr.Validation("id", "is required")
	}
	if _, exists := r.s.vaccinations[v.ID]; exists {
		return apperr.Duplicate("vaccination", "id", v.ID)
	}
	r.s.vaccinations[v.ID] = v
	return nil
}

func (r *VaccinationRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.vaccinations[v.ID]; !exists {
		return apperr.ErrNotFound
	}
	r.s.vaccinations[v.ID] = v
	return nil
}

func (r *VaccinationRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.vaccinations[id]
	if !ok {
		return vaccinations.Vaccination{}, apperr.ErrNotFound
	}
	return v, nil
}

func (r *VaccinationRepo) List(ctx context.Context, f vaccinations.ListFilter) ([]vaccinations.Vaccination, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	name := strings.TrimSpace(f.VaccineName)
	out := r.byInjection(func(v vaccinations.Vaccination) bool {
		if f.AnimalID != "" && v.AnimalID != f.AnimalID {
			return false
		}
		if name != "" && !strings.EqualFold(v.VaccineName, name) {
			return false
		}
		return inDay(v.InjectionDate, f.From, f.To)
	})
	return paging.Window(out, f.Page), len(out), nil
}

func (r *VaccinationRepo) CountByAnimal(ctx context.Context, animalID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, v := range r.s.vaccinations {
		if v.AnimalID == animalID {
			n++
		}
	}
	return n, nil
}

func (r *VaccinationRepo) ListDue(ctx context.Context, f vaccinations.DueFilter) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return head(r.due(f), f.Limit), nil
}

func (r *VaccinationRepo) CountDue(ctx context.Context, f vaccinations.DueFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(head(r.due(f), f.Limit)), nil
}

func (r *VaccinationRepo) Recent(ctx context.Context, n int) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.byInjection(func(vaccinations.Vaccination) bool { return true })
	slices.SortFunc(out, func(a, b vaccinations.Vaccination) int {
		return cmpTimeDesc(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return head(out, n), nil
}

func (r *VaccinationRepo) LatestByAnimal(ctx context.Context, animalID string, n int) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.byInjection(func(v vaccinations.Vaccination) bool { return v.AnimalID == animalID })
	return head(out, n), nil
}

func (r *VaccinationRepo) DateSamples(ctx context.Context, field vaccinations.DateField, rg timewindow.Range) ([]timewindow.Sample, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]timewindow.Sample, 0)
	for _, v := range r.s.vaccinations {
		at := &v.InjectionDate
		if field == vaccinations.FieldNextDueDate {
			at = v.NextDueDate
		}
		if at != nil && rg.Contains(*at) {
			out = append(out, timewindow.Sample{At: *at, Quantity: 1})
		}
	}
	return out, nil
}

// due: vacunas con NextDueDate dentro de la ventana, ascendente. Requiere s.mu tomado.
func (r *VaccinationRepo) due(f vaccinations.DueFilter) []vaccinations.Vaccination {
	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.s.vaccinations {
		if v.NextDueDate == nil || !f.Window.Contains(*v.NextDueDate) {
			continue
		}
		if f.ActiveOnly && !r.s.activeLocked(v.AnimalID) {
			continue
		}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b vaccinations.Vaccination) int {
		if c := a.NextDueDate.Compare(*b.NextDueDate); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// byInjection devuelve por InjectionDate descendente. Requiere s.mu tomado.
func (r *VaccinationRepo) byInjection(keep func(vaccinations.Vaccination) bool) []vaccinations.Vaccination {
	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.s.vaccinations {
		if keep(v) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b vaccinations.Vaccination) int {
		return cmpTimeDesc(a.InjectionDate, b.InjectionDate, a.ID, b.ID)
	})
	return out
}
