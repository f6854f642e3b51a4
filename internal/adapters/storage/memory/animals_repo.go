package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/platform/apperr"
	"cattle-records/internal/platform/paging"
)

type AnimalRepo struct {
	s *Store
}

func (r *AnimalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return apperr.Validation("id", "is required")
	}
	if _, exists := r.s.animals[a.ID]; exists {
		return apperr.Duplicate("animal", "id", a.ID)
	}
	if _, taken := r.s.tags[a.Tag]; taken {
		return apperr.Duplicate("animal", "tag", a.Tag)
	}
	r.s.animals[a.ID] = a
	r.s.tags[a.Tag] = a.ID
	return nil
}

func (r *AnimalRepo) Update(ctx context.Context, a animals.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.s.animals[a.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	if prev.Tag != a.Tag {
		if owner, taken := r.s.tags[a.Tag]; taken && owner != a.ID {
			return apperr.Duplicate("animal", "tag", a.Tag)
		}
		delete(r.s.tags, prev.Tag)
		r.s.tags[a.Tag] = a.ID
	}
	a.Status = prev.Status
	r.s.animals[a.ID] = a
	return nil
}

func (r *AnimalRepo) ChangeStatus(ctx context.Context, id string, from, to animals.Status, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.animals[id]
	if !ok {
		return apperr.ErrNotFound
	}
	if a.Status != from {
		return apperr.InvalidState("animal", id, fmt.Sprintf("status is %s, not %s", a.Status, from))
	}
	a.Status = to
	a.UpdatedAt = at
	r.s.animals[id] = a
	return nil
}

func (r *AnimalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.animals[id]
	if !ok {
		return animals.Animal{}, apperr.ErrNotFound
	}
	return a, nil
}

func (r *AnimalRepo) GetByTag(ctx context.Context, tag string) (animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.tags[tag]
	if !ok {
		return animals.Animal{}, apperr.ErrNotFound
	}
	return r.s.animals[id], nil
}

func (r *AnimalRepo) List(ctx context.Context, f animals.ListFilter) ([]animals.Animal, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.TrimSpace(f.Query)
	out := make([]animals.Animal, 0)
	for _, a := range r.s.animals {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Gender != "" && a.Gender != f.Gender {
			continue
		}
		if f.Breed != "" && !strings.EqualFold(a.Breed, f.Breed) {
			continue
		}
		if f.MotherID != "" && (a.MotherID == nil || *a.MotherID != f.MotherID) {
			continue
		}
		if q != "" && !containsFold(a.Tag, q) && !containsFold(a.Name, q) {
			continue
		}
		out = append(out, a)
	}
	sortNewest(out)
	return paging.Window(out, f.Page), len(out), nil
}

// ListByMother ordena por nacimiento, el más chico primero.
func (r *AnimalRepo) ListByMother(ctx context.Context, motherID string) ([]animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.s.animals {
		if a.MotherID != nil && *a.MotherID == motherID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b animals.Animal) int {
		if c := b.DateOfBirth.Compare(a.DateOfBirth); c != 0 {
			return c
		}
		return strings.Compare(a.Tag, b.Tag)
	})
	return out, nil
}

func (r *AnimalRepo) CountByStatus(ctx context.Context) (map[animals.Status]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := map[animals.Status]int{}
	for _, a := range r.s.animals {
		out[a.Status]++
	}
	return out, nil
}

func (r *AnimalRepo) CountActiveByGender(ctx context.Context) (map[animals.Gender]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := map[animals.Gender]int{}
	for _, a := range r.s.animals {
		if a.Active() {
			out[a.Gender]++
		}
	}
	return out, nil
}

func (r *AnimalRepo) ActiveBreedCounts(ctx context.Context) ([]animals.BreedCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := map[string]int{}
	for _, a := range r.s.animals {
		if a.Active() {
			counts[a.Breed]++
		}
	}
	out := make([]animals.BreedCount, 0, len(counts))
	for b, n := range counts {
		out = append(out, animals.BreedCount{Breed: b, Count: n})
	}
	slices.SortFunc(out, func(a, b animals.BreedCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Breed, b.Breed)
	})
	return out, nil
}

// ListActive ordena por caravana.
func (r *AnimalRepo) ListActive(ctx context.Context) ([]animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.s.animals {
		if a.Active() {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b animals.Animal) int { return strings.Compare(a.Tag, b.Tag) })
	return out, nil
}

func (r *AnimalRepo) Recent(ctx context.Context, n int) ([]animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.s.animals))
	for _, a := range r.s.animals {
		out = append(out, a)
	}
	sortNewest(out)
	return head(out, n), nil
}

func (r *AnimalRepo) DateSamples(ctx context.Context, field animals.DateField, rg timewindow.Range) ([]timewindow.Sample, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]timewindow.Sample, 0)
	for _, a := range r.s.animals {
		var at = a.CreatedAt
		if field == animals.FieldDateOfBirth {
			at = a.DateOfBirth
		}
		if rg.Contains(at) {
			out = append(out, timewindow.Sample{At: at, Quantity: 1})
		}
	}
	return out, nil
}

func sortNewest(as []animals.Animal) {
	slices.SortFunc(as, func(a, b animals.Animal) int {
		return cmpTimeDesc(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
}
