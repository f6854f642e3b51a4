package vaccinations

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"cattle-records/internal/domain/animals"
	"cattle-records/internal/platform/apperr"
	"cattle-records/internal/platform/logger"
	"cattle-records/internal/platform/paging"
	"cattle-records/internal/ports/auth"
)

type AnimalLookup interface {
	Get(ctx context.Context, id string) (animals.Animal, error)
}

type Service struct {
	repo    Repository
	animals AnimalLookup
	log     logger.Logger
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(repo Repository, animals AnimalLookup, opts ...Option) *Service {
	s := &Service{repo: repo, animals: animals, log: logger.Nop(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

type CreateInput struct {
	AnimalID       string
	VaccineName    string
	InjectionDate  time.Time
	Dosage         string
	NextDueDate    *time.Time
	AdministeredBy string
}

func (s *Service) Create(ctx context.Context, actor auth.Claims, in CreateInput) (Vaccination, error) {
	if err := auth.RequireRole(actor, auth.Writers...); err != nil {
		return Vaccination{}, err
	}
	if strings.TrimSpace(in.AnimalID) == "" {
		return Vaccination{}, apperr.Validation("animal_id", "is required")
	}
	name := strings.TrimSpace(in.VaccineName)
	if name == "" {
		return Vaccination{}, apperr.Validation("vaccine_name", "is required")
	}
	if in.InjectionDate.IsZero() {
		return Vaccination{}, apperr.Validation("injection_date", "is required")
	}
	next := utcPtr(in.NextDueDate)
	if next != nil && next.Before(in.InjectionDate) {
		return Vaccination{}, apperr.Validation("next_due_date", "must not be before injection_date")
	}

	a, err := s.animals.Get(ctx, in.AnimalID)
	if err != nil {
		return Vaccination{}, err
	}

	now := s.now().UTC()
	v := Vaccination{
		ID:             uuid.NewString(),
		AnimalID:       a.ID,
		VaccineName:    name,
		InjectionDate:  in.InjectionDate.UTC(),
		Dosage:         strings.TrimSpace(in.Dosage),
		NextDueDate:    next,
		AdministeredBy: strings.TrimSpace(in.AdministeredBy),
		RecordedBy:     actor.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccination{}, apperr.Wrap(err, "vaccination", v.ID)
	}
	s.log.Info("vaccination recorded", map[string]any{"vaccination_id": v.ID, "animal_id": v.AnimalID, "vaccine": v.VaccineName, "user_id": actor.UserID})
	return v, nil
}

type NextDuePatch struct {
	Present bool
	Value   *time.Time
}

type UpdateInput struct {
	VaccineName    *string
	InjectionDate  *time.Time
	Dosage         *string
	NextDue        NextDuePatch
	AdministeredBy *string
}

func (s *Service) Update(ctx context.Context, actor auth.Claims, id string, in UpdateInput) (Vaccination, error) {
	if err := auth.RequireRole(actor, auth.Writers...); err != nil {
		return Vaccination{}, err
	}
	v, err := s.GetByID(ctx, id)
	if err != nil {
		return Vaccination{}, err
	}

	if in.VaccineName != nil {
		n := strings.TrimSpace(*in.VaccineName)
		if n == "" {
			return Vaccination{}, apperr.Validation("vaccine_name", "must not be empty")
		}
		v.VaccineName = n
	}
	if in.InjectionDate != nil {
		if in.InjectionDate.IsZero() {
			return Vaccination{}, apperr.Validation("injection_date", "must not be empty")
		}
		v.InjectionDate = in.InjectionDate.UTC()
	}
	if in.Dosage != nil {
		v.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.NextDue.Present {
		v.NextDueDate = utcPtr(in.NextDue.Value)
	}
	if in.AdministeredBy != nil {
		v.AdministeredBy = strings.TrimSpace(*in.AdministeredBy)
	}
	if v.NextDueDate != nil && v.NextDueDate.Before(v.InjectionDate) {
		return Vaccination{}, apperr.Validation("next_due_date", "must not be before injection_date")
	}
	v.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, v); err != nil {
		return Vaccination{}, apperr.Wrap(err, "vaccination", v.ID)
	}
	s.log.Info("vaccination updated", map[string]any{"vaccination_id": v.ID, "user_id": actor.UserID})
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Vaccination, error) {
	v, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Vaccination{}, apperr.Wrap(err, "vaccination", id)
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) (paging.Result[Vaccination], error) {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return paging.Result[Vaccination]{}, apperr.Validation("to", "must not be before from")
	}
	f.VaccineName = strings.TrimSpace(f.VaccineName)
	f.Page = f.Page.Defaulted()
	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return paging.Result[Vaccination]{}, err
	}
	return paging.NewResult(items, total, f.Page), nil
}

// HasHistory implementa animals.HistoryChecker.
func (s *Service) HasHistory(ctx context.Context, animalID string) (bool, error) {
	n, err := s.repo.CountByAnimal(ctx, animalID)
	return n > 0, err
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
