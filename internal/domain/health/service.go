package health

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

// AnimalLookup es lo único que este módulo necesita de animals.
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
	s := &Service{
		repo:    repo,
		animals: animals,
		log:     logger.Nop(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type CreateInput struct {
	AnimalID        string
	ObservationDate time.Time
	Symptoms        string
	Diagnosis       string
	Treatment       string
	VetName         string
	FollowUpDate    *time.Time
}

func (s *Service) Create(ctx context.Context, actor auth.Claims, in CreateInput) (Record, error) {
	if err := auth.RequireRole(actor, auth.Writers...); err != nil {
		return Record{}, err
	}
	if strings.TrimSpace(in.AnimalID) == "" {
		return Record{}, apperr.Validation("animal_id", "is required")
	}
	if in.ObservationDate.IsZero() {
		return Record{}, apperr.Validation("observation_date", "is required")
	}
	symptoms := strings.TrimSpace(in.Symptoms)
	if symptoms == "" {
		return Record{}, apperr.Validation("symptoms", "is required")
	}

	a, err := s.animals.Get(ctx, in.AnimalID)
	if err != nil {
		return Record{}, err
	}

	now := s.now().UTC()
	rec := Record{
		ID:              uuid.NewString(),
		AnimalID:        a.ID,
		ObservationDate: in.ObservationDate.UTC(),
		Symptoms:        symptoms,
		Diagnosis:       strings.TrimSpace(in.Diagnosis),
		Treatment:       strings.TrimSpace(in.Treatment),
		VetName:         strings.TrimSpace(in.VetName),
		FollowUpDate:    utcPtr(in.FollowUpDate),
		RecordedBy:      actor.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, apperr.Wrap(err, "health record", rec.ID)
	}
	s.log.Info("health record created", map[string]any{"record_id": rec.ID, "animal_id": rec.AnimalID, "user_id": actor.UserID})
	return rec, nil
}

// FollowUpPatch permite limpiar la fecha de seguimiento con null.
type FollowUpPatch struct {
	Present bool
	Value   *time.Time
}

// UpdateInput: nil = no tocar. El animal no se cambia.
type UpdateInput struct {
	ObservationDate *time.Time
	Symptoms        *string
	Diagnosis       *string
	Treatment       *string
	VetName         *string
	FollowUp        FollowUpPatch
}

func (s *Service) Update(ctx context.Context, actor auth.Claims, id string, in UpdateInput) (Record, error) {
	if err := auth.RequireRole(actor, auth.Writers...); err != nil {
		return Record{}, err
	}
	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}

	if in.ObservationDate != nil {
		if in.ObservationDate.IsZero() {
			return Record{}, apperr.Validation("observation_date", "must not be empty")
		}
		rec.ObservationDate = in.ObservationDate.UTC()
	}
	if in.Symptoms != nil {
		v := strings.TrimSpace(*in.Symptoms)
		if v == "" {
			return Record{}, apperr.Validation("symptoms", "must not be empty")
		}
		rec.Symptoms = v
	}
	if in.Diagnosis != nil {
		rec.Diagnosis = strings.TrimSpace(*in.Diagnosis)
	}
	if in.Treatment != nil {
		rec.Treatment = strings.TrimSpace(*in.Treatment)
	}
	if in.VetName != nil {
		rec.VetName = strings.TrimSpace(*in.VetName)
	}
	if in.FollowUp.Present {
		rec.FollowUpDate = utcPtr(in.FollowUp.Value)
	}
	rec.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, apperr.Wrap(err, "health record", rec.ID)
	}
	s.log.Info("health record updated", map[string]any{"record_id": rec.ID, "user_id": actor.UserID})
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	rec, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Record{}, apperr.Wrap(err, "health record", id)
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) (paging.Result[Record], error) {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return paging.Result[Record]{}, apperr.Validation("to", "must not be before from")
	}
	f.Page = f.Page.Defaulted()
	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return paging.Result[Record]{}, err
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
