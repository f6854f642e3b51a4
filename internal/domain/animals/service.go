package animals

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"cattle-records/internal/platform/apperr"
	"cattle-records/internal/platform/logger"
	"cattle-records/internal/platform/paging"
	"cattle-records/internal/ports/auth"
)

// HistoryChecker lo implementan los módulos con registros hijos (sanidad, vacunas, reproducción).
type HistoryChecker interface {
	HasHistory(ctx context.Context, animalID string) (bool, error)
}

type Service struct {
	repo      Repository
	history   []HistoryChecker
	// mothering: módulos donde el animal figura como madre (reproducción)
	mothering []HistoryChecker
	log       logger.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithHistory(checkers ...HistoryChecker) Option {
	return func(s *Service) { s.history = append(s.history, checkers...) }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		log:  logger.Nop(),
		now:  time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// AddHistory registra checkers creados después del servicio (rompe el ciclo animals <-> sanidad).
func (s *Service) AddHistory(checkers ...HistoryChecker) {
	s.history = append(s.history, checkers...)
}

// AddMotherHistory registra los módulos que exigen una madre hembra.
// Con registros ahí una hembra no puede pasar a macho.
func (s *Service) AddMotherHistory(checkers ...HistoryChecker) {
	s.mothering = append(s.mothering, checkers...)
}

type CreateInput struct {
	Tag         string
	Name        string
	Gender      string
	Breed       string
	DateOfBirth time.Time
	MotherID    *string
	Notes       string
}

func (s *Service) Create(ctx context.Context, actor auth.Claims, in CreateInput) (Animal, error) {
	if err := auth.RequireRole(actor, auth.Writers...); err != nil {
		return Animal{}, err
	}

	tag, err := NormalizeTag(in.Tag)
	if err != nil {
		return Animal{}, err
	}
	gender := ParseGender(in.Gender)
	if !gender.Valid() {
		return Animal{}, apperr.Validationf("gender", "must be male or female, got %q", in.Gender)
	}
	breed := strings.TrimSpace(in.Breed)
	if breed == "" {
		return Animal{}, apperr.Validation("breed", "is required")
	}
	if in.DateOfBirth.IsZero() {
		return Animal{}, apperr.Validation("date_of_birth", "is required")
	}

	id := uuid.NewString()
	mother, err := s.resolveMother(ctx, id, in.MotherID)
	if err != nil {
		return Animal{}, err
	}

	now := s.now().UTC()
	a := Animal{
		ID:          id,
		Tag:         tag,
		Name:        strings.TrimSpace(in.Name),
		Gender:      gender,
		Breed:       breed,
		DateOfBirth: in.DateOfBirth.UTC(),
		MotherID:    mother,
		Status:      StatusActive,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// la unicidad la decide el store, no un lookup previo
	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, apperr.Wrap(err, "animal", a.ID)
	}
	s.log.Info("animal created", map[string]any{"animal_id": a.ID, "tag": a.Tag, "user_id": actor.UserID})
	return a, nil
}

// MotherPatch distingue "no enviado" de "null" (quitar la madre).
type MotherPatch struct {
	Present bool
	Value   *string
}

// UpdateInput: nil = no tocar. Caravana y estado no se editan acá.
type UpdateInput struct {
	Name        *string
	Gender      *string
	Breed       *string
	DateOfBirth *time.Time
	Mother      MotherPatch
	Notes       *string
}

func (s *Service) Update(ctx context.Context, actor auth.Claims, id string, in UpdateInput) (Animal, error) {
	if err := auth.RequireRole(actor, auth.Writers...); err != nil {
		return Animal{}, err
	}

	a, err := s.Get(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Gender != nil {
		g := ParseGender(*in.Gender)
		if !g.Valid() {
			return Animal{}, apperr.Validationf("gender", "must be male or female, got %q", *in.Gender)
		}
		if a.Gender == GenderFemale && g != GenderFemale {
			if err := s.ensureNotMother(ctx, a.ID); err != nil {
				return Animal{}, err
			}
		}
		a.Gender = g
	}
	if in.Breed != nil {
		b := strings.TrimSpace(*in.Breed)
		if b == "" {
			return Animal{}, apperr.Validation("breed", "must not be empty")
		}
		a.Breed = b
	}
	if in.DateOfBirth != nil {
		if in.DateOfBirth.IsZero() {
			return Animal{}, apperr.Validation("date_of_birth", "must not be empty")
		}
		a.DateOfBirth = in.DateOfBirth.UTC()
	}
	if in.Mother.Present {
		m, err := s.resolveMother(ctx, a.ID, in.Mother.Value)
		if err != nil {
			return Animal{}, err
		}
		a.MotherID = m
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}
	a.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, apperr.Wrap(err, "animal", a.ID)
	}
	s.log.Info("animal updated", map[string]any{"animal_id": a.ID, "user_id": actor.UserID})
	// el estado lo maneja ChangeStatus, se relee el guardado
	return s.Get(ctx, a.ID)
}

// ensureNotMother falla si el animal tiene crías o eventos de reproducción como madre.
func (s *Service) ensureNotMother(ctx context.Context, id string) error {
	kids, err := s.repo.ListByMother(ctx, id)
	if err != nil {
		return err
	}
	has := len(kids) > 0
	for _, h := range s.mothering {
		if has {
			break
		}
		if has, err = h.HasHistory(ctx, id); err != nil {
			return err
		}
	}
	if has {
		return apperr.InvalidState("animal", id, "cannot change gender of an animal recorded as a mother")
	}
	return nil
}

// ChangeStatus es solo para admin y respeta el ciclo active => sold|deceased.
func (s *Service) ChangeStatus(ctx context.Context, actor auth.Claims, id string, to Status) (Animal, error) {
	if err := auth.RequireRole(actor, auth.RoleAdmin); err != nil {
		return Animal{}, err
	}
	a, err := s.Get(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if err := CanTransition(a.ID, a.Status, to); err != nil {
		return Animal{}, err
	}

	from := a.Status
	a.Status = to
	a.UpdatedAt = s.now().UTC()
	if err := s.repo.ChangeStatus(ctx, a.ID, from, to, a.UpdatedAt); err != nil {
		return Animal{}, apperr.Wrap(err, "animal", a.ID)
	}
	s.log.Info("animal status changed", map[string]any{"animal_id": a.ID, "from": string(from), "to": string(to), "user_id": actor.UserID})
	return a, nil
}

// Retire es el "borrar" de la API: nunca borra, pasa a deceased.
// Con historial (sanidad, vacunas, reproducción) se rechaza y hay que cambiar el estado explícitamente.
func (s *Service) Retire(ctx context.Context, actor auth.Claims, id string) (Animal, error) {
	if err := auth.RequireRole(actor, auth.RoleAdmin); err != nil {
		return Animal{}, err
	}
	a, err := s.Get(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	for _, h := range s.history {
		has, err := h.HasHistory(ctx, a.ID)
		if err != nil {
			return Animal{}, err
		}
		if has {
			return Animal{}, apperr.InvalidState("animal", a.ID, "cannot delete an animal with historical records, change its status instead")
		}
	}

	switch a.Status {
	case StatusDeceased:
		return a, nil
	case StatusSold:
		return Animal{}, apperr.InvalidState("animal", a.ID, "status sold is terminal")
	}

	from := a.Status
	a.Status = StatusDeceased
	a.UpdatedAt = s.now().UTC()
	if err := s.repo.ChangeStatus(ctx, a.ID, from, a.Status, a.UpdatedAt); err != nil {
		return Animal{}, apperr.Wrap(err, "animal", a.ID)
	}
	s.log.Info("animal retired", map[string]any{"animal_id": a.ID, "user_id": actor.UserID})
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, apperr.Validation("id", "is required")
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, apperr.Wrap(err, "animal", id)
	}
	return a, nil
}

// GetByTag acepta la caravana en cualquier capitalización.
func (s *Service) GetByTag(ctx context.Context, tag string) (Animal, error) {
	t, err := NormalizeTag(tag)
	if err != nil {
		return Animal{}, err
	}
	a, err := s.repo.GetByTag(ctx, t)
	if err != nil {
		return Animal{}, apperr.Wrap(err, "animal", t)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) (paging.Result[Animal], error) {
	if f.Status != "" && !f.Status.Valid() {
		return paging.Result[Animal]{}, apperr.Validationf("status", "unknown status %q", f.Status)
	}
	if f.Gender != "" && !f.Gender.Valid() {
		return paging.Result[Animal]{}, apperr.Validationf("gender", "unknown gender %q", f.Gender)
	}
	f.Query = strings.TrimSpace(f.Query)
	f.Breed = strings.TrimSpace(f.Breed)
	f.Page = f.Page.Defaulted()

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return paging.Result[Animal]{}, err
	}
	return paging.NewResult(items, total, f.Page), nil
}

// Offspring es el índice derivado MotherID = id.
func (s *Service) Offspring(ctx context.Context, id string) ([]Animal, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListByMother(ctx, id)
}

func (s *Service) resolveMother(ctx context.Context, selfID string, motherID *string) (*string, error) {
	if motherID == nil || strings.TrimSpace(*motherID) == "" {
		return nil, nil
	}
	id := strings.TrimSpace(*motherID)
	if id == selfID {
		return nil, apperr.Validation("mother_id", "an animal cannot be its own mother")
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperr.Kind(err) == "not_found" {
			return nil, apperr.Validationf("mother_id", "mother %s not found", id)
		}
		return nil, err
	}
	if m.Gender != GenderFemale {
		return nil, apperr.Validationf("mother_id", "mother %s is not female", m.Tag)
	}
	return &id, nil
}
