package reproduction

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

// Observer recibe el resultado de cada registro de parto (métricas).
type Observer interface {
	BirthRecorded(calves int)
	BirthRejected(kind string)
}

type nopObserver struct{}

func (nopObserver) BirthRecorded(int)    {}
func (nopObserver) BirthRejected(string) {}

type Service struct {
	repo    Repository
	animals AnimalLookup
	log     logger.Logger
	obs     Observer
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

func WithObserver(o Observer) Option { return func(s *Service) { s.obs = o } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(repo Repository, animals AnimalLookup, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		animals: animals,
		log:     logger.Nop(),
		obs:     nopObserver{},
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type CreateInput struct {
	MotherID               string
	MatingDate             *time.Time
	Method                 string
	BullID                 string
	PregnancyConfirmedDate *time.Time
	ExpectedDueDate        *time.Time
	Complications          bool
	Notes                  string
}

// Create abre un ciclo. El parto solo entra por RecordBirth.
func (s *Service) Create(ctx context.Context, actor auth.Claims, in CreateInput) (Event, error) {
	if err := auth.RequireRole(actor, auth.Writers...); err != nil {
		return Event{}, err
	}
	if strings.TrimSpace(in.MotherID) == "" {
		return Event{}, apperr.Validation("mother_id", "is required")
	}

	method := MethodNatural
	if strings.TrimSpace(in.Method) != "" {
		method = ParseMethod(in.Method)
		if !method.Valid() {
			return Event{}, apperr.Validationf("method", "must be natural or artificial, got %q", in.Method)
		}
	}

	mother, err := s.animals.Get(ctx, in.MotherID)
	if err != nil {
		return Event{}, err
	}
	if mother.Gender != animals.GenderFemale {
		return Event{}, apperr.Validationf("mother_id", "animal %s is not female", mother.Tag)
	}
	if !mother.Active() {
		return Event{}, apperr.Validationf("mother_id", "animal %s is %s", mother.Tag, mother.Status)
	}

	now := s.now().UTC()
	ev := Event{
		ID:                     uuid.NewString(),
		MotherID:               mother.ID,
		MatingDate:             utcPtr(in.MatingDate),
		Method:                 method,
		BullID:                 strings.TrimSpace(in.BullID),
		PregnancyConfirmedDate: utcPtr(in.PregnancyConfirmedDate),
		ExpectedDueDate:        utcPtr(in.ExpectedDueDate),
		Complications:          in.Complications,
		Notes:                  strings.TrimSpace(in.Notes),
		CalfDetails:            []Calf{},
		RecordedBy:             actor.UserID,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := validateDates(ev); err != nil {
		return Event{}, err
	}

	if err := s.repo.Create(ctx, ev); err != nil {
		return Event{}, apperr.Wrap(err, "reproduction event", ev.ID)
	}
	return ev, nil
}

// DatePatch: Present=false no toca; Present con Value nil limpia.
type DatePatch struct {
	Present bool
	Value   *time.Time
}

type UpdateInput struct {
	MatingDate             DatePatch
	Method                 *string
	BullID                 *string
	PregnancyConfirmedDate DatePatch
	ExpectedDueDate        DatePatch
	Complications          *bool
	Notes                  *string
}

// Update edita un ciclo abierto o preñado. Con parto cargado devuelve InvalidState, y
// tampoco se puede volver de pregnant a open limpiando la confirmación.
func (s *Service) Update(ctx context.Context, actor auth.Claims, id string, in UpdateInput) (Event, error) {
	if err := auth.RequireRole(actor, auth.Writers...); err != nil {
		return Event{}, err
	}
	ev, err := s.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if ev.State() == StateClosed {
		return Event{}, apperr.InvalidState("reproduction event", ev.ID, "birth already recorded, event is closed")
	}

	if in.MatingDate.Present {
		ev.MatingDate = utcPtr(in.MatingDate.Value)
	}
	if in.Method != nil {
		m := ParseMethod(*in.Method)
		if !m.Valid() {
			return Event{}, apperr.Validationf("method", "must be natural or artificial, got %q", *in.Method)
		}
		ev.Method = m
	}
	if in.BullID != nil {
		ev.BullID = strings.TrimSpace(*in.BullID)
	}
	if in.PregnancyConfirmedDate.Present {
		next := utcPtr(in.PregnancyConfirmedDate.Value)
		if next == nil && ev.State() == StatePregnant {
			return Event{}, apperr.InvalidState("reproduction event", ev.ID, "pregnancy confirmation cannot be cleared")
		}
		ev.PregnancyConfirmedDate = next
	}
	if in.ExpectedDueDate.Present {
		ev.ExpectedDueDate = utcPtr(in.ExpectedDueDate.Value)
	}
	if in.Complications != nil {
		ev.Complications = *in.Complications
	}
	if in.Notes != nil {
		ev.Notes = strings.TrimSpace(*in.Notes)
	}
	if err := validateDates(ev); err != nil {
		return Event{}, err
	}
	ev.UpdatedAt = s.now().UTC()

	// el store vuelve a chequear birth_date IS NULL (parto concurrente)
	if err := s.repo.Update(ctx, ev); err != nil {
		return Event{}, apperr.Wrap(err, "reproduction event", ev.ID)
	}
	return ev, nil
}

type CalfEntry struct {
	Gender string
	Tag    string
}

type BirthInput struct {
	BirthDate      time.Time
	NumberOfCalves int
	Complications  bool
	Notes          string
	Calves         []CalfEntry
}

// RecordBirth cierra el evento y da de alta las crías como animales activos hijos de la madre.
//
// Se recorren NumberOfCalves posiciones; una entrada faltante o con sexo o caravana vacíos se
// saltea sin error, por lo que CalfDetails puede quedar más corto que NumberOfCalves.
// Todo o nada: si una caravana choca no se crea ninguna cría y el evento sigue abierto.
func (s *Service) RecordBirth(ctx context.Context, actor auth.Claims, eventID string, in BirthInput) (ev Event, err error) {
	defer func() {
		if err != nil {
			s.obs.BirthRejected(apperr.Kind(err))
			s.log.Warn("birth rejected", map[string]any{"event_id": eventID, "kind": apperr.Kind(err), "error": err})
		}
	}()

	if err := auth.RequireRole(actor, auth.Writers...); err != nil {
		return Event{}, err
	}
	if in.BirthDate.IsZero() {
		return Event{}, apperr.Validation("birth_date", "is required")
	}
	if in.NumberOfCalves < 0 {
		return Event{}, apperr.Validationf("number_of_calves", "must not be negative, got %d", in.NumberOfCalves)
	}

	ev, err = s.GetByID(ctx, eventID)
	if err != nil {
		return Event{}, err
	}
	if ev.BirthDate != nil {
		return Event{}, apperr.InvalidState("reproduction event", ev.ID, "birth already recorded")
	}

	mother, err := s.animals.Get(ctx, ev.MotherID)
	if err != nil {
		return Event{}, err
	}

	birth := in.BirthDate.UTC()
	now := s.now().UTC()

	seen := map[string]struct{}{}
	calves := make([]animals.Animal, 0, in.NumberOfCalves)
	details := make([]Calf, 0, in.NumberOfCalves)
	for i := 0; i < in.NumberOfCalves; i++ {
		if i >= len(in.Calves) {
			continue
		}
		rawGender := strings.TrimSpace(in.Calves[i].Gender)
		rawTag := strings.TrimSpace(in.Calves[i].Tag)
		if rawGender == "" || rawTag == "" {
			continue
		}

		gender := animals.ParseGender(rawGender)
		if !gender.Valid() {
			return Event{}, apperr.Validationf("calves", "calf %d: gender must be male or female, got %q", i+1, rawGender)
		}
		tag, err := animals.NormalizeTag(rawTag)
		if err != nil {
			return Event{}, err
		}
		if _, dup := seen[tag]; dup {
			return Event{}, apperr.Duplicate("animal", "tag", tag)
		}
		seen[tag] = struct{}{}

		calf := animals.Animal{
			ID:          uuid.NewString(),
			Tag:         tag,
			Gender:      gender,
			Breed:       mother.Breed,
			DateOfBirth: birth,
			MotherID:    &mother.ID,
			Status:      animals.StatusActive,
			CreatedBy:   actor.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		calves = append(calves, calf)
		details = append(details, Calf{Gender: gender, Tag: tag, AnimalID: calf.ID})
	}

	ev.BirthDate = &birth
	ev.NumberOfCalves = in.NumberOfCalves
	ev.Complications = in.Complications
	if n := strings.TrimSpace(in.Notes); n != "" {
		ev.Notes = n
	}
	ev.CalfDetails = details
	ev.UpdatedAt = now

	if err := s.repo.RecordBirth(ctx, ev, calves); err != nil {
		return Event{}, apperr.Wrap(err, "reproduction event", ev.ID)
	}

	s.obs.BirthRecorded(len(calves))
	s.log.Info("birth recorded", map[string]any{
		"event_id":  ev.ID,
		"mother_id": mother.ID,
		"reported":  in.NumberOfCalves,
		"created":   len(calves),
		"user_id":   actor.UserID,
	})
	return ev, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	ev, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Event{}, apperr.Wrap(err, "reproduction event", id)
	}
	return ev, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) (paging.Result[Event], error) {
	if f.State != "" && !f.State.Valid() {
		return paging.Result[Event]{}, apperr.Validationf("state", "unknown state %q", f.State)
	}
	f.Page = f.Page.Defaulted()
	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return paging.Result[Event]{}, err
	}
	return paging.NewResult(items, total, f.Page), nil
}

// HasHistory implementa animals.HistoryChecker (eventos como madre).
func (s *Service) HasHistory(ctx context.Context, animalID string) (bool, error) {
	n, err := s.repo.CountByMother(ctx, animalID)
	return n > 0, err
}

func validateDates(ev Event) error {
	if ev.MatingDate == nil {
		return nil
	}
	if ev.PregnancyConfirmedDate != nil && ev.PregnancyConfirmedDate.Before(*ev.MatingDate) {
		return apperr.Validation("pregnancy_confirmed_date", "must not be before mating_date")
	}
	if ev.ExpectedDueDate != nil && ev.ExpectedDueDate.Before(*ev.MatingDate) {
		return apperr.Validation("expected_due_date", "must not be before mating_date")
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
