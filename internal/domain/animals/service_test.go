package animals_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cattle-records/internal/adapters/storage/memory"
	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/health"
	"cattle-records/internal/domain/reproduction"
	"cattle-records/internal/platform/apperr"
	"cattle-records/internal/platform/paging"
	"cattle-records/internal/ports/auth"
)

var (
	admin  = auth.Claims{UserID: "u-admin", Role: auth.RoleAdmin}
	worker = auth.Claims{UserID: "u-worker", Role: auth.RoleWorker}
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newServices(t *testing.T) (*animals.Service, *health.Service) {
	t.Helper()
	st := memory.NewStore()
	as := animals.NewService(st.Animals(), animals.WithClock(func() time.Time { return date(2024, 6, 1) }))
	hs := health.NewService(st.Health(), as)
	as.AddHistory(hs)
	return as, hs
}

func create(t *testing.T, svc *animals.Service, tag string, g animals.Gender, mother *string) animals.Animal {
	t.Helper()
	a, err := svc.Create(context.Background(), worker, animals.CreateInput{
		Tag:         tag,
		Gender:      string(g),
		Breed:       "Hereford",
		DateOfBirth: date(2021, 4, 2),
		MotherID:    mother,
	})
	require.NoError(t, err)
	return a
}

func TestCreate_NormalizesAndRejectsDuplicateTag(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	a := create(t, svc, " cow-1 ", animals.GenderFemale, nil)
	assert.Equal(t, "COW-1", a.Tag)
	assert.Equal(t, animals.StatusActive, a.Status)
	assert.Equal(t, "u-worker", a.CreatedBy)

	_, err := svc.Create(ctx, worker, animals.CreateInput{
		Tag: "Cow-1", Gender: "female", Breed: "Angus", DateOfBirth: date(2022, 1, 1),
	})
	assert.ErrorIs(t, err, apperr.ErrDuplicateKey)

	got, err := svc.GetByTag(ctx, "cow-1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)
	bull := create(t, svc, "BULL-1", animals.GenderMale, nil)

	cases := map[string]animals.CreateInput{
		"gender":      {Tag: "X-1", Gender: "ox", Breed: "Angus", DateOfBirth: date(2022, 1, 1)},
		"breed":       {Tag: "X-2", Gender: "male", DateOfBirth: date(2022, 1, 1)},
		"birth":       {Tag: "X-3", Gender: "male", Breed: "Angus"},
		"male mother": {Tag: "X-4", Gender: "male", Breed: "Angus", DateOfBirth: date(2022, 1, 1), MotherID: &bull.ID},
		"no mother":   {Tag: "X-5", Gender: "male", Breed: "Angus", DateOfBirth: date(2022, 1, 1), MotherID: ptr("nope")},
	}
	for name, in := range cases {
		_, err := svc.Create(ctx, worker, in)
		assert.ErrorIs(t, err, apperr.ErrValidation, name)
	}

	_, err := svc.Create(ctx, auth.Claims{}, cases["gender"])
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestUpdate_MotherPatch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)
	cow := create(t, svc, "COW-1", animals.GenderFemale, nil)
	calf := create(t, svc, "CALF-1", animals.GenderMale, nil)

	got, err := svc.Update(ctx, worker, calf.ID, animals.UpdateInput{
		Mother: animals.MotherPatch{Present: true, Value: &cow.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, got.MotherID)
	assert.Equal(t, cow.ID, *got.MotherID)

	kids, err := svc.Offspring(ctx, cow.ID)
	require.NoError(t, err)
	assert.Len(t, kids, 1)

	_, err = svc.Update(ctx, worker, cow.ID, animals.UpdateInput{
		Mother: animals.MotherPatch{Present: true, Value: &cow.ID},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation, "own mother")

	got, err = svc.Update(ctx, worker, calf.ID, animals.UpdateInput{Mother: animals.MotherPatch{Present: true}})
	require.NoError(t, err)
	assert.Nil(t, got.MotherID)
}

func TestChangeStatus_AdminOnlyAndTerminal(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)
	a := create(t, svc, "STEER-1", animals.GenderMale, nil)

	_, err := svc.ChangeStatus(ctx, worker, a.ID, animals.StatusSold)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	sold, err := svc.ChangeStatus(ctx, admin, a.ID, animals.StatusSold)
	require.NoError(t, err)
	assert.Equal(t, animals.StatusSold, sold.Status)

	_, err = svc.ChangeStatus(ctx, admin, a.ID, animals.StatusActive)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
	_, err = svc.ChangeStatus(ctx, admin, a.ID, animals.StatusDeceased)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

// racingRepo corre before entre la lectura y la escritura de Update.
type racingRepo struct {
	animals.Repository
	before func()
}

func (r *racingRepo) Update(ctx context.Context, a animals.Animal) error {
	if r.before != nil {
		f := r.before
		r.before = nil
		f()
	}
	return r.Repository.Update(ctx, a)
}

func TestUpdate_KeepsStatusChangedMeanwhile(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	repo := &racingRepo{Repository: st.Animals()}
	svc := animals.NewService(repo, animals.WithClock(func() time.Time { return date(2024, 6, 1) }))
	a := create(t, svc, "STEER-9", animals.GenderMale, nil)

	repo.before = func() {
		_, err := svc.ChangeStatus(ctx, admin, a.ID, animals.StatusSold)
		require.NoError(t, err)
	}
	got, err := svc.Update(ctx, worker, a.ID, animals.UpdateInput{Name: ptr("Bessie")})
	require.NoError(t, err)
	assert.Equal(t, "Bessie", got.Name)
	assert.Equal(t, animals.StatusSold, got.Status)

	stored, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, animals.StatusSold, stored.Status)
	assert.Equal(t, "Bessie", stored.Name)
}

func TestChangeStatus_StaleFromIsRejected(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := animals.NewService(st.Animals())
	a := create(t, svc, "STEER-8", animals.GenderMale, nil)

	at := date(2024, 6, 2)
	require.NoError(t, st.Animals().ChangeStatus(ctx, a.ID, animals.StatusActive, animals.StatusSold, at))

	// el segundo leyó active antes del primero
	err := st.Animals().ChangeStatus(ctx, a.ID, animals.StatusActive, animals.StatusDeceased, at)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)

	err = st.Animals().ChangeStatus(ctx, "nope", animals.StatusActive, animals.StatusSold, at)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, animals.StatusSold, got.Status)
	assert.Equal(t, at, got.UpdatedAt)
}

func TestUpdate_GenderLockedForMothers(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := animals.NewService(st.Animals(), animals.WithClock(func() time.Time { return date(2024, 6, 1) }))
	rp := reproduction.NewService(st.Reproduction(), svc)
	svc.AddMotherHistory(rp)

	withCalf := create(t, svc, "COW-1", animals.GenderFemale, nil)
	create(t, svc, "CALF-1", animals.GenderMale, &withCalf.ID)

	withEvent := create(t, svc, "COW-2", animals.GenderFemale, nil)
	_, err := rp.Create(ctx, worker, reproduction.CreateInput{MotherID: withEvent.ID, MatingDate: timePtr(date(2024, 1, 10))})
	require.NoError(t, err)

	plain := create(t, svc, "COW-3", animals.GenderFemale, nil)

	male := ptr("male")
	for _, id := range []string{withCalf.ID, withEvent.ID} {
		_, err := svc.Update(ctx, worker, id, animals.UpdateInput{Gender: male})
		assert.ErrorIs(t, err, apperr.ErrInvalidState)

		still, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, animals.GenderFemale, still.Gender)
	}

	// sin crías ni eventos se corrige el sexo
	got, err := svc.Update(ctx, worker, plain.ID, animals.UpdateInput{Gender: male})
	require.NoError(t, err)
	assert.Equal(t, animals.GenderMale, got.Gender)

	// la misma hembra sigue editable en sus otros campos
	_, err = svc.Update(ctx, worker, withEvent.ID, animals.UpdateInput{Gender: ptr("female"), Name: ptr("Daisy")})
	require.NoError(t, err)
}

func TestRetire(t *testing.T) {
	ctx := context.Background()
	svc, hs := newServices(t)

	t.Run("without history", func(t *testing.T) {
		a := create(t, svc, "R-1", animals.GenderMale, nil)

		_, err := svc.Retire(ctx, worker, a.ID)
		assert.ErrorIs(t, err, apperr.ErrForbidden)

		got, err := svc.Retire(ctx, admin, a.ID)
		require.NoError(t, err)
		assert.Equal(t, animals.StatusDeceased, got.Status)

		again, err := svc.Retire(ctx, admin, a.ID)
		require.NoError(t, err, "retiring a deceased animal is a no-op")
		assert.Equal(t, animals.StatusDeceased, again.Status)
	})

	t.Run("with history", func(t *testing.T) {
		a := create(t, svc, "R-2", animals.GenderFemale, nil)
		_, err := hs.Create(ctx, worker, health.CreateInput{
			AnimalID: a.ID, ObservationDate: date(2024, 5, 1), Symptoms: "cough",
		})
		require.NoError(t, err)

		_, err = svc.Retire(ctx, admin, a.ID)
		assert.ErrorIs(t, err, apperr.ErrInvalidState)

		still, err := svc.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, animals.StatusActive, still.Status)
	})

	t.Run("sold", func(t *testing.T) {
		a := create(t, svc, "R-3", animals.GenderMale, nil)
		_, err := svc.ChangeStatus(ctx, admin, a.ID, animals.StatusSold)
		require.NoError(t, err)

		_, err = svc.Retire(ctx, admin, a.ID)
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.Retire(ctx, admin, "nope")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestList_FiltersAndPaging(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	tick := date(2024, 1, 1)
	svc := animals.NewService(st.Animals(), animals.WithClock(func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}))

	for _, tag := range []string{"A-1", "A-2", "B-1", "B-2", "B-3"} {
		g := animals.GenderFemale
		if tag[0] == 'B' {
			g = animals.GenderMale
		}
		create(t, svc, tag, g, nil)
	}

	res, err := svc.List(ctx, animals.ListFilter{Gender: animals.GenderMale, Page: paging.Params{Page: 1, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "B-3", res.Items[0].Tag, "newest first")

	res, err = svc.List(ctx, animals.ListFilter{Query: "a-"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	_, err = svc.List(ctx, animals.ListFilter{Status: "lost"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func ptr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
