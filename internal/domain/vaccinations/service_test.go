package vaccinations_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cattle-records/internal/adapters/storage/memory"
	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/vaccinations"
	"cattle-records/internal/platform/apperr"
	"cattle-records/internal/platform/logger"
	"cattle-records/internal/ports/auth"
)

var worker = auth.Claims{UserID: "u-worker", Role: auth.RoleWorker}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setup(t *testing.T) (*vaccinations.Service, animals.Animal) {
	t.Helper()
	st := memory.NewStore()
	as := animals.NewService(st.Animals())
	a, err := as.Create(context.Background(), worker, animals.CreateInput{
		Tag: "HEIFER-1", Gender: "female", Breed: "Brangus", DateOfBirth: date(2023, 2, 1),
	})
	require.NoError(t, err)
	return vaccinations.NewService(st.Vaccinations(), as), a
}

func TestCreate_DueNotBeforeInjection(t *testing.T) {
	ctx := context.Background()
	svc, a := setup(t)

	early := date(2024, 1, 1)
	_, err := svc.Create(ctx, worker, vaccinations.CreateInput{
		AnimalID: a.ID, VaccineName: "Aftosa", InjectionDate: date(2024, 2, 1), NextDueDate: &early,
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	next := date(2024, 8, 1)
	v, err := svc.Create(ctx, worker, vaccinations.CreateInput{
		AnimalID: a.ID, VaccineName: " Aftosa ", InjectionDate: date(2024, 2, 1), Dosage: "2ml", NextDueDate: &next,
	})
	require.NoError(t, err)
	assert.Equal(t, "Aftosa", v.VaccineName)
	require.NotNil(t, v.NextDueDate)
	assert.Equal(t, next, *v.NextDueDate)

	_, err = svc.Create(ctx, worker, vaccinations.CreateInput{AnimalID: "missing", VaccineName: "Aftosa", InjectionDate: date(2024, 2, 1)})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, a := setup(t)

	next := date(2024, 8, 1)
	v, err := svc.Create(ctx, worker, vaccinations.CreateInput{
		AnimalID: a.ID, VaccineName: "Brucelosis", InjectionDate: date(2024, 2, 1), NextDueDate: &next,
	})
	require.NoError(t, err)

	late := date(2024, 9, 1)
	_, err = svc.Update(ctx, worker, v.ID, vaccinations.UpdateInput{InjectionDate: &late})
	assert.ErrorIs(t, err, apperr.ErrValidation, "injection moved past next due")

	got, err := svc.Update(ctx, worker, v.ID, vaccinations.UpdateInput{NextDue: vaccinations.NextDuePatch{Present: true}})
	require.NoError(t, err)
	assert.Nil(t, got.NextDueDate)
}

func TestList_ByVaccineName(t *testing.T) {
	ctx := context.Background()
	svc, a := setup(t)

	for i, name := range []string{"Aftosa", "aftosa", "Carbunclo"} {
		_, err := svc.Create(ctx, worker, vaccinations.CreateInput{
			AnimalID: a.ID, VaccineName: name, InjectionDate: date(2024, 1, 1+i),
		})
		require.NoError(t, err)
	}

	res, err := svc.List(ctx, vaccinations.ListFilter{VaccineName: "AFTOSA"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, date(2024, 1, 2), res.Items[0].InjectionDate, "newest injection first")

	has, err := svc.HasHistory(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestOptions_ClockAndLogger(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	as := animals.NewService(st.Animals())
	a, err := as.Create(ctx, worker, animals.CreateInput{
		Tag: "HEIFER-2", Gender: "female", Breed: "Brangus", DateOfBirth: date(2023, 2, 1),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	at := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	svc := vaccinations.NewService(st.Vaccinations(), as,
		vaccinations.WithClock(func() time.Time { return at }),
		vaccinations.WithLogger(logger.New(logger.Options{Level: logger.Info, Output: &buf})),
	)

	v, err := svc.Create(ctx, worker, vaccinations.CreateInput{AnimalID: a.ID, VaccineName: "Aftosa", InjectionDate: date(2024, 6, 1)})
	require.NoError(t, err)
	assert.Equal(t, at, v.CreatedAt)
	assert.Contains(t, buf.String(), "vaccination recorded")

	at = at.Add(time.Hour)
	dose := "5ml"
	v, err = svc.Update(ctx, worker, v.ID, vaccinations.UpdateInput{Dosage: &dose})
	require.NoError(t, err)
	assert.Equal(t, at, v.UpdatedAt)
	assert.Contains(t, buf.String(), "vaccination updated")
}
