package health_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cattle-records/internal/adapters/storage/memory"
	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/health"
	"cattle-records/internal/platform/apperr"
	"cattle-records/internal/platform/logger"
	"cattle-records/internal/ports/auth"
)

var worker = auth.Claims{UserID: "u-worker", Role: auth.RoleWorker}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setup(t *testing.T) (*health.Service, animals.Animal) {
	t.Helper()
	st := memory.NewStore()
	as := animals.NewService(st.Animals())
	a, err := as.Create(context.Background(), worker, animals.CreateInput{
		Tag: "COW-1", Gender: "female", Breed: "Angus", DateOfBirth: date(2020, 1, 1),
	})
	require.NoError(t, err)
	return health.NewService(st.Health(), as), a
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, cow := setup(t)

	follow := date(2024, 5, 10)
	rec, err := svc.Create(ctx, worker, health.CreateInput{
		AnimalID:        cow.ID,
		ObservationDate: date(2024, 5, 1),
		Symptoms:        " limping ",
		Diagnosis:       "foot rot",
		FollowUpDate:    &follow,
	})
	require.NoError(t, err)
	assert.Equal(t, "limping", rec.Symptoms)
	assert.Equal(t, "u-worker", rec.RecordedBy)

	_, err = svc.Create(ctx, worker, health.CreateInput{AnimalID: "missing", ObservationDate: date(2024, 5, 1), Symptoms: "x"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Create(ctx, worker, health.CreateInput{AnimalID: cow.ID, ObservationDate: date(2024, 5, 1)})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(ctx, auth.Claims{}, health.CreateInput{AnimalID: cow.ID})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestUpdate_ClearsFollowUp(t *testing.T) {
	ctx := context.Background()
	svc, cow := setup(t)

	follow := date(2024, 5, 10)
	rec, err := svc.Create(ctx, worker, health.CreateInput{
		AnimalID: cow.ID, ObservationDate: date(2024, 5, 1), Symptoms: "fever", FollowUpDate: &follow,
	})
	require.NoError(t, err)

	treatment := "antibiotics"
	got, err := svc.Update(ctx, worker, rec.ID, health.UpdateInput{
		Treatment: &treatment,
		FollowUp:  health.FollowUpPatch{Present: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "antibiotics", got.Treatment)
	assert.Nil(t, got.FollowUpDate)
	assert.Equal(t, "fever", got.Symptoms)

	empty := "  "
	_, err = svc.Update(ctx, worker, rec.ID, health.UpdateInput{Symptoms: &empty})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Update(ctx, worker, "missing", health.UpdateInput{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestList_NewestObservationFirst(t *testing.T) {
	ctx := context.Background()
	svc, cow := setup(t)

	for _, d := range []time.Time{date(2024, 1, 10), date(2024, 3, 5), date(2024, 2, 20)} {
		_, err := svc.Create(ctx, worker, health.CreateInput{AnimalID: cow.ID, ObservationDate: d, Symptoms: "check"})
		require.NoError(t, err)
	}

	res, err := svc.List(ctx, health.ListFilter{AnimalID: cow.ID})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, date(2024, 3, 5), res.Items[0].ObservationDate)
	assert.Equal(t, date(2024, 1, 10), res.Items[2].ObservationDate)

	from, to := date(2024, 2, 1), date(2024, 2, 28)
	res, err = svc.List(ctx, health.ListFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	_, err = svc.List(ctx, health.ListFilter{From: &to, To: &from})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	has, err := svc.HasHistory(ctx, cow.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestOptions_ClockAndLogger(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	as := animals.NewService(st.Animals())
	cow, err := as.Create(ctx, worker, animals.CreateInput{
		Tag: "COW-2", Gender: "female", Breed: "Angus", DateOfBirth: date(2020, 1, 1),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	at := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	svc := health.NewService(st.Health(), as,
		health.WithClock(func() time.Time { return at }),
		health.WithLogger(logger.New(logger.Options{Level: logger.Info, Output: &buf})),
	)

	rec, err := svc.Create(ctx, worker, health.CreateInput{AnimalID: cow.ID, ObservationDate: date(2024, 6, 14), Symptoms: "fever"})
	require.NoError(t, err)
	assert.Equal(t, at, rec.CreatedAt)
	assert.Equal(t, at, rec.UpdatedAt)
	assert.Contains(t, buf.String(), "health record created")
	assert.Contains(t, buf.String(), rec.ID)
}
