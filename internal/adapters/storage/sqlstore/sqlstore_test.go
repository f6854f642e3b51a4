package sqlstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cattle-records/internal/adapters/storage/sqlstore"
	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/health"
	"cattle-records/internal/domain/reports"
	"cattle-records/internal/domain/reproduction"
	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/domain/vaccinations"
	"cattle-records/internal/platform/apperr"
	"cattle-records/internal/ports/auth"
)

var (
	worker = auth.Claims{UserID: "u-worker", Role: auth.RoleWorker}
	asOf   = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	clock  = func() time.Time { return asOf.Add(8 * time.Hour) }
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func openSQLite(t *testing.T) *sqlstore.Store {
	t.Helper()
	ctx := context.Background()
	st, err := sqlstore.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "cattle.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Migrate(ctx))
	// dos veces no rompe
	require.NoError(t, st.Migrate(ctx))
	return st
}

type services struct {
	animals      *animals.Service
	health       *health.Service
	vaccinations *vaccinations.Service
	reproduction *reproduction.Service
	reports      *reports.Service
}

func wire(st *sqlstore.Store) services {
	as := animals.NewService(st.Animals(), animals.WithClock(clock))
	hs := health.NewService(st.Health(), as, health.WithClock(clock))
	vs := vaccinations.NewService(st.Vaccinations(), as, vaccinations.WithClock(clock))
	rp := reproduction.NewService(st.Reproduction(), as, reproduction.WithClock(clock))
	as.AddHistory(hs, vs, rp)
	as.AddMotherHistory(rp)
	rs := reports.NewService(reports.Sources{
		Animals:      st.Animals(),
		Health:       st.Health(),
		Vaccinations: st.Vaccinations(),
		Reproduction: st.Reproduction(),
	}, reports.DefaultWindows(), reports.WithClock(clock))
	return services{animals: as, health: hs, vaccinations: vs, reproduction: rp, reports: rs}
}

func (s services) cow(t *testing.T, tag string) animals.Animal {
	t.Helper()
	a, err := s.animals.Create(context.Background(), worker, animals.CreateInput{
		Tag:         tag,
		Gender:      "Female",
		Breed:       "Angus",
		DateOfBirth: date(2020, 3, 10),
	})
	require.NoError(t, err)
	return a
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := sqlstore.Open(context.Background(), "oracle", "x")
	require.Error(t, err)
}

func TestAnimals_RoundTripAndDuplicateTag(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)
	svc := wire(st)

	cow := svc.cow(t, "cow-1")
	assert.Equal(t, "COW-1", cow.Tag)

	got, err := st.Animals().GetByTag(ctx, "COW-1")
	require.NoError(t, err)
	assert.Equal(t, cow.ID, got.ID)
	assert.True(t, got.DateOfBirth.Equal(date(2020, 3, 10)))
	assert.Nil(t, got.MotherID)

	_, err = svc.animals.Create(ctx, worker, animals.CreateInput{
		Tag:         " Cow-1 ",
		Gender:      "Female",
		Breed:       "Angus",
		DateOfBirth: date(2021, 1, 1),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrDuplicateKey), "got %v", err)

	_, err = st.Animals().GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestAnimals_StatusIsCompareAndSet(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)
	svc := wire(st)
	repo := st.Animals()

	cow := svc.cow(t, "cow-1")
	stale := cow

	require.NoError(t, repo.ChangeStatus(ctx, cow.ID, animals.StatusActive, animals.StatusSold, asOf))

	// una edición con la copia vieja no pisa el estado
	stale.Name = "Bessie"
	require.NoError(t, repo.Update(ctx, stale))
	got, err := repo.GetByID(ctx, cow.ID)
	require.NoError(t, err)
	assert.Equal(t, animals.StatusSold, got.Status)
	assert.Equal(t, "Bessie", got.Name)

	err = repo.ChangeStatus(ctx, cow.ID, animals.StatusActive, animals.StatusDeceased, asOf)
	assert.True(t, errors.Is(err, apperr.ErrInvalidState), "got %v", err)

	err = repo.ChangeStatus(ctx, "missing", animals.StatusActive, animals.StatusSold, asOf)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}

func TestAnimals_GenderLockedForMothers(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)
	svc := wire(st)

	cow := svc.cow(t, "cow-1")
	_, err := svc.reproduction.Create(ctx, worker, reproduction.CreateInput{MotherID: cow.ID, MatingDate: datePtr(2024, 1, 5)})
	require.NoError(t, err)

	male := "male"
	_, err = svc.animals.Update(ctx, worker, cow.ID, animals.UpdateInput{Gender: &male})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState), "got %v", err)
}

func TestAnimals_ListFiltersAndCounts(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)
	svc := wire(st)

	svc.cow(t, "cow-1")
	svc.cow(t, "cow-2")
	_, err := svc.animals.Create(ctx, worker, animals.CreateInput{
		Tag: "bull-1", Name: "Toro", Gender: "Male", Breed: "Hereford", DateOfBirth: date(2019, 5, 1),
	})
	require.NoError(t, err)

	res, err := svc.animals.List(ctx, animals.ListFilter{Gender: animals.GenderFemale})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	res, err = svc.animals.List(ctx, animals.ListFilter{Query: "tor"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "BULL-1", res.Items[0].Tag)

	byGender, err := st.Animals().CountActiveByGender(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, byGender[animals.GenderFemale])
	assert.Equal(t, 1, byGender[animals.GenderMale])

	breeds, err := st.Animals().ActiveBreedCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []animals.BreedCount{{Breed: "Angus", Count: 2}, {Breed: "Hereford", Count: 1}}, breeds)
}

func TestRecordBirth_CommitsCalvesAndClosesEvent(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)
	svc := wire(st)
	cow := svc.cow(t, "cow-1")

	ev, err := svc.reproduction.Create(ctx, worker, reproduction.CreateInput{
		MotherID:               cow.ID,
		MatingDate:             datePtr(2023, 9, 1),
		PregnancyConfirmedDate: datePtr(2023, 11, 1),
		ExpectedDueDate:        datePtr(2024, 6, 10),
	})
	require.NoError(t, err)

	closed, err := svc.reproduction.RecordBirth(ctx, worker, ev.ID, reproduction.BirthInput{
		BirthDate:      date(2024, 6, 8),
		NumberOfCalves: 2,
		Calves: []reproduction.CalfEntry{
			{Gender: "Male", Tag: "calf-1"},
			{Gender: "Female", Tag: "calf-2"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, reproduction.StateClosed, closed.State())

	stored, err := svc.reproduction.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, stored.CalfDetails, 2)
	assert.Equal(t, "CALF-1", stored.CalfDetails[0].Tag)
	assert.Equal(t, "CALF-2", stored.CalfDetails[1].Tag)

	kids, err := svc.animals.Offspring(ctx, cow.ID)
	require.NoError(t, err)
	assert.Len(t, kids, 2)

	_, err = svc.reproduction.RecordBirth(ctx, worker, ev.ID, reproduction.BirthInput{
		BirthDate: date(2024, 6, 9), NumberOfCalves: 1,
		Calves: []reproduction.CalfEntry{{Gender: "Male", Tag: "calf-3"}},
	})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState), "got %v", err)

	_, err = svc.reproduction.Update(ctx, worker, ev.ID, reproduction.UpdateInput{})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState), "got %v", err)
}

func TestRecordBirth_DuplicateTagRollsBack(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)
	svc := wire(st)
	cow := svc.cow(t, "cow-1")
	svc.cow(t, "taken")

	ev, err := svc.reproduction.Create(ctx, worker, reproduction.CreateInput{MotherID: cow.ID})
	require.NoError(t, err)

	_, err = svc.reproduction.RecordBirth(ctx, worker, ev.ID, reproduction.BirthInput{
		BirthDate:      date(2024, 6, 1),
		NumberOfCalves: 2,
		Calves: []reproduction.CalfEntry{
			{Gender: "Male", Tag: "fresh"},
			{Gender: "Female", Tag: "taken"},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrDuplicateKey), "got %v", err)

	_, err = st.Animals().GetByTag(ctx, "FRESH")
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "calf must not survive the rollback")

	stored, err := svc.reproduction.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.BirthDate)
	assert.Empty(t, stored.CalfDetails)
}

func TestReproduction_OpenOrderingAndStates(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)
	svc := wire(st)
	a := svc.cow(t, "cow-a")
	b := svc.cow(t, "cow-b")
	c := svc.cow(t, "cow-c")

	_, err := svc.reproduction.Create(ctx, worker, reproduction.CreateInput{
		MotherID: a.ID, PregnancyConfirmedDate: datePtr(2024, 2, 1),
	})
	require.NoError(t, err)
	late, err := svc.reproduction.Create(ctx, worker, reproduction.CreateInput{
		MotherID: b.ID, PregnancyConfirmedDate: datePtr(2024, 2, 1), ExpectedDueDate: datePtr(2024, 9, 1),
	})
	require.NoError(t, err)
	soon, err := svc.reproduction.Create(ctx, worker, reproduction.CreateInput{
		MotherID: c.ID, PregnancyConfirmedDate: datePtr(2024, 2, 1), ExpectedDueDate: datePtr(2024, 6, 20),
	})
	require.NoError(t, err)

	open, err := st.Reproduction().ListOpen(ctx, reproduction.OpenFilter{PregnantOnly: true, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, open, 3)
	assert.Equal(t, soon.ID, open[0].ID)
	assert.Equal(t, late.ID, open[1].ID)
	assert.Nil(t, open[2].ExpectedDueDate, "sin fecha probable al final")

	n, err := st.Reproduction().CountOpen(ctx, reproduction.OpenFilter{Due: timewindow.Upcoming(asOf, 7)})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	res, err := svc.reproduction.List(ctx, reproduction.ListFilter{State: reproduction.StatePregnant})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	res, err = svc.reproduction.List(ctx, reproduction.ListFilter{State: reproduction.StateClosed})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
}

func TestReports_OverSQLite(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)
	svc := wire(st)
	cow := svc.cow(t, "cow-1")

	for _, in := range []vaccinations.CreateInput{
		{AnimalID: cow.ID, VaccineName: "Aftosa", InjectionDate: date(2024, 1, 10), NextDueDate: datePtr(2024, 6, 14)},
		{AnimalID: cow.ID, VaccineName: "Brucelosis", InjectionDate: date(2024, 2, 10), NextDueDate: datePtr(2024, 6, 15)},
		{AnimalID: cow.ID, VaccineName: "Carbunclo", InjectionDate: date(2024, 2, 11)},
	} {
		_, err := svc.vaccinations.Create(ctx, worker, in)
		require.NoError(t, err)
	}
	_, err := svc.health.Create(ctx, worker, health.CreateInput{
		AnimalID:        cow.ID,
		ObservationDate: date(2024, 6, 1),
		Symptoms:        "tos",
		FollowUpDate:    datePtr(2024, 6, 18),
	})
	require.NoError(t, err)

	overdue, err := svc.reports.OverdueVaccinations(ctx, asOf)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "Aftosa", overdue[0].VaccineName)

	upcoming, err := svc.reports.UpcomingVaccinations(ctx, asOf, 30)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Brucelosis", upcoming[0].VaccineName)

	follow, err := svc.reports.UpcomingFollowUps(ctx, asOf, 7)
	require.NoError(t, err)
	assert.Len(t, follow, 1)

	m, err := svc.reports.MonthlyAggregate(ctx, "vaccination", "injection_date", 2024)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Buckets[0].Count)
	assert.Equal(t, 2, m.Buckets[1].Count)
	assert.Equal(t, 3, m.Total)

	d, err := svc.reports.DashboardStatistics(ctx, asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Totals.Active)
	assert.Equal(t, 1, d.OverdueVaccinations)
	assert.Equal(t, 1, d.RecentHealthIssues)

	// con historia no se puede dar de baja
	_, err = svc.animals.Retire(ctx, auth.Claims{UserID: "u-admin", Role: auth.RoleAdmin}, cow.ID)
	assert.True(t, errors.Is(err, apperr.ErrInvalidState), "got %v", err)
	got, err := svc.animals.Get(ctx, cow.ID)
	require.NoError(t, err)
	assert.Equal(t, animals.StatusActive, got.Status)
}
