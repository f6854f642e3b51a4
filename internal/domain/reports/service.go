// Package reports arma las consultas de solo lectura del tablero y de analítica.
// Las ventanas de fechas vienen de timewindow; acá solo se combinan fuentes.
package reports

import (
	"context"
	"slices"
	"strings"
	"time"

	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/health"
	"cattle-records/internal/domain/reproduction"
	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/domain/vaccinations"
	"cattle-records/internal/platform/apperr"
)

// AnimalSource son las lecturas de animales que usan los reportes.
type AnimalSource interface {
	animals.Stats
	GetByID(ctx context.Context, id string) (animals.Animal, error)
	ListByMother(ctx context.Context, motherID string) ([]animals.Animal, error)
}

type Sources struct {
	Animals      AnimalSource
	Health       health.Stats
	Vaccinations vaccinations.Stats
	Reproduction reproduction.Stats
}

// Windows en días. Cero usa el default.
type Windows struct {
	UpcomingVaccinationDays int
	DashboardUpcomingDays   int
	FollowUpDays            int
	RecentHealthDays        int
}

func DefaultWindows() Windows {
	return Windows{
		UpcomingVaccinationDays: 30,
		DashboardUpcomingDays:   7,
		FollowUpDays:            7,
		RecentHealthDays:        30,
	}
}

const (
	dashboardRecent = 5
	profileLatest   = 10
)

type Service struct {
	src Sources
	win Windows
	now func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(src Sources, win Windows, opts ...Option) *Service {
	def := DefaultWindows()
	if win.UpcomingVaccinationDays <= 0 {
		win.UpcomingVaccinationDays = def.UpcomingVaccinationDays
	}
	if win.DashboardUpcomingDays <= 0 {
		win.DashboardUpcomingDays = def.DashboardUpcomingDays
	}
	if win.FollowUpDays <= 0 {
		win.FollowUpDays = def.FollowUpDays
	}
	if win.RecentHealthDays <= 0 {
		win.RecentHealthDays = def.RecentHealthDays
	}
	s := &Service{src: src, win: win, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Windows() Windows { return s.win }

// OverdueVaccinations: NextDueDate < asOf, animal activo, por vencimiento ascendente.
func (s *Service) OverdueVaccinations(ctx context.Context, asOf time.Time) ([]vaccinations.Vaccination, error) {
	return s.src.Vaccinations.ListDue(ctx, vaccinations.DueFilter{
		Window:     timewindow.Before(asOf),
		ActiveOnly: true,
	})
}

// UpcomingVaccinations: NextDueDate en [asOf, asOf+days], animal activo. days <= 0 usa la ventana configurada.
func (s *Service) UpcomingVaccinations(ctx context.Context, asOf time.Time, days int) ([]vaccinations.Vaccination, error) {
	if days <= 0 {
		days = s.win.UpcomingVaccinationDays
	}
	return s.src.Vaccinations.ListDue(ctx, vaccinations.DueFilter{
		Window:     timewindow.Upcoming(asOf, days),
		ActiveOnly: true,
	})
}

type PregnantItem struct {
	Event reproduction.Event
	// DaysUntilDue es nil sin fecha probable; negativo si ya pasó.
	DaysUntilDue *int
}

// PregnantAnimals: preñez confirmada, sin parto, madre activa. Los que no tienen fecha probable van al final.
func (s *Service) PregnantAnimals(ctx context.Context, asOf time.Time) ([]PregnantItem, error) {
	evs, err := s.src.Reproduction.ListOpen(ctx, reproduction.OpenFilter{
		PregnantOnly: true,
		ActiveOnly:   true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]PregnantItem, 0, len(evs))
	for _, ev := range evs {
		it := PregnantItem{Event: ev}
		if ev.ExpectedDueDate != nil {
			d := timewindow.DaysBetween(asOf, *ev.ExpectedDueDate)
			it.DaysUntilDue = &d
		}
		out = append(out, it)
	}
	return out, nil
}

// UpcomingFollowUps: FollowUpDate en [asOf, asOf+days], ascendente.
func (s *Service) UpcomingFollowUps(ctx context.Context, asOf time.Time, days int) ([]health.Record, error) {
	if days <= 0 {
		days = s.win.FollowUpDays
	}
	return s.src.Health.ListFollowUps(ctx, timewindow.Upcoming(asOf, days))
}

type Totals struct {
	All      int `json:"all"`
	Active   int `json:"active"`
	Sold     int `json:"sold"`
	Deceased int `json:"deceased"`
}

type GenderCounts struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

type Dashboard struct {
	AsOf                 time.Time
	Totals               Totals
	ActiveByGender       GenderCounts
	Pregnant             int
	OverdueVaccinations  int
	UpcomingVaccinations int
	RecentHealthIssues   int
	BirthsThisYear       int

	RecentAnimals      []animals.Animal
	RecentHealth       []health.Record
	RecentVaccinations []vaccinations.Vaccination
	UpcomingBirths     []reproduction.Event
}

// DashboardStatistics es determinístico para el mismo contenido del store y el mismo asOf.
func (s *Service) DashboardStatistics(ctx context.Context, asOf time.Time) (Dashboard, error) {
	d := Dashboard{AsOf: asOf}

	byStatus, err := s.src.Animals.CountByStatus(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	d.Totals = Totals{
		Active:   byStatus[animals.StatusActive],
		Sold:     byStatus[animals.StatusSold],
		Deceased: byStatus[animals.StatusDeceased],
	}
	for _, n := range byStatus {
		d.Totals.All += n
	}

	byGender, err := s.src.Animals.CountActiveByGender(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	d.ActiveByGender = GenderCounts{Male: byGender[animals.GenderMale], Female: byGender[animals.GenderFemale]}

	if d.Pregnant, err = s.src.Reproduction.CountOpen(ctx, reproduction.OpenFilter{PregnantOnly: true, ActiveOnly: true}); err != nil {
		return Dashboard{}, err
	}
	if d.OverdueVaccinations, err = s.src.Vaccinations.CountDue(ctx, vaccinations.DueFilter{
		Window: timewindow.Before(asOf), ActiveOnly: true,
	}); err != nil {
		return Dashboard{}, err
	}
	if d.UpcomingVaccinations, err = s.src.Vaccinations.CountDue(ctx, vaccinations.DueFilter{
		Window: timewindow.Upcoming(asOf, s.win.DashboardUpcomingDays), ActiveOnly: true,
	}); err != nil {
		return Dashboard{}, err
	}
	if d.RecentHealthIssues, err = s.src.Health.CountObserved(ctx, timewindow.Trailing(asOf, s.win.RecentHealthDays)); err != nil {
		return Dashboard{}, err
	}
	births, err := s.src.Reproduction.DateSamples(ctx, reproduction.FieldBirthDate, timewindow.Year(asOf.UTC().Year()))
	if err != nil {
		return Dashboard{}, err
	}
	d.BirthsThisYear = len(births)

	if d.RecentAnimals, err = s.src.Animals.Recent(ctx, dashboardRecent); err != nil {
		return Dashboard{}, err
	}
	if d.RecentHealth, err = s.src.Health.Recent(ctx, dashboardRecent); err != nil {
		return Dashboard{}, err
	}
	if d.RecentVaccinations, err = s.src.Vaccinations.Recent(ctx, dashboardRecent); err != nil {
		return Dashboard{}, err
	}
	start := timewindow.Day(asOf)
	if d.UpcomingBirths, err = s.src.Reproduction.ListOpen(ctx, reproduction.OpenFilter{
		Due:        timewindow.Range{Start: &start},
		ActiveOnly: true,
		Limit:      dashboardRecent,
	}); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

type Entity string

const (
	EntityAnimal       Entity = "animal"
	EntityHealth       Entity = "health"
	EntityVaccination  Entity = "vaccination"
	EntityReproduction Entity = "reproduction"
)

// MonthlyFields es la lista blanca entidad => campos de fecha agregables.
var MonthlyFields = map[Entity][]string{
	EntityAnimal:       fieldNames(animals.DateFields),
	EntityHealth:       fieldNames(health.DateFields),
	EntityVaccination:  fieldNames(vaccinations.DateFields),
	EntityReproduction: fieldNames(reproduction.DateFields),
}

func fieldNames[F ~string](fs []F) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, string(f))
	}
	return out
}

type Monthly struct {
	Entity Entity
	Field  string
	timewindow.Monthly
}

// MonthlyAggregate cuenta por mes (siempre 12 buckets). En reproducción Total suma terneros; en el resto suma 1 por registro.
func (s *Service) MonthlyAggregate(ctx context.Context, entity, field string, year int) (Monthly, error) {
	ent := Entity(strings.ToLower(strings.TrimSpace(entity)))
	field = strings.ToLower(strings.TrimSpace(field))

	allowed, ok := MonthlyFields[ent]
	if !ok {
		return Monthly{}, apperr.Validationf("entity", "unknown entity %q", entity)
	}
	if !slices.Contains(allowed, field) {
		return Monthly{}, apperr.Validationf("field", "field %q is not a date of %s (want one of %s)", field, ent, strings.Join(allowed, ", "))
	}
	if year < 1900 || year > 9999 {
		return Monthly{}, apperr.Validationf("year", "out of range: %d", year)
	}

	yr := timewindow.Year(year)
	var (
		samples []timewindow.Sample
		err     error
	)
	switch ent {
	case EntityAnimal:
		samples, err = s.src.Animals.DateSamples(ctx, animals.DateField(field), yr)
	case EntityHealth:
		samples, err = s.src.Health.DateSamples(ctx, health.DateField(field), yr)
	case EntityVaccination:
		samples, err = s.src.Vaccinations.DateSamples(ctx, vaccinations.DateField(field), yr)
	case EntityReproduction:
		samples, err = s.src.Reproduction.DateSamples(ctx, reproduction.DateField(field), yr)
	}
	if err != nil {
		return Monthly{}, err
	}

	return Monthly{Entity: ent, Field: field, Monthly: timewindow.GroupByMonth(samples, year)}, nil
}

// BreedDistribution: animales activos por raza, count desc y raza asc.
func (s *Service) BreedDistribution(ctx context.Context) ([]animals.BreedCount, error) {
	return s.src.Animals.ActiveBreedCounts(ctx)
}

type AgeBucket struct {
	Band  timewindow.Band `json:"band"`
	Count int             `json:"count"`
}

// AgeDistribution devuelve siempre las cuatro bandas, en orden de edad.
func (s *Service) AgeDistribution(ctx context.Context, asOf time.Time) ([]AgeBucket, error) {
	active, err := s.src.Animals.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[timewindow.Band]int{}
	for _, a := range active {
		counts[timewindow.AgeBand(a.AgeMonths(asOf))]++
	}
	out := make([]AgeBucket, 0, len(timewindow.Bands))
	for _, b := range timewindow.Bands {
		out = append(out, AgeBucket{Band: b, Count: counts[b]})
	}
	return out, nil
}

type Analytics struct {
	Year         int
	Births       timewindow.Monthly
	Health       timewindow.Monthly
	Vaccinations timewindow.Monthly
	Breeds       []animals.BreedCount
	Ages         []AgeBucket
}

// Analytics junta las series del año con las distribuciones actuales.
func (s *Service) Analytics(ctx context.Context, year int, asOf time.Time) (Analytics, error) {
	out := Analytics{Year: year}

	for _, q := range []struct {
		entity Entity
		field  string
		dst    *timewindow.Monthly
	}{
		{EntityReproduction, string(reproduction.FieldBirthDate), &out.Births},
		{EntityHealth, string(health.FieldObservationDate), &out.Health},
		{EntityVaccination, string(vaccinations.FieldInjectionDate), &out.Vaccinations},
	} {
		m, err := s.MonthlyAggregate(ctx, string(q.entity), q.field, year)
		if err != nil {
			return Analytics{}, err
		}
		*q.dst = m.Monthly
	}

	var err error
	if out.Breeds, err = s.BreedDistribution(ctx); err != nil {
		return Analytics{}, err
	}
	if out.Ages, err = s.AgeDistribution(ctx, asOf); err != nil {
		return Analytics{}, err
	}
	return out, nil
}

type Profile struct {
	AsOf         time.Time
	Animal       animals.Animal
	Mother       *animals.Animal
	Offspring    []animals.Animal
	Health       []health.Record
	Vaccinations []vaccinations.Vaccination
	Reproduction []reproduction.Event
}

// AnimalProfile es la ficha completa: madre, crías, últimos 10 registros sanitarios y de vacunas, ciclos como madre.
func (s *Service) AnimalProfile(ctx context.Context, id string, asOf time.Time) (Profile, error) {
	a, err := s.src.Animals.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Profile{}, apperr.Wrap(err, "animal", id)
	}
	p := Profile{AsOf: asOf, Animal: a}

	if a.MotherID != nil {
		m, err := s.src.Animals.GetByID(ctx, *a.MotherID)
		switch {
		case err == nil:
			p.Mother = &m
		case apperr.Kind(err) != "not_found":
			return Profile{}, err
		}
	}
	if p.Offspring, err = s.src.Animals.ListByMother(ctx, a.ID); err != nil {
		return Profile{}, err
	}
	if p.Health, err = s.src.Health.LatestByAnimal(ctx, a.ID, profileLatest); err != nil {
		return Profile{}, err
	}
	if p.Vaccinations, err = s.src.Vaccinations.LatestByAnimal(ctx, a.ID, profileLatest); err != nil {
		return Profile{}, err
	}
	if p.Reproduction, err = s.src.Reproduction.ListByMother(ctx, a.ID); err != nil {
		return Profile{}, err
	}
	return p, nil
}
