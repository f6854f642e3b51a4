package reports

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/health"
	"cattle-records/internal/domain/reproduction"
	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/domain/vaccinations"
	"cattle-records/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/dashboard", dashboardHandler(svc))
		rr.Get("/analytics", analyticsHandler(svc))
		rr.Get("/monthly", monthlyHandler(svc))
		rr.Get("/breeds", breedsHandler(svc))
		rr.Get("/ages", agesHandler(svc))
		rr.Get("/pregnant", pregnantHandler(svc))
		rr.Get("/vaccinations/overdue", overdueVaccinationsHandler(svc))
		rr.Get("/vaccinations/upcoming", upcomingVaccinationsHandler(svc))
		rr.Get("/follow-ups", followUpsHandler(svc))
		rr.Get("/animals/{animalID}", animalProfileHandler(svc))
	})
}

type DashboardResponse struct {
	AsOf                 string       `json:"as_of"`
	Totals               Totals       `json:"totals"`
	ActiveByGender       GenderCounts `json:"active_by_gender"`
	Pregnant             int          `json:"pregnant"`
	OverdueVaccinations  int          `json:"overdue_vaccinations"`
	UpcomingVaccinations int          `json:"upcoming_vaccinations"`
	RecentHealthIssues   int          `json:"recent_health_issues"`
	BirthsThisYear       int          `json:"births_this_year"`

	RecentAnimals      []animals.AnimalResponse           `json:"recent_animals"`
	RecentHealth       []health.RecordResponse            `json:"recent_health_records"`
	RecentVaccinations []vaccinations.VaccinationResponse `json:"recent_vaccinations"`
	UpcomingBirths     []reproduction.EventResponse       `json:"upcoming_births"`
}

type MonthlyResponse struct {
	Entity Entity `json:"entity"`
	Field  string `json:"field"`
	timewindow.Monthly
}

type AnalyticsResponse struct {
	Year         int                  `json:"year"`
	AsOf         string               `json:"as_of"`
	Births       timewindow.Monthly   `json:"births"`
	Health       timewindow.Monthly   `json:"health_records"`
	Vaccinations timewindow.Monthly   `json:"vaccinations"`
	Breeds       []animals.BreedCount `json:"breeds"`
	Ages         []AgeBucket          `json:"ages"`
}

type PregnantResponse struct {
	reproduction.EventResponse
	DaysUntilDue *int `json:"days_until_due"`
}

// MotherSummary es el resumen de la madre en la ficha.
type MotherSummary struct {
	ID     string         `json:"id"`
	Tag    string         `json:"tag"`
	Name   string         `json:"name"`
	Breed  string         `json:"breed"`
	Status animals.Status `json:"status"`
}

type ProfileResponse struct {
	Animal       animals.AnimalResponse             `json:"animal"`
	Mother       *MotherSummary                     `json:"mother"`
	Offspring    []animals.AnimalResponse           `json:"offspring"`
	Health       []health.RecordResponse            `json:"health_records"`
	Vaccinations []vaccinations.VaccinationResponse `json:"vaccinations"`
	Reproduction []reproduction.EventResponse       `json:"reproduction_events"`
}

// dashboardHandler godoc
// @Summary Tablero
// @Description Totales, alertas y actividad reciente al día as_of.
// @Tags reports
// @Produce json
// @Param as_of query string false "fecha de referencia YYYY-MM-DD (default hoy)"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} httpx.ErrorBody
// @Router /reports/dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf, err := httpx.AsOf(r, svc.now)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		d, err := svc.DashboardStatistics(r.Context(), asOf)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToDashboardResponse(d))
	}
}

// analyticsHandler godoc
// @Summary Analítica anual
// @Description Partos, registros sanitarios y vacunas por mes, más raza y edades de los activos.
// @Tags reports
// @Produce json
// @Param year query int false "año (default el de as_of)"
// @Param as_of query string false "fecha de referencia para edades"
// @Success 200 {object} AnalyticsResponse
// @Failure 400 {object} httpx.ErrorBody
// @Router /reports/analytics [get]
func analyticsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf, err := httpx.AsOf(r, svc.now)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		year, err := httpx.QueryInt(r, "year", asOf.Year())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		a, err := svc.Analytics(r.Context(), year, asOf)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToAnalyticsResponse(a, asOf))
	}
}

// monthlyHandler godoc
// @Summary Serie mensual
// @Description Conteo por mes de un campo de fecha. En reproducción quantity suma terneros.
// @Tags reports
// @Produce json
// @Param entity query string true "animal|health|vaccination|reproduction"
// @Param field query string true "campo de fecha de la entidad"
// @Param year query int false "año (default el actual)"
// @Success 200 {object} MonthlyResponse
// @Failure 400 {object} httpx.ErrorBody
// @Router /reports/monthly [get]
func monthlyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		year, err := httpx.QueryInt(r, "year", svc.now().UTC().Year())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		m, err := svc.MonthlyAggregate(r.Context(), q.Get("entity"), q.Get("field"), year)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, MonthlyResponse{Entity: m.Entity, Field: m.Field, Monthly: m.Monthly})
	}
}

// breedsHandler godoc
// @Summary Distribución por raza
// @Tags reports
// @Produce json
// @Success 200 {array} animals.BreedCount
// @Router /reports/breeds [get]
func breedsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.BreedDistribution(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, nonNil(out))
	}
}

// agesHandler godoc
// @Summary Distribución por edad
// @Tags reports
// @Produce json
// @Param as_of query string false "fecha de referencia"
// @Success 200 {array} AgeBucket
// @Router /reports/ages [get]
func agesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf, err := httpx.AsOf(r, svc.now)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		out, err := svc.AgeDistribution(r.Context(), asOf)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// pregnantHandler godoc
// @Summary Preñadas
// @Description Preñez confirmada sin parto, madre activa. Sin fecha probable al final.
// @Tags reports
// @Produce json
// @Param as_of query string false "fecha de referencia"
// @Success 200 {array} PregnantResponse
// @Router /reports/pregnant [get]
func pregnantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf, err := httpx.AsOf(r, svc.now)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.PregnantAnimals(r.Context(), asOf)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		out := make([]PregnantResponse, 0, len(items))
		for _, it := range items {
			out = append(out, PregnantResponse{EventResponse: reproduction.ToResponse(it.Event), DaysUntilDue: it.DaysUntilDue})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// overdueVaccinationsHandler godoc
// @Summary Vacunas vencidas
// @Tags reports
// @Produce json
// @Param as_of query string false "fecha de referencia"
// @Success 200 {array} vaccinations.VaccinationResponse
// @Router /reports/vaccinations/overdue [get]
func overdueVaccinationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf, err := httpx.AsOf(r, svc.now)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		vs, err := svc.OverdueVaccinations(r.Context(), asOf)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, vaccinationResponses(vs))
	}
}

// upcomingVaccinationsHandler godoc
// @Summary Próximas vacunas
// @Tags reports
// @Produce json
// @Param as_of query string false "fecha de referencia"
// @Param days query int false "horizonte en días (default 30)"
// @Success 200 {array} vaccinations.VaccinationResponse
// @Router /reports/vaccinations/upcoming [get]
func upcomingVaccinationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf, err := httpx.AsOf(r, svc.now)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		days, err := httpx.QueryInt(r, "days", 0)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		vs, err := svc.UpcomingVaccinations(r.Context(), asOf, days)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, vaccinationResponses(vs))
	}
}

// followUpsHandler godoc
// @Summary Próximos seguimientos sanitarios
// @Tags reports
// @Produce json
// @Param as_of query string false "fecha de referencia"
// @Param days query int false "horizonte en días (default 7)"
// @Success 200 {array} health.RecordResponse
// @Router /reports/follow-ups [get]
func followUpsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf, err := httpx.AsOf(r, svc.now)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		days, err := httpx.QueryInt(r, "days", 0)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		recs, err := svc.UpcomingFollowUps(r.Context(), asOf, days)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, healthResponses(recs))
	}
}

// animalProfileHandler godoc
// @Summary Ficha del animal
// @Description Animal, madre, crías, últimos registros sanitarios y vacunas, ciclos reproductivos.
// @Tags reports
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param as_of query string false "fecha de referencia para edades"
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} httpx.ErrorBody
// @Router /reports/animals/{animalID} [get]
func animalProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf, err := httpx.AsOf(r, svc.now)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		p, err := svc.AnimalProfile(r.Context(), chi.URLParam(r, "animalID"), asOf)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToProfileResponse(p))
	}
}

func ToDashboardResponse(d Dashboard) DashboardResponse {
	births := make([]reproduction.EventResponse, 0, len(d.UpcomingBirths))
	for _, ev := range d.UpcomingBirths {
		births = append(births, reproduction.ToResponse(ev))
	}
	return DashboardResponse{
		AsOf:                 httpx.FormatDate(d.AsOf),
		Totals:               d.Totals,
		ActiveByGender:       d.ActiveByGender,
		Pregnant:             d.Pregnant,
		OverdueVaccinations:  d.OverdueVaccinations,
		UpcomingVaccinations: d.UpcomingVaccinations,
		RecentHealthIssues:   d.RecentHealthIssues,
		BirthsThisYear:       d.BirthsThisYear,
		RecentAnimals:        animalResponses(d.RecentAnimals, d.AsOf),
		RecentHealth:         healthResponses(d.RecentHealth),
		RecentVaccinations:   vaccinationResponses(d.RecentVaccinations),
		UpcomingBirths:       births,
	}
}

func ToAnalyticsResponse(a Analytics, asOf time.Time) AnalyticsResponse {
	return AnalyticsResponse{
		Year:         a.Year,
		AsOf:         httpx.FormatDate(asOf),
		Births:       a.Births,
		Health:       a.Health,
		Vaccinations: a.Vaccinations,
		Breeds:       nonNil(a.Breeds),
		Ages:         a.Ages,
	}
}

func ToProfileResponse(p Profile) ProfileResponse {
	out := ProfileResponse{
		Animal:       animals.ToResponse(p.Animal, p.AsOf),
		Offspring:    animalResponses(p.Offspring, p.AsOf),
		Health:       healthResponses(p.Health),
		Vaccinations: vaccinationResponses(p.Vaccinations),
		Reproduction: make([]reproduction.EventResponse, 0, len(p.Reproduction)),
	}
	if p.Mother != nil {
		out.Mother = &MotherSummary{
			ID:     p.Mother.ID,
			Tag:    p.Mother.Tag,
			Name:   p.Mother.Name,
			Breed:  p.Mother.Breed,
			Status: p.Mother.Status,
		}
	}
	for _, ev := range p.Reproduction {
		out.Reproduction = append(out.Reproduction, reproduction.ToResponse(ev))
	}
	return out
}

func animalResponses(as []animals.Animal, asOf time.Time) []animals.AnimalResponse {
	out := make([]animals.AnimalResponse, 0, len(as))
	for _, a := range as {
		out = append(out, animals.ToResponse(a, asOf))
	}
	return out
}

func healthResponses(recs []health.Record) []health.RecordResponse {
	out := make([]health.RecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, health.ToResponse(rec))
	}
	return out
}

func vaccinationResponses(vs []vaccinations.Vaccination) []vaccinations.VaccinationResponse {
	out := make([]vaccinations.VaccinationResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, vaccinations.ToResponse(v))
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
