package vaccinations

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cattle-records/internal/middleware"
	"cattle-records/internal/platform/httpx"
	"cattle-records/internal/platform/paging"
)

func RegisterRoutes(r chi.Router, svc *Service, pol paging.Policy) {
	r.Route("/vaccinations", func(vr chi.Router) {
		vr.Post("/", createVaccinationHandler(svc))
		vr.Get("/", listVaccinationsHandler(svc, pol))
		vr.Get("/{vaccinationID}", getVaccinationHandler(svc))
		vr.Patch("/{vaccinationID}", updateVaccinationHandler(svc))
	})
}

type createVaccinationRequest struct {
	AnimalID       string  `json:"animal_id"`
	VaccineName    string  `json:"vaccine_name"`
	InjectionDate  string  `json:"injection_date"`
	Dosage         string  `json:"dosage"`
	NextDueDate    *string `json:"next_due_date"`
	AdministeredBy string  `json:"administered_by"`
}

type updateVaccinationRequest struct {
	VaccineName    *string         `json:"vaccine_name"`
	InjectionDate  *string         `json:"injection_date"`
	Dosage         *string         `json:"dosage"`
	NextDueDate    json.RawMessage `json:"next_due_date" swaggertype:"string"`
	AdministeredBy *string         `json:"administered_by"`
}

// VaccinationResponse representa una vacunación.
type VaccinationResponse struct {
	ID             string    `json:"id"`
	AnimalID       string    `json:"animal_id"`
	VaccineName    string    `json:"vaccine_name"`
	InjectionDate  string    `json:"injection_date"`
	Dosage         string    `json:"dosage"`
	NextDueDate    *string   `json:"next_due_date,omitempty"`
	AdministeredBy string    `json:"administered_by"`
	RecordedBy     string    `json:"recorded_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// createVaccinationHandler godoc
// @Summary Registrar vacunación
// @Tags vaccinations
// @Accept json
// @Produce json
// @Param payload body createVaccinationRequest true "Vacunación; fechas YYYY-MM-DD"
// @Success 201 {object} VaccinationResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody "animal no encontrado"
// @Router /vaccinations [post]
func createVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createVaccinationRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		inj, err := httpx.ParseDate("injection_date", req.InjectionDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		next, err := httpx.ParseOptionalDate("next_due_date", req.NextDueDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		v, err := svc.Create(r.Context(), middleware.Claims(r), CreateInput{
			AnimalID:       req.AnimalID,
			VaccineName:    req.VaccineName,
			InjectionDate:  inj,
			Dosage:         req.Dosage,
			NextDueDate:    next,
			AdministeredBy: req.AdministeredBy,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, ToResponse(v))
	}
}

// listVaccinationsHandler godoc
// @Summary Listar vacunaciones
// @Description Más recientes primero (por fecha de aplicación).
// @Tags vaccinations
// @Produce json
// @Param animal_id query string false "ID del animal"
// @Param vaccine query string false "nombre de vacuna"
// @Param from query string false "injection_date >= from"
// @Param to query string false "injection_date <= to"
// @Param page query int false "página"
// @Param limit query int false "tamaño de página"
// @Success 200 {object} paging.Result[VaccinationResponse]
// @Router /vaccinations [get]
func listVaccinationsHandler(svc *Service, pol paging.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		from, err := httpx.ParseOptionalDate("from", strPtr(q.Get("from")))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		to, err := httpx.ParseOptionalDate("to", strPtr(q.Get("to")))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		res, err := svc.List(r.Context(), ListFilter{
			AnimalID:    q.Get("animal_id"),
			VaccineName: q.Get("vaccine"),
			From:        from,
			To:          to,
			Page:        pol.FromRequest(r),
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		out := make([]VaccinationResponse, 0, len(res.Items))
		for _, v := range res.Items {
			out = append(out, ToResponse(v))
		}
		httpx.WriteJSON(w, http.StatusOK, paging.Result[VaccinationResponse]{
			Items: out, Page: res.Page, Limit: res.Limit, Total: res.Total, TotalPages: res.TotalPages,
		})
	}
}

// getVaccinationHandler godoc
// @Summary Ver vacunación
// @Tags vaccinations
// @Produce json
// @Param vaccinationID path string true "ID de la vacunación"
// @Success 200 {object} VaccinationResponse
// @Failure 404 {object} httpx.ErrorBody
// @Router /vaccinations/{vaccinationID} [get]
func getVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "vaccinationID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(v))
	}
}

// updateVaccinationHandler godoc
// @Summary Editar vacunación
// @Description PATCH parcial; next_due_date null la limpia.
// @Tags vaccinations
// @Accept json
// @Produce json
// @Param vaccinationID path string true "ID de la vacunación"
// @Param payload body updateVaccinationRequest true "Campos a cambiar"
// @Success 200 {object} VaccinationResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Router /vaccinations/{vaccinationID} [patch]
func updateVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateVaccinationRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		in := UpdateInput{
			VaccineName:    req.VaccineName,
			Dosage:         req.Dosage,
			AdministeredBy: req.AdministeredBy,
		}
		if req.InjectionDate != nil {
			inj, err := httpx.ParseDate("injection_date", *req.InjectionDate)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			in.InjectionDate = &inj
		}
		present, next, err := httpx.ParseNullableDate("next_due_date", req.NextDueDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		in.NextDue = NextDuePatch{Present: present, Value: next}

		v, err := svc.Update(r.Context(), middleware.Claims(r), chi.URLParam(r, "vaccinationID"), in)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(v))
	}
}

func ToResponse(v Vaccination) VaccinationResponse {
	return VaccinationResponse{
		ID:             v.ID,
		AnimalID:       v.AnimalID,
		VaccineName:    v.VaccineName,
		InjectionDate:  httpx.FormatDate(v.InjectionDate),
		Dosage:         v.Dosage,
		NextDueDate:    httpx.FormatOptionalDate(v.NextDueDate),
		AdministeredBy: v.AdministeredBy,
		RecordedBy:     v.RecordedBy,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func strPtr(s string) *string { return &s }
