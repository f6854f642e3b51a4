package health

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
	r.Route("/health-records", func(hr chi.Router) {
		hr.Post("/", createRecordHandler(svc))
		hr.Get("/", listRecordsHandler(svc, pol))
		hr.Get("/{recordID}", getRecordHandler(svc))
		hr.Patch("/{recordID}", updateRecordHandler(svc))
	})
}

type createRecordRequest struct {
	AnimalID        string  `json:"animal_id"`
	ObservationDate string  `json:"observation_date"`
	Symptoms        string  `json:"symptoms"`
	Diagnosis       string  `json:"diagnosis"`
	Treatment       string  `json:"treatment"`
	VetName         string  `json:"vet_name"`
	FollowUpDate    *string `json:"follow_up_date"`
}

type updateRecordRequest struct {
	ObservationDate *string         `json:"observation_date"`
	Symptoms        *string         `json:"symptoms"`
	Diagnosis       *string         `json:"diagnosis"`
	Treatment       *string         `json:"treatment"`
	VetName         *string         `json:"vet_name"`
	FollowUpDate    json.RawMessage `json:"follow_up_date" swaggertype:"string"`
}

// RecordResponse representa una observación sanitaria.
type RecordResponse struct {
	ID              string    `json:"id"`
	AnimalID        string    `json:"animal_id"`
	ObservationDate string    `json:"observation_date"`
	Symptoms        string    `json:"symptoms"`
	Diagnosis       string    `json:"diagnosis"`
	Treatment       string    `json:"treatment"`
	VetName         string    `json:"vet_name"`
	FollowUpDate    *string   `json:"follow_up_date,omitempty"`
	RecordedBy      string    `json:"recorded_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// createRecordHandler godoc
// @Summary Registrar observación sanitaria
// @Tags health
// @Accept json
// @Produce json
// @Param payload body createRecordRequest true "Observación; fechas YYYY-MM-DD"
// @Success 201 {object} RecordResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody "animal no encontrado"
// @Router /health-records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRecordRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		obs, err := httpx.ParseDate("observation_date", req.ObservationDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		fu, err := httpx.ParseOptionalDate("follow_up_date", req.FollowUpDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		rec, err := svc.Create(r.Context(), middleware.Claims(r), CreateInput{
			AnimalID:        req.AnimalID,
			ObservationDate: obs,
			Symptoms:        req.Symptoms,
			Diagnosis:       req.Diagnosis,
			Treatment:       req.Treatment,
			VetName:         req.VetName,
			FollowUpDate:    fu,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, ToResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Listar observaciones sanitarias
// @Description Más recientes primero (por fecha de observación).
// @Tags health
// @Produce json
// @Param animal_id query string false "ID del animal"
// @Param from query string false "observation_date >= from"
// @Param to query string false "observation_date <= to"
// @Param page query int false "página"
// @Param limit query int false "tamaño de página"
// @Success 200 {object} paging.Result[RecordResponse]
// @Router /health-records [get]
func listRecordsHandler(svc *Service, pol paging.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		from, err := httpx.ParseOptionalDate("from", ptr(q.Get("from")))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		to, err := httpx.ParseOptionalDate("to", ptr(q.Get("to")))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		res, err := svc.List(r.Context(), ListFilter{
			AnimalID: q.Get("animal_id"),
			From:     from,
			To:       to,
			Page:     pol.FromRequest(r),
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		out := make([]RecordResponse, 0, len(res.Items))
		for _, rec := range res.Items {
			out = append(out, ToResponse(rec))
		}
		httpx.WriteJSON(w, http.StatusOK, paging.Result[RecordResponse]{
			Items: out, Page: res.Page, Limit: res.Limit, Total: res.Total, TotalPages: res.TotalPages,
		})
	}
}

// getRecordHandler godoc
// @Summary Ver observación sanitaria
// @Tags health
// @Produce json
// @Param recordID path string true "ID de la observación"
// @Success 200 {object} RecordResponse
// @Failure 404 {object} httpx.ErrorBody
// @Router /health-records/{recordID} [get]
func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(rec))
	}
}

// updateRecordHandler godoc
// @Summary Editar observación sanitaria
// @Description PATCH parcial; follow_up_date null la limpia.
// @Tags health
// @Accept json
// @Produce json
// @Param recordID path string true "ID de la observación"
// @Param payload body updateRecordRequest true "Campos a cambiar"
// @Success 200 {object} RecordResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Router /health-records/{recordID} [patch]
func updateRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRecordRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		in := UpdateInput{
			Symptoms:  req.Symptoms,
			Diagnosis: req.Diagnosis,
			Treatment: req.Treatment,
			VetName:   req.VetName,
		}
		if req.ObservationDate != nil {
			obs, err := httpx.ParseDate("observation_date", *req.ObservationDate)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			in.ObservationDate = &obs
		}
		present, fu, err := httpx.ParseNullableDate("follow_up_date", req.FollowUpDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		in.FollowUp = FollowUpPatch{Present: present, Value: fu}

		rec, err := svc.Update(r.Context(), middleware.Claims(r), chi.URLParam(r, "recordID"), in)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(rec))
	}
}

// ToResponse también lo usan los reportes.
func ToResponse(rec Record) RecordResponse {
	return RecordResponse{
		ID:              rec.ID,
		AnimalID:        rec.AnimalID,
		ObservationDate: httpx.FormatDate(rec.ObservationDate),
		Symptoms:        rec.Symptoms,
		Diagnosis:       rec.Diagnosis,
		Treatment:       rec.Treatment,
		VetName:         rec.VetName,
		FollowUpDate:    httpx.FormatOptionalDate(rec.FollowUpDate),
		RecordedBy:      rec.RecordedBy,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

func ptr(s string) *string { return &s }
