package reproduction

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"cattle-records/internal/middleware"
	"cattle-records/internal/platform/httpx"
	"cattle-records/internal/platform/paging"
)

func RegisterRoutes(r chi.Router, svc *Service, pol paging.Policy) {
	r.Route("/reproduction", func(rr chi.Router) {
		rr.Post("/", createEventHandler(svc))
		rr.Get("/", listEventsHandler(svc, pol))
		rr.Get("/{eventID}", getEventHandler(svc))
		rr.Patch("/{eventID}", updateEventHandler(svc))

		// Cierra el evento y crea las crías
		rr.Post("/{eventID}/birth", recordBirthHandler(svc))
	})
}

type createEventRequest struct {
	MotherID               string  `json:"mother_id"`
	MatingDate             *string `json:"mating_date"`
	Method                 string  `json:"method" enums:"natural,artificial"`
	BullID                 string  `json:"bull_id"`
	PregnancyConfirmedDate *string `json:"pregnancy_confirmed_date"`
	ExpectedDueDate        *string `json:"expected_due_date"`
	Complications          bool    `json:"complications"`
	Notes                  string  `json:"notes"`
}

type updateEventRequest struct {
	MatingDate             json.RawMessage `json:"mating_date" swaggertype:"string"`
	Method                 *string         `json:"method" enums:"natural,artificial"`
	BullID                 *string         `json:"bull_id"`
	PregnancyConfirmedDate json.RawMessage `json:"pregnancy_confirmed_date" swaggertype:"string"`
	ExpectedDueDate        json.RawMessage `json:"expected_due_date" swaggertype:"string"`
	Complications          *bool           `json:"complications"`
	Notes                  *string         `json:"notes"`
}

type calfRequest struct {
	Gender string `json:"gender" enums:"male,female"`
	Tag    string `json:"tag"`
}

type recordBirthRequest struct {
	BirthDate      string        `json:"birth_date"`
	NumberOfCalves int           `json:"number_of_calves"`
	Complications  bool          `json:"complications"`
	Notes          string        `json:"notes"`
	Calves         []calfRequest `json:"calves"`
}

type CalfResponse struct {
	Gender   string `json:"gender"`
	Tag      string `json:"tag"`
	AnimalID string `json:"animal_id"`
}

// EventResponse representa un ciclo reproductivo con su estado derivado.
type EventResponse struct {
	ID                     string         `json:"id"`
	MotherID               string         `json:"mother_id"`
	State                  State          `json:"state"`
	MatingDate             *string        `json:"mating_date,omitempty"`
	Method                 Method         `json:"method"`
	BullID                 string         `json:"bull_id,omitempty"`
	PregnancyConfirmedDate *string        `json:"pregnancy_confirmed_date,omitempty"`
	ExpectedDueDate        *string        `json:"expected_due_date,omitempty"`
	BirthDate              *string        `json:"birth_date,omitempty"`
	NumberOfCalves         int            `json:"number_of_calves"`
	CalfDetails            []CalfResponse `json:"calf_details"`
	Complications          bool           `json:"complications"`
	Notes                  string         `json:"notes"`
	RecordedBy             string         `json:"recorded_by"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

// createEventHandler godoc
// @Summary Abrir ciclo reproductivo
// @Description La madre debe ser hembra y estar activa. Sin fecha de parto: el parto se registra con /birth.
// @Tags reproduction
// @Accept json
// @Produce json
// @Param payload body createEventRequest true "Datos del ciclo; fechas YYYY-MM-DD"
// @Success 201 {object} EventResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody "madre no encontrada"
// @Router /reproduction [post]
func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		mating, err := httpx.ParseOptionalDate("mating_date", req.MatingDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		confirmed, err := httpx.ParseOptionalDate("pregnancy_confirmed_date", req.PregnancyConfirmedDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		due, err := httpx.ParseOptionalDate("expected_due_date", req.ExpectedDueDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		ev, err := svc.Create(r.Context(), middleware.Claims(r), CreateInput{
			MotherID:               req.MotherID,
			MatingDate:             mating,
			Method:                 req.Method,
			BullID:                 req.BullID,
			PregnancyConfirmedDate: confirmed,
			ExpectedDueDate:        due,
			Complications:          req.Complications,
			Notes:                  req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, ToResponse(ev))
	}
}

// listEventsHandler godoc
// @Summary Listar ciclos reproductivos
// @Tags reproduction
// @Produce json
// @Param mother_id query string false "ID de la madre"
// @Param state query string false "open|pregnant|closed"
// @Param page query int false "página"
// @Param limit query int false "tamaño de página"
// @Success 200 {object} paging.Result[EventResponse]
// @Router /reproduction [get]
func listEventsHandler(svc *Service, pol paging.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res, err := svc.List(r.Context(), ListFilter{
			MotherID: q.Get("mother_id"),
			State:    State(strings.ToLower(strings.TrimSpace(q.Get("state")))),
			Page:     pol.FromRequest(r),
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		out := make([]EventResponse, 0, len(res.Items))
		for _, ev := range res.Items {
			out = append(out, ToResponse(ev))
		}
		httpx.WriteJSON(w, http.StatusOK, paging.Result[EventResponse]{
			Items: out, Page: res.Page, Limit: res.Limit, Total: res.Total, TotalPages: res.TotalPages,
		})
	}
}

// getEventHandler godoc
// @Summary Ver ciclo reproductivo
// @Tags reproduction
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} EventResponse
// @Failure 404 {object} httpx.ErrorBody
// @Router /reproduction/{eventID} [get]
func getEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev, err := svc.GetByID(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(ev))
	}
}

// updateEventHandler godoc
// @Summary Editar ciclo reproductivo
// @Description PATCH parcial. Con parto registrado responde 409. No se puede limpiar la confirmación de preñez.
// @Tags reproduction
// @Accept json
// @Produce json
// @Param eventID path string true "ID del evento"
// @Param payload body updateEventRequest true "Campos a cambiar; fechas null las limpian"
// @Success 200 {object} EventResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody "evento cerrado"
// @Router /reproduction/{eventID} [patch]
func updateEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEventRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		in := UpdateInput{
			Method:        req.Method,
			BullID:        req.BullID,
			Complications: req.Complications,
			Notes:         req.Notes,
		}
		for _, f := range []struct {
			name string
			raw  json.RawMessage
			dst  *DatePatch
		}{
			{"mating_date", req.MatingDate, &in.MatingDate},
			{"pregnancy_confirmed_date", req.PregnancyConfirmedDate, &in.PregnancyConfirmedDate},
			{"expected_due_date", req.ExpectedDueDate, &in.ExpectedDueDate},
		} {
			present, v, err := httpx.ParseNullableDate(f.name, f.raw)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			*f.dst = DatePatch{Present: present, Value: v}
		}

		ev, err := svc.Update(r.Context(), middleware.Claims(r), chi.URLParam(r, "eventID"), in)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(ev))
	}
}

// recordBirthHandler godoc
// @Summary Registrar parto
// @Description Cierra el evento y crea una cría por cada entrada completa (sexo y caravana) hasta number_of_calves. Las entradas incompletas se saltean. Todo o nada ante caravanas duplicadas.
// @Tags reproduction
// @Accept json
// @Produce json
// @Param eventID path string true "ID del evento"
// @Param payload body recordBirthRequest true "Parto"
// @Success 200 {object} EventResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody "parto ya registrado / caravana duplicada"
// @Router /reproduction/{eventID}/birth [post]
func recordBirthHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordBirthRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		birth, err := httpx.ParseDate("birth_date", req.BirthDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		calves := make([]CalfEntry, 0, len(req.Calves))
		for _, c := range req.Calves {
			calves = append(calves, CalfEntry{Gender: c.Gender, Tag: c.Tag})
		}

		ev, err := svc.RecordBirth(r.Context(), middleware.Claims(r), chi.URLParam(r, "eventID"), BirthInput{
			BirthDate:      birth,
			NumberOfCalves: req.NumberOfCalves,
			Complications:  req.Complications,
			Notes:          req.Notes,
			Calves:         calves,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(ev))
	}
}

func ToResponse(ev Event) EventResponse {
	calves := make([]CalfResponse, 0, len(ev.CalfDetails))
	for _, c := range ev.CalfDetails {
		calves = append(calves, CalfResponse{Gender: string(c.Gender), Tag: c.Tag, AnimalID: c.AnimalID})
	}
	return EventResponse{
		ID:                     ev.ID,
		MotherID:               ev.MotherID,
		State:                  ev.State(),
		MatingDate:             httpx.FormatOptionalDate(ev.MatingDate),
		Method:                 ev.Method,
		BullID:                 ev.BullID,
		PregnancyConfirmedDate: httpx.FormatOptionalDate(ev.PregnancyConfirmedDate),
		ExpectedDueDate:        httpx.FormatOptionalDate(ev.ExpectedDueDate),
		BirthDate:              httpx.FormatOptionalDate(ev.BirthDate),
		NumberOfCalves:         ev.NumberOfCalves,
		CalfDetails:            calves,
		Complications:          ev.Complications,
		Notes:                  ev.Notes,
		RecordedBy:             ev.RecordedBy,
		CreatedAt:              ev.CreatedAt,
		UpdatedAt:              ev.UpdatedAt,
	}
}
