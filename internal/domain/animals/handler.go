package animals

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cattle-records/internal/middleware"
	"cattle-records/internal/platform/apperr"
	"cattle-records/internal/platform/httpx"
	"cattle-records/internal/platform/paging"
)

func RegisterRoutes(r chi.Router, svc *Service, pol paging.Policy) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc, pol))

		ar.Get("/{animalID}", getAnimalHandler(svc))
		ar.Patch("/{animalID}", updateAnimalHandler(svc))

		// Solo admin
		ar.Delete("/{animalID}", retireAnimalHandler(svc))
		ar.Post("/{animalID}/status", changeStatusHandler(svc))

		ar.Get("/{animalID}/offspring", offspringHandler(svc))
	})
}

type createAnimalRequest struct {
	Tag         string  `json:"tag"`
	Name        string  `json:"name"`
	Gender      string  `json:"gender" enums:"male,female"`
	Breed       string  `json:"breed"`
	DateOfBirth string  `json:"date_of_birth"` // YYYY-MM-DD
	MotherID    *string `json:"mother_id"`
	Notes       string  `json:"notes"`
}

// AnimalResponse representa un animal con sus edades calculadas al momento de la respuesta.
type AnimalResponse struct {
	ID          string    `json:"id"`
	Tag         string    `json:"tag"`
	Name        string    `json:"name"`
	Gender      Gender    `json:"gender"`
	Breed       string    `json:"breed"`
	DateOfBirth string    `json:"date_of_birth"`
	AgeYears    int       `json:"age_years"`
	AgeMonths   int       `json:"age_months"`
	MotherID    *string   `json:"mother_id,omitempty"`
	Status      Status    `json:"status"`
	Notes       string    `json:"notes"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type updateAnimalRequest struct {
	Name        *string `json:"name"`
	Gender      *string `json:"gender"`
	Breed       *string `json:"breed"`
	DateOfBirth *string `json:"date_of_birth"`
	Notes       *string `json:"notes"`
	// mother_id: null quita la madre, ausente no la toca
	MotherID json.RawMessage `json:"mother_id" swaggertype:"string"`
}

type changeStatusRequest struct {
	Status string `json:"status" enums:"sold,deceased"`
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description Crea un animal activo. La caravana se normaliza a mayúsculas y debe ser única. Requiere rol worker o admin.
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, admin|worker"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createAnimalRequest true "Datos del animal"
// @Success 201 {object} AnimalResponse
// @Failure 400 {object} httpx.ErrorBody "validación"
// @Failure 401 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody "caravana duplicada"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		dob, err := httpx.ParseDate("date_of_birth", req.DateOfBirth)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		a, err := svc.Create(r.Context(), middleware.Claims(r), CreateInput{
			Tag:         req.Tag,
			Name:        req.Name,
			Gender:      req.Gender,
			Breed:       req.Breed,
			DateOfBirth: dob,
			MotherID:    req.MotherID,
			Notes:       req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, ToResponse(a, svc.now()))
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Listado paginado, más nuevos primero. q busca en caravana y nombre.
// @Tags animals
// @Produce json
// @Param status query string false "active|sold|deceased"
// @Param gender query string false "male|female"
// @Param breed query string false "raza exacta"
// @Param mother_id query string false "ID de la madre"
// @Param q query string false "texto en caravana o nombre"
// @Param page query int false "página (default 1)"
// @Param limit query int false "tamaño de página (default 20)"
// @Success 200 {object} paging.Result[AnimalResponse]
// @Failure 400 {object} httpx.ErrorBody
// @Failure 401 {object} httpx.ErrorBody
// @Router /animals [get]
func listAnimalsHandler(svc *Service, pol paging.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res, err := svc.List(r.Context(), ListFilter{
			Status:   ParseStatus(q.Get("status")),
			Gender:   ParseGender(q.Get("gender")),
			Breed:    q.Get("breed"),
			MotherID: q.Get("mother_id"),
			Query:    q.Get("q"),
			Page:     pol.FromRequest(r),
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		asOf := svc.now()
		out := make([]AnimalResponse, 0, len(res.Items))
		for _, a := range res.Items {
			out = append(out, ToResponse(a, asOf))
		}
		httpx.WriteJSON(w, http.StatusOK, paging.Result[AnimalResponse]{
			Items: out, Page: res.Page, Limit: res.Limit, Total: res.Total, TotalPages: res.TotalPages,
		})
	}
}

// getAnimalHandler godoc
// @Summary Ver animal
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} AnimalResponse
// @Failure 404 {object} httpx.ErrorBody
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(a, svc.now()))
	}
}

// updateAnimalHandler godoc
// @Summary Editar animal
// @Description PATCH parcial. La caravana y el estado no se editan acá. mother_id null quita la madre.
// @Tags animals
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body updateAnimalRequest true "Campos a cambiar"
// @Success 200 {object} AnimalResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Router /animals/{animalID} [patch]
func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAnimalRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		in := UpdateInput{
			Name:   req.Name,
			Gender: req.Gender,
			Breed:  req.Breed,
			Notes:  req.Notes,
		}
		if req.DateOfBirth != nil {
			dob, err := httpx.ParseDate("date_of_birth", *req.DateOfBirth)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			in.DateOfBirth = &dob
		}
		// ausente => RawMessage vacío; null => "null"
		if len(req.MotherID) > 0 {
			in.Mother.Present = true
			if string(req.MotherID) != "null" {
				var s string
				if err := json.Unmarshal(req.MotherID, &s); err != nil {
					httpx.WriteError(w, apperr.Validation("mother_id", "must be a string or null"))
					return
				}
				in.Mother.Value = &s
			}
		}

		a, err := svc.Update(r.Context(), middleware.Claims(r), chi.URLParam(r, "animalID"), in)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(a, svc.now()))
	}
}

// changeStatusHandler godoc
// @Summary Cambiar estado
// @Description active => sold|deceased. Los estados terminales no cambian. Solo admin.
// @Tags animals
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body changeStatusRequest true "Nuevo estado"
// @Success 200 {object} AnimalResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody "estado terminal"
// @Router /animals/{animalID}/status [post]
func changeStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changeStatusRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		a, err := svc.ChangeStatus(r.Context(), middleware.Claims(r), chi.URLParam(r, "animalID"), ParseStatus(req.Status))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(a, svc.now()))
	}
}

// retireAnimalHandler godoc
// @Summary Dar de baja animal
// @Description No borra: pasa el animal a deceased. Con historial (sanidad, vacunas, reproducción) responde 409. Solo admin.
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} AnimalResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody "tiene historial"
// @Router /animals/{animalID} [delete]
func retireAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Retire(r.Context(), middleware.Claims(r), chi.URLParam(r, "animalID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(a, svc.now()))
	}
}

// offspringHandler godoc
// @Summary Crías del animal
// @Tags animals
// @Produce json
// @Param animalID path string true "ID de la madre"
// @Success 200 {array} AnimalResponse
// @Failure 404 {object} httpx.ErrorBody
// @Router /animals/{animalID}/offspring [get]
func offspringHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Offspring(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		asOf := svc.now()
		out := make([]AnimalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, ToResponse(a, asOf))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// ToResponse también lo usan los reportes.
func ToResponse(a Animal, asOf time.Time) AnimalResponse {
	return AnimalResponse{
		ID:          a.ID,
		Tag:         a.Tag,
		Name:        a.Name,
		Gender:      a.Gender,
		Breed:       a.Breed,
		DateOfBirth: httpx.FormatDate(a.DateOfBirth),
		AgeYears:    a.AgeYears(asOf),
		AgeMonths:   a.AgeMonths(asOf),
		MotherID:    a.MotherID,
		Status:      a.Status,
		Notes:       a.Notes,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
