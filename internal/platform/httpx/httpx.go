// Package httpx junta los helpers JSON que antes se repetían en cada handler.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cattle-records/internal/platform/apperr"
)

const maxBody = 1 << 20

const DateLayout = "2006-01-02"

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody es el cuerpo de cualquier respuesta de error.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Entity  string `json:"entity,omitempty"`
	ID      string `json:"id,omitempty"`
	Field   string `json:"field,omitempty"`
}

// WriteError traduce err a status + ErrorBody. Los internos no filtran el mensaje.
func WriteError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	body := ErrorBody{Error: apperr.Kind(err), Message: err.Error()}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		body.Entity = ae.Entity
		body.ID = ae.ID
		body.Field = ae.Field
	}
	if status == http.StatusInternalServerError {
		body.Message = "internal error"
	}
	WriteJSON(w, status, body)
}

// DecodeJSON rechaza campos desconocidos y bodies vacíos con un error Validation.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("body", "request body is required")
		}
		return apperr.Validationf("body", "invalid json: %v", err)
	}
	return nil
}

// ParseDate acepta YYYY-MM-DD o RFC3339 y devuelve UTC.
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, apperr.Validation(field, "is required")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apperr.Validationf(field, "invalid date %q (want YYYY-MM-DD or RFC3339)", s)
}

// ParseOptionalDate devuelve nil para nil o "".
func ParseOptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseNullableDate es para PATCH: raw vacío = no enviado, "null" = limpiar.
func ParseNullableDate(field string, raw json.RawMessage) (present bool, v *time.Time, err error) {
	if len(raw) == 0 {
		return false, nil, nil
	}
	if string(raw) == "null" {
		return true, nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return true, nil, apperr.Validation(field, "must be a date string or null")
	}
	t, err := ParseOptionalDate(field, &s)
	return true, t, err
}

// FormatDate es el inverso de ParseDate para fechas de calendario.
func FormatDate(t time.Time) string { return t.UTC().Format(DateLayout) }

func FormatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

// AsOf lee ?as_of=, default el día UTC de now.
func AsOf(r *http.Request, now func() time.Time) (time.Time, error) {
	v := r.URL.Query().Get("as_of")
	if strings.TrimSpace(v) == "" {
		t := now().UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return ParseDate("as_of", v)
}

// QueryInt lee un entero opcional; vacío devuelve def.
func QueryInt(r *http.Request, key string, def int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperr.Validation(key, fmt.Sprintf("must be an integer, got %q", v))
	}
	return n, nil
}
