// Package apperr define los tipos de error que exponen los servicios del dominio.
// Los handlers solo miran el Kind para elegir status y redacción.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("invalid input")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Error lleva el contexto de origen (qué entidad, qué id, qué campo).
// errors.Is(err, ErrNotFound) funciona sobre Kind y sobre Err.
type Error struct {
	Kind   error
	Entity string
	ID     string
	Field  string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Entity != "" {
		b.WriteString(e.Entity)
		if e.ID != "" {
			b.WriteString(" ")
			b.WriteString(e.ID)
		}
		b.WriteString(": ")
	}
	switch {
	case e.Msg != "":
		b.WriteString(e.Msg)
	case e.Kind != nil:
		b.WriteString(e.Kind.Error())
	default:
		b.WriteString("error")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func NotFound(entity, id string) error {
	return &Error{Kind: ErrNotFound, Entity: entity, ID: id, Msg: "not found"}
}

func InvalidState(entity, id, msg string) error {
	return &Error{Kind: ErrInvalidState, Entity: entity, ID: id, Msg: msg}
}

func Validation(field, msg string) error {
	return &Error{Kind: ErrValidation, Field: field, Msg: msg}
}

// Validationf es Validation con formato.
func Validationf(field, format string, args ...any) error {
	return Validation(field, fmt.Sprintf(format, args...))
}

func Duplicate(entity, field, value string) error {
	return &Error{
		Kind:   ErrDuplicateKey,
		Entity: entity,
		Field:  field,
		Msg:    fmt.Sprintf("%s %q already exists", field, value),
	}
}

func Unauthorized(msg string) error {
	if msg == "" {
		msg = "authentication required"
	}
	return &Error{Kind: ErrUnauthorized, Msg: msg}
}

func Forbidden(msg string) error {
	if msg == "" {
		msg = "insufficient role"
	}
	return &Error{Kind: ErrForbidden, Msg: msg}
}

// Wrap agrega contexto de entidad a un error de storage sin perder su Kind.
func Wrap(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		cp := *ae
		if cp.Entity == "" {
			cp.Entity = entity
		}
		if cp.ID == "" {
			cp.ID = id
		}
		return &cp
	}
	if errors.Is(err, ErrNotFound) {
		return NotFound(entity, id)
	}
	return err
}

// Kind devuelve el nombre estable del tipo de error, "internal" si no es conocido.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrDuplicateKey):
		return "duplicate_key"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "internal"
	}
}

func HTTPStatus(err error) int {
	switch Kind(err) {
	case "":
		return http.StatusOK
	case "not_found":
		return http.StatusNotFound
	case "invalid_state", "duplicate_key":
		return http.StatusConflict
	case "validation":
		return http.StatusBadRequest
	case "unauthorized":
		return http.StatusUnauthorized
	case "forbidden":
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
