package paging

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Policy son los límites configurables (paging.default_limit / paging.max_limit).
type Policy struct {
	DefaultLimit int
	MaxLimit     int
}

var DefaultPolicy = Policy{DefaultLimit: DefaultLimit, MaxLimit: MaxLimit}

// Params es la página pedida. Page arranca en 1.
type Params struct {
	Page  int
	Limit int
}

// Normalize aplica DefaultPolicy.
func (p Params) Normalize() Params { return DefaultPolicy.Normalize(p) }

// Normalize aplica defaults y topes. limit <= 0 usa DefaultLimit.
func (pol Policy) Normalize(p Params) Params {
	if pol.DefaultLimit <= 0 {
		pol.DefaultLimit = DefaultLimit
	}
	if pol.MaxLimit <= 0 {
		pol.MaxLimit = MaxLimit
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = pol.DefaultLimit
	}
	if p.Limit > pol.MaxLimit {
		p.Limit = pol.MaxLimit
	}
	return p
}

// Defaulted completa ceros sin aplicar el tope (los params ya vienen normalizados del handler).
func (p Params) Defaulted() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

func (p Params) Offset() int {
	s := p.Defaulted()
	return (s.Page - 1) * s.Limit
}

// Window recorta items ya ordenados a la página pedida (para stores en memoria).
func Window[T any](items []T, p Params) []T {
	s := p.Defaulted()
	start := s.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := min(start+s.Limit, len(items))
	return items[start:end]
}

// Result es la respuesta paginada que devuelven los handlers.
type Result[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewResult[T any](items []T, total int, p Params) Result[T] {
	s := p.Defaulted()
	if items == nil {
		items = []T{}
	}
	pages := 0
	if total > 0 {
		pages = (total + s.Limit - 1) / s.Limit
	}
	return Result[T]{
		Items:      items,
		Page:       s.Page,
		Limit:      s.Limit,
		Total:      total,
		TotalPages: pages,
	}
}

// FromRequest lee ?page= y ?limit= con DefaultPolicy.
func FromRequest(r *http.Request) Params { return DefaultPolicy.FromRequest(r) }

// FromRequest lee ?page= y ?limit=. Valores no numéricos caen a los defaults, igual que un limit fuera de rango.
func (pol Policy) FromRequest(r *http.Request) Params {
	q := r.URL.Query()
	p := Params{}
	if v := strings.TrimSpace(q.Get("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Page = n
		}
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Limit = n
		}
	}
	return pol.Normalize(p)
}
