// Package memory es el store en memoria para dev y tests.
// Un solo RWMutex cubre todas las tablas: el índice de caravanas y el parto son atómicos.
package memory

import (
	"slices"
	"strings"
	"sync"
	"time"

	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/health"
	"cattle-records/internal/domain/reproduction"
	"cattle-records/internal/domain/vaccinations"
)

type Store struct {
	mu sync.RWMutex

	animals      map[string]animals.Animal
	tags         map[string]string // caravana -> animal id
	health       map[string]health.Record
	vaccinations map[string]vaccinations.Vaccination
	events       map[string]reproduction.Event
}

func NewStore() *Store {
	return &Store{
		animals:      make(map[string]animals.Animal),
		tags:         make(map[string]string),
		health:       make(map[string]health.Record),
		vaccinations: make(map[string]vaccinations.Vaccination),
		events:       make(map[string]reproduction.Event),
	}
}

// Animals implementa animals.Repository y animals.Stats.
func (s *Store) Animals() *AnimalRepo { return &AnimalRepo{s: s} }

// Health implementa health.Repository y health.Stats.
func (s *Store) Health() *HealthRepo { return &HealthRepo{s: s} }

// Vaccinations implementa vaccinations.Repository y vaccinations.Stats.
func (s *Store) Vaccinations() *VaccinationRepo { return &VaccinationRepo{s: s} }

// Reproduction implementa reproduction.Repository y reproduction.Stats.
func (s *Store) Reproduction() *ReproductionRepo { return &ReproductionRepo{s: s} }

// activeLocked requiere s.mu tomado.
func (s *Store) activeLocked(animalID string) bool {
	a, ok := s.animals[animalID]
	return ok && a.Active()
}

func cloneEvent(ev reproduction.Event) reproduction.Event {
	ev.CalfDetails = slices.Clone(ev.CalfDetails)
	if ev.CalfDetails == nil {
		ev.CalfDetails = []reproduction.Calf{}
	}
	return ev
}

func head[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func inDay(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// cmpTimeDesc ordena más nuevo primero, con id como desempate estable.
func cmpTimeDesc(a, b time.Time, idA, idB string) int {
	if c := b.Compare(a); c != 0 {
		return c
	}
	return strings.Compare(idA, idB)
}

// cmpOptionalAsc ordena ascendente con nil al final.
func cmpOptionalAsc(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}
