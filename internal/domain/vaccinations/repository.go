package vaccinations

import (
	"context"
	"time"

	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/platform/paging"
)

type ListFilter struct {
	AnimalID    string
	VaccineName string // sin distinguir mayúsculas
	From        *time.Time
	To          *time.Time
	Page        paging.Params
}

// DueFilter selecciona por NextDueDate. Limit <= 0 = sin límite.
type DueFilter struct {
	Window     timewindow.Range
	ActiveOnly bool
	Limit      int
}

type Repository interface {
	Create(ctx context.Context, v Vaccination) error
	Update(ctx context.Context, v Vaccination) error
	GetByID(ctx context.Context, id string) (Vaccination, error)
	// List ordena por InjectionDate descendente.
	List(ctx context.Context, f ListFilter) ([]Vaccination, int, error)
	CountByAnimal(ctx context.Context, animalID string) (int, error)
}

type Stats interface {
	// ListDue ordena por NextDueDate ascendente.
	ListDue(ctx context.Context, f DueFilter) ([]Vaccination, error)
	CountDue(ctx context.Context, f DueFilter) (int, error)
	// Recent: los últimos cargados (CreatedAt descendente).
	Recent(ctx context.Context, n int) ([]Vaccination, error)
	// LatestByAnimal ordena por InjectionDate descendente.
	LatestByAnimal(ctx context.Context, animalID string, n int) ([]Vaccination, error)
	DateSamples(ctx context.Context, field DateField, r timewindow.Range) ([]timewindow.Sample, error)
}
