package animals

import (
	"context"
	"time"

	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/platform/paging"
)

// ListFilter: campos vacíos no filtran. Query busca en tag y nombre sin distinguir mayúsculas.
type ListFilter struct {
	Status   Status
	Gender   Gender
	Breed    string
	MotherID string
	Query    string
	Page     paging.Params
}

// Repository. Create devuelve apperr.ErrDuplicateKey si la caravana ya existe (lo garantiza el store).
type Repository interface {
	Create(ctx context.Context, a Animal) error
	// Update guarda los campos editables; el estado guardado no cambia.
	Update(ctx context.Context, a Animal) error
	// ChangeStatus aplica from => to solo si el estado guardado sigue siendo from.
	// Si otro cambio llegó antes devuelve apperr.ErrInvalidState.
	ChangeStatus(ctx context.Context, id string, from, to Status, at time.Time) error
	GetByID(ctx context.Context, id string) (Animal, error)
	GetByTag(ctx context.Context, tag string) (Animal, error)
	// List ordena por CreatedAt descendente y devuelve el total sin paginar.
	List(ctx context.Context, f ListFilter) ([]Animal, int, error)
	ListByMother(ctx context.Context, motherID string) ([]Animal, error)
}

// Stats son las consultas de reportes sobre animales.
type Stats interface {
	CountByStatus(ctx context.Context) (map[Status]int, error)
	CountActiveByGender(ctx context.Context) (map[Gender]int, error)
	// ActiveBreedCounts ordena por count desc, raza asc.
	ActiveBreedCounts(ctx context.Context) ([]BreedCount, error)
	ListActive(ctx context.Context) ([]Animal, error)
	Recent(ctx context.Context, n int) ([]Animal, error)
	DateSamples(ctx context.Context, field DateField, r timewindow.Range) ([]timewindow.Sample, error)
}
