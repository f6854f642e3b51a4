package health

import (
	"context"
	"time"

	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/platform/paging"
)

type ListFilter struct {
	AnimalID string
	From     *time.Time
	To       *time.Time
	Page     paging.Params
}

type Repository interface {
	Create(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	// List ordena por ObservationDate descendente.
	List(ctx context.Context, f ListFilter) ([]Record, int, error)
	CountByAnimal(ctx context.Context, animalID string) (int, error)
}

// Stats son las consultas de reportes.
type Stats interface {
	// ListFollowUps ordena por FollowUpDate ascendente.
	ListFollowUps(ctx context.Context, r timewindow.Range) ([]Record, error)
	CountObserved(ctx context.Context, r timewindow.Range) (int, error)
	// Recent: los últimos cargados (CreatedAt descendente).
	Recent(ctx context.Context, n int) ([]Record, error)
	// LatestByAnimal ordena por ObservationDate descendente.
	LatestByAnimal(ctx context.Context, animalID string, n int) ([]Record, error)
	DateSamples(ctx context.Context, field DateField, r timewindow.Range) ([]timewindow.Sample, error)
}
