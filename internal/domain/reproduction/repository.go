package reproduction

import (
	"context"

	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/platform/paging"
)

type ListFilter struct {
	MotherID string
	State    State
	Page     paging.Params
}

// OpenFilter selecciona eventos sin parto. Due sin límites incluye los que no tienen fecha probable.
type OpenFilter struct {
	PregnantOnly bool
	Due          timewindow.Range
	ActiveOnly   bool
	Limit        int
}

type Repository interface {
	Create(ctx context.Context, ev Event) error
	// Update solo aplica si el evento no tiene parto; si lo tiene devuelve apperr.ErrInvalidState.
	Update(ctx context.Context, ev Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	// List ordena por CreatedAt descendente.
	List(ctx context.Context, f ListFilter) ([]Event, int, error)
	CountByMother(ctx context.Context, motherID string) (int, error)

	// RecordBirth crea las crías y cierra el evento en una sola unidad.
	// Si el evento ya tiene parto: apperr.ErrInvalidState. Caravana repetida: apperr.ErrDuplicateKey.
	// En ambos casos no queda ninguna cría creada.
	RecordBirth(ctx context.Context, ev Event, calves []animals.Animal) error
}

type Stats interface {
	// ListOpen ordena por ExpectedDueDate ascendente, sin fecha al final.
	ListOpen(ctx context.Context, f OpenFilter) ([]Event, error)
	CountOpen(ctx context.Context, f OpenFilter) (int, error)
	ListByMother(ctx context.Context, motherID string) ([]Event, error)
	// DateSamples pesa cada evento por NumberOfCalves.
	DateSamples(ctx context.Context, field DateField, r timewindow.Range) ([]timewindow.Sample, error)
}
