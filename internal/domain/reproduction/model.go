package reproduction

import (
	"strings"
	"time"

	"cattle-records/internal/domain/animals"
)

// Method de servicio.
// @Enum natural, artificial
type Method string

const (
	MethodNatural    Method = "natural"
	MethodArtificial Method = "artificial"
)

func (m Method) Valid() bool { return m == MethodNatural || m == MethodArtificial }

func ParseMethod(s string) Method {
	return Method(strings.ToLower(strings.TrimSpace(s)))
}

// State se deriva de las fechas, no se guarda.
// @Enum open, pregnant, closed
type State string

const (
	StateOpen     State = "open"
	StatePregnant State = "pregnant"
	StateClosed   State = "closed"
)

func (s State) Valid() bool {
	switch s {
	case StateOpen, StatePregnant, StateClosed:
		return true
	}
	return false
}

// Calf es una cría registrada en el parto, en el orden en que se cargó.
type Calf struct {
	Gender   animals.Gender
	Tag      string
	AnimalID string
}

// Event es un ciclo reproductivo de una madre: servicio, preñez confirmada, parto.
type Event struct {
	ID       string
	MotherID string

	MatingDate             *time.Time
	Method                 Method
	BullID                 string
	PregnancyConfirmedDate *time.Time
	ExpectedDueDate        *time.Time
	BirthDate              *time.Time

	// NumberOfCalves es lo informado en el parto; CalfDetails puede ser más corto (entradas incompletas se saltean).
	NumberOfCalves int
	CalfDetails    []Calf

	Complications bool
	Notes         string

	RecordedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e Event) State() State {
	switch {
	case e.BirthDate != nil:
		return StateClosed
	case e.PregnancyConfirmedDate != nil:
		return StatePregnant
	default:
		return StateOpen
	}
}

type DateField string

const (
	FieldMatingDate             DateField = "mating_date"
	FieldPregnancyConfirmedDate DateField = "pregnancy_confirmed_date"
	FieldExpectedDueDate        DateField = "expected_due_date"
	FieldBirthDate              DateField = "birth_date"
)

var DateFields = []DateField{FieldMatingDate, FieldPregnancyConfirmedDate, FieldExpectedDueDate, FieldBirthDate}

// Date devuelve la fecha del campo pedido (nil si no está cargada).
func (e Event) Date(f DateField) *time.Time {
	switch f {
	case FieldMatingDate:
		return e.MatingDate
	case FieldPregnancyConfirmedDate:
		return e.PregnancyConfirmedDate
	case FieldExpectedDueDate:
		return e.ExpectedDueDate
	case FieldBirthDate:
		return e.BirthDate
	}
	return nil
}
