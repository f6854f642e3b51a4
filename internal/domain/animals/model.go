package animals

import (
	"strings"
	"time"

	"cattle-records/internal/domain/timewindow"
)

// Gender define el sexo del animal.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool { return g == GenderMale || g == GenderFemale }

// ParseGender normaliza mayúsculas y espacios; no valida.
func ParseGender(s string) Gender {
	return Gender(strings.ToLower(strings.TrimSpace(s)))
}

// Status es el ciclo de vida del animal.
// @Enum active, sold, deceased
type Status string

const (
	StatusActive   Status = "active"
	StatusSold     Status = "sold"
	StatusDeceased Status = "deceased"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusSold, StatusDeceased:
		return true
	}
	return false
}

func ParseStatus(s string) Status {
	return Status(strings.ToLower(strings.TrimSpace(s)))
}

// Animal es un individuo del rodeo.
type Animal struct {
	ID string

	Tag         string // caravana, única, normalizada
	Name        string
	Gender      Gender
	Breed       string
	DateOfBirth time.Time

	// MotherID es solo una referencia de búsqueda; las crías se consultan por MotherID.
	MotherID *string

	Status Status
	Notes  string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a Animal) Active() bool { return a.Status == StatusActive }

// AgeYears cuenta cumpleaños completos a asOf.
func (a Animal) AgeYears(asOf time.Time) int {
	return timewindow.CompleteYears(a.DateOfBirth, asOf)
}

// AgeMonths cuenta meses completos a asOf.
func (a Animal) AgeMonths(asOf time.Time) int {
	return timewindow.CompleteMonths(a.DateOfBirth, asOf)
}

// DateField son las fechas agregables por mes.
type DateField string

const (
	FieldDateOfBirth DateField = "date_of_birth"
	FieldCreatedAt   DateField = "created_at"
)

var DateFields = []DateField{FieldDateOfBirth, FieldCreatedAt}

// BreedCount es una fila de la distribución por raza.
type BreedCount struct {
	Breed string `json:"breed"`
	Count int    `json:"count"`
}
