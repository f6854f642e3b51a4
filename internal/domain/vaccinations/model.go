package vaccinations

import "time"

// Vaccination es una aplicación de vacuna. Se edita en el lugar, nunca se borra.
type Vaccination struct {
	ID       string
	AnimalID string

	VaccineName    string
	InjectionDate  time.Time
	Dosage         string
	NextDueDate    *time.Time
	AdministeredBy string

	RecordedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type DateField string

const (
	FieldInjectionDate DateField = "injection_date"
	FieldNextDueDate   DateField = "next_due_date"
)

var DateFields = []DateField{FieldInjectionDate, FieldNextDueDate}
