package health

import "time"

// Record es una observación sanitaria. Se edita en el lugar, nunca se borra.
type Record struct {
	ID       string
	AnimalID string

	ObservationDate time.Time
	Symptoms        string
	Diagnosis       string
	Treatment       string
	VetName         string
	FollowUpDate    *time.Time

	RecordedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type DateField string

const (
	FieldObservationDate DateField = "observation_date"
	FieldFollowUpDate    DateField = "follow_up_date"
)

var DateFields = []DateField{FieldObservationDate, FieldFollowUpDate}
