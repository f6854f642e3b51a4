// Package timewindow tiene las ventanas de fechas y agrupaciones de los reportes.
// Todo es puro: sin storage, sin reloj.
package timewindow

import (
	"time"
)

// Range es [Start, End] o [Start, End) según EndInclusive. nil = sin límite de ese lado.
type Range struct {
	Start        *time.Time
	End          *time.Time
	EndInclusive bool
}

func (r Range) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil {
		if r.EndInclusive {
			return !t.After(*r.End)
		}
		return t.Before(*r.End)
	}
	return true
}

// ContainsPtr: una fecha ausente solo entra en una ventana sin límites.
func (r Range) ContainsPtr(t *time.Time) bool {
	if t == nil {
		return r.Unbounded()
	}
	return r.Contains(*t)
}

func (r Range) Unbounded() bool { return r.Start == nil && r.End == nil }

func ptr(t time.Time) *time.Time { return &t }

// Las ventanas relativas a asOf trabajan sobre su día UTC; la hora no cuenta.

// Before: < asOf.
func Before(asOf time.Time) Range {
	return Range{End: ptr(Day(asOf))}
}

// Upcoming: [asOf, asOf+days].
func Upcoming(asOf time.Time, days int) Range {
	d := Day(asOf)
	return Range{Start: ptr(d), End: ptr(d.AddDate(0, 0, days)), EndInclusive: true}
}

// Trailing: [asOf-days, asOf].
func Trailing(asOf time.Time, days int) Range {
	d := Day(asOf)
	return Range{Start: ptr(d.AddDate(0, 0, -days)), End: ptr(d), EndInclusive: true}
}

// Year: [1 ene y, 1 ene y+1) en UTC.
func Year(y int) Range {
	start := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: ptr(start), End: ptr(start.AddDate(1, 0, 0))}
}

// Sample es una fecha con peso (1 para conteos, número de terneros para partos).
type Sample struct {
	At       time.Time
	Quantity int
}

type MonthBucket struct {
	Month    int `json:"month"`
	Count    int `json:"count"`
	Quantity int `json:"quantity"`
}

type Monthly struct {
	Year    int           `json:"year"`
	Buckets []MonthBucket `json:"buckets"`
	Count   int           `json:"count"`
	Total   int           `json:"total"`
}

// GroupByMonth siempre devuelve 12 buckets; las muestras de otro año se ignoran.
func GroupByMonth(samples []Sample, year int) Monthly {
	out := Monthly{Year: year, Buckets: make([]MonthBucket, 12)}
	for i := range out.Buckets {
		out.Buckets[i].Month = i + 1
	}

	yr := Year(year)
	for _, s := range samples {
		at := s.At.UTC()
		if !yr.Contains(at) {
			continue
		}
		b := &out.Buckets[int(at.Month())-1]
		b.Count++
		b.Quantity += s.Quantity
		out.Count++
		out.Total += s.Quantity
	}
	return out
}

type Band string

const (
	BandCalf   Band = "calf"
	BandYoung  Band = "young"
	BandMature Band = "mature"
	BandSenior Band = "senior"
)

// Bands en orden de edad.
var Bands = []Band{BandCalf, BandYoung, BandMature, BandSenior}

// AgeBand: [0,12) calf, [12,36) young, [36,96) mature, [96,∞) senior.
func AgeBand(months int) Band {
	switch {
	case months < 12:
		return BandCalf
	case months < 36:
		return BandYoung
	case months < 96:
		return BandMature
	default:
		return BandSenior
	}
}

// CompleteMonths cuenta meses calendario cumplidos entre from y to (día incluido). Nunca negativo.
func CompleteMonths(from, to time.Time) int {
	from, to = from.UTC(), to.UTC()
	m := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		m--
	}
	return max(m, 0)
}

// CompleteYears es la edad "de cumpleaños".
func CompleteYears(from, to time.Time) int {
	return CompleteMonths(from, to) / 12
}

// DaysBetween en días calendario UTC (negativo si to es anterior a from).
func DaysBetween(from, to time.Time) int {
	f := Day(from)
	t := Day(to)
	return int(t.Sub(f).Hours() / 24)
}

// Day es la medianoche UTC de t.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
