package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/reproduction"
	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/platform/apperr"
)

type ReproductionRepo struct {
	s *Store
}

const eventCols = `e.id, e.mother_id, e.mating_date, e.method, e.bull_id, e.pregnancy_confirmed_date, e.expected_due_date, e.birth_date, e.number_of_calves, e.complications, e.notes, e.recorded_by, e.created_at, e.updated_at`

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *ReproductionRepo) Create(ctx context.Context, ev reproduction.Event) error {
	_, err := r.s.db.ExecContext(ctx, `
		INSERT INTO reproduction_events (
			id, mother_id, mating_date, method, bull_id,
			pregnancy_confirmed_date, expected_due_date, birth_date,
			number_of_calves, complications, notes, recorded_by, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		ev.ID,
		ev.MotherID,
		r.s.ntv(ev.MatingDate),
		string(ev.Method),
		ev.BullID,
		r.s.ntv(ev.PregnancyConfirmedDate),
		r.s.ntv(ev.ExpectedDueDate),
		r.s.ntv(ev.BirthDate),
		ev.NumberOfCalves,
		ev.Complications,
		ev.Notes,
		ev.RecordedBy,
		r.s.tv(ev.CreatedAt),
		r.s.tv(ev.UpdatedAt),
	)
	return translate(err, "reproduction event", "id", ev.ID)
}

// Update no toca el parto; solo aplica con birth_date NULL.
func (r *ReproductionRepo) Update(ctx context.Context, ev reproduction.Event) error {
	res, err := r.s.db.ExecContext(ctx, `
		UPDATE reproduction_events
		SET
			mating_date = $2,
			method = $3,
			bull_id = $4,
			pregnancy_confirmed_date = $5,
			expected_due_date = $6,
			complications = $7,
			notes = $8,
			updated_at = $9
		WHERE id = $1 AND birth_date IS NULL
	`,
		ev.ID,
		r.s.ntv(ev.MatingDate),
		string(ev.Method),
		ev.BullID,
		r.s.ntv(ev.PregnancyConfirmedDate),
		r.s.ntv(ev.ExpectedDueDate),
		ev.Complications,
		ev.Notes,
		r.s.tv(ev.UpdatedAt),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.whyUnchanged(ctx, r.s.db, ev.ID, "birth already recorded, event is closed")
	}
	return nil
}

// whyUnchanged distingue evento inexistente de evento cerrado.
func (r *ReproductionRepo) whyUnchanged(ctx context.Context, q querier, id, msg string) error {
	var closed bool
	err := q.QueryRowContext(ctx, `SELECT birth_date IS NOT NULL FROM reproduction_events WHERE id = $1`, id).Scan(&closed)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.ErrNotFound
	case err != nil:
		return err
	case closed:
		return apperr.InvalidState("reproduction event", id, msg)
	}
	return fmt.Errorf("sqlstore: reproduction event %s not updated", id)
}

func (r *ReproductionRepo) GetByID(ctx context.Context, id string) (reproduction.Event, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT `+eventCols+` FROM reproduction_events e WHERE e.id = $1`, id)
	ev, err := scanEvent(row)
	if err != nil {
		return reproduction.Event{}, translate(err, "reproduction event", "id", id)
	}
	if err := r.loadCalves(ctx, []*reproduction.Event{&ev}); err != nil {
		return reproduction.Event{}, err
	}
	return ev, nil
}

func (r *ReproductionRepo) List(ctx context.Context, f reproduction.ListFilter) ([]reproduction.Event, int, error) {
	w := r.s.where()
	if f.MotherID != "" {
		w.add("e.mother_id = %s", f.MotherID)
	}
	switch f.State {
	case reproduction.StateClosed:
		w.raw("e.birth_date IS NOT NULL")
	case reproduction.StatePregnant:
		w.raw("e.birth_date IS NULL AND e.pregnancy_confirmed_date IS NOT NULL")
	case reproduction.StateOpen:
		w.raw("e.birth_date IS NULL AND e.pregnancy_confirmed_date IS NULL")
	}

	total, err := r.s.count(ctx, `SELECT COUNT(*) FROM reproduction_events e`+w.sql(), w.args...)
	if err != nil {
		return nil, 0, err
	}
	p := f.Page.Defaulted()
	out, err := r.query(ctx, `SELECT `+eventCols+` FROM reproduction_events e`+w.sql()+
		` ORDER BY e.created_at DESC, e.id ASC`+w.limit(p.Limit, p.Offset()), w.args...)
	return out, total, err
}

func (r *ReproductionRepo) CountByMother(ctx context.Context, motherID string) (int, error) {
	return r.s.count(ctx, `SELECT COUNT(*) FROM reproduction_events WHERE mother_id = $1`, motherID)
}

// RecordBirth cierra el evento y da de alta las crías en una transacción.
// El UPDATE condicional hace que de dos partos concurrentes gane uno solo.
func (r *ReproductionRepo) RecordBirth(ctx context.Context, ev reproduction.Event, calves []animals.Animal) (err error) {
	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE reproduction_events
		SET
			birth_date = $2,
			number_of_calves = $3,
			complications = $4,
			notes = $5,
			updated_at = $6
		WHERE id = $1 AND birth_date IS NULL
	`,
		ev.ID,
		r.s.ntv(ev.BirthDate),
		ev.NumberOfCalves,
		ev.Complications,
		ev.Notes,
		r.s.tv(ev.UpdatedAt),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.whyUnchanged(ctx, tx, ev.ID, "birth already recorded")
	}

	animalsRepo := r.s.Animals()
	for _, c := range calves {
		if err = animalsRepo.insert(ctx, tx, c); err != nil {
			return err
		}
	}
	for i, c := range ev.CalfDetails {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO reproduction_calves (event_id, position, gender, tag, animal_id)
			VALUES ($1,$2,$3,$4,$5)
		`, ev.ID, i, string(c.Gender), c.Tag, c.AnimalID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ReproductionRepo) open(f reproduction.OpenFilter) (string, *where) {
	w := r.s.where()
	w.raw("e.birth_date IS NULL")
	if f.PregnantOnly {
		w.raw("e.pregnancy_confirmed_date IS NOT NULL")
	}
	// un rango acotado excluye eventos sin fecha probable
	if f.Due.Start != nil || f.Due.End != nil {
		w.raw("e.expected_due_date IS NOT NULL")
		w.window("e.expected_due_date", f.Due)
	}
	from := ` FROM reproduction_events e`
	if f.ActiveOnly {
		from += ` JOIN animals a ON a.id = e.mother_id AND a.status = 'active'`
	}
	return from, w
}

func (r *ReproductionRepo) ListOpen(ctx context.Context, f reproduction.OpenFilter) ([]reproduction.Event, error) {
	from, w := r.open(f)
	return r.query(ctx, `SELECT `+eventCols+from+w.sql()+
		` ORDER BY e.expected_due_date IS NULL, e.expected_due_date ASC, e.id ASC`+w.limit(f.Limit, 0), w.args...)
}

func (r *ReproductionRepo) CountOpen(ctx context.Context, f reproduction.OpenFilter) (int, error) {
	from, w := r.open(f)
	n, err := r.s.count(ctx, `SELECT COUNT(*)`+from+w.sql(), w.args...)
	if f.Limit > 0 {
		n = min(n, f.Limit)
	}
	return n, err
}

func (r *ReproductionRepo) ListByMother(ctx context.Context, motherID string) ([]reproduction.Event, error) {
	return r.query(ctx, `SELECT `+eventCols+` FROM reproduction_events e WHERE e.mother_id = $1 ORDER BY e.created_at DESC, e.id ASC`, motherID)
}

var eventDateCols = map[reproduction.DateField]string{
	reproduction.FieldMatingDate:             "mating_date",
	reproduction.FieldPregnancyConfirmedDate: "pregnancy_confirmed_date",
	reproduction.FieldExpectedDueDate:        "expected_due_date",
	reproduction.FieldBirthDate:              "birth_date",
}

func (r *ReproductionRepo) DateSamples(ctx context.Context, field reproduction.DateField, rg timewindow.Range) ([]timewindow.Sample, error) {
	col, ok := eventDateCols[field]
	if !ok {
		return nil, unknownField(field)
	}
	w := r.s.where()
	w.raw(col + " IS NOT NULL")
	w.window(col, rg)
	return r.s.samples(ctx, `SELECT `+col+`, number_of_calves FROM reproduction_events`+w.sql(), w.args...)
}

// query lee todos los eventos antes de cargar crías: con SQLite hay una sola conexión.
func (r *ReproductionRepo) query(ctx context.Context, q string, args ...any) ([]reproduction.Event, error) {
	rows, err := r.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	out := make([]reproduction.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	ptrs := make([]*reproduction.Event, 0, len(out))
	for i := range out {
		if out[i].BirthDate != nil {
			ptrs = append(ptrs, &out[i])
		}
	}
	if err := r.loadCalves(ctx, ptrs); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReproductionRepo) loadCalves(ctx context.Context, evs []*reproduction.Event) error {
	for _, ev := range evs {
		rows, err := r.s.db.QueryContext(ctx, `
			SELECT gender, tag, animal_id
			FROM reproduction_calves
			WHERE event_id = $1
			ORDER BY position ASC
		`, ev.ID)
		if err != nil {
			return err
		}
		calves := []reproduction.Calf{}
		for rows.Next() {
			var (
				c      reproduction.Calf
				gender string
			)
			if err := rows.Scan(&gender, &c.Tag, &c.AnimalID); err != nil {
				rows.Close()
				return err
			}
			c.Gender = animals.Gender(gender)
			calves = append(calves, c)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return err
		}
		ev.CalfDetails = calves
	}
	return nil
}

func scanEvent(row scanner) (reproduction.Event, error) {
	var (
		ev                                      reproduction.Event
		method                                  string
		mating, confirmed, due, birth, cat, uat dbTime
	)
	if err := row.Scan(
		&ev.ID,
		&ev.MotherID,
		&mating,
		&method,
		&ev.BullID,
		&confirmed,
		&due,
		&birth,
		&ev.NumberOfCalves,
		&ev.Complications,
		&ev.Notes,
		&ev.RecordedBy,
		&cat,
		&uat,
	); err != nil {
		return reproduction.Event{}, err
	}
	ev.Method = reproduction.Method(method)
	ev.CalfDetails = []reproduction.Calf{}
	ev.MatingDate = mating.Ptr()
	ev.PregnancyConfirmedDate = confirmed.Ptr()
	ev.ExpectedDueDate = due.Ptr()
	ev.BirthDate = birth.Ptr()
	ev.CreatedAt = cat.T
	ev.UpdatedAt = uat.T
	return ev, nil
}
