package sqlstore

import (
	"context"

	"cattle-records/internal/domain/health"
	"cattle-records/internal/domain/timewindow"
)

type HealthRepo struct {
	s *Store
}

const healthCols = `id, animal_id, observation_date, symptoms, diagnosis, treatment, vet_name, follow_up_date, recorded_by, created_at, updated_at`

func (r *HealthRepo) Create(ctx context.Context, rec health.Record) error {
	_, err := r.s.db.ExecContext(ctx, `
		INSERT INTO health_records (`+healthCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		rec.ID,
		rec.AnimalID,
		r.s.tv(rec.ObservationDate),
		rec.Symptoms,
		rec.Diagnosis,
		rec.Treatment,
		rec.VetName,
		r.s.ntv(rec.FollowUpDate),
		rec.RecordedBy,
		r.s.tv(rec.CreatedAt),
		r.s.tv(rec.UpdatedAt),
	)
	return translate(err, "health record", "id", rec.ID)
}

func (r *HealthRepo) Update(ctx context.Context, rec health.Record) error {
	res, err := r.s.db.ExecContext(ctx, `
		UPDATE health_records
		SET
			observation_date = $2,
			symptoms = $3,
			diagnosis = $4,
			treatment = $5,
			vet_name = $6,
			follow_up_date = $7,
			updated_at = $8
		WHERE id = $1
	`,
		rec.ID,
		r.s.tv(rec.ObservationDate),
		rec.Symptoms,
		rec.Diagnosis,
		rec.Treatment,
		rec.VetName,
		r.s.ntv(rec.FollowUpDate),
		r.s.tv(rec.UpdatedAt),
	)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *HealthRepo) GetByID(ctx context.Context, id string) (health.Record, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT `+healthCols+` FROM health_records WHERE id = $1`, id)
	rec, err := scanHealth(row)
	return rec, translate(err, "health record", "id", id)
}

func (r *HealthRepo) List(ctx context.Context, f health.ListFilter) ([]health.Record, int, error) {
	w := r.s.where()
	if f.AnimalID != "" {
		w.add("animal_id = %s", f.AnimalID)
	}
	if f.From != nil {
		w.add("observation_date >= %s", *f.From)
	}
	if f.To != nil {
		w.add("observation_date <= %s", *f.To)
	}

	total, err := r.s.count(ctx, `SELECT COUNT(*) FROM health_records`+w.sql(), w.args...)
	if err != nil {
		return nil, 0, err
	}
	p := f.Page.Defaulted()
	out, err := r.query(ctx, `SELECT `+healthCols+` FROM health_records`+w.sql()+
		` ORDER BY observation_date DESC, id ASC`+w.limit(p.Limit, p.Offset()), w.args...)
	return out, total, err
}

func (r *HealthRepo) CountByAnimal(ctx context.Context, animalID string) (int, error) {
	return r.s.count(ctx, `SELECT COUNT(*) FROM health_records WHERE animal_id = $1`, animalID)
}

func (r *HealthRepo) ListFollowUps(ctx context.Context, rg timewindow.Range) ([]health.Record, error) {
	w := r.s.where()
	w.raw("follow_up_date IS NOT NULL")
	w.window("follow_up_date", rg)
	return r.query(ctx, `SELECT `+healthCols+` FROM health_records`+w.sql()+` ORDER BY follow_up_date ASC, id ASC`, w.args...)
}

func (r *HealthRepo) CountObserved(ctx context.Context, rg timewindow.Range) (int, error) {
	w := r.s.where()
	w.window("observation_date", rg)
	return r.s.count(ctx, `SELECT COUNT(*) FROM health_records`+w.sql(), w.args...)
}

func (r *HealthRepo) Recent(ctx context.Context, n int) ([]health.Record, error) {
	w := r.s.where()
	return r.query(ctx, `SELECT `+healthCols+` FROM health_records ORDER BY created_at DESC, id ASC`+w.limit(n, 0), w.args...)
}

func (r *HealthRepo) LatestByAnimal(ctx context.Context, animalID string, n int) ([]health.Record, error) {
	w := r.s.where()
	w.add("animal_id = %s", animalID)
	return r.query(ctx, `SELECT `+healthCols+` FROM health_records`+w.sql()+
		` ORDER BY observation_date DESC, id ASC`+w.limit(n, 0), w.args...)
}

var healthDateCols = map[health.DateField]string{
	health.FieldObservationDate: "observation_date",
	health.FieldFollowUpDate:    "follow_up_date",
}

func (r *HealthRepo) DateSamples(ctx context.Context, field health.DateField, rg timewindow.Range) ([]timewindow.Sample, error) {
	col, ok := healthDateCols[field]
	if !ok {
		return nil, unknownField(field)
	}
	w := r.s.where()
	w.raw(col + " IS NOT NULL")
	w.window(col, rg)
	return r.s.samples(ctx, `SELECT `+col+`, 1 FROM health_records`+w.sql(), w.args...)
}

func (r *HealthRepo) query(ctx context.Context, q string, args ...any) ([]health.Record, error) {
	rows, err := r.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]health.Record, 0)
	for rows.Next() {
		rec, err := scanHealth(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanHealth(row scanner) (health.Record, error) {
	var (
		rec                  health.Record
		obs, follow, cat, ut dbTime
	)
	if err := row.Scan(
		&rec.ID,
		&rec.AnimalID,
		&obs,
		&rec.Symptoms,
		&rec.Diagnosis,
		&rec.Treatment,
		&rec.VetName,
		&follow,
		&rec.RecordedBy,
		&cat,
		&ut,
	); err != nil {
		return health.Record{}, err
	}
	rec.ObservationDate = obs.T
	rec.FollowUpDate = follow.Ptr()
	rec.CreatedAt = cat.T
	rec.UpdatedAt = ut.T
	return rec, nil
}
