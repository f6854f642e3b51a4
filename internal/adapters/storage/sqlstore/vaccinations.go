package sqlstore

import (
	"context"
	"strings"

	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/domain/vaccinations"
)

type VaccinationRepo struct {
	s *Store
}

const vaccinationCols = `v.id, v.animal_id, v.vaccine_name, v.injection_date, v.dosage, v.next_due_date, v.administered_by, v.recorded_by, v.created_at, v.updated_at`

func (r *VaccinationRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	_, err := r.s.db.ExecContext(ctx, `
		INSERT INTO vaccinations (
			id, animal_id, vaccine_name, injection_date, dosage,
			next_due_date, administered_by, recorded_by, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		v.ID,
		v.AnimalID,
		v.VaccineName,
		r.s.tv(v.InjectionDate),
		v.Dosage,
		r.s.ntv(v.NextDueDate),
		v.AdministeredBy,
		v.RecordedBy,
		r.s.tv(v.CreatedAt),
		r.s.tv(v.UpdatedAt),
	)
	return translate(err, "vaccination", "id", v.ID)
}

func (r *VaccinationRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	res, err := r.s.db.ExecContext(ctx, `
		UPDATE vaccinations
		SET
			vaccine_name = $2,
			injection_date = $3,
			dosage = $4,
			next_due_date = $5,
			administered_by = $6,
			updated_at = $7
		WHERE id = $1
	`,
		v.ID,
		v.VaccineName,
		r.s.tv(v.InjectionDate),
		v.Dosage,
		r.s.ntv(v.NextDueDate),
		v.AdministeredBy,
		r.s.tv(v.UpdatedAt),
	)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *VaccinationRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT `+vaccinationCols+` FROM vaccinations v WHERE v.id = $1`, id)
	v, err := scanVaccination(row)
	return v, translate(err, "vaccination", "id", id)
}

func (r *VaccinationRepo) List(ctx context.Context, f vaccinations.ListFilter) ([]vaccinations.Vaccination, int, error) {
	w := r.s.where()
	if f.AnimalID != "" {
		w.add("v.animal_id = %s", f.AnimalID)
	}
	if name := strings.TrimSpace(f.VaccineName); name != "" {
		w.add("LOWER(v.vaccine_name) = %s", strings.ToLower(name))
	}
	if f.From != nil {
		w.add("v.injection_date >= %s", *f.From)
	}
	if f.To != nil {
		w.add("v.injection_date <= %s", *f.To)
	}

	total, err := r.s.count(ctx, `SELECT COUNT(*) FROM vaccinations v`+w.sql(), w.args...)
	if err != nil {
		return nil, 0, err
	}
	p := f.Page.Defaulted()
	out, err := r.query(ctx, `SELECT `+vaccinationCols+` FROM vaccinations v`+w.sql()+
		` ORDER BY v.injection_date DESC, v.id ASC`+w.limit(p.Limit, p.Offset()), w.args...)
	return out, total, err
}

func (r *VaccinationRepo) CountByAnimal(ctx context.Context, animalID string) (int, error) {
	return r.s.count(ctx, `SELECT COUNT(*) FROM vaccinations WHERE animal_id = $1`, animalID)
}

func (r *VaccinationRepo) due(f vaccinations.DueFilter) (string, *where) {
	w := r.s.where()
	w.raw("v.next_due_date IS NOT NULL")
	w.window("v.next_due_date", f.Window)
	from := ` FROM vaccinations v`
	if f.ActiveOnly {
		from += ` JOIN animals a ON a.id = v.animal_id AND a.status = 'active'`
	}
	return from, w
}

func (r *VaccinationRepo) ListDue(ctx context.Context, f vaccinations.DueFilter) ([]vaccinations.Vaccination, error) {
	from, w := r.due(f)
	return r.query(ctx, `SELECT `+vaccinationCols+from+w.sql()+
		` ORDER BY v.next_due_date ASC, v.id ASC`+w.limit(f.Limit, 0), w.args...)
}

func (r *VaccinationRepo) CountDue(ctx context.Context, f vaccinations.DueFilter) (int, error) {
	from, w := r.due(f)
	n, err := r.s.count(ctx, `SELECT COUNT(*)`+from+w.sql(), w.args...)
	if f.Limit > 0 {
		n = min(n, f.Limit)
	}
	return n, err
}

func (r *VaccinationRepo) Recent(ctx context.Context, n int) ([]vaccinations.Vaccination, error) {
	w := r.s.where()
	return r.query(ctx, `SELECT `+vaccinationCols+` FROM vaccinations v ORDER BY v.created_at DESC, v.id ASC`+w.limit(n, 0), w.args...)
}

func (r *VaccinationRepo) LatestByAnimal(ctx context.Context, animalID string, n int) ([]vaccinations.Vaccination, error) {
	w := r.s.where()
	w.add("v.animal_id = %s", animalID)
	return r.query(ctx, `SELECT `+vaccinationCols+` FROM vaccinations v`+w.sql()+
		` ORDER BY v.injection_date DESC, v.id ASC`+w.limit(n, 0), w.args...)
}

var vaccinationDateCols = map[vaccinations.DateField]string{
	vaccinations.FieldInjectionDate: "injection_date",
	vaccinations.FieldNextDueDate:   "next_due_date",
}

func (r *VaccinationRepo) DateSamples(ctx context.Context, field vaccinations.DateField, rg timewindow.Range) ([]timewindow.Sample, error) {
	col, ok := vaccinationDateCols[field]
	if !ok {
		return nil, unknownField(field)
	}
	w := r.s.where()
	w.raw(col + " IS NOT NULL")
	w.window(col, rg)
	return r.s.samples(ctx, `SELECT `+col+`, 1 FROM vaccinations`+w.sql(), w.args...)
}

func (r *VaccinationRepo) query(ctx context.Context, q string, args ...any) ([]vaccinations.Vaccination, error) {
	rows, err := r.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccinations.Vaccination, 0)
	for rows.Next() {
		v, err := scanVaccination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanVaccination(row scanner) (vaccinations.Vaccination, error) {
	var (
		v                   vaccinations.Vaccination
		inj, next, cat, uat dbTime
	)
	if err := row.Scan(
		&v.ID,
		&v.AnimalID,
		&v.VaccineName,
		&inj,
		&v.Dosage,
		&next,
		&v.AdministeredBy,
		&v.RecordedBy,
		&cat,
		&uat,
	); err != nil {
		return vaccinations.Vaccination{}, err
	}
	v.InjectionDate = inj.T
	v.NextDueDate = next.Ptr()
	v.CreatedAt = cat.T
	v.UpdatedAt = uat.T
	return v, nil
}
