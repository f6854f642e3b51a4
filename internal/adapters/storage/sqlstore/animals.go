package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/platform/apperr"
)

type AnimalRepo struct {
	s *Store
}

const animalCols = `id, tag, name, gender, breed, date_of_birth, mother_id, status, notes, created_by, created_at, updated_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *AnimalRepo) insert(ctx context.Context, db execer, a animals.Animal) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO animals (`+animalCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		a.ID,
		a.Tag,
		a.Name,
		string(a.Gender),
		a.Breed,
		r.s.tv(a.DateOfBirth),
		a.MotherID,
		string(a.Status),
		a.Notes,
		a.CreatedBy,
		r.s.tv(a.CreatedAt),
		r.s.tv(a.UpdatedAt),
	)
	return translate(err, "animal", "tag", a.Tag)
}

func (r *AnimalRepo) Create(ctx context.Context, a animals.Animal) error {
	return r.insert(ctx, r.s.db, a)
}

func (r *AnimalRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.s.db.ExecContext(ctx, `
		UPDATE animals
		SET
			tag = $2,
			name = $3,
			gender = $4,
			breed = $5,
			date_of_birth = $6,
			mother_id = $7,
			notes = $8,
			updated_at = $9
		WHERE id = $1
	`,
		a.ID,
		a.Tag,
		a.Name,
		string(a.Gender),
		a.Breed,
		r.s.tv(a.DateOfBirth),
		a.MotherID,
		a.Notes,
		r.s.tv(a.UpdatedAt),
	)
	if err != nil {
		return translate(err, "animal", "tag", a.Tag)
	}
	return mustAffect(res)
}

// ChangeStatus es un compare-and-set sobre status.
func (r *AnimalRepo) ChangeStatus(ctx context.Context, id string, from, to animals.Status, at time.Time) error {
	res, err := r.s.db.ExecContext(ctx, `
		UPDATE animals
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`, id, string(from), string(to), r.s.tv(at))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var cur string
	if err := r.s.db.QueryRowContext(ctx, `SELECT status FROM animals WHERE id = $1`, id).Scan(&cur); err != nil {
		return translate(err, "animal", "id", id)
	}
	return apperr.InvalidState("animal", id, fmt.Sprintf("status is %s, not %s", cur, from))
}

func (r *AnimalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT `+animalCols+` FROM animals WHERE id = $1`, strings.TrimSpace(id))
	a, err := scanAnimal(row)
	return a, translate(err, "animal", "id", id)
}

func (r *AnimalRepo) GetByTag(ctx context.Context, tag string) (animals.Animal, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT `+animalCols+` FROM animals WHERE tag = $1`, tag)
	a, err := scanAnimal(row)
	return a, translate(err, "animal", "tag", tag)
}

func (r *AnimalRepo) List(ctx context.Context, f animals.ListFilter) ([]animals.Animal, int, error) {
	w := r.s.where()
	if f.Status != "" {
		w.add("status = %s", string(f.Status))
	}
	if f.Gender != "" {
		w.add("gender = %s", string(f.Gender))
	}
	if f.Breed != "" {
		w.add("LOWER(breed) = %s", strings.ToLower(f.Breed))
	}
	if f.MotherID != "" {
		w.add("mother_id = %s", f.MotherID)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		ph := w.arg("%" + strings.ToLower(q) + "%")
		w.raw("(LOWER(tag) LIKE " + ph + " OR LOWER(name) LIKE " + ph + ")")
	}

	var total int
	if err := r.s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM animals`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	p := f.Page.Defaulted()
	q := `SELECT ` + animalCols + ` FROM animals` + w.sql() + ` ORDER BY created_at DESC, id ASC` + w.limit(p.Limit, p.Offset())
	out, err := r.query(ctx, q, w.args...)
	return out, total, err
}

// ListByMother ordena por nacimiento, el más chico primero.
func (r *AnimalRepo) ListByMother(ctx context.Context, motherID string) ([]animals.Animal, error) {
	return r.query(ctx, `SELECT `+animalCols+` FROM animals WHERE mother_id = $1 ORDER BY date_of_birth DESC, tag ASC`, motherID)
}

func (r *AnimalRepo) CountByStatus(ctx context.Context) (map[animals.Status]int, error) {
	rows, err := r.s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM animals GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[animals.Status]int{}
	for rows.Next() {
		var (
			st string
			n  int
		)
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[animals.Status(st)] = n
	}
	return out, rows.Err()
}

func (r *AnimalRepo) CountActiveByGender(ctx context.Context) (map[animals.Gender]int, error) {
	rows, err := r.s.db.QueryContext(ctx, `SELECT gender, COUNT(*) FROM animals WHERE status = 'active' GROUP BY gender`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[animals.Gender]int{}
	for rows.Next() {
		var (
			g string
			n int
		)
		if err := rows.Scan(&g, &n); err != nil {
			return nil, err
		}
		out[animals.Gender(g)] = n
	}
	return out, rows.Err()
}

func (r *AnimalRepo) ActiveBreedCounts(ctx context.Context) ([]animals.BreedCount, error) {
	rows, err := r.s.db.QueryContext(ctx, `
		SELECT breed, COUNT(*) AS n
		FROM animals
		WHERE status = 'active'
		GROUP BY breed
		ORDER BY n DESC, breed ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.BreedCount, 0)
	for rows.Next() {
		var bc animals.BreedCount
		if err := rows.Scan(&bc.Breed, &bc.Count); err != nil {
			return nil, err
		}
		out = append(out, bc)
	}
	return out, rows.Err()
}

func (r *AnimalRepo) ListActive(ctx context.Context) ([]animals.Animal, error) {
	return r.query(ctx, `SELECT `+animalCols+` FROM animals WHERE status = 'active' ORDER BY tag ASC`)
}

func (r *AnimalRepo) Recent(ctx context.Context, n int) ([]animals.Animal, error) {
	w := r.s.where()
	return r.query(ctx, `SELECT `+animalCols+` FROM animals ORDER BY created_at DESC, id ASC`+w.limit(n, 0), w.args...)
}

var animalDateCols = map[animals.DateField]string{
	animals.FieldDateOfBirth: "date_of_birth",
	animals.FieldCreatedAt:   "created_at",
}

func (r *AnimalRepo) DateSamples(ctx context.Context, field animals.DateField, rg timewindow.Range) ([]timewindow.Sample, error) {
	col, ok := animalDateCols[field]
	if !ok {
		return nil, unknownField(field)
	}
	w := r.s.where()
	w.window(col, rg)
	return r.s.samples(ctx, `SELECT `+col+`, 1 FROM animals`+w.sql(), w.args...)
}

func (r *AnimalRepo) query(ctx context.Context, q string, args ...any) ([]animals.Animal, error) {
	rows, err := r.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAnimal(row scanner) (animals.Animal, error) {
	var (
		a              animals.Animal
		gender, status string
		mother         sql.NullString
		dob, cat, uat  dbTime
	)
	if err := row.Scan(
		&a.ID,
		&a.Tag,
		&a.Name,
		&gender,
		&a.Breed,
		&dob,
		&mother,
		&status,
		&a.Notes,
		&a.CreatedBy,
		&cat,
		&uat,
	); err != nil {
		return animals.Animal{}, err
	}
	a.Gender = animals.Gender(gender)
	a.Status = animals.Status(status)
	a.DateOfBirth = dob.T
	a.CreatedAt = cat.T
	a.UpdatedAt = uat.T
	if mother.Valid {
		m := mother.String
		a.MotherID = &m
	}
	return a, nil
}
