package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cattle-records/internal/domain/timewindow"
)

// timeLayout es de ancho fijo: en SQLite las fechas son TEXT y se comparan como strings.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// tv adapta un time.Time al dialecto.
func (s *Store) tv(t time.Time) any {
	t = t.UTC()
	if s.dialect == SQLite {
		return t.Format(timeLayout)
	}
	return t
}

func (s *Store) ntv(t *time.Time) any {
	if t == nil {
		return nil
	}
	return s.tv(*t)
}

// dbTime escanea tanto time.Time (pgx) como TEXT (sqlite).
type dbTime struct {
	T     time.Time
	Valid bool
}

func (d *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.T, d.Valid = time.Time{}, false
		return nil
	case time.Time:
		d.T, d.Valid = v.UTC(), true
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	}
	return fmt.Errorf("sqlstore: cannot scan %T into time", src)
}

func (d *dbTime) parse(s string) error {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("sqlstore: bad time %q: %w", s, err)
	}
	d.T, d.Valid = t.UTC(), true
	return nil
}

func (d dbTime) Ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.T
	return &t
}

var _ sql.Scanner = (*dbTime)(nil)

// where arma condiciones con placeholders numerados.
type where struct {
	s     *Store
	conds []string
	args  []any
}

func (s *Store) where() *where { return &where{s: s} }

// arg agrega un valor y devuelve su placeholder.
func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *where) at(t time.Time) string { return w.arg(w.s.tv(t)) }

// add: cond usa %s por cada valor, en orden.
func (w *where) add(cond string, vals ...any) {
	ph := make([]any, 0, len(vals))
	for _, v := range vals {
		if t, ok := v.(time.Time); ok {
			ph = append(ph, w.at(t))
			continue
		}
		ph = append(ph, w.arg(v))
	}
	w.conds = append(w.conds, fmt.Sprintf(cond, ph...))
}

func (w *where) raw(cond string) { w.conds = append(w.conds, cond) }

// window filtra col por el rango. col debe ser NOT NULL o ya estar filtrada.
func (w *where) window(col string, r timewindow.Range) {
	if r.Start != nil {
		w.add(col+" >= %s", *r.Start)
	}
	if r.End != nil {
		if r.EndInclusive {
			w.add(col+" <= %s", *r.End)
		} else {
			w.add(col+" < %s", *r.End)
		}
	}
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// limit agrega LIMIT/OFFSET con placeholders.
func (w *where) limit(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	out := " LIMIT " + w.arg(limit)
	if offset > 0 {
		out += " OFFSET " + w.arg(offset)
	}
	return out
}

type scanner interface {
	Scan(dest ...any) error
}
