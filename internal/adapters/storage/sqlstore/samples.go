package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"cattle-records/internal/domain/timewindow"
	"cattle-records/internal/platform/apperr"
)

// samples espera filas (fecha, cantidad); las fechas NULL se descartan.
func (s *Store) samples(ctx context.Context, q string, args ...any) ([]timewindow.Sample, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]timewindow.Sample, 0)
	for rows.Next() {
		var (
			at  dbTime
			qty int
		)
		if err := rows.Scan(&at, &qty); err != nil {
			return nil, err
		}
		if at.Valid {
			out = append(out, timewindow.Sample{At: at.T, Quantity: qty})
		}
	}
	return out, rows.Err()
}

func (s *Store) count(ctx context.Context, q string, args ...any) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, q, args...).Scan(&n)
	return n, err
}

func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func unknownField[F ~string](f F) error {
	return apperr.Validation("field", fmt.Sprintf("unknown date field %q", string(f)))
}
