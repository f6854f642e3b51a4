// Package sqlstore implementa los repositorios sobre database/sql, para Postgres (pgx) y SQLite (modernc).
// Las consultas usan placeholders $N, que aceptan los dos drivers.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Store agrupa la conexión; cada entidad expone su repositorio.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open abre el pool y hace ping. driver es "postgres" o "sqlite".
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	d := Dialect(strings.ToLower(strings.TrimSpace(driver)))

	var (
		db  *sql.DB
		err error
	)
	switch d {
	case Postgres:
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(30 * time.Minute)
	case SQLite:
		db, err = sql.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, err
		}
		// un solo escritor: las transacciones de parto se serializan
		db.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("sqlstore: unknown driver %q", driver)
	}

	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlstore: ping %s: %w", d, err)
	}
	return &Store{db: db, dialect: d}, nil
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Dialect() Dialect { return s.dialect }

// Ping lo usa el health check.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Migrate aplica el esquema del dialecto. Es idempotente (IF NOT EXISTS).
func (s *Store) Migrate(ctx context.Context) error {
	b, err := schemaFS.ReadFile("schema/" + string(s.dialect) + ".sql")
	if err != nil {
		return fmt.Errorf("sqlstore: schema for %s: %w", s.dialect, err)
	}
	for _, stmt := range strings.Split(string(b), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlstore: migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) Animals() *AnimalRepo { return &AnimalRepo{s: s} }

func (s *Store) Health() *HealthRepo { return &HealthRepo{s: s} }

func (s *Store) Vaccinations() *VaccinationRepo { return &VaccinationRepo{s: s} }

func (s *Store) Reproduction() *ReproductionRepo { return &ReproductionRepo{s: s} }
