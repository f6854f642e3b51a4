package router

import (
	"context"
	"fmt"

	mem "cattle-records/internal/adapters/storage/memory"
	"cattle-records/internal/adapters/storage/sqlstore"
	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/health"
	"cattle-records/internal/domain/reproduction"
	"cattle-records/internal/domain/vaccinations"
	"cattle-records/internal/platform/config"
)

type AnimalStore interface {
	animals.Repository
	animals.Stats
}

type HealthStore interface {
	health.Repository
	health.Stats
}

type VaccinationStore interface {
	vaccinations.Repository
	vaccinations.Stats
}

type ReproductionStore interface {
	reproduction.Repository
	reproduction.Stats
}

// Repos es el backend de las cuatro entidades. Los servicios escriben y reports lee del mismo.
type Repos struct {
	Animals      AnimalStore
	Health       HealthStore
	Vaccinations VaccinationStore
	Reproduction ReproductionStore

	// Ping lo usa /health; nil = siempre ok.
	Ping func(ctx context.Context) error
	// Close libera conexiones; nil si no hay nada que cerrar.
	Close func() error
}

func (r Repos) empty() bool {
	return r.Animals == nil || r.Health == nil || r.Vaccinations == nil || r.Reproduction == nil
}

func MemoryRepos(st *mem.Store) Repos {
	return Repos{
		Animals:      st.Animals(),
		Health:       st.Health(),
		Vaccinations: st.Vaccinations(),
		Reproduction: st.Reproduction(),
	}
}

func SQLRepos(st *sqlstore.Store) Repos {
	return Repos{
		Animals:      st.Animals(),
		Health:       st.Health(),
		Vaccinations: st.Vaccinations(),
		Reproduction: st.Reproduction(),
		Ping:         st.Ping,
		Close:        st.Close,
	}
}

// OpenStorage elige el backend según storage.driver. migrate aplica el esquema en los drivers SQL.
func OpenStorage(ctx context.Context, cfg config.Storage, migrate bool) (Repos, error) {
	switch cfg.Driver {
	case "", config.DriverMemory:
		return MemoryRepos(mem.NewStore()), nil
	case config.DriverPostgres, config.DriverSQLite:
		st, err := sqlstore.Open(ctx, cfg.Driver, cfg.DSN)
		if err != nil {
			return Repos{}, err
		}
		if migrate {
			if err := st.Migrate(ctx); err != nil {
				_ = st.Close()
				return Repos{}, err
			}
		}
		return SQLRepos(st), nil
	}
	return Repos{}, fmt.Errorf("router: unknown storage driver %q", cfg.Driver)
}
