package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "cattle-records/docs"
	mem "cattle-records/internal/adapters/storage/memory"
	"cattle-records/internal/domain/animals"
	"cattle-records/internal/domain/health"
	"cattle-records/internal/domain/reports"
	"cattle-records/internal/domain/reproduction"
	"cattle-records/internal/domain/vaccinations"
	"cattle-records/internal/middleware"
	"cattle-records/internal/platform/config"
	"cattle-records/internal/platform/logger"
	"cattle-records/internal/platform/metrics"
	"cattle-records/internal/platform/paging"
	"cattle-records/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.Verifier // puede ser nil (modo dev)

	// Repos vacío => in-memory.
	Repos Repos

	// Config cero => config.Default().
	Config  *config.Config
	Logger  logger.Logger
	Metrics *metrics.Registry

	// Now para tests; default time.Now.
	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	reg := opts.Metrics
	if reg == nil {
		reg = metrics.New()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	repos := opts.Repos
	if repos.empty() {
		repos = MemoryRepos(mem.NewStore())
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))
	r.Use(reg.Middleware)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", healthHandler(repos.Ping))
	r.Method(http.MethodGet, "/metrics", reg.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	animalsSvc := animals.NewService(repos.Animals,
		animals.WithLogger(log.With(map[string]any{"module": "animals"})),
		animals.WithClock(now),
	)
	healthSvc := health.NewService(repos.Health, animalsSvc,
		health.WithLogger(log.With(map[string]any{"module": "health"})),
		health.WithClock(now),
	)
	vaccinationsSvc := vaccinations.NewService(repos.Vaccinations, animalsSvc,
		vaccinations.WithLogger(log.With(map[string]any{"module": "vaccinations"})),
		vaccinations.WithClock(now),
	)
	reproductionSvc := reproduction.NewService(repos.Reproduction, animalsSvc,
		reproduction.WithLogger(log.With(map[string]any{"module": "reproduction"})),
		reproduction.WithObserver(reg),
		reproduction.WithClock(now),
	)
	// animals no se puede dar de baja con historia en estos módulos
	animalsSvc.AddHistory(healthSvc, vaccinationsSvc, reproductionSvc)
	animalsSvc.AddMotherHistory(reproductionSvc)

	reportsSvc := reports.NewService(reports.Sources{
		Animals:      repos.Animals,
		Health:       repos.Health,
		Vaccinations: repos.Vaccinations,
		Reproduction: repos.Reproduction,
	}, reports.Windows{
		UpcomingVaccinationDays: cfg.Reports.UpcomingVaccinationDays,
		DashboardUpcomingDays:   cfg.Reports.DashboardUpcomingDays,
		FollowUpDays:            cfg.Reports.FollowUpDays,
		RecentHealthDays:        cfg.Reports.RecentHealthDays,
	}, reports.WithClock(now))

	pol := paging.Policy{DefaultLimit: cfg.Paging.DefaultLimit, MaxLimit: cfg.Paging.MaxLimit}

	// Rutas por módulo, todas con usuario identificado
	r.Group(func(api chi.Router) {
		api.Use(middleware.RequireIdentity)

		animals.RegisterRoutes(api, animalsSvc, pol)
		health.RegisterRoutes(api, healthSvc, pol)
		vaccinations.RegisterRoutes(api, vaccinationsSvc, pol)
		reproduction.RegisterRoutes(api, reproductionSvc, pol)
		reports.RegisterRoutes(api, reportsSvc)
	})

	return r
}

func healthHandler(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
