package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/ccis-arch/avacc/docs"
	"github.com/ccis-arch/avacc/internal/access"
	mem "github.com/ccis-arch/avacc/internal/adapters/storage/memory"
	pg "github.com/ccis-arch/avacc/internal/adapters/storage/postgres"
	"github.com/ccis-arch/avacc/internal/domain/breeds"
	"github.com/ccis-arch/avacc/internal/domain/dashboard"
	"github.com/ccis-arch/avacc/internal/domain/inventory"
	"github.com/ccis-arch/avacc/internal/domain/locations"
	"github.com/ccis-arch/avacc/internal/domain/owners"
	"github.com/ccis-arch/avacc/internal/domain/pets"
	"github.com/ccis-arch/avacc/internal/domain/reports"
	"github.com/ccis-arch/avacc/internal/domain/schedules"
	"github.com/ccis-arch/avacc/internal/domain/users"
	"github.com/ccis-arch/avacc/internal/domain/vaccinations"
	"github.com/ccis-arch/avacc/internal/domain/vaccines"
	"github.com/ccis-arch/avacc/internal/middleware"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
	"github.com/ccis-arch/avacc/internal/platform/logger"
	"github.com/ccis-arch/avacc/internal/platform/metrics"
	"github.com/ccis-arch/avacc/internal/ports/auth"
	"github.com/ccis-arch/avacc/internal/ports/cache"
	"github.com/ccis-arch/avacc/internal/ports/notify"
)

const defaultCacheTTL = 10 * time.Minute

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcionales: sin Cache los catálogos van directo al store;
	// sin Publisher las alertas solo quedan persistidas.
	Cache     cache.Cache
	CacheTTL  time.Duration
	Publisher notify.Publisher

	Logger  logger.Logger
	Metrics *metrics.Metrics

	// OwnerIdentity recibe rol admin al iniciar sesión.
	OwnerIdentity string

	// EnforceTransitions valida las tablas de transición de estado en updates.
	EnforceTransitions bool
}

type repos struct {
	users        users.Repository
	owners       owners.Repository
	breeds       breeds.Repository
	vaccineTypes vaccines.Repository
	locations    locations.Repository
	pets         pets.Repository
	vaccinations vaccinations.Repository
	schedules    schedules.Repository
	inventory    inventory.Repository
	alerts       inventory.AlertRepository
}

func memoryRepos() repos {
	return repos{
		users:        mem.NewUserRepo(),
		owners:       mem.NewOwnerRepo(),
		breeds:       mem.NewBreedRepo(),
		vaccineTypes: mem.NewVaccineTypeRepo(),
		locations:    mem.NewLocationRepo(),
		pets:         mem.NewPetRepo(),
		vaccinations: mem.NewVaccinationRepo(),
		schedules:    mem.NewScheduleRepo(),
		inventory:    mem.NewInventoryRepo(),
		alerts:       mem.NewAlertRepo(),
	}
}

func postgresRepos(db *sql.DB) repos {
	return repos{
		users:        pg.NewUsersRepo(db),
		owners:       pg.NewOwnersRepo(db),
		breeds:       pg.NewBreedsRepo(db),
		vaccineTypes: pg.NewVaccineTypesRepo(db),
		locations:    pg.NewLocationsRepo(db),
		pets:         pg.NewPetsRepo(db),
		vaccinations: pg.NewVaccinationsRepo(db),
		schedules:    pg.NewSchedulesRepo(db),
		inventory:    pg.NewInventoryRepo(db),
		alerts:       pg.NewAlertsRepo(db),
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	rp := memoryRepos()
	if opts.DB != nil {
		rp = postgresRepos(opts.DB)
	}

	// Services por módulo
	co := cache.Options{Cache: opts.Cache, TTL: ttl, Observe: m.CacheLookup}

	usersSvc := users.NewService(rp.users, users.BootstrapPolicy{OwnerIdentity: opts.OwnerIdentity})
	ownersSvc := owners.NewService(rp.owners)
	breedsSvc := breeds.NewService(rp.breeds, co)
	vaccinesSvc := vaccines.NewService(rp.vaccineTypes, co)
	locationsSvc := locations.NewService(rp.locations, co)
	petsSvc := pets.NewService(rp.pets, ownersSvc, breedsSvc)
	vaccinationsSvc := vaccinations.NewService(rp.vaccinations, vaccinesSvc, locationsSvc, petsSvc, opts.EnforceTransitions)
	schedulesSvc := schedules.NewService(rp.schedules, petsSvc, vaccinesSvc, locationsSvc, opts.EnforceTransitions)
	inventorySvc := inventory.NewService(rp.inventory, rp.alerts, vaccinesSvc, locationsSvc, inventory.Options{
		Publisher:          opts.Publisher,
		OnAlert:            m.AlertRaised,
		OnEvaluateFailure:  m.AlertEvaluationFailed,
		Log:                log.With(map[string]any{"module": "inventory"}),
		EnforceTransitions: opts.EnforceTransitions,
	})
	dashboardSvc := dashboard.NewService(vaccinationsSvc, schedulesSvc, inventorySvc)
	reportsSvc := reports.NewService(inventorySvc, petsSvc)

	gate := access.NewGate(access.NewResolver(petsSvc, ownersSvc), m.Deny)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log, m))
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier, usersSvc, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ready", readyHandler(opts.DB, opts.Cache, log))
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, gate)
	owners.RegisterRoutes(r, ownersSvc, gate)
	breeds.RegisterRoutes(r, breedsSvc, gate)
	vaccines.RegisterRoutes(r, vaccinesSvc, gate)
	locations.RegisterRoutes(r, locationsSvc, gate)
	pets.RegisterRoutes(r, petsSvc, gate)
	vaccinations.RegisterRoutes(r, vaccinationsSvc, gate)
	schedules.RegisterRoutes(r, schedulesSvc, gate)
	inventory.RegisterRoutes(r, inventorySvc, gate)
	dashboard.RegisterRoutes(r, dashboardSvc, gate)
	reports.RegisterRoutes(r, reportsSvc, gate)

	return r
}

// readyHandler: 503 si el store no responde. El cache caído solo se loguea.
func readyHandler(db *sql.DB, c cache.Cache, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if db != nil {
			if err := pg.Ping(ctx, db); err != nil {
				log.Warn("readiness: database down", map[string]any{"error": err})
				httpx.WriteError(w, err)
				return
			}
		}
		if p, ok := c.(pinger); ok {
			if err := p.Ping(ctx); err != nil {
				log.Warn("readiness: cache down", map[string]any{"error": err})
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}
