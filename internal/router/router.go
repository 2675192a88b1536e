package router

import (
	"database/sql"
	"net/http"

	"dog-breeds-api/internal/adapters/breedapi"
	gormstore "dog-breeds-api/internal/adapters/storage/gormdb"
	mem "dog-breeds-api/internal/adapters/storage/memory"
	pg "dog-breeds-api/internal/adapters/storage/postgres"
	"dog-breeds-api/internal/domain/breeds"
	"dog-breeds-api/internal/domain/temperaments"
	"dog-breeds-api/internal/middleware"
	"dog-breeds-api/internal/platform/logger"
	"dog-breeds-api/internal/platform/metrics"

	_ "dog-breeds-api/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	httpSwagger "github.com/swaggo/http-swagger"
	"gorm.io/gorm"
)

// Catalog es la fuente externa: razas normalizadas + temperamentos crudos.
type Catalog interface {
	breeds.ExternalSource
	temperaments.Source
}

type Options struct {
	Logger  logger.Logger    // puede ser nil (no loguea)
	Metrics *metrics.Metrics // puede ser nil (sin /metrics)

	// Store: Postgres si viene DB, SQLite/gorm si viene Gorm, si no in-memory.
	DB   *sql.DB
	Gorm *gorm.DB

	// Catalog externo. Si es nil se arma el cliente de TheDogAPI con BreedAPI.
	Catalog  Catalog
	BreedAPI breedapi.Config
}

type Services struct {
	Breeds       *breeds.Service
	Temperaments *temperaments.Service
}

// NewServices elige repos según Options y arma los services de dominio.
func NewServices(opts Options) (Services, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	var (
		breedRepo breeds.Repository
		tempRepo  temperaments.Repository
	)

	switch {
	case opts.DB != nil:
		breedRepo = pg.NewBreedsRepo(opts.DB)
		tempRepo = pg.NewTemperamentsRepo(opts.DB)
	case opts.Gorm != nil:
		breedRepo = gormstore.NewBreedsRepo(opts.Gorm)
		tempRepo = gormstore.NewTemperamentsRepo(opts.Gorm)
	default:
		temps := mem.NewTemperamentRepo()
		breedRepo = mem.NewBreedRepo(temps)
		tempRepo = temps
	}

	catalog := opts.Catalog
	if catalog == nil {
		client, err := breedapi.NewClient(opts.BreedAPI, log, opts.Metrics)
		if err != nil {
			return Services{}, errors.WithStack(err)
		}
		catalog = client
	}

	var tempOpts []temperaments.Option
	if opts.Metrics != nil {
		seeds := opts.Metrics.TemperamentSeeds
		tempOpts = append(tempOpts, temperaments.WithSeedHook(func(int) { seeds.Inc() }))
	}

	return Services{
		Breeds:       breeds.NewService(breedRepo, catalog, log),
		Temperaments: temperaments.NewService(tempRepo, catalog, log, tempOpts...),
	}, nil
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	svcs, err := NewServices(opts)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log, opts.Metrics))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	breeds.RegisterRoutes(r, svcs.Breeds, log)
	temperaments.RegisterRoutes(r, svcs.Temperaments, log)

	return r, nil
}
