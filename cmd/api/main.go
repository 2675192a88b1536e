package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dog-breeds-api/internal/adapters/breedapi"
	gormstore "dog-breeds-api/internal/adapters/storage/gormdb"
	pg "dog-breeds-api/internal/adapters/storage/postgres"
	"dog-breeds-api/internal/config"
	"dog-breeds-api/internal/platform/logger"
	"dog-breeds-api/internal/platform/metrics"
	"dog-breeds-api/internal/router"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

// @title       Dog Breeds API
// @version     1.0
// @description Dog breeds from TheDogAPI merged with locally created breeds, plus the temperament catalog.
// @BasePath    /
func main() {
	app := &cli.App{
		Name:   "dog-breeds-api",
		Usage:  "dog breeds backend",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create the schema on the configured store",
				Action: migrate,
			},
			{
				Name:   "seed-temperaments",
				Usage:  "populate the temperament table from TheDogAPI",
				Action: seedTemperaments,
			},
		},
	}

	app.ExitErrHandler = func(_ *cli.Context, err error) {
		if err == nil {
			return
		}
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// runtime agrupa lo que comparten los comandos.
type runtime struct {
	conf    *config.Config
	log     logger.Logger
	metrics *metrics.Metrics
	db      *sql.DB
	gorm    *gorm.DB
}

func setup(ctx context.Context) (*runtime, error) {
	conf, err := config.Parse()
	if err != nil {
		return nil, errors.Wrap(err, "could not parse config")
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(conf.Logger.Level),
		Format: logger.ParseFormat(conf.Logger.Format),
		App:    conf.App,
	})

	rt := &runtime{conf: conf, log: log, metrics: metrics.New()}

	switch conf.Storage.Driver {
	case config.DriverPostgres:
		db, err := pg.Open(conf.Storage.DSN)
		if err != nil {
			return nil, errors.Wrap(err, "could not open postgres")
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "could not migrate postgres")
		}
		rt.db = db

	case config.DriverSQLite:
		gdb, err := gormstore.OpenSQLite(conf.Storage.DSN, log, logger.ParseLevel(conf.Logger.Level))
		if err != nil {
			return nil, errors.Wrap(err, "could not open sqlite")
		}
		if err := gormstore.Migrate(gdb); err != nil {
			closeGorm(gdb)
			return nil, errors.Wrap(err, "could not migrate sqlite")
		}
		rt.gorm = gdb
	}

	log.Info("storage ready", map[string]any{"driver": string(conf.Storage.Driver)})

	return rt, nil
}

func (rt *runtime) options() router.Options {
	return router.Options{
		Logger:  rt.log,
		Metrics: rt.metrics,
		DB:      rt.db,
		Gorm:    rt.gorm,
		BreedAPI: breedapi.Config{
			BaseURL: rt.conf.BreedAPI.BaseURL,
			APIKey:  rt.conf.BreedAPI.Key,
			Timeout: rt.conf.BreedAPI.Timeout,
		},
	}
}

func (rt *runtime) close() {
	if rt.db != nil {
		_ = rt.db.Close()
	}
	if rt.gorm != nil {
		closeGorm(rt.gorm)
	}
	_ = rt.log.Sync()
}

// closeGorm cierra el *sql.DB debajo de gorm. Variable para poder observarla en tests.
var closeGorm = func(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := setup(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	if rt.conf.BreedAPI.Key == "" {
		rt.log.Warn("BREED_API_KEY not set, TheDogAPI may reject requests", nil)
	}

	h, err := router.NewRouter(rt.options())
	if err != nil {
		return errors.Wrap(err, "could not build router")
	}

	srv := &http.Server{
		Addr:         rt.conf.HTTP.Address(),
		Handler:      h,
		ReadTimeout:  rt.conf.HTTP.ReadTimeout,
		WriteTimeout: rt.conf.HTTP.WriteTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		rt.log.Info("starting server", map[string]any{"address": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		if err != nil {
			return errors.Wrap(err, "server error")
		}
		return nil
	case <-ctx.Done():
	}

	rt.log.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "could not shutdown server")
	}
	return nil
}

func migrate(c *cli.Context) error {
	rt, err := setup(c.Context)
	if err != nil {
		return err
	}
	defer rt.close()

	// setup ya migra; con memory no hay nada que hacer.
	if rt.conf.Storage.Driver == config.DriverMemory {
		rt.log.Warn("memory driver has no schema", nil)
	}
	return nil
}

func seedTemperaments(c *cli.Context) error {
	rt, err := setup(c.Context)
	if err != nil {
		return err
	}
	defer rt.close()

	svcs, err := router.NewServices(rt.options())
	if err != nil {
		return errors.WithStack(err)
	}

	items, err := svcs.Temperaments.Seed(c.Context)
	if err != nil {
		return errors.Wrap(err, "could not seed temperaments")
	}

	rt.log.Info("temperaments ready", map[string]any{"count": len(items)})
	return nil
}
