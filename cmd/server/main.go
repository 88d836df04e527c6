package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hvac-dispatch-service/internal/adapters/cache"
	"hvac-dispatch-service/internal/adapters/repositories"
	"hvac-dispatch-service/internal/adapters/traveltime"
	"hvac-dispatch-service/internal/api"
	"hvac-dispatch-service/internal/config"
	"hvac-dispatch-service/internal/platform/db"
	"hvac-dispatch-service/internal/platform/metrics"
	"hvac-dispatch-service/internal/platform/mongodb"
	"hvac-dispatch-service/internal/platform/obs"
	"hvac-dispatch-service/internal/ports"
	"hvac-dispatch-service/internal/services"
	"io/fs"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// legCacheTTL bounds how long a cached road duration is trusted.
const legCacheTTL = 7 * 24 * time.Hour

// main is the application composition root.
// It wires concrete adapters (Mongo, Postgres, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	if !config.LoadDotEnv() {
		logrus.Info("No .env file found (using environment variables)")
	}

	if err := run(); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

type stores struct {
	jobs        ports.JobSource
	technicians ports.TechnicianDirectory
	routes      ports.RouteRepository
	closers     []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := obs.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	metrics.RegisterDefault()

	rates, err := config.LoadRates(cfg.RatesFile)
	if err != nil {
		return err
	}
	schedule, err := services.ParseScheduleMode(cfg.ScheduleCheck)
	if err != nil {
		return fmt.Errorf("config: SCHEDULE_CHECK: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	travel, err := newTravelModel(cfg, &st.closers)
	if err != nil {
		return err
	}

	technicians := cache.NewCachedDirectory(st.technicians, cfg.DirectoryCacheSize, cfg.DirectoryCacheTTL, cache.SystemClock)

	optCfg := services.DefaultOptimizerConfig()
	optCfg.CityCenter = cfg.CityCenter
	optCfg.Rates = rates
	optCfg.DefaultMaxJobs = cfg.MaxJobsPerTechnician
	optCfg.Timeout = cfg.PlanningTimeout
	optCfg.Workers = cfg.PlanningWorkers
	optCfg.Schedule = schedule

	optimizer := services.NewRouteOptimizer(st.jobs, technicians, st.routes, travel, optCfg)
	router := api.NewRouter(optimizer, st.routes)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.PlanningTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":         srv.Addr,
			"travel_model": cfg.TravelModel,
			"schedule":     schedule,
		}).Info("Server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logrus.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// openStores picks Mongo for jobs and technicians and Postgres for routes when
// configured; anything unconfigured is served from the in-memory seed store.
func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	st := &stores{}

	var memory *repositories.MemoryStore
	memoryStore := func() (*repositories.MemoryStore, error) {
		if memory != nil {
			return memory, nil
		}
		seed, err := repositories.LoadSeed(cfg.SeedPath)
		if errors.Is(err, fs.ErrNotExist) {
			logrus.WithField("seed_path", cfg.SeedPath).Warn("seed file not found; starting with an empty in-memory store")
			seed, err = repositories.Seed{}, nil
		}
		if err != nil {
			return nil, err
		}
		memory = repositories.NewMemoryStore(seed)
		return memory, nil
	}

	if cfg.MongoURI != "" {
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, func() { _ = client.Disconnect(context.Background()) })

		database := client.Database(cfg.MongoDB)
		st.jobs = repositories.NewMongoJobSource(&repositories.MongoCollection{
			Collection: database.Collection(repositories.JobsCollection),
		})
		st.technicians = repositories.NewMongoTechnicianDirectory(&repositories.MongoCollection{
			Collection: database.Collection(repositories.TechniciansCollection),
		})
		logrus.WithField("db", cfg.MongoDB).Info("jobs and technicians served from MongoDB")
	} else {
		mem, err := memoryStore()
		if err != nil {
			st.close()
			return nil, err
		}
		st.jobs, st.technicians = mem, mem
		logrus.Info("jobs and technicians served from memory")
	}

	if cfg.DatabaseURL != "" {
		sqlDB, err := openRoutesDB(ctx, cfg.DatabaseURL)
		if err != nil {
			st.close()
			return nil, err
		}
		st.closers = append(st.closers, func() { _ = sqlDB.Close() })
		st.routes = repositories.NewSQLRouteRepository(sqlDB)
	} else {
		mem, err := memoryStore()
		if err != nil {
			st.close()
			return nil, err
		}
		st.routes = mem
		logrus.Info("routes persisted in memory")
	}

	return st, nil
}

func openRoutesDB(ctx context.Context, databaseURL string) (*sql.DB, error) {
	sqlDB, err := db.Open(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func newTravelModel(cfg config.Config, closers *[]func()) (ports.TravelTimeModel, error) {
	if cfg.TravelModel != config.TravelModelORS {
		return traveltime.NewLinear(), nil
	}

	opts := []traveltime.ORSOption{traveltime.WithRateLimit(cfg.ORSRatePerSec)}
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = rdb.Close() })
		opts = append(opts, traveltime.WithLegCache(cache.NewRedisLegCache(rdb, legCacheTTL)))
	}

	return traveltime.NewORSModel(cfg.ORSAPIKey, opts...)
}
