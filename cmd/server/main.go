package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"roadside-dispatch-service/internal/adapters/cache"
	"roadside-dispatch-service/internal/adapters/distance"
	"roadside-dispatch-service/internal/adapters/repositories"
	"roadside-dispatch-service/internal/api"
	"roadside-dispatch-service/internal/config"
	"roadside-dispatch-service/internal/platform/db"
	"roadside-dispatch-service/internal/platform/kv"
	"roadside-dispatch-service/internal/platform/logger"
	"roadside-dispatch-service/internal/ports"
)

// Average urban towing speed used for haversine duration estimates.
const haversineAvgSpeedKmh = 30

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()
	zap.ReplaceGlobals(lg)

	if err := run(cfg, lg); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := repositories.InitSchema(sqlDB); err != nil {
		return err
	}

	provider, closeProvider, err := newDistanceProvider(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeProvider()

	loc, err := cfg.Dispatch.Location()
	if err != nil {
		return err
	}

	repo := repositories.NewPostgresProviderRepository(sqlDB)
	router := api.NewRouter(repo, provider, api.Options{
		DefaultRadiusKm: cfg.Matching.DefaultRadiusKm,
		MaxRadiusKm:     cfg.Matching.MaxRadiusKm,
		DispatchPhone:   cfg.Dispatch.Phone,
		Location:        loc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("distance_provider", cfg.Distance.Provider),
		)
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

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newDistanceProvider selects the distance backend. ORS lookups are cached in
// Redis when an address is configured.
func newDistanceProvider(ctx context.Context, cfg *config.Config, lg *zap.Logger) (ports.DistanceProvider, func(), error) {
	noop := func() {}

	if cfg.Distance.Provider != "ors" {
		return distance.NewHaversineDistanceProvider(haversineAvgSpeedKmh), noop, nil
	}

	var distanceCache ports.DistanceCache
	closeFn := noop
	if cfg.Redis.Address != "" {
		rdb, err := kv.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		distanceCache = cache.NewRedisDistanceCache(rdb, cfg.Redis.DistanceTTL)
		closeFn = func() { _ = rdb.Close() }
	} else {
		lg.Warn("redis address not set, ORS distances will not be cached")
	}

	provider, err := distance.NewORSDistanceProvider(
		cfg.Distance.ORSAPIKey,
		cfg.Distance.ORSBaseURL,
		cfg.Distance.ORSProfile,
		distanceCache,
	)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	return provider, closeFn, nil
}
