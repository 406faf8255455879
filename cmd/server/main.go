package main

import (
	"cargo-route-service/internal/adapters/cache"
	"cargo-route-service/internal/adapters/repositories"
	"cargo-route-service/internal/api"
	"cargo-route-service/internal/config"
	"cargo-route-service/internal/geography"
	"cargo-route-service/internal/platform/db"
	"cargo-route-service/internal/platform/logging"
	"cargo-route-service/internal/platform/metrics"
	"cargo-route-service/internal/ports"
	"cargo-route-service/internal/services"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Prometheus) behind ports and
// starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load(config.Get("CONFIG_PATH", ""))
	if err != nil {
		l := logging.New("server", "info")
		l.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New("server", cfg.Logging.Level)
	zerolog.DefaultContextLogger = &logger
	if envErr != nil {
		logger.Info().Msg("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	conn, err := db.Open(ctx, cfg.Database.URL, db.PoolOptions{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	geo, err := initAndLoad(ctx, conn, cfg.Routing.GeographySource)
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("run: metrics: %w", err)
	}

	plans, closePlans, err := planStore(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer closePlans()

	greedy := services.DepotApproachSequencer{Geo: geo}
	sequencers := map[string]services.Sequencer{
		"greedy":  greedy,
		"two_opt": services.TwoOptSequencer{Geo: geo, Base: greedy, Iterations: cfg.Routing.TwoOptIterations},
	}

	solver := &services.Solver{
		Geo: geo,
		Allocator: services.Allocator{
			RentalCapacity: cfg.Routing.RentalCapacity,
			RentalCost:     cfg.Routing.RentalCost,
			IDs:            services.OffsetIDs{Start: cfg.Routing.RentalIDStart},
		},
		Sequencer: sequencers[cfg.Routing.Sequencer],
		Pricer:    services.Pricer{Geo: geo, FuelCostPerKM: cfg.Routing.FuelCostPerKM},
		Observer:  m,
	}

	stations := repositories.NewPostgresStationRepository(conn)
	vehicles := repositories.NewPostgresVehicleRepository(conn)
	cargo := repositories.NewPostgresCargoRepository(conn)
	trips := repositories.NewPostgresTripRepository(conn)

	planner := &services.PlanningService{
		Cargo:       cargo,
		Vehicles:    vehicles,
		Trips:       trips,
		Plans:       plans,
		Solver:      solver,
		Concurrency: cfg.Routing.Concurrency,
	}

	var limiter *rate.Limiter
	if cfg.Server.PlanRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Server.PlanRate), cfg.Server.PlanBurst)
	}

	router := api.NewRouter(api.Deps{
		Logger:      logger,
		Geo:         geo,
		Stations:    stations,
		Vehicles:    vehicles,
		Cargo:       cargo,
		Trips:       trips,
		Planner:     planner,
		Sequencers:  sequencers,
		Observer:    m,
		Metrics:     metrics.Handler(reg),
		PlanLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("geography", cfg.Routing.GeographySource).Msg("server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("run: listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("run: shutdown: %w", err)
	}
	return nil
}

// initAndLoad prepares the schema and returns the geography the solver uses.
// The built-in table is also written to the database so that cargo rows can
// reference its stations.
func initAndLoad(ctx context.Context, conn *sql.DB, source string) (*geography.Table, error) {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return nil, fmt.Errorf("init and load: %w", err)
	}

	if source == "database" {
		geo, err := repositories.NewPostgresStationRepository(conn).LoadGeography(ctx)
		if err != nil {
			return nil, fmt.Errorf("init and load: %w", err)
		}
		return geo, nil
	}

	geo := geography.Kocaeli()
	if err := repositories.SeedGeography(ctx, conn, geo); err != nil {
		return nil, fmt.Errorf("init and load: %w", err)
	}
	if err := repositories.SeedFleet(ctx, conn, repositories.DefaultFleet); err != nil {
		return nil, fmt.Errorf("init and load: %w", err)
	}
	return geo, nil
}

// planStore picks Redis when an address is configured and falls back to an
// in-process store otherwise.
func planStore(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (ports.PlanStore, func(), error) {
	if cfg.Addr == "" {
		logger.Info().Dur("ttl", cfg.PlanTTL).Msg("plan store: in memory")
		return cache.NewMemoryPlanStore(cfg.PlanTTL), func() {}, nil
	}

	client := cache.NewRedisClient(cfg.Addr, cfg.Password, cfg.DB)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("plan store: ping redis %s: %w", cfg.Addr, err)
	}

	logger.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.PlanTTL).Msg("plan store: redis")
	return cache.NewRedisPlanStore(client, cfg.PlanTTL), func() { _ = client.Close() }, nil
}
