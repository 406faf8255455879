package main

import (
	"cargo-route-service/internal/adapters/cache"
	"cargo-route-service/internal/adapters/repositories"
	"cargo-route-service/internal/api/dto"
	"cargo-route-service/internal/config"
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/geography"
	"cargo-route-service/internal/platform/db"
	"cargo-route-service/internal/platform/logging"
	"cargo-route-service/internal/services"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	cargoPath string
	dates     []string
	sequencer string
	noRental  bool
)

var rootCmd = &cobra.Command{
	Use:           "dbtool",
	Short:         "Database and routing maintenance for the cargo route service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema",
	RunE:  migrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the Kocaeli geography, the default fleet and optional cargo",
	RunE:  seed,
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan routes for pending cargo on one or more dates without confirming them",
	RunE:  plan,
}

var solveCmd = &cobra.Command{
	Use:   "solve <fixture.json>",
	Short: "Solve an offline fixture against the built-in Kocaeli table and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  solve,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.Get("CONFIG_PATH", ""), "configuration file (yaml or json)")

	seedCmd.Flags().StringVar(&cargoPath, "cargo", config.Get("SEED_PATH", ""), "JSON file of pending cargo to insert")

	planCmd.Flags().StringSliceVar(&dates, "date", nil, "target date YYYY-MM-DD (repeatable)")
	planCmd.Flags().BoolVar(&noRental, "no-rental", false, "do not add rental vehicles")
	_ = planCmd.MarkFlagRequired("date")

	solveCmd.Flags().StringVar(&sequencer, "sequencer", "greedy", "stop ordering: greedy or two_opt")
	solveCmd.Flags().BoolVar(&noRental, "no-rental", false, "do not add rental vehicles")

	rootCmd.AddCommand(migrateCmd, seedCmd, planCmd, solveCmd)
}

func main() {
	envErr := godotenv.Load()

	logger := logging.New("dbtool", config.Get("ROUTE_LOGGING__LEVEL", "info"))
	zerolog.DefaultContextLogger = &logger
	if envErr != nil {
		logger.Debug().Msg("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("dbtool failed")
		stop()
		os.Exit(1)
	}
}

func openDB(ctx context.Context) (*config.Config, *sql.DB, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	conn, err := db.Open(ctx, cfg.Database.URL, db.PoolOptions{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, conn, nil
}

func migrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := zerolog.Ctx(ctx)

	_, conn, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info().Msg("schema ready")
	return nil
}

func seed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := zerolog.Ctx(ctx)

	_, conn, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	log.Info().Msg("seeding geography and fleet")
	if err := repositories.SeedGeography(ctx, conn, geography.Kocaeli()); err != nil {
		return err
	}
	if err := repositories.SeedFleet(ctx, conn, repositories.DefaultFleet); err != nil {
		return err
	}

	if cargoPath != "" {
		log.Info().Str("path", cargoPath).Msg("seeding cargo")
		if err := repositories.SeedFromJSON(ctx, conn, cargoPath, today()); err != nil {
			return err
		}
	}

	log.Info().Msg("seeding complete")
	return nil
}

func plan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	targets := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return fmt.Errorf("plan: --date %q: %w", s, err)
		}
		targets = append(targets, d)
	}

	cfg, conn, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	geo, err := repositories.NewPostgresStationRepository(conn).LoadGeography(ctx)
	if err != nil {
		return err
	}

	solver := services.NewSolver(geo)
	solver.Allocator = services.Allocator{
		RentalCapacity: cfg.Routing.RentalCapacity,
		RentalCost:     cfg.Routing.RentalCost,
		IDs:            services.OffsetIDs{Start: cfg.Routing.RentalIDStart},
	}
	solver.Pricer.FuelCostPerKM = cfg.Routing.FuelCostPerKM

	planner := &services.PlanningService{
		Cargo:       repositories.NewPostgresCargoRepository(conn),
		Vehicles:    repositories.NewPostgresVehicleRepository(conn),
		Trips:       repositories.NewPostgresTripRepository(conn),
		Plans:       cache.NewMemoryPlanStore(0),
		Solver:      solver,
		Concurrency: cfg.Routing.Concurrency,
	}

	plans, err := planner.PlanDates(ctx, targets, services.Options{AllowRental: !noRental, AllowMultiTrip: true})
	if err != nil {
		return err
	}

	for _, p := range plans {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", dto.FormatDate(p.TargetDate), p.Result.Message)
		for _, w := range p.Result.Warnings {
			fmt.Fprintf(cmd.OutOrStdout(), "    warning: %s\n", w)
		}
	}
	return nil
}

type fixtureVehicle struct {
	VehicleID int     `json:"vehicle_id"`
	Capacity  float64 `json:"capacity"`
}

type fixtureCargo struct {
	CargoID     int     `json:"cargo_id"`
	StationName string  `json:"station_name"`
	Weight      float64 `json:"weight"`
	Quantity    int     `json:"quantity"`
}

type fixture struct {
	Vehicles []fixtureVehicle `json:"vehicles"`
	Cargo    []fixtureCargo   `json:"cargo"`
}

func solve(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("solve: read fixture: %w", err)
	}

	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		return fmt.Errorf("solve: parse fixture: %w", err)
	}

	geo := geography.Kocaeli()

	vehicles := make([]domain.Vehicle, 0, len(fx.Vehicles))
	for _, v := range fx.Vehicles {
		vehicles = append(vehicles, domain.Vehicle{VehicleID: v.VehicleID, Capacity: v.Capacity})
	}

	cargo := make([]domain.Cargo, 0, len(fx.Cargo))
	for i, c := range fx.Cargo {
		if !geo.Has(c.StationName) {
			return fmt.Errorf("solve: cargo %d: unknown station %q", i+1, c.StationName)
		}
		qty := c.Quantity
		if qty == 0 {
			qty = 1
		}
		cargo = append(cargo, domain.Cargo{
			CargoID:     c.CargoID,
			StationName: c.StationName,
			Weight:      c.Weight,
			Quantity:    qty,
			Status:      domain.CargoPending,
		})
	}

	solver := services.NewSolver(geo)
	switch sequencer {
	case "greedy":
	case "two_opt":
		solver = solver.WithSequencer(services.TwoOptSequencer{Geo: geo, Base: solver.Sequencer})
	default:
		return fmt.Errorf("solve: unknown sequencer %q", sequencer)
	}

	result := solver.Solve(vehicles, cargo, services.Options{AllowRental: !noRental, AllowMultiTrip: true})

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewRoutingResultResponse(result))
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
