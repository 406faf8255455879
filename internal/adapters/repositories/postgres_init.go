package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the Postgres tables the service needs. It is idempotent.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDepotQuery := `
	CREATE TABLE IF NOT EXISTS depot (
		depot_id INTEGER PRIMARY KEY CHECK (depot_id = 1),
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS stations (
		station_id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		depot_distance_km DOUBLE PRECISION NOT NULL CHECK (depot_distance_km >= 0)
	);
	`

	createStationDistancesQuery := `
	CREATE TABLE IF NOT EXISTS station_distances (
		origin TEXT NOT NULL REFERENCES stations(name) ON DELETE CASCADE,
		destination TEXT NOT NULL REFERENCES stations(name) ON DELETE CASCADE,
		distance_km DOUBLE PRECISION NOT NULL CHECK (distance_km >= 0),
		PRIMARY KEY (origin, destination)
	);
	`

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id SERIAL PRIMARY KEY,
		capacity DOUBLE PRECISION NOT NULL CHECK (capacity >= 0),
		is_rented BOOLEAN NOT NULL DEFAULT FALSE,
		rental_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createCargoQuery := `
	CREATE TABLE IF NOT EXISTS cargo (
		cargo_id SERIAL PRIMARY KEY,
		station_name TEXT NOT NULL REFERENCES stations(name),
		weight DOUBLE PRECISION NOT NULL CHECK (weight > 0),
		quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity > 0),
		sender_id INTEGER NOT NULL DEFAULT 0,
		sender_name TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		target_date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id SERIAL PRIMARY KEY,
		vehicle_id INTEGER NOT NULL REFERENCES vehicles(vehicle_id) ON DELETE CASCADE,
		planned_date DATE NOT NULL,
		total_distance DOUBLE PRECISION NOT NULL,
		total_cost DOUBLE PRECISION NOT NULL,
		route_data JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_cargo_status_target_date
	ON cargo(status, target_date);
	`

	createTripIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_planned_date
	ON trips(planned_date);
	`

	statements := []string{
		createDepotQuery,
		createStationsQuery,
		createStationDistancesQuery,
		createVehiclesQuery,
		createCargoQuery,
		createTripsQuery,
		createIndexQuery,
		createTripIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
