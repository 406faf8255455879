package repositories

import (
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/geography"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultFleet is the owned fleet a fresh database starts with.
var DefaultFleet = []float64{500, 750, 1000}

// SeedGeography upserts the depot, stations and station distances of t.
func SeedGeography(ctx context.Context, db *sql.DB, t *geography.Table) error {
	if db == nil {
		return errors.New("seed geography: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed geography: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	depot := t.Depot()
	if _, err := tx.ExecContext(ctx, `
	INSERT INTO depot (depot_id, name, lat, lon)
	VALUES (1, $1, $2, $3)
	ON CONFLICT (depot_id) DO UPDATE
	SET name = EXCLUDED.name, lat = EXCLUDED.lat, lon = EXCLUDED.lon;
	`, depot.Name, depot.Coordinates.Lat, depot.Coordinates.Lon); err != nil {
		return fmt.Errorf("seed geography: upsert depot: %w", err)
	}

	stationStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO stations (name, lat, lon, depot_distance_km)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (name) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		depot_distance_km = EXCLUDED.depot_distance_km;
	`)
	if err != nil {
		return fmt.Errorf("seed geography: prepare stations: %w", err)
	}
	defer stationStmt.Close()

	for _, loc := range t.Locations() {
		if _, err := stationStmt.ExecContext(ctx, loc.Name, loc.Coordinates.Lat, loc.Coordinates.Lon, loc.DepotDistance); err != nil {
			return fmt.Errorf("seed geography: upsert station %q: %w", loc.Name, err)
		}
	}

	distStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO station_distances (origin, destination, distance_km)
	VALUES ($1, $2, $3)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_km = EXCLUDED.distance_km;
	`)
	if err != nil {
		return fmt.Errorf("seed geography: prepare distances: %w", err)
	}
	defer distStmt.Close()

	for _, p := range t.Pairs() {
		if _, err := distStmt.ExecContext(ctx, p.From, p.To, p.KM); err != nil {
			return fmt.Errorf("seed geography: upsert distance %q <-> %q: %w", p.From, p.To, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed geography: commit tx: %w", err)
	}

	return nil
}

// SeedFleet inserts the owned fleet when no owned vehicle exists yet.
func SeedFleet(ctx context.Context, db *sql.DB, capacities []float64) error {
	if db == nil {
		return errors.New("seed fleet: DB is nil")
	}

	var owned int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles WHERE NOT is_rented;`).Scan(&owned); err != nil {
		return fmt.Errorf("seed fleet: count vehicles: %w", err)
	}
	if owned > 0 {
		return nil
	}

	for _, c := range capacities {
		if _, err := db.ExecContext(ctx, `INSERT INTO vehicles (capacity, is_rented, rental_cost) VALUES ($1, FALSE, 0);`, c); err != nil {
			return fmt.Errorf("seed fleet: insert vehicle capacity=%.0f: %w", c, err)
		}
	}

	return nil
}

type CargoSeed struct {
	StationName string  `json:"station_name"`
	Weight      float64 `json:"weight"`
	Quantity    int     `json:"quantity"`
	SenderID    int     `json:"sender_id"`
	SenderName  string  `json:"sender_name"`
	// TargetDate is YYYY-MM-DD. Empty means today.
	TargetDate string `json:"target_date"`
}

// SeedFromJSON inserts pending cargo read from a JSON array of CargoSeed.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string, today time.Time) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed cargo: read %q: %w", jsonPath, err)
	}

	var data []CargoSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed cargo: parse json: %w", err)
	}

	rows := make([]domain.Cargo, 0, len(data))
	for i, item := range data {
		station := strings.TrimSpace(item.StationName)
		if station == "" {
			return fmt.Errorf("seed cargo: item at index %d: station_name cannot be empty", i+1)
		}
		if item.Weight <= 0 {
			return fmt.Errorf("seed cargo: item at index %d: weight must be positive", i+1)
		}

		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return fmt.Errorf("seed cargo: item at index %d: quantity must be positive", i+1)
		}

		date := today
		if item.TargetDate != "" {
			date, err = time.Parse(time.DateOnly, item.TargetDate)
			if err != nil {
				return fmt.Errorf("seed cargo: item at index %d: target_date: %w", i+1, err)
			}
		}

		rows = append(rows, domain.Cargo{
			StationName: station,
			Weight:      item.Weight,
			Quantity:    qty,
			SenderID:    item.SenderID,
			SenderName:  item.SenderName,
			Status:      domain.CargoPending,
			TargetDate:  &date,
		})
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed cargo: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO cargo (station_name, weight, quantity, sender_id, sender_name, status, target_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`)
	if err != nil {
		return fmt.Errorf("seed cargo: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range rows {
		if _, err := stmt.ExecContext(ctx,
			c.StationName, c.Weight, c.Quantity, c.SenderID, c.SenderName, string(c.Status), c.TargetDate.Format(time.DateOnly),
		); err != nil {
			return fmt.Errorf("seed cargo: insert item %d (%s): %w", i+1, c.StationName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed cargo: commit tx: %w", err)
	}

	return nil
}
