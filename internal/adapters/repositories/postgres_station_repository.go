package repositories

import (
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/geography"
	"cargo-route-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the StationRepository port.
// It also loads the full distance table when the geography lives in the database.
type PostgresStationRepository struct{ DB *sql.DB }

func NewPostgresStationRepository(db *sql.DB) *PostgresStationRepository {
	return &PostgresStationRepository{DB: db}
}

func (r *PostgresStationRepository) ListStations(ctx context.Context) (_ []domain.Station, err error) {
	defer obs.Time(ctx, "stations.List")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres station repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT station_id, name, lat, lon, depot_distance_km
	FROM stations
	ORDER BY station_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list stations: query stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]domain.Station, 0, 16)
	for rows.Next() {
		var s domain.Station
		if err := rows.Scan(&s.StationID, &s.Name, &s.Coordinates.Lat, &s.Coordinates.Lon, &s.DepotDistance); err != nil {
			return nil, fmt.Errorf("list stations: scan row: %w", err)
		}
		stations = append(stations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}

	return stations, nil
}

// LoadGeography builds a geography table from the depot, stations and
// station_distances tables.
func (r *PostgresStationRepository) LoadGeography(ctx context.Context) (_ *geography.Table, err error) {
	defer obs.Time(ctx, "stations.LoadGeography")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres station repository: DB is nil")
	}

	var depot domain.Depot
	err = r.DB.QueryRowContext(ctx, `SELECT name, lat, lon FROM depot WHERE depot_id = 1;`).
		Scan(&depot.Name, &depot.Coordinates.Lat, &depot.Coordinates.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.New("load geography: depot row is missing")
	}
	if err != nil {
		return nil, fmt.Errorf("load geography: query depot: %w", err)
	}

	stations, err := r.ListStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load geography: %w", err)
	}

	locations := make([]geography.Location, 0, len(stations))
	for _, s := range stations {
		locations = append(locations, geography.Location{
			Name:          s.Name,
			Coordinates:   s.Coordinates,
			DepotDistance: s.DepotDistance,
		})
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT origin, destination, distance_km
	FROM station_distances;
	`)
	if err != nil {
		return nil, fmt.Errorf("load geography: query station_distances table: %w", err)
	}
	defer rows.Close()

	pairs := make([]geography.Pair, 0, len(locations)*len(locations)/2)
	for rows.Next() {
		var p geography.Pair
		if err := rows.Scan(&p.From, &p.To, &p.KM); err != nil {
			return nil, fmt.Errorf("load geography: scan row: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load geography: row iteration: %w", err)
	}

	t, err := geography.FromPairs(depot, locations, pairs)
	if err != nil {
		return nil, fmt.Errorf("load geography: %w", err)
	}
	return t, nil
}
