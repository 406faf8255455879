package repositories

import (
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/platform/obs"
	"cargo-route-service/internal/ports"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Postgres-backed implementation of the TripRepository port.
type PostgresTripRepository struct{ DB *sql.DB }

func NewPostgresTripRepository(db *sql.DB) *PostgresTripRepository {
	return &PostgresTripRepository{DB: db}
}

// routeData is the JSONB document stored with every trip.
type routeData struct {
	StartStation string          `json:"start_station"`
	Stops        []routeDataStop `json:"stops"`
	Depot        routeDataDepot  `json:"depot"`
}

type routeDataStop struct {
	StationName string    `json:"station_name"`
	CargoIDs    []int     `json:"cargo_ids"`
	TotalWeight float64   `json:"total_weight"`
	Coords      []float64 `json:"coords"`
}

type routeDataDepot struct {
	Name   string    `json:"name"`
	Coords []float64 `json:"coords"`
}

func newRouteData(r domain.VehicleRoute, depot domain.Depot) routeData {
	d := routeData{
		StartStation: r.StartStation,
		Stops:        make([]routeDataStop, 0, len(r.Stops)),
		Depot:        routeDataDepot{Name: depot.Name, Coords: depot.Coordinates.CoordsToList()},
	}
	for _, s := range r.Stops {
		d.Stops = append(d.Stops, routeDataStop{
			StationName: s.StationName,
			CargoIDs:    s.CargoIDs,
			TotalWeight: s.TotalWeight,
			Coords:      s.Coordinates.CoordsToList(),
		})
	}
	return d
}

func coordsFromList(c []float64) domain.Coordinates {
	if len(c) != 2 {
		return domain.Coordinates{}
	}
	return domain.Coordinates{Lat: c[0], Lon: c[1]}
}

func (d routeData) toDomain() ([]domain.RouteStop, domain.Depot) {
	stops := make([]domain.RouteStop, 0, len(d.Stops))
	for _, s := range d.Stops {
		stops = append(stops, domain.RouteStop{
			StationName: s.StationName,
			CargoIDs:    s.CargoIDs,
			TotalWeight: s.TotalWeight,
			Coordinates: coordsFromList(s.Coords),
		})
	}
	return stops, domain.Depot{Name: d.Depot.Name, Coordinates: coordsFromList(d.Depot.Coords)}
}

// SaveTrips records every route as a trip in one transaction. Rental routes
// get a newly created rented vehicle; owned routes must reference an
// existing vehicle. The cargo on each route moves to in_transit.
func (r *PostgresTripRepository) SaveTrips(
	ctx context.Context,
	plannedDate time.Time,
	depot domain.Depot,
	routes []domain.VehicleRoute,
) (_ []domain.Trip, err error) {
	defer obs.Time(ctx, "trips.Save")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres trip repository: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("save trips: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertTrip, err := tx.PrepareContext(ctx, `
	INSERT INTO trips (vehicle_id, planned_date, total_distance, total_cost, route_data)
	VALUES ($1, $2::date, $3, $4, $5)
	RETURNING trip_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("save trips: prepare insert: %w", err)
	}
	defer insertTrip.Close()

	trips := make([]domain.Trip, 0, len(routes))
	for _, route := range routes {
		vehicleID := route.VehicleID

		if route.IsRented {
			vehicleID, err = insertVehicle(ctx, tx, domain.Vehicle{
				Capacity:   route.VehicleCapacity,
				IsRented:   true,
				RentalCost: route.RentalCost,
			})
			if err != nil {
				return nil, fmt.Errorf("save trips: rental for planned vehicle %d: %w", route.VehicleID, err)
			}
		} else {
			var exists int
			err := tx.QueryRowContext(ctx, `SELECT 1 FROM vehicles WHERE vehicle_id = $1;`, vehicleID).Scan(&exists)
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("save trips: vehicle_id=%d: %w", vehicleID, ports.ErrNotFound)
			}
			if err != nil {
				return nil, fmt.Errorf("save trips: check vehicle_id=%d: %w", vehicleID, err)
			}
		}

		doc, err := json.Marshal(newRouteData(route, depot))
		if err != nil {
			return nil, fmt.Errorf("save trips: encode route data: %w", err)
		}

		var tripID int
		if err := insertTrip.QueryRowContext(ctx,
			vehicleID, plannedDate.Format(time.DateOnly), route.TotalDistance, route.TotalCost, string(doc),
		).Scan(&tripID); err != nil {
			return nil, fmt.Errorf("save trips: insert trip for vehicle_id=%d: %w", vehicleID, err)
		}

		if ids := route.CargoIDs(); len(ids) > 0 {
			res, err := tx.ExecContext(ctx,
				`UPDATE cargo SET status = $1 WHERE cargo_id = ANY($2::int[]) AND status = $3;`,
				string(domain.CargoInTransit), ids, string(domain.CargoPending),
			)
			if err != nil {
				return nil, fmt.Errorf("save trips: mark cargo in transit for trip_id=%d: %w", tripID, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return nil, fmt.Errorf("save trips: rows affected for trip_id=%d: %w", tripID, err)
			}
			if n != int64(len(ids)) {
				return nil, fmt.Errorf("save trips: %d of %d cargo on vehicle_id=%d: %w",
					int64(len(ids))-n, len(ids), vehicleID, ports.ErrCargoNotPending)
			}
		}

		trips = append(trips, domain.Trip{
			TripID:        tripID,
			VehicleID:     vehicleID,
			TotalDistance: route.TotalDistance,
			TotalCost:     route.TotalCost,
			StartStation:  route.StartStation,
			Stops:         route.Stops,
			Depot:         depot,
			PlannedDate:   plannedDate,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("save trips: commit tx: %w", err)
	}

	return trips, nil
}

// ListTrips returns the trips planned for date, or all trips when date is zero.
func (r *PostgresTripRepository) ListTrips(ctx context.Context, plannedDate time.Time) (_ []domain.Trip, err error) {
	defer obs.Time(ctx, "trips.List")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres trip repository: DB is nil")
	}

	q := `
	SELECT trip_id, vehicle_id, planned_date, total_distance, total_cost, route_data
	FROM trips
	`
	var rows *sql.Rows
	if plannedDate.IsZero() {
		rows, err = r.DB.QueryContext(ctx, q+`ORDER BY planned_date DESC, trip_id DESC;`)
	} else {
		rows, err = r.DB.QueryContext(ctx, q+`WHERE planned_date = $1::date ORDER BY trip_id DESC;`, plannedDate.Format(time.DateOnly))
	}
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]domain.Trip, 0, 16)
	for rows.Next() {
		var (
			t   domain.Trip
			doc []byte
		)
		if err := rows.Scan(&t.TripID, &t.VehicleID, &t.PlannedDate, &t.TotalDistance, &t.TotalCost, &doc); err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}

		var data routeData
		if err := json.Unmarshal(doc, &data); err != nil {
			return nil, fmt.Errorf("list trips: decode route data for trip_id=%d: %w", t.TripID, err)
		}
		t.StartStation = data.StartStation
		t.Stops, t.Depot = data.toDomain()

		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

func (r *PostgresTripRepository) DeleteTrip(ctx context.Context, tripID int) error {
	if r.DB == nil {
		return errors.New("postgres trip repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `DELETE FROM trips WHERE trip_id = $1;`, tripID)
	if err != nil {
		return fmt.Errorf("delete trip: trip_id=%d: %w", tripID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete trip: trip_id=%d: rows affected: %w", tripID, err)
	}
	if n == 0 {
		return fmt.Errorf("delete trip: trip_id=%d: %w", tripID, ports.ErrNotFound)
	}

	return nil
}
