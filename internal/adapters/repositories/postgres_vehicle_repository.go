package repositories

import (
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/platform/obs"
	"cargo-route-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the VehicleRepository port.
type PostgresVehicleRepository struct{ DB *sql.DB }

func NewPostgresVehicleRepository(db *sql.DB) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{DB: db}
}

func (r *PostgresVehicleRepository) ListVehicles(ctx context.Context) (_ []domain.Vehicle, err error) {
	defer obs.Time(ctx, "vehicles.List")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres vehicle repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT vehicle_id, capacity, is_rented, rental_cost
	FROM vehicles
	ORDER BY vehicle_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0, 8)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.VehicleID, &v.Capacity, &v.IsRented, &v.RentalCost); err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}

// CreateVehicle inserts v and returns it with its assigned id.
func (r *PostgresVehicleRepository) CreateVehicle(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if r.DB == nil {
		return domain.Vehicle{}, errors.New("postgres vehicle repository: DB is nil")
	}

	id, err := insertVehicle(ctx, r.DB, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("create vehicle: %w", err)
	}
	v.VehicleID = id
	return v, nil
}

func (r *PostgresVehicleRepository) DeleteVehicle(ctx context.Context, vehicleID int) error {
	if r.DB == nil {
		return errors.New("postgres vehicle repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE vehicle_id = $1;`, vehicleID)
	if err != nil {
		return fmt.Errorf("delete vehicle: vehicle_id=%d: %w", vehicleID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete vehicle: vehicle_id=%d: rows affected: %w", vehicleID, err)
	}
	if n == 0 {
		return fmt.Errorf("delete vehicle: vehicle_id=%d: %w", vehicleID, ports.ErrNotFound)
	}

	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertVehicle(ctx context.Context, q queryRower, v domain.Vehicle) (int, error) {
	var id int
	err := q.QueryRowContext(ctx, `
	INSERT INTO vehicles (capacity, is_rented, rental_cost)
	VALUES ($1, $2, $3)
	RETURNING vehicle_id;
	`, v.Capacity, v.IsRented, v.RentalCost).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert vehicle: %w", err)
	}
	return id, nil
}
