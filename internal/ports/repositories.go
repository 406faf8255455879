package ports

import (
	"cargo-route-service/internal/domain"
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by repositories when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrCargoNotPending is returned by SaveTrips when cargo on a route has left
// the pending state, for example because another plan was confirmed first.
var ErrCargoNotPending = errors.New("cargo is no longer pending")

// Port: a boundary for reading and updating cargo records.
type CargoRepository interface {
	// Retrieve pending cargo scheduled for the given date.
	ListPendingCargo(ctx context.Context, date time.Time) ([]domain.Cargo, error)
	// Retrieve cargo, optionally filtered by status (empty means all).
	ListCargo(ctx context.Context, status domain.CargoStatus) ([]domain.Cargo, error)
	UpdateStatus(ctx context.Context, cargoID int, status domain.CargoStatus) error
}

// Port: the vehicle fleet.
type VehicleRepository interface {
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
	CreateVehicle(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, vehicleID int) error
}

// Port: pickup stations.
type StationRepository interface {
	ListStations(ctx context.Context) ([]domain.Station, error)
}

// Port: committed trips.
type TripRepository interface {
	// Persist routes as trips for the planned date and move their cargo to
	// in_transit. Rental routes get a freshly created rented vehicle.
	// The whole operation is atomic.
	SaveTrips(ctx context.Context, plannedDate time.Time, depot domain.Depot, routes []domain.VehicleRoute) ([]domain.Trip, error)
	ListTrips(ctx context.Context, plannedDate time.Time) ([]domain.Trip, error)
	DeleteTrip(ctx context.Context, tripID int) error
}

// Port: short-lived storage for plans that have been calculated but not confirmed.
type PlanStore interface {
	Put(ctx context.Context, plan domain.Plan) error
	// Return ErrNotFound when the plan is unknown or expired.
	Get(ctx context.Context, planID string) (domain.Plan, error)
	Delete(ctx context.Context, planID string) error
}
