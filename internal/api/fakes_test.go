package api

import (
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/geography"
	"cargo-route-service/internal/ports"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

type memoryStore struct {
	mu       sync.Mutex
	cargo    []domain.Cargo
	vehicles []domain.Vehicle
	trips    []domain.Trip
	nextID   int
}

func newMemoryStore() *memoryStore { return &memoryStore{nextID: 100} }

func (m *memoryStore) id() int {
	m.nextID++
	return m.nextID
}

// hasVehicle expects m.mu to be held.
func (m *memoryStore) hasVehicle(id int) bool {
	return slices.ContainsFunc(m.vehicles, func(v domain.Vehicle) bool { return v.VehicleID == id })
}

func (m *memoryStore) ListStations(_ context.Context) ([]domain.Station, error) {
	out := make([]domain.Station, 0)
	for i, loc := range geography.Kocaeli().Locations() {
		out = append(out, domain.Station{StationID: i + 1, Name: loc.Name, Coordinates: loc.Coordinates, DepotDistance: loc.DepotDistance})
	}
	return out, nil
}

func (m *memoryStore) ListPendingCargo(_ context.Context, date time.Time) ([]domain.Cargo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Cargo, 0)
	for _, c := range m.cargo {
		if c.Status == domain.CargoPending && c.TargetDate != nil && c.TargetDate.Equal(date) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryStore) ListCargo(_ context.Context, status domain.CargoStatus) ([]domain.Cargo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Cargo, 0)
	for _, c := range m.cargo {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryStore) UpdateStatus(_ context.Context, id int, status domain.CargoStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.cargo {
		if m.cargo[i].CargoID == id {
			m.cargo[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("update status: %w", ports.ErrNotFound)
}

func (m *memoryStore) ListVehicles(_ context.Context) ([]domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.vehicles), nil
}

func (m *memoryStore) CreateVehicle(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v.VehicleID = m.id()
	m.vehicles = append(m.vehicles, v)
	return v, nil
}

func (m *memoryStore) DeleteVehicle(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, v := range m.vehicles {
		if v.VehicleID == id {
			m.vehicles = slices.Delete(m.vehicles, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("delete vehicle: %w", ports.ErrNotFound)
}

func (m *memoryStore) SaveTrips(_ context.Context, date time.Time, depot domain.Depot, routes []domain.VehicleRoute) ([]domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := make(map[int]domain.CargoStatus, len(m.cargo))
	for _, c := range m.cargo {
		status[c.CargoID] = c.Status
	}
	for _, r := range routes {
		if !r.IsRented && !m.hasVehicle(r.VehicleID) {
			return nil, fmt.Errorf("save trips: vehicle_id=%d: %w", r.VehicleID, ports.ErrNotFound)
		}
		for _, cid := range r.CargoIDs() {
			if status[cid] != domain.CargoPending {
				return nil, fmt.Errorf("save trips: cargo_id=%d: %w", cid, ports.ErrCargoNotPending)
			}
		}
	}

	out := make([]domain.Trip, 0, len(routes))
	for _, r := range routes {
		vid := r.VehicleID
		if r.IsRented {
			vid = m.id()
			m.vehicles = append(m.vehicles, domain.Vehicle{VehicleID: vid, Capacity: r.VehicleCapacity, IsRented: true, RentalCost: r.RentalCost})
		}
		for _, cid := range r.CargoIDs() {
			for i := range m.cargo {
				if m.cargo[i].CargoID == cid {
					m.cargo[i].Status = domain.CargoInTransit
				}
			}
		}
		t := domain.Trip{
			TripID: m.id(), VehicleID: vid, TotalDistance: r.TotalDistance, TotalCost: r.TotalCost,
			StartStation: r.StartStation, Stops: r.Stops, Depot: depot, PlannedDate: date,
		}
		m.trips = append(m.trips, t)
		out = append(out, t)
	}
	return out, nil
}

func (m *memoryStore) ListTrips(_ context.Context, date time.Time) ([]domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Trip, 0)
	for _, t := range m.trips {
		if date.IsZero() || t.PlannedDate.Equal(date) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryStore) DeleteTrip(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.trips {
		if t.TripID == id {
			m.trips = slices.Delete(m.trips, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("delete trip: %w", ports.ErrNotFound)
}
