package services

import (
	"cargo-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateHeaviestFirstIntoLargestVehicle(t *testing.T) {
	vehicles := []domain.Vehicle{{VehicleID: 1, Capacity: 500}, {VehicleID: 2, Capacity: 750}}
	demand := []domain.AggregatedDemand{
		demandOf("Gebze", 300),
		demandOf("İzmit", 400),
		demandOf("Kartepe", 600),
	}

	got := NewAllocator().Allocate(vehicles, demand, true)

	require.Len(t, got.Owned, 2)
	assert.Equal(t, 2, got.Owned[0].Vehicle.VehicleID)
	assert.Equal(t, []string{"Kartepe"}, got.Owned[0].Stations())
	assert.Equal(t, 1, got.Owned[1].Vehicle.VehicleID)
	assert.Equal(t, []string{"İzmit"}, got.Owned[1].Stations())

	require.Len(t, got.Rental, 1)
	assert.Equal(t, []string{"Gebze"}, got.Rental[0].Stations())
	assert.Equal(t, DefaultRentalIDStart, got.Rental[0].Vehicle.VehicleID)
	assert.True(t, got.Rental[0].Vehicle.IsRented)
	assert.Equal(t, DefaultRentalCost, got.Rental[0].Vehicle.RentalCost)
	assert.Empty(t, got.Unassigned)

	assert.Equal(t, 1300.0, got.TotalDemand)
	assert.Equal(t, 1250.0, got.TotalCapacity)
	assert.Equal(t, 50.0, got.Shortage)
	assert.Equal(t, 1, got.RentalNeeded)
}

func TestAllocateFirstFitFillsEarlierBins(t *testing.T) {
	vehicles := []domain.Vehicle{{VehicleID: 1, Capacity: 1000}, {VehicleID: 2, Capacity: 500}}
	demand := []domain.AggregatedDemand{
		demandOf("A", 450),
		demandOf("B", 300),
		demandOf("C", 200),
	}

	got := NewAllocator().Allocate(vehicles, demand, false)

	require.Len(t, got.Owned, 1)
	assert.Equal(t, []string{"A", "B", "C"}, got.Owned[0].Stations())
	assert.Equal(t, 950.0, got.Owned[0].Load)
	assert.Equal(t, 50.0, got.Owned[0].Remaining())
}

func TestAllocateOversizeDemandIsUnassigned(t *testing.T) {
	vehicles := []domain.Vehicle{{VehicleID: 1, Capacity: 750}}
	demand := []domain.AggregatedDemand{demandOf("Gebze", 900, 1, 2)}

	got := NewAllocator().Allocate(vehicles, demand, true)

	assert.Empty(t, got.Owned)
	assert.Empty(t, got.Rental)
	assert.Equal(t, []domain.AggregatedDemand{demandOf("Gebze", 900, 1, 2)}, got.Unassigned)
	assert.Equal(t, 1, got.RentalNeeded)
}

func TestAllocateWithoutRentals(t *testing.T) {
	demand := []domain.AggregatedDemand{demandOf("A", 100), demandOf("B", 200)}

	got := NewAllocator().Allocate(nil, demand, false)

	assert.Empty(t, got.Owned)
	assert.Empty(t, got.Rental)
	assert.Equal(t, []domain.AggregatedDemand{demandOf("B", 200), demandOf("A", 100)}, got.Unassigned)
}

func TestAllocateZeroVehiclesUsesRentals(t *testing.T) {
	demand := []domain.AggregatedDemand{
		demandOf("A", 300),
		demandOf("B", 300),
		demandOf("C", 150),
	}

	got := NewAllocator().Allocate(nil, demand, true)

	require.Len(t, got.Rental, 2)
	assert.Equal(t, []string{"A", "C"}, got.Rental[0].Stations())
	assert.Equal(t, []string{"B"}, got.Rental[1].Stations())
	assert.Equal(t, 1000, got.Rental[0].Vehicle.VehicleID)
	assert.Equal(t, 1001, got.Rental[1].Vehicle.VehicleID)
	assert.Equal(t, 2, got.RentalNeeded)
}

func TestAllocateRentalIDsSkipFleetIDs(t *testing.T) {
	vehicles := []domain.Vehicle{{VehicleID: 1000, Capacity: 100}}
	demand := []domain.AggregatedDemand{demandOf("A", 400), demandOf("B", 450)}

	got := NewAllocator().Allocate(vehicles, demand, true)

	require.Len(t, got.Rental, 2)
	assert.Equal(t, 1001, got.Rental[0].Vehicle.VehicleID)
	assert.Equal(t, 1002, got.Rental[1].Vehicle.VehicleID)
}

func TestAllocateZeroCapacityVehicleIsFull(t *testing.T) {
	vehicles := []domain.Vehicle{{VehicleID: 1, Capacity: 0}}
	demand := []domain.AggregatedDemand{demandOf("A", 10)}

	got := NewAllocator().Allocate(vehicles, demand, false)

	assert.Empty(t, got.Owned)
	assert.Len(t, got.Unassigned, 1)
}

func TestAllocateZeroDemand(t *testing.T) {
	got := NewAllocator().Allocate([]domain.Vehicle{{VehicleID: 1, Capacity: 500}}, nil, true)

	assert.Empty(t, got.Owned)
	assert.Empty(t, got.Rental)
	assert.Empty(t, got.Unassigned)
	assert.Zero(t, got.Shortage)
}

func TestAllocateStableOnEqualWeights(t *testing.T) {
	vehicles := []domain.Vehicle{{VehicleID: 7, Capacity: 100}, {VehicleID: 3, Capacity: 100}}
	demand := []domain.AggregatedDemand{demandOf("First", 100), demandOf("Second", 100)}

	got := NewAllocator().Allocate(vehicles, demand, false)

	require.Len(t, got.Owned, 2)
	assert.Equal(t, 7, got.Owned[0].Vehicle.VehicleID)
	assert.Equal(t, []string{"First"}, got.Owned[0].Stations())
	assert.Equal(t, 3, got.Owned[1].Vehicle.VehicleID)
	assert.Equal(t, []string{"Second"}, got.Owned[1].Stations())
}

type fixedIDs []int

func (f fixedIDs) Reserve(n int, _ map[int]struct{}) []int { return f[:n] }

func TestAllocateCustomRentalTerms(t *testing.T) {
	a := Allocator{RentalCapacity: 250, RentalCost: 90, IDs: fixedIDs{42, 43}}
	got := a.Allocate(nil, []domain.AggregatedDemand{demandOf("A", 200), demandOf("B", 200)}, true)

	require.Len(t, got.Rental, 2)
	assert.Equal(t, 42, got.Rental[0].Vehicle.VehicleID)
	assert.Equal(t, 250.0, got.Rental[0].Vehicle.Capacity)
	assert.Equal(t, 90.0, got.Rental[1].Vehicle.RentalCost)
	assert.Equal(t, 2, got.RentalNeeded)
}
