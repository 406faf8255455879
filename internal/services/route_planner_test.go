package services

import (
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/geography"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowAll = Options{AllowRental: true, AllowMultiTrip: true}

func TestSolveMixedFleetWithRental(t *testing.T) {
	solver := NewSolver(geography.Kocaeli())
	vehicles := []domain.Vehicle{{VehicleID: 1, Capacity: 500}, {VehicleID: 2, Capacity: 750}}
	cargo := []domain.Cargo{
		cargoAt(1, "Gebze", 300),
		cargoAt(2, "İzmit", 400),
		cargoAt(3, "Kartepe", 600),
	}

	res := solver.Solve(vehicles, cargo, allowAll)

	require.True(t, res.Success)
	require.Len(t, res.Routes, 3)

	assert.Equal(t, 2, res.Routes[0].VehicleID)
	assert.Equal(t, "Kartepe", res.Routes[0].StartStation)
	assert.Equal(t, 8.0, res.Routes[0].TotalDistance)

	assert.Equal(t, 1, res.Routes[1].VehicleID)
	assert.Equal(t, "İzmit", res.Routes[1].StartStation)

	rental := res.Routes[2]
	assert.Equal(t, 1000, rental.VehicleID)
	assert.True(t, rental.IsRented)
	assert.Equal(t, DefaultRentalCapacity, rental.VehicleCapacity)
	assert.Equal(t, DefaultRentalCost, rental.RentalCost)
	assert.Equal(t, 48.0, rental.FuelCost)
	assert.Equal(t, 248.0, rental.TotalCost)
	assert.Equal(t, 1, rental.TripNumber)

	assert.True(t, res.NeedsRental)
	assert.Equal(t, 1, res.RentalCountNeeded)
	assert.False(t, res.NeedsMultiTrip)
	assert.Empty(t, res.UnassignedDemand)

	assert.Equal(t, 61.0, res.TotalDistance)
	assert.Equal(t, 61.0, res.TotalFuelCost)
	assert.Equal(t, 200.0, res.TotalRentalCost)
	assert.Equal(t, 261.0, res.TotalCost)

	assert.Equal(t, []string{
		"capacity short by 50 kg, 1 rental vehicles needed",
		"1 rental vehicles added",
	}, res.Warnings)
	assert.Equal(t,
		"routes calculated, 2 owned vehicles, 1 rental vehicles, 61.0 km total distance, 261.0 total cost, (rental: 200.0)",
		res.Message)
	assert.Equal(t, geography.KocaeliDepotName, res.Depot.Name)
}

func TestSolveOversizeStationUnassigned(t *testing.T) {
	solver := NewSolver(geography.Kocaeli())
	vehicles := []domain.Vehicle{{VehicleID: 1, Capacity: 500}, {VehicleID: 2, Capacity: 750}}

	res := solver.Solve(vehicles, []domain.Cargo{cargoAt(7, "Gebze", 900)}, allowAll)

	assert.True(t, res.Success)
	assert.Empty(t, res.Routes)
	require.Len(t, res.UnassignedDemand, 1)
	assert.Equal(t, "Gebze", res.UnassignedDemand[0].StationName)
	assert.Equal(t, []int{7}, res.UnassignedDemand[0].CargoIDs)
	// 900 kg is below the 1250 kg fleet total, so there is no shortage.
	assert.False(t, res.NeedsRental)
	assert.Zero(t, res.RentalCountNeeded)
	assert.Equal(t, []string{"station Gebze could not be assigned (900 kg)"}, res.Warnings)
	assert.Equal(t, "routes calculated, 0.0 km total distance, 0.0 total cost", res.Message)
}

func TestSolveShortageWithOversizeStation(t *testing.T) {
	solver := NewSolver(geography.Kocaeli())
	vehicles := []domain.Vehicle{{VehicleID: 1, Capacity: 500}}
	cargo := []domain.Cargo{cargoAt(1, "Gebze", 900), cargoAt(2, "İzmit", 400)}

	res := solver.Solve(vehicles, cargo, allowAll)

	require.Len(t, res.Routes, 1)
	assert.Equal(t, 1, res.Routes[0].VehicleID)
	assert.Equal(t, "İzmit", res.Routes[0].StartStation)
	require.Len(t, res.UnassignedDemand, 1)
	assert.Equal(t, "Gebze", res.UnassignedDemand[0].StationName)

	assert.True(t, res.NeedsRental)
	assert.Equal(t, 2, res.RentalCountNeeded)
	assert.Equal(t, []string{
		"capacity short by 800 kg, 2 rental vehicles needed",
		"station Gebze could not be assigned (900 kg)",
	}, res.Warnings)
	assert.Equal(t, "routes calculated, 1 owned vehicles, 5.0 km total distance, 5.0 total cost", res.Message)
}

func TestSolveSingleStationSingleVehicle(t *testing.T) {
	geo := geography.Kocaeli()
	res := NewSolver(geo).Solve(
		[]domain.Vehicle{{VehicleID: 3, Capacity: 1000}},
		[]domain.Cargo{cargoAt(1, "Gebze", 100)},
		allowAll,
	)

	require.Len(t, res.Routes, 1)
	r := res.Routes[0]
	assert.Equal(t, geo.DepotDistance("Gebze"), r.TotalDistance)
	assert.Equal(t, r.TotalDistance, r.FuelCost)
	assert.Equal(t, r.FuelCost, r.TotalCost)
	assert.Zero(t, r.RentalCost)
	assert.Equal(t, 1, r.TripNumber)
	require.Len(t, r.Stops, 1)

	coords, ok := geo.Coordinates("Gebze")
	require.True(t, ok)
	assert.Equal(t, coords, r.Stops[0].Coordinates)
	assert.Equal(t, "routes calculated, 1 owned vehicles, 48.0 km total distance, 48.0 total cost", res.Message)
	assert.Empty(t, res.Warnings)
}

func TestSolveNoCargo(t *testing.T) {
	res := NewSolver(geography.Kocaeli()).Solve(
		[]domain.Vehicle{{VehicleID: 1, Capacity: 500}}, nil, allowAll,
	)

	assert.True(t, res.Success)
	assert.NotNil(t, res.Routes)
	assert.Empty(t, res.Routes)
	assert.NotNil(t, res.UnassignedDemand)
	assert.Empty(t, res.UnassignedDemand)
	assert.Empty(t, res.Warnings)
	assert.Zero(t, res.TotalCost)
	assert.Equal(t, "no cargo to route", res.Message)
}

func TestSolveWithoutRentalLeavesOverflowUnassigned(t *testing.T) {
	res := NewSolver(geography.Kocaeli()).Solve(
		[]domain.Vehicle{{VehicleID: 1, Capacity: 500}},
		[]domain.Cargo{cargoAt(1, "Gebze", 400), cargoAt(2, "Darıca", 300)},
		Options{AllowRental: false},
	)

	require.Len(t, res.Routes, 1)
	assert.Equal(t, "Gebze", res.Routes[0].StartStation)
	require.Len(t, res.UnassignedDemand, 1)
	assert.Equal(t, "Darıca", res.UnassignedDemand[0].StationName)
	assert.True(t, res.NeedsRental)
	assert.Zero(t, res.TotalRentalCost)
}

func TestSolveCombinesCargoAtStation(t *testing.T) {
	res := NewSolver(geography.Kocaeli()).Solve(
		[]domain.Vehicle{{VehicleID: 1, Capacity: 500}},
		[]domain.Cargo{
			cargoAt(4, "Derince", 100),
			{CargoID: 5, StationName: "Derince", Weight: 50, Quantity: 3},
		},
		allowAll,
	)

	require.Len(t, res.Routes, 1)
	require.Len(t, res.Routes[0].Stops, 1)
	assert.Equal(t, 250.0, res.Routes[0].Stops[0].TotalWeight)
	assert.Equal(t, []int{4, 5}, res.Routes[0].Stops[0].CargoIDs)
}

func TestSolveMultiTripFlagIgnored(t *testing.T) {
	solver := NewSolver(geography.Kocaeli())
	vehicles := []domain.Vehicle{{VehicleID: 1, Capacity: 500}}
	cargo := []domain.Cargo{cargoAt(1, "Gebze", 400), cargoAt(2, "Kandıra", 400)}

	with := solver.Solve(vehicles, cargo, Options{AllowRental: true, AllowMultiTrip: true})
	without := solver.Solve(vehicles, cargo, Options{AllowRental: true, AllowMultiTrip: false})

	assert.Equal(t, with, without)
	assert.False(t, with.NeedsMultiTrip)
}

func mixedWorkload() ([]domain.Vehicle, []domain.Cargo) {
	vehicles := []domain.Vehicle{
		{VehicleID: 1, Capacity: 500},
		{VehicleID: 2, Capacity: 750},
		{VehicleID: 3, Capacity: 1000},
	}

	names := geography.Kocaeli().Names()
	cargo := make([]domain.Cargo, 0, 30)
	for i := 0; i < 30; i++ {
		cargo = append(cargo, cargoAt(i+1, names[(i*7)%len(names)], float64(20+(i*37)%160)))
	}
	return vehicles, cargo
}

func TestSolveRespectsCapacityAndAssignsOnce(t *testing.T) {
	vehicles, cargo := mixedWorkload()
	res := NewSolver(geography.Kocaeli()).Solve(vehicles, cargo, allowAll)

	seen := make(map[int]int)
	for _, r := range res.Routes {
		assert.LessOrEqual(t, r.Load(), r.VehicleCapacity, "vehicle %d", r.VehicleID)
		for _, id := range r.CargoIDs() {
			seen[id]++
		}
	}
	for _, d := range res.UnassignedDemand {
		for _, id := range d.CargoIDs {
			seen[id]++
		}
	}

	require.Len(t, seen, len(cargo))
	for id, n := range seen {
		assert.Equal(t, 1, n, "cargo %d", id)
	}
}

func TestSolveDeterministic(t *testing.T) {
	vehicles, cargo := mixedWorkload()
	solver := NewSolver(geography.Kocaeli())

	first := solver.Solve(vehicles, cargo, allowAll)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, solver.Solve(vehicles, cargo, allowAll))
	}
}

func TestSolveDoesNotMutateInputs(t *testing.T) {
	vehicles, cargo := mixedWorkload()
	vCopy := append([]domain.Vehicle(nil), vehicles...)
	cCopy := append([]domain.Cargo(nil), cargo...)

	NewSolver(geography.Kocaeli()).Solve(vehicles, cargo, allowAll)

	assert.Equal(t, vCopy, vehicles)
	assert.Equal(t, cCopy, cargo)
}

func TestSolveTotalsMatchRoutes(t *testing.T) {
	vehicles, cargo := mixedWorkload()
	res := NewSolver(geography.Kocaeli()).Solve(vehicles[:1], cargo, allowAll)

	var dist, fuel, rental float64
	for _, r := range res.Routes {
		dist += r.TotalDistance
		fuel += r.FuelCost
		rental += r.RentalCost
	}
	assert.InDelta(t, dist, res.TotalDistance, 1e-9)
	assert.InDelta(t, fuel, res.TotalFuelCost, 1e-9)
	assert.InDelta(t, rental, res.TotalRentalCost, 1e-9)
	assert.InDelta(t, fuel+rental, res.TotalCost, 1e-9)
}

func TestWithSequencerLeavesOriginal(t *testing.T) {
	geo := geography.Kocaeli()
	base := NewSolver(geo)
	tuned := base.WithSequencer(TwoOptSequencer{Geo: geo, Base: base.Sequencer})

	assert.IsType(t, DepotApproachSequencer{}, base.Sequencer)
	assert.IsType(t, TwoOptSequencer{}, tuned.Sequencer)

	vehicles, cargo := mixedWorkload()
	greedy := base.Solve(vehicles, cargo, allowAll)
	improved := tuned.Solve(vehicles, cargo, allowAll)
	assert.LessOrEqual(t, improved.TotalDistance, greedy.TotalDistance+1e-9)
}

type recordingObserver struct {
	mu      sync.Mutex
	results []domain.RoutingResult
}

func (o *recordingObserver) ObserveSolve(r domain.RoutingResult, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, r)
}

func TestSolveNotifiesObserver(t *testing.T) {
	rec := &recordingObserver{}
	solver := NewSolver(geography.Kocaeli())
	solver.Observer = rec

	res := solver.Solve(nil, []domain.Cargo{cargoAt(1, "Gebze", 10)}, allowAll)

	require.Len(t, rec.results, 1)
	assert.Equal(t, res, rec.results[0])
}
