package domain

import "time"

// Represents a single stop in a vehicle route.
// A RouteStop collects every cargo record waiting at one station.
type RouteStop struct {
	StationName string
	CargoIDs    []int
	TotalWeight float64
	Coordinates Coordinates
}

// Represents the planned route for a single vehicle.
// The vehicle starts at the first stop and ends at the depot; there is no
// return leg. It is immutable planning data and contains no side effects.
type VehicleRoute struct {
	VehicleID       int
	VehicleCapacity float64
	IsRented        bool
	RentalCost      float64
	StartStation    string
	Stops           []RouteStop
	TotalDistance   float64
	FuelCost        float64
	TotalCost       float64
	TripNumber      int
}

// Load returns the weight carried on the route.
func (r VehicleRoute) Load() float64 {
	total := 0.0
	for _, s := range r.Stops {
		total += s.TotalWeight
	}
	return total
}

// CargoIDs returns the ids of every cargo record on the route, in stop order.
func (r VehicleRoute) CargoIDs() []int {
	ids := make([]int, 0)
	for _, s := range r.Stops {
		ids = append(ids, s.CargoIDs...)
	}
	return ids
}

// RoutingResult is the output of one solve.
type RoutingResult struct {
	Success           bool
	Routes            []VehicleRoute
	TotalDistance     float64
	TotalFuelCost     float64
	TotalRentalCost   float64
	TotalCost         float64
	UnassignedDemand  []AggregatedDemand
	NeedsRental       bool
	RentalCountNeeded int
	NeedsMultiTrip    bool
	Message           string
	Warnings          []string
	Depot             Depot
}

// Plan is a calculated routing result waiting for confirmation.
type Plan struct {
	PlanID     string
	TargetDate time.Time
	CreatedAt  time.Time
	Result     RoutingResult
}

// Trip is a confirmed route recorded against a vehicle for a planned date.
type Trip struct {
	TripID        int
	VehicleID     int
	TotalDistance float64
	TotalCost     float64
	StartStation  string
	Stops         []RouteStop
	Depot         Depot
	PlannedDate   time.Time
}

// StationSummary describes the pending cargo at one station for a date.
type StationSummary struct {
	StationName string
	CargoCount  int
	TotalWeight float64
	Coordinates Coordinates
}

// CargoSummary compares pending demand for a date with owned fleet capacity.
type CargoSummary struct {
	TargetDate         time.Time
	Stations           []StationSummary
	TotalCargoCount    int
	TotalWeight        float64
	VehicleCapacity    float64
	CapacitySufficient bool
	Shortage           float64
}
