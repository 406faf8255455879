package services

import (
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/ports"
	"fmt"
	"strings"
	"time"
)

const noCargoMessage = "no cargo to route"

// Options tune a single solve.
type Options struct {
	AllowRental bool
	// AllowMultiTrip is accepted for API compatibility. Every vehicle makes
	// exactly one trip regardless of its value.
	AllowMultiTrip bool
}

// SolveObserver receives the outcome of every solve. Implementations must
// be safe for concurrent use.
type SolveObserver interface {
	ObserveSolve(result domain.RoutingResult, took time.Duration)
}

// Solver is the routing core: it aggregates cargo by station, packs the
// stations into vehicles, sequences each vehicle toward the depot and
// prices the resulting routes.
//
// Solve is a pure function of its inputs and safe for concurrent use as
// long as the geography is.
type Solver struct {
	Geo       ports.Geography
	Allocator Allocator
	Sequencer Sequencer
	Pricer    Pricer
	Observer  SolveObserver
}

// NewSolver returns a Solver with the default rental terms, fuel rate and
// the depot-approach sequencer.
func NewSolver(geo ports.Geography) *Solver {
	return &Solver{
		Geo:       geo,
		Allocator: NewAllocator(),
		Sequencer: DepotApproachSequencer{Geo: geo},
		Pricer:    Pricer{Geo: geo, FuelCostPerKM: DefaultFuelCostPerKM},
	}
}

// WithSequencer returns a copy of s that orders stops with seq.
func (s *Solver) WithSequencer(seq Sequencer) *Solver {
	c := *s
	c.Sequencer = seq
	return &c
}

func (s *Solver) Solve(vehicles []domain.Vehicle, cargo []domain.Cargo, opts Options) domain.RoutingResult {
	start := time.Now()
	result := s.solve(vehicles, cargo, opts)
	if s.Observer != nil {
		s.Observer.ObserveSolve(result, time.Since(start))
	}
	return result
}

func (s *Solver) solve(vehicles []domain.Vehicle, cargo []domain.Cargo, opts Options) domain.RoutingResult {
	result := domain.RoutingResult{
		Success:          true,
		Routes:           []domain.VehicleRoute{},
		UnassignedDemand: []domain.AggregatedDemand{},
		Warnings:         []string{},
		Depot:            s.Geo.Depot(),
	}

	if len(cargo) == 0 {
		result.Message = noCargoMessage
		return result
	}

	demand := AggregateDemand(cargo)
	byStation := make(map[string]domain.AggregatedDemand, len(demand))
	for _, d := range demand {
		byStation[d.StationName] = d
	}

	alloc := s.Allocator.Allocate(vehicles, demand, opts.AllowRental)

	if alloc.Shortage > 0 {
		result.NeedsRental = true
		result.RentalCountNeeded = alloc.RentalNeeded
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"capacity short by %.0f kg, %d rental vehicles needed",
			alloc.Shortage, alloc.RentalNeeded,
		))
	}

	for _, b := range alloc.Owned {
		result.Routes = append(result.Routes, s.route(b, byStation))
	}

	for i, b := range alloc.Rental {
		r := s.route(b, byStation)
		r.TripNumber = i + 1
		result.Routes = append(result.Routes, r)
	}
	if len(alloc.Rental) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d rental vehicles added", len(alloc.Rental)))
	}

	for _, d := range alloc.Unassigned {
		result.UnassignedDemand = append(result.UnassignedDemand, d)
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"station %s could not be assigned (%.0f kg)", d.StationName, d.TotalWeight,
		))
	}

	for _, r := range result.Routes {
		result.TotalDistance += r.TotalDistance
		result.TotalFuelCost += r.FuelCost
		result.TotalRentalCost += r.RentalCost
	}
	result.TotalCost = result.TotalFuelCost + result.TotalRentalCost
	result.Message = summarize(result, len(alloc.Owned), len(alloc.Rental))

	return result
}

func (s *Solver) route(b *Bin, byStation map[string]domain.AggregatedDemand) domain.VehicleRoute {
	path := s.Sequencer.Sequence(b.Stations())
	return s.Pricer.Price(b.Vehicle, path, byStation)
}

func summarize(r domain.RoutingResult, owned, rental int) string {
	parts := []string{"routes calculated"}
	if owned > 0 {
		parts = append(parts, fmt.Sprintf("%d owned vehicles", owned))
	}
	if rental > 0 {
		parts = append(parts, fmt.Sprintf("%d rental vehicles", rental))
	}
	parts = append(parts,
		fmt.Sprintf("%.1f km total distance", r.TotalDistance),
		fmt.Sprintf("%.1f total cost", r.TotalCost),
	)
	if r.TotalRentalCost > 0 {
		parts = append(parts, fmt.Sprintf("(rental: %.1f)", r.TotalRentalCost))
	}
	return strings.Join(parts, ", ")
}
