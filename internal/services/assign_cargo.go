package services

import (
	"cargo-route-service/internal/domain"
	"math"
	"slices"
)

// Default rental terms for vehicles synthesized during allocation.
const (
	DefaultRentalCapacity = 500.0
	DefaultRentalCost     = 200.0
	DefaultRentalIDStart  = 1000
)

// RentalIDs hands out vehicle ids for synthesized rental vehicles.
type RentalIDs interface {
	// Reserve returns n ids, none of which appears in taken.
	Reserve(n int, taken map[int]struct{}) []int
}

// OffsetIDs numbers rental vehicles upward from Start, skipping taken ids.
type OffsetIDs struct {
	Start int
}

func (o OffsetIDs) Reserve(n int, taken map[int]struct{}) []int {
	ids := make([]int, 0, n)
	for id := o.Start; len(ids) < n; id++ {
		if _, ok := taken[id]; ok {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Bin is one vehicle being filled by the allocator.
type Bin struct {
	Vehicle domain.Vehicle
	Demand  []domain.AggregatedDemand
	Load    float64
}

// Remaining capacity left in the bin.
func (b *Bin) Remaining() float64 { return b.Vehicle.Capacity - b.Load }

// Fits reports whether weight can be added without exceeding capacity.
func (b *Bin) Fits(weight float64) bool { return weight <= b.Remaining() }

func (b *Bin) add(d domain.AggregatedDemand) {
	b.Demand = append(b.Demand, d)
	b.Load += d.TotalWeight
}

// Stations returns the station names assigned to the bin, in placement order.
func (b *Bin) Stations() []string {
	out := make([]string, 0, len(b.Demand))
	for _, d := range b.Demand {
		out = append(out, d.StationName)
	}
	return out
}

// Allocation is the outcome of packing demand into vehicles.
type Allocation struct {
	// Owned holds non-empty bins of the supplied fleet, largest vehicle first.
	Owned []*Bin
	// Rental holds bins of synthesized rental vehicles, in opening order.
	Rental []*Bin
	// Unassigned demand fits no vehicle, in decreasing weight order.
	Unassigned []domain.AggregatedDemand

	TotalDemand   float64
	TotalCapacity float64
	// Shortage is how far demand exceeds supplied capacity (0 when it does not).
	Shortage float64
	// RentalNeeded estimates the rental vehicles covering Shortage. Advisory only.
	RentalNeeded int
}

// Allocator packs station demand into vehicles with first-fit decreasing.
//
// Phase one fills the supplied fleet. Phase two, when rentals are allowed,
// packs the leftovers into as many rental vehicles of RentalCapacity as
// needed. A station's demand is never split: demand that fits no single
// vehicle is reported unassigned.
type Allocator struct {
	RentalCapacity float64
	RentalCost     float64
	IDs            RentalIDs
}

func NewAllocator() Allocator {
	return Allocator{
		RentalCapacity: DefaultRentalCapacity,
		RentalCost:     DefaultRentalCost,
		IDs:            OffsetIDs{Start: DefaultRentalIDStart},
	}
}

func (a Allocator) Allocate(
	vehicles []domain.Vehicle,
	demand []domain.AggregatedDemand,
	allowRental bool,
) Allocation {
	var out Allocation

	for _, d := range demand {
		out.TotalDemand += d.TotalWeight
	}
	for _, v := range vehicles {
		out.TotalCapacity += v.Capacity
	}

	if out.TotalDemand > out.TotalCapacity {
		out.Shortage = out.TotalDemand - out.TotalCapacity
		if a.RentalCapacity > 0 {
			out.RentalNeeded = int(math.Ceil(out.Shortage / a.RentalCapacity))
		}
	}

	// Heaviest stations first; the stable sort keeps input order among equals.
	sorted := slices.Clone(demand)
	slices.SortStableFunc(sorted, func(x, y domain.AggregatedDemand) int {
		switch {
		case x.TotalWeight > y.TotalWeight:
			return -1
		case x.TotalWeight < y.TotalWeight:
			return 1
		}
		return 0
	})

	fleet := slices.Clone(vehicles)
	slices.SortStableFunc(fleet, func(x, y domain.Vehicle) int {
		switch {
		case x.Capacity > y.Capacity:
			return -1
		case x.Capacity < y.Capacity:
			return 1
		}
		return 0
	})

	bins := make([]*Bin, 0, len(fleet))
	for _, v := range fleet {
		bins = append(bins, &Bin{Vehicle: v})
	}

	leftover := firstFit(bins, sorted)

	for _, b := range bins {
		if len(b.Demand) > 0 {
			out.Owned = append(out.Owned, b)
		}
	}

	if !allowRental || a.RentalCapacity <= 0 {
		out.Unassigned = leftover
		return out
	}

	rental := make([]*Bin, 0)
	for _, d := range leftover {
		if d.TotalWeight > a.RentalCapacity {
			out.Unassigned = append(out.Unassigned, d)
			continue
		}

		if rest := firstFit(rental, []domain.AggregatedDemand{d}); len(rest) == 0 {
			continue
		}

		b := &Bin{Vehicle: domain.Vehicle{Capacity: a.RentalCapacity, IsRented: true, RentalCost: a.RentalCost}}
		b.add(d)
		rental = append(rental, b)
	}

	if len(rental) > 0 {
		taken := make(map[int]struct{}, len(vehicles))
		for _, v := range vehicles {
			taken[v.VehicleID] = struct{}{}
		}

		ids := a.rentalIDs().Reserve(len(rental), taken)
		for i, b := range rental {
			b.Vehicle.VehicleID = ids[i]
		}
	}
	out.Rental = rental

	return out
}

func (a Allocator) rentalIDs() RentalIDs {
	if a.IDs == nil {
		return OffsetIDs{Start: DefaultRentalIDStart}
	}
	return a.IDs
}

// firstFit places each demand, in order, into the first bin with room for
// it and returns the demand that fit nowhere.
func firstFit(bins []*Bin, demand []domain.AggregatedDemand) []domain.AggregatedDemand {
	leftover := make([]domain.AggregatedDemand, 0)

	for _, d := range demand {
		placed := false
		for _, b := range bins {
			if b.Fits(d.TotalWeight) {
				b.add(d)
				placed = true
				break
			}
		}
		if !placed {
			leftover = append(leftover, d)
		}
	}

	return leftover
}
