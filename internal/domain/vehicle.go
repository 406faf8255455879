package domain

// Vehicle is a member of the fleet supplied to a solve, or a rental
// vehicle synthesized by the allocator. RentalCost is zero for owned vehicles.
type Vehicle struct {
	VehicleID  int
	Capacity   float64
	IsRented   bool
	RentalCost float64
}
