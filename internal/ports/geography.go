package ports

import "cargo-route-service/internal/domain"

// Contract for the fixed distance data the router reads.
// Implementations must be safe for concurrent reads.
type Geography interface {
	// Return the symmetric distance between two stations, or the one-way
	// depot distance when either side is the depot. Unknown names yield 0.
	Distance(from, to string) float64
	// Return the one-way distance between a station and the depot.
	DepotDistance(station string) float64
	// Return the coordinates of a station or of the depot.
	Coordinates(name string) (domain.Coordinates, bool)
	Depot() domain.Depot
}
