package services

import (
	"cargo-route-service/internal/ports"
	"math"
	"slices"
)

// Sequencer orders the stations assigned to one vehicle.
// The returned path lists stations only; the depot is the implicit last leg.
type Sequencer interface {
	Sequence(stations []string) []string
}

// approachBonusWeight scales the reward for a step that brings the vehicle
// closer to the depot.
const approachBonusWeight = 0.5

// DepotApproachSequencer is a greedy nearest-neighbor walk biased toward the
// depot.
//
// The vehicle starts at the station farthest from the depot. Each step picks
// the candidate minimizing distance(current, c) minus half of the depot
// distance it saves. If the walk ends by moving away from the depot, a plain
// farthest-first ordering replaces it when that ordering is strictly shorter.
// The result is deterministic but not guaranteed to be optimal.
type DepotApproachSequencer struct {
	Geo ports.Geography
}

func (s DepotApproachSequencer) Sequence(stations []string) []string {
	route := slices.Clone(stations)
	if len(route) <= 1 {
		return route
	}

	if len(route) == 2 {
		if s.Geo.DepotDistance(route[0]) < s.Geo.DepotDistance(route[1]) {
			route[0], route[1] = route[1], route[0]
		}
		return route
	}

	start := farthestFromDepot(s.Geo, route)
	remaining := make([]string, 0, len(route)-1)
	for i, st := range route {
		if i != start {
			remaining = append(remaining, st)
		}
	}

	path := make([]string, 0, len(route))
	path = append(path, route[start])

	for len(remaining) > 0 {
		current := path[len(path)-1]
		currentDepot := s.Geo.DepotDistance(current)

		best := -1
		bestScore := math.Inf(1)

		// Strict comparison keeps the earliest candidate on equal scores.
		for i, c := range remaining {
			bonus := math.Max(0, currentDepot-s.Geo.DepotDistance(c)) * approachBonusWeight
			score := s.Geo.Distance(current, c) - bonus
			if score < bestScore {
				bestScore = score
				best = i
			}
		}

		path = append(path, remaining[best])
		remaining = slices.Delete(remaining, best, best+1)
	}

	n := len(path)
	if s.Geo.DepotDistance(path[n-1]) > s.Geo.DepotDistance(path[n-2]) {
		alt := slices.Clone(path)
		slices.SortStableFunc(alt, func(a, b string) int {
			da, db := s.Geo.DepotDistance(a), s.Geo.DepotDistance(b)
			switch {
			case da > db:
				return -1
			case da < db:
				return 1
			}
			return 0
		})

		if RouteDistance(s.Geo, alt) < RouteDistance(s.Geo, path) {
			path = alt
		}
	}

	return path
}

// farthestFromDepot returns the index of the station with the largest depot
// distance, the first one on ties.
func farthestFromDepot(geo ports.Geography, stations []string) int {
	best := 0
	maxDist := geo.DepotDistance(stations[0])
	for i, st := range stations {
		if d := geo.DepotDistance(st); d > maxDist {
			maxDist = d
			best = i
		}
	}
	return best
}

// RouteDistance is the one-way length of a path: the legs between
// consecutive stations plus the last station's depot distance.
func RouteDistance(geo ports.Geography, path []string) float64 {
	if len(path) == 0 {
		return 0
	}

	total := 0.0
	for i := 0; i < len(path)-1; i++ {
		total += geo.Distance(path[i], path[i+1])
	}
	return total + geo.DepotDistance(path[len(path)-1])
}
