package services

import (
	"cargo-route-service/internal/ports"
	"slices"
)

const defaultTwoOptIterations = 50

// TwoOptSequencer improves the ordering of a base sequencer with 2-opt
// segment reversals. The depot stays the fixed end of the path while the
// start station may change. Only strictly shorter orderings are accepted.
type TwoOptSequencer struct {
	Geo        ports.Geography
	Base       Sequencer
	Iterations int
}

func (s TwoOptSequencer) Sequence(stations []string) []string {
	var best []string
	if s.Base != nil {
		best = s.Base.Sequence(stations)
	} else {
		best = slices.Clone(stations)
	}

	if len(best) < 3 {
		return best
	}

	iterations := s.Iterations
	if iterations <= 0 {
		iterations = defaultTwoOptIterations
	}

	bestDist := RouteDistance(s.Geo, best)
	n := len(best)

	for it := 0; it < iterations; it++ {
		improved := false
		for i := 0; i < n-1; i++ {
			for k := i + 1; k < n; k++ {
				candidate := twoOptSwap(best, i, k)
				if d := RouteDistance(s.Geo, candidate); d < bestDist {
					best = candidate
					bestDist = d
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}

	return best
}

// twoOptSwap returns a copy of path with the segment i..k reversed.
func twoOptSwap(path []string, i, k int) []string {
	out := slices.Clone(path)
	slices.Reverse(out[i : k+1])
	return out
}
