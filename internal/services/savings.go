package services

import (
	"cargo-route-service/internal/ports"
	"slices"
)

// Saving is the Clarke-Wright gain of serving two stations on one route
// instead of two: depot(i) + depot(j) - distance(i, j).
type Saving struct {
	From  string
	To    string
	Value float64
}

// ComputeSavings returns the positive pairwise savings for the stations,
// largest first. It is a standalone building block for savings-based
// construction and is not used by Solver.Solve.
func ComputeSavings(geo ports.Geography, stations []string) []Saving {
	out := make([]Saving, 0)

	for i := 0; i < len(stations); i++ {
		for j := i + 1; j < len(stations); j++ {
			a, b := stations[i], stations[j]
			v := geo.DepotDistance(a) + geo.DepotDistance(b) - geo.Distance(a, b)
			if v > 0 {
				out = append(out, Saving{From: a, To: b, Value: v})
			}
		}
	}

	slices.SortStableFunc(out, func(x, y Saving) int {
		switch {
		case x.Value > y.Value:
			return -1
		case x.Value < y.Value:
			return 1
		}
		return 0
	})

	return out
}
