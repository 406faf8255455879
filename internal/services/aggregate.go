package services

import "cargo-route-service/internal/domain"

// AggregateDemand groups cargo by station name.
//
// Stations appear in order of first occurrence; that order only drives
// iteration, totals do not depend on it.
func AggregateDemand(cargo []domain.Cargo) []domain.AggregatedDemand {
	index := make(map[string]int)
	out := make([]domain.AggregatedDemand, 0)

	for _, c := range cargo {
		i, ok := index[c.StationName]
		if !ok {
			i = len(out)
			index[c.StationName] = i
			out = append(out, domain.AggregatedDemand{
				StationName: c.StationName,
				CargoIDs:    []int{},
			})
		}
		out[i].TotalWeight += c.TotalWeight()
		out[i].CargoIDs = append(out[i].CargoIDs, c.CargoID)
	}

	return out
}
