package services

import (
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/geography"
	"testing"

	"github.com/stretchr/testify/require"
)

// syntheticGeo builds a small table for hand-computed sequencing cases.
// distances maps "A-B" to the km between A and B.
func syntheticGeo(t *testing.T, depot map[string]float64, names []string, distances map[string]float64) *geography.Table {
	t.Helper()

	locs := make([]geography.Location, 0, len(names))
	for _, n := range names {
		locs = append(locs, geography.Location{Name: n, DepotDistance: depot[n]})
	}

	pairs := make([]geography.Pair, 0, len(distances))
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			key := names[i] + "-" + names[j]
			km, ok := distances[key]
			if !ok {
				km = distances[names[j]+"-"+names[i]]
			}
			pairs = append(pairs, geography.Pair{From: names[i], To: names[j], KM: km})
		}
	}

	geo, err := geography.FromPairs(domain.Depot{Name: "Depot"}, locs, pairs)
	require.NoError(t, err)
	return geo
}

func cargoAt(id int, station string, weight float64) domain.Cargo {
	return domain.Cargo{CargoID: id, StationName: station, Weight: weight, Quantity: 1, Status: domain.CargoPending}
}

func demandOf(station string, weight float64, ids ...int) domain.AggregatedDemand {
	if ids == nil {
		ids = []int{}
	}
	return domain.AggregatedDemand{StationName: station, TotalWeight: weight, CargoIDs: ids}
}
