package geography

import (
	"cargo-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKocaeliDistanceLookups(t *testing.T) {
	geo := Kocaeli()

	assert.Equal(t, 45.0, geo.Distance("İzmit", "Gebze"))
	assert.Equal(t, 45.0, geo.Distance("Gebze", "İzmit"))
	assert.Equal(t, 0.0, geo.Distance("Gebze", "Gebze"))

	// Depot legs come from the dedicated depot table in both directions.
	assert.Equal(t, 48.0, geo.Distance("Gebze", KocaeliDepotName))
	assert.Equal(t, 48.0, geo.Distance(KocaeliDepotName, "Gebze"))
	assert.Equal(t, 48.0, geo.DepotDistance("Gebze"))
	assert.Equal(t, 5.0, geo.DepotDistance("İzmit"))
}

func TestUnknownNamesYieldZero(t *testing.T) {
	geo := Kocaeli()

	assert.Equal(t, 0.0, geo.Distance("Atlantis", "Gebze"))
	assert.Equal(t, 0.0, geo.Distance("Gebze", "Atlantis"))
	assert.Equal(t, 0.0, geo.Distance(KocaeliDepotName, "Atlantis"))
	assert.Equal(t, 0.0, geo.DepotDistance("Atlantis"))

	_, ok := geo.Coordinates("Atlantis")
	assert.False(t, ok)
}

func TestKocaeliIsShared(t *testing.T) {
	assert.Same(t, Kocaeli(), Kocaeli())
	assert.Len(t, Kocaeli().Names(), 12)
	assert.True(t, Kocaeli().Has("Kandıra"))
}

func TestCoordinates(t *testing.T) {
	geo := Kocaeli()

	c, ok := geo.Coordinates("Gebze")
	require.True(t, ok)
	assert.Equal(t, domain.Coordinates{Lat: 40.8027, Lon: 29.4307}, c)

	d, ok := geo.Coordinates(KocaeliDepotName)
	require.True(t, ok)
	assert.Equal(t, 40.8225, d.Lat)
}

func TestNewTableValidation(t *testing.T) {
	depot := domain.Depot{Name: "HUB"}
	locs := []Location{{Name: "A", DepotDistance: 3}, {Name: "B", DepotDistance: 4}}

	tests := []struct {
		name   string
		depot  domain.Depot
		locs   []Location
		matrix [][]float64
	}{
		{"empty depot", domain.Depot{}, locs, [][]float64{{0, 1}, {1, 0}}},
		{"row count", depot, locs, [][]float64{{0, 1}}},
		{"column count", depot, locs, [][]float64{{0, 1}, {1}}},
		{"asymmetric", depot, locs, [][]float64{{0, 1}, {2, 0}}},
		{"negative", depot, locs, [][]float64{{0, -1}, {-1, 0}}},
		{"duplicate", depot, []Location{{Name: "A"}, {Name: "A"}}, [][]float64{{0, 1}, {1, 0}}},
		{"depot collision", depot, []Location{{Name: "HUB"}, {Name: "A"}}, [][]float64{{0, 1}, {1, 0}}},
		{"empty name", depot, []Location{{Name: " "}, {Name: "A"}}, [][]float64{{0, 1}, {1, 0}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTable(tc.depot, tc.locs, tc.matrix)
			assert.Error(t, err)
		})
	}
}

func TestFromPairsRoundTrip(t *testing.T) {
	src := Kocaeli()

	built, err := FromPairs(src.Depot(), src.Locations(), src.Pairs())
	require.NoError(t, err)

	for _, a := range src.Names() {
		assert.Equal(t, src.DepotDistance(a), built.DepotDistance(a))
		for _, b := range src.Names() {
			assert.Equal(t, src.Distance(a, b), built.Distance(a, b), "%s -> %s", a, b)
		}
	}
}

func TestFromPairsRejectsGaps(t *testing.T) {
	depot := domain.Depot{Name: "HUB"}
	locs := []Location{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	_, err := FromPairs(depot, locs, []Pair{{From: "A", To: "B", KM: 2}, {From: "A", To: "C", KM: 3}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "B <-> C")

	_, err = FromPairs(depot, locs, []Pair{{From: "A", To: "Z", KM: 2}})
	assert.Error(t, err)

	_, err = FromPairs(depot, locs, []Pair{
		{From: "A", To: "B", KM: 2}, {From: "B", To: "A", KM: 5},
		{From: "A", To: "C", KM: 3}, {From: "B", To: "C", KM: 4},
	})
	assert.Error(t, err)
}

func TestEmptyTable(t *testing.T) {
	tbl, err := NewTable(domain.Depot{Name: "HUB"}, nil, nil)
	require.NoError(t, err)

	assert.Empty(t, tbl.Names())
	assert.Empty(t, tbl.Pairs())
	assert.Zero(t, tbl.Distance("A", "B"))
	assert.Zero(t, tbl.Distance("HUB", "A"))
}
