// Package geography holds the fixed reference data the router works with:
// station-to-station distances, the one-way distance between each station
// and the depot, and station coordinates.
//
// A Table is immutable once built and safe for concurrent use.
package geography

import (
	"cargo-route-service/internal/domain"
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Location is one named station in a Table.
// DepotDistance is the one-way distance between the station and the depot;
// it is stored as its own value and never derived from the station matrix.
type Location struct {
	Name          string
	Coordinates   domain.Coordinates
	DepotDistance float64
}

// Pair is one undirected station-to-station distance.
type Pair struct {
	From string
	To   string
	KM   float64
}

// Table is the lookup the router reads distances from. Its matrix is nil
// when the table has no stations.
type Table struct {
	depot     domain.Depot
	names     []string
	index     map[string]int
	matrix    *mat.SymDense
	depotDist map[string]float64
	coords    map[string]domain.Coordinates
}

// NewTable builds a Table from a square, symmetric distance matrix whose
// rows and columns follow the order of locations.
func NewTable(depot domain.Depot, locations []Location, matrix [][]float64) (*Table, error) {
	if strings.TrimSpace(depot.Name) == "" {
		return nil, errors.New("new geography table: depot name must not be empty")
	}

	if len(matrix) != len(locations) {
		return nil, fmt.Errorf(
			"new geography table: matrix has %d rows for %d locations",
			len(matrix), len(locations),
		)
	}

	t := &Table{
		depot:     depot,
		names:     make([]string, 0, len(locations)),
		index:     make(map[string]int, len(locations)),
		depotDist: make(map[string]float64, len(locations)),
		coords:    make(map[string]domain.Coordinates, len(locations)),
	}

	for i, loc := range locations {
		name := strings.TrimSpace(loc.Name)
		if name == "" {
			return nil, fmt.Errorf("new geography table: location #%d has an empty name", i+1)
		}
		if name == depot.Name {
			return nil, fmt.Errorf("new geography table: location %q collides with the depot name", name)
		}
		if _, ok := t.index[name]; ok {
			return nil, fmt.Errorf("new geography table: duplicate location %q", name)
		}
		if loc.DepotDistance < 0 {
			return nil, fmt.Errorf("new geography table: negative depot distance for %q", name)
		}

		t.names = append(t.names, name)
		t.index[name] = i
		t.depotDist[name] = loc.DepotDistance
		t.coords[name] = loc.Coordinates
	}

	for i, row := range matrix {
		if len(row) != len(locations) {
			return nil, fmt.Errorf(
				"new geography table: row %q has %d columns, want %d",
				t.names[i], len(row), len(locations),
			)
		}
	}

	n := len(locations)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if matrix[i][j] != matrix[j][i] {
				return nil, fmt.Errorf(
					"new geography table: distance %q -> %q (%v) differs from %q -> %q (%v)",
					t.names[i], t.names[j], matrix[i][j], t.names[j], t.names[i], matrix[j][i],
				)
			}
			if matrix[i][j] < 0 {
				return nil, fmt.Errorf("new geography table: negative distance %q -> %q", t.names[i], t.names[j])
			}
		}
	}

	if n > 0 {
		data := make([]float64, 0, n*n)
		for _, row := range matrix {
			data = append(data, row...)
		}
		t.matrix = mat.NewSymDense(n, data)
	}

	return t, nil
}

// FromPairs builds a Table from undirected distance rows, as stored in the
// database. Every unordered pair of distinct locations must be present.
func FromPairs(depot domain.Depot, locations []Location, pairs []Pair) (*Table, error) {
	idx := make(map[string]int, len(locations))
	for i, loc := range locations {
		idx[strings.TrimSpace(loc.Name)] = i
	}

	n := len(locations)
	matrix := make([][]float64, n)
	seen := make([][]bool, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		seen[i] = make([]bool, n)
		seen[i][i] = true
	}

	for _, p := range pairs {
		i, ok := idx[p.From]
		if !ok {
			return nil, fmt.Errorf("geography from pairs: unknown location %q", p.From)
		}
		j, ok := idx[p.To]
		if !ok {
			return nil, fmt.Errorf("geography from pairs: unknown location %q", p.To)
		}
		if i == j {
			if p.KM != 0 {
				return nil, fmt.Errorf("geography from pairs: non-zero self distance for %q", p.From)
			}
			continue
		}
		if seen[i][j] && matrix[i][j] != p.KM {
			return nil, fmt.Errorf("geography from pairs: conflicting distances for %q <-> %q", p.From, p.To)
		}
		matrix[i][j], matrix[j][i] = p.KM, p.KM
		seen[i][j], seen[j][i] = true, true
	}

	missing := make([]string, 0)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !seen[i][j] {
				missing = append(missing, locations[i].Name+" <-> "+locations[j].Name)
			}
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("geography from pairs: missing distances: %s", strings.Join(missing, ", "))
	}

	return NewTable(depot, locations, matrix)
}

// Depot returns the table's depot.
func (t *Table) Depot() domain.Depot { return t.depot }

// Names returns the station names in table order.
func (t *Table) Names() []string { return append([]string(nil), t.names...) }

// Has reports whether name is a known station.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Distance returns the distance between two stations, or the one-way depot
// distance when either side is the depot. Unknown names yield 0.
func (t *Table) Distance(from, to string) float64 {
	if from == t.depot.Name {
		return t.depotDist[to]
	}
	if to == t.depot.Name {
		return t.depotDist[from]
	}

	i, ok := t.index[from]
	if !ok {
		return 0
	}
	j, ok := t.index[to]
	if !ok {
		return 0
	}
	return t.matrix.At(i, j)
}

// DepotDistance returns the one-way distance between a station and the
// depot, or 0 for an unknown station.
func (t *Table) DepotDistance(name string) float64 {
	return t.depotDist[name]
}

// Coordinates returns the coordinates of a station or of the depot.
func (t *Table) Coordinates(name string) (domain.Coordinates, bool) {
	if name == t.depot.Name {
		return t.depot.Coordinates, true
	}
	c, ok := t.coords[name]
	return c, ok
}

// Locations returns a copy of the table's stations.
func (t *Table) Locations() []Location {
	out := make([]Location, 0, len(t.names))
	for _, n := range t.names {
		out = append(out, Location{Name: n, Coordinates: t.coords[n], DepotDistance: t.depotDist[n]})
	}
	return out
}

// Pairs returns every unordered station pair with its distance.
func (t *Table) Pairs() []Pair {
	out := make([]Pair, 0, len(t.names)*(len(t.names)-1)/2)
	for i := range t.names {
		for j := i + 1; j < len(t.names); j++ {
			out = append(out, Pair{From: t.names[i], To: t.names[j], KM: t.matrix.At(i, j)})
		}
	}
	return out
}
