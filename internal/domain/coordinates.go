package domain

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lat, lon], the order map clients expect.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lat, c.Lon} }

// Depot is the single terminal point every route ends at.
// It is not a station and has no entry in the station distance matrix.
type Depot struct {
	Name        string
	Coordinates Coordinates
}
