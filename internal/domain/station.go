package domain

// Station is a named pickup point.
// DepotDistance is the one-way distance in km from the station to the depot.
type Station struct {
	StationID     int
	Name          string
	Coordinates   Coordinates
	DepotDistance float64
}
