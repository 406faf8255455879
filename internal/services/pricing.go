package services

import (
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/ports"
)

const DefaultFuelCostPerKM = 1.0

// Pricer turns a vehicle's sequenced stations into a priced route.
type Pricer struct {
	Geo           ports.Geography
	FuelCostPerKM float64
}

// Price builds the route for vehicle over path. demand supplies the cargo
// ids and weight of every station on the path.
func (p Pricer) Price(
	vehicle domain.Vehicle,
	path []string,
	demand map[string]domain.AggregatedDemand,
) domain.VehicleRoute {
	stops := make([]domain.RouteStop, 0, len(path))
	for _, name := range path {
		d := demand[name]
		coords, _ := p.Geo.Coordinates(name)

		ids := make([]int, len(d.CargoIDs))
		copy(ids, d.CargoIDs)

		stops = append(stops, domain.RouteStop{
			StationName: name,
			CargoIDs:    ids,
			TotalWeight: d.TotalWeight,
			Coordinates: coords,
		})
	}

	distance := RouteDistance(p.Geo, path)
	fuel := distance * p.FuelCostPerKM

	rental := 0.0
	if vehicle.IsRented {
		rental = vehicle.RentalCost
	}

	start := ""
	if len(path) > 0 {
		start = path[0]
	}

	return domain.VehicleRoute{
		VehicleID:       vehicle.VehicleID,
		VehicleCapacity: vehicle.Capacity,
		IsRented:        vehicle.IsRented,
		RentalCost:      rental,
		StartStation:    start,
		Stops:           stops,
		TotalDistance:   distance,
		FuelCost:        fuel,
		TotalCost:       fuel + rental,
		TripNumber:      1,
	}
}
