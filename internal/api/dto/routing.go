package dto

import "cargo-route-service/internal/domain"

type DepotResponse struct {
	Name   string    `json:"name"`
	Coords []float64 `json:"coords"`
}

type RouteStopResponse struct {
	StationName string    `json:"station_name"`
	CargoIDs    []int     `json:"cargo_ids"`
	TotalWeight float64   `json:"total_weight"`
	Coords      []float64 `json:"coords"`
}

type RouteResponse struct {
	VehicleID       int                 `json:"vehicle_id"`
	VehicleCapacity float64             `json:"vehicle_capacity"`
	IsRented        bool                `json:"is_rented"`
	RentalCost      float64             `json:"rental_cost"`
	StartStation    string              `json:"start_station"`
	Stops           []RouteStopResponse `json:"stops"`
	TotalDistance   float64             `json:"total_distance"`
	FuelCost        float64             `json:"fuel_cost"`
	TotalCost       float64             `json:"total_cost"`
	TripNumber      int                 `json:"trip_number"`
	TotalLoad       float64             `json:"total_load"`
	Depot           DepotResponse       `json:"depot"`
}

type UnassignedResponse struct {
	StationName string  `json:"station_name"`
	TotalWeight float64 `json:"total_weight"`
	CargoIDs    []int   `json:"cargo_ids"`
}

type RoutingResultResponse struct {
	Success           bool                 `json:"success"`
	Message           string               `json:"message"`
	Warnings          []string             `json:"warnings"`
	TotalDistance     float64              `json:"total_distance"`
	TotalFuelCost     float64              `json:"total_fuel_cost"`
	TotalRentalCost   float64              `json:"total_rental_cost"`
	TotalCost         float64              `json:"total_cost"`
	NeedsRental       bool                 `json:"needs_rental"`
	RentalCountNeeded int                  `json:"rental_count_needed"`
	NeedsMultiTrip    bool                 `json:"needs_multi_trip"`
	Routes            []RouteResponse      `json:"routes"`
	UnassignedDemand  []UnassignedResponse `json:"unassigned_demand"`
	Depot             DepotResponse        `json:"depot"`
}

func NewDepotResponse(d domain.Depot) DepotResponse {
	return DepotResponse{Name: d.Name, Coords: d.Coordinates.CoordsToList()}
}

func NewRouteStopResponses(stops []domain.RouteStop) []RouteStopResponse {
	out := make([]RouteStopResponse, 0, len(stops))
	for _, s := range stops {
		ids := s.CargoIDs
		if ids == nil {
			ids = []int{}
		}
		out = append(out, RouteStopResponse{
			StationName: s.StationName,
			CargoIDs:    ids,
			TotalWeight: s.TotalWeight,
			Coords:      s.Coordinates.CoordsToList(),
		})
	}
	return out
}

func NewRoutingResultResponse(r domain.RoutingResult) RoutingResultResponse {
	depot := NewDepotResponse(r.Depot)

	res := RoutingResultResponse{
		Success:           r.Success,
		Message:           r.Message,
		Warnings:          r.Warnings,
		TotalDistance:     r.TotalDistance,
		TotalFuelCost:     r.TotalFuelCost,
		TotalRentalCost:   r.TotalRentalCost,
		TotalCost:         r.TotalCost,
		NeedsRental:       r.NeedsRental,
		RentalCountNeeded: r.RentalCountNeeded,
		NeedsMultiTrip:    r.NeedsMultiTrip,
		Routes:            make([]RouteResponse, 0, len(r.Routes)),
		UnassignedDemand:  make([]UnassignedResponse, 0, len(r.UnassignedDemand)),
		Depot:             depot,
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}

	for _, route := range r.Routes {
		res.Routes = append(res.Routes, RouteResponse{
			VehicleID:       route.VehicleID,
			VehicleCapacity: route.VehicleCapacity,
			IsRented:        route.IsRented,
			RentalCost:      route.RentalCost,
			StartStation:    route.StartStation,
			Stops:           NewRouteStopResponses(route.Stops),
			TotalDistance:   route.TotalDistance,
			FuelCost:        route.FuelCost,
			TotalCost:       route.TotalCost,
			TripNumber:      route.TripNumber,
			TotalLoad:       route.Load(),
			Depot:           depot,
		})
	}

	for _, d := range r.UnassignedDemand {
		res.UnassignedDemand = append(res.UnassignedDemand, UnassignedResponse{
			StationName: d.StationName,
			TotalWeight: d.TotalWeight,
			CargoIDs:    d.CargoIDs,
		})
	}

	return res
}

func NewTripResponse(t domain.Trip) TripResponse {
	return TripResponse{
		TripID:        t.TripID,
		VehicleID:     t.VehicleID,
		PlannedDate:   FormatDate(t.PlannedDate),
		TotalDistance: t.TotalDistance,
		TotalCost:     t.TotalCost,
		StartStation:  t.StartStation,
		Stops:         NewRouteStopResponses(t.Stops),
		Depot:         NewDepotResponse(t.Depot),
	}
}
