package dto

import "time"

type VehicleResponse struct {
	VehicleID  int     `json:"vehicle_id"`
	Capacity   float64 `json:"capacity"`
	IsRented   bool    `json:"is_rented"`
	RentalCost float64 `json:"rental_cost"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

// CreateVehicleRequest adds a vehicle. RentalCost defaults to 200 for
// rented vehicles and is forced to 0 for owned ones.
type CreateVehicleRequest struct {
	Capacity   float64  `json:"capacity"`
	IsRented   bool     `json:"is_rented"`
	RentalCost *float64 `json:"rental_cost"`
}

type StationResponse struct {
	StationID     int       `json:"station_id"`
	Name          string    `json:"name"`
	Coords        []float64 `json:"coords"`
	DepotDistance float64   `json:"depot_distance_km"`
}

type ListStationsResponse struct {
	Depot    DepotResponse     `json:"depot"`
	Stations []StationResponse `json:"stations"`
}

type CargoResponse struct {
	CargoID     int     `json:"cargo_id"`
	StationName string  `json:"station_name"`
	Weight      float64 `json:"weight"`
	Quantity    int     `json:"quantity"`
	SenderID    int     `json:"sender_id"`
	SenderName  string  `json:"sender_name"`
	Status      string  `json:"status"`
	TargetDate  *string `json:"target_date"`
}

type ListCargoResponse struct {
	Cargo []CargoResponse `json:"cargo"`
}

type UpdateCargoStatusRequest struct {
	Status string `json:"status"`
}

type TripResponse struct {
	TripID        int                 `json:"trip_id"`
	VehicleID     int                 `json:"vehicle_id"`
	PlannedDate   string              `json:"planned_date"`
	TotalDistance float64             `json:"total_distance"`
	TotalCost     float64             `json:"total_cost"`
	StartStation  string              `json:"start_station"`
	Stops         []RouteStopResponse `json:"stops"`
	Depot         DepotResponse       `json:"depot"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

func FormatDate(t time.Time) string { return t.Format(time.DateOnly) }
