package dto

import "time"

// PlanRequest asks for routes for one date. Omitted flags default to true.
type PlanRequest struct {
	TargetDate     string `json:"target_date"`
	AllowRental    *bool  `json:"allow_rental"`
	AllowMultiTrip *bool  `json:"allow_multi_trip"`
	Sequencer      string `json:"sequencer"`
}

type PlanResponse struct {
	PlanID     string    `json:"plan_id"`
	TargetDate string    `json:"target_date"`
	CreatedAt  time.Time `json:"created_at"`
	RoutingResultResponse
}

type ConfirmPlanResponse struct {
	Message string         `json:"message"`
	Trips   []TripResponse `json:"trips"`
}

type StationSummaryResponse struct {
	StationName string    `json:"station_name"`
	CargoCount  int       `json:"cargo_count"`
	TotalWeight float64   `json:"total_weight"`
	Coords      []float64 `json:"coords"`
}

type CargoSummaryResponse struct {
	Date               string                   `json:"date"`
	Stations           []StationSummaryResponse `json:"stations"`
	TotalCargoCount    int                      `json:"total_cargo_count"`
	TotalWeight        float64                  `json:"total_weight"`
	VehicleCapacity    float64                  `json:"vehicle_capacity"`
	CapacitySufficient bool                     `json:"capacity_sufficient"`
	Shortage           float64                  `json:"shortage"`
}
