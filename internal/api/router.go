package api

import (
	"cargo-route-service/internal/api/handlers"
	"cargo-route-service/internal/ports"
	"cargo-route-service/internal/services"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Logger     zerolog.Logger
	Geo        ports.Geography
	Stations   ports.StationRepository
	Vehicles   ports.VehicleRepository
	Cargo      ports.CargoRepository
	Trips      ports.TripRepository
	Planner    handlers.Planner
	Sequencers map[string]services.Sequencer

	// Observer and Metrics are optional.
	Observer RequestObserver
	Metrics  http.Handler
	// PlanLimiter bounds POST /plans. Nil disables the limit.
	PlanLimiter *rate.Limiter
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	stations := &handlers.StationHandler{Repo: d.Stations, Geo: d.Geo}
	vehicles := &handlers.VehicleHandler{Repo: d.Vehicles}
	cargo := &handlers.CargoHandler{Repo: d.Cargo}
	trips := &handlers.TripHandler{Repo: d.Trips}
	plans := &handlers.PlanHandler{Planner: d.Planner, Sequencers: d.Sequencers}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /stations", stations.List)

	mux.HandleFunc("GET /vehicles", vehicles.List)
	mux.HandleFunc("POST /vehicles", vehicles.Create)
	mux.HandleFunc("DELETE /vehicles/{id}", vehicles.Delete)

	mux.HandleFunc("GET /cargo", cargo.List)
	mux.HandleFunc("PATCH /cargo/{id}/status", cargo.UpdateStatus)
	mux.HandleFunc("GET /cargo-summary", plans.Summary)

	mux.HandleFunc("POST /plans", rateLimited(d.PlanLimiter, plans.Plan))
	mux.HandleFunc("POST /plans/{id}/confirm", plans.Confirm)

	mux.HandleFunc("GET /trips", trips.List)
	mux.HandleFunc("DELETE /trips/{id}", trips.Delete)

	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	return requestContext(d.Logger, loggingMiddleware(d.Observer, mux))
}
