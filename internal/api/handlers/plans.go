package handlers

import (
	"cargo-route-service/internal/api/dto"
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/ports"
	"cargo-route-service/internal/services"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Planner is the planning use case the plan endpoints drive.
type Planner interface {
	PlanDeliveries(ctx context.Context, req services.PlanRequest) (domain.Plan, error)
	ConfirmPlan(ctx context.Context, planID string) ([]domain.Trip, error)
	CargoSummary(ctx context.Context, date time.Time) (domain.CargoSummary, error)
}

type PlanHandler struct {
	Planner Planner
	// Sequencers maps the request's sequencer name to an implementation.
	// An empty name uses the planner's default.
	Sequencers map[string]services.Sequencer
}

// Plan calculates routes for the pending cargo of one date and keeps the
// result for a later confirmation.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if strings.TrimSpace(req.TargetDate) == "" {
		writeError(w, r, http.StatusBadRequest, "target_date is required")
		return
	}
	date, err := parseDate(req.TargetDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	svcReq := services.PlanRequest{
		TargetDate: date,
		Options: services.Options{
			AllowRental:    req.AllowRental == nil || *req.AllowRental,
			AllowMultiTrip: req.AllowMultiTrip == nil || *req.AllowMultiTrip,
		},
	}

	if name := strings.TrimSpace(req.Sequencer); name != "" {
		seq, ok := h.Sequencers[name]
		if !ok {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown sequencer %q", name))
			return
		}
		svcReq.Sequencer = seq
	}

	plan, err := h.Planner.PlanDeliveries(r.Context(), svcReq)
	if err != nil {
		internalError(w, r, "plan deliveries", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlanResponse{
		PlanID:                plan.PlanID,
		TargetDate:            dto.FormatDate(plan.TargetDate),
		CreatedAt:             plan.CreatedAt,
		RoutingResultResponse: dto.NewRoutingResultResponse(plan.Result),
	})
}

// Confirm commits a calculated plan as trips.
func (h *PlanHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	planID := strings.TrimSpace(r.PathValue("id"))
	if planID == "" {
		writeError(w, r, http.StatusBadRequest, "plan id is required")
		return
	}

	trips, err := h.Planner.ConfirmPlan(r.Context(), planID)
	switch {
	case errors.Is(err, services.ErrPlanNotFound):
		writeError(w, r, http.StatusNotFound, "plan not found or expired")
		return
	case errors.Is(err, services.ErrEmptyPlan):
		writeError(w, r, http.StatusConflict, "plan has no routes to confirm")
		return
	case errors.Is(err, ports.ErrCargoNotPending):
		writeError(w, r, http.StatusConflict, "cargo in the plan is no longer pending")
		return
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "vehicle in the plan no longer exists")
		return
	case err != nil:
		internalError(w, r, "confirm plan", err)
		return
	}

	res := dto.ConfirmPlanResponse{
		Message: fmt.Sprintf("%d trips created", len(trips)),
		Trips:   make([]dto.TripResponse, 0, len(trips)),
	}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.NewTripResponse(t))
	}

	writeJSON(w, r, http.StatusCreated, res)
}

// Summary compares the pending demand of a date with owned capacity.
func (h *PlanHandler) Summary(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		writeError(w, r, http.StatusBadRequest, "date is required")
		return
	}
	date, err := parseDate(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.Planner.CargoSummary(r.Context(), date)
	if err != nil {
		internalError(w, r, "cargo summary", err)
		return
	}

	res := dto.CargoSummaryResponse{
		Date:               dto.FormatDate(s.TargetDate),
		Stations:           make([]dto.StationSummaryResponse, 0, len(s.Stations)),
		TotalCargoCount:    s.TotalCargoCount,
		TotalWeight:        s.TotalWeight,
		VehicleCapacity:    s.VehicleCapacity,
		CapacitySufficient: s.CapacitySufficient,
		Shortage:           s.Shortage,
	}
	for _, st := range s.Stations {
		res.Stations = append(res.Stations, dto.StationSummaryResponse{
			StationName: st.StationName,
			CargoCount:  st.CargoCount,
			TotalWeight: st.TotalWeight,
			Coords:      st.Coordinates.CoordsToList(),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
