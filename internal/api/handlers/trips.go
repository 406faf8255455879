package handlers

import (
	"cargo-route-service/internal/api/dto"
	"cargo-route-service/internal/ports"
	"errors"
	"net/http"
	"time"
)

type TripHandler struct {
	Repo ports.TripRepository
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		date = d
	}

	trips, err := h.Repo.ListTrips(r.Context(), date)
	if err != nil {
		internalError(w, r, "list trips", err)
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.NewTripResponse(t))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err = h.Repo.DeleteTrip(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}
	if err != nil {
		internalError(w, r, "delete trip", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
