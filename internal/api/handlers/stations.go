package handlers

import (
	"cargo-route-service/internal/api/dto"
	"cargo-route-service/internal/ports"
	"net/http"
)

type StationHandler struct {
	Repo ports.StationRepository
	Geo  ports.Geography
}

func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	stations, err := h.Repo.ListStations(r.Context())
	if err != nil {
		internalError(w, r, "list stations", err)
		return
	}

	res := dto.ListStationsResponse{
		Depot:    dto.NewDepotResponse(h.Geo.Depot()),
		Stations: make([]dto.StationResponse, 0, len(stations)),
	}
	for _, s := range stations {
		res.Stations = append(res.Stations, dto.StationResponse{
			StationID:     s.StationID,
			Name:          s.Name,
			Coords:        s.Coordinates.CoordsToList(),
			DepotDistance: s.DepotDistance,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
