package handlers

import (
	"cargo-route-service/internal/api/dto"
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/ports"
	"errors"
	"net/http"
)

type CargoHandler struct {
	Repo ports.CargoRepository
}

func (h *CargoHandler) List(w http.ResponseWriter, r *http.Request) {
	var status domain.CargoStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st, err := domain.ParseCargoStatus(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "unknown status")
			return
		}
		status = st
	}

	cargo, err := h.Repo.ListCargo(r.Context(), status)
	if err != nil {
		internalError(w, r, "list cargo", err)
		return
	}

	res := dto.ListCargoResponse{Cargo: make([]dto.CargoResponse, 0, len(cargo))}
	for _, c := range cargo {
		item := dto.CargoResponse{
			CargoID:     c.CargoID,
			StationName: c.StationName,
			Weight:      c.Weight,
			Quantity:    c.Quantity,
			SenderID:    c.SenderID,
			SenderName:  c.SenderName,
			Status:      string(c.Status),
		}
		if c.TargetDate != nil {
			d := dto.FormatDate(*c.TargetDate)
			item.TargetDate = &d
		}
		res.Cargo = append(res.Cargo, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *CargoHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.UpdateCargoStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	status, err := domain.ParseCargoStatus(req.Status)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "status must be one of pending, in_transit, delivered, cancelled")
		return
	}

	err = h.Repo.UpdateStatus(r.Context(), id, status)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "cargo not found")
		return
	}
	if err != nil {
		internalError(w, r, "update cargo status", err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"cargo_id": id, "status": string(status)})
}
