package handlers

import (
	"cargo-route-service/internal/api/dto"
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/ports"
	"cargo-route-service/internal/services"
	"errors"
	"net/http"
)

type VehicleHandler struct {
	Repo ports.VehicleRepository
}

func toVehicleResponse(v domain.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		VehicleID:  v.VehicleID,
		Capacity:   v.Capacity,
		IsRented:   v.IsRented,
		RentalCost: v.RentalCost,
	}
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Repo.ListVehicles(r.Context())
	if err != nil {
		internalError(w, r, "list vehicles", err)
		return
	}

	res := dto.ListVehiclesResponse{Vehicles: make([]dto.VehicleResponse, 0, len(vehicles))}
	for _, v := range vehicles {
		res.Vehicles = append(res.Vehicles, toVehicleResponse(v))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Capacity <= 0 {
		writeError(w, r, http.StatusBadRequest, "capacity must be positive")
		return
	}

	v := domain.Vehicle{Capacity: req.Capacity, IsRented: req.IsRented}
	if req.IsRented {
		v.RentalCost = services.DefaultRentalCost
		if req.RentalCost != nil {
			v.RentalCost = *req.RentalCost
		}
		if v.RentalCost < 0 {
			writeError(w, r, http.StatusBadRequest, "rental_cost must not be negative")
			return
		}
	}

	created, err := h.Repo.CreateVehicle(r.Context(), v)
	if err != nil {
		internalError(w, r, "create vehicle", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toVehicleResponse(created))
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err = h.Repo.DeleteVehicle(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "vehicle not found")
		return
	}
	if err != nil {
		internalError(w, r, "delete vehicle", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
