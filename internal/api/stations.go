package api

import (
	"net/http"

	"github.com/dissom/Train-Station-API-Service/internal/domain/station"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type stationRequest struct {
	Name      string  `json:"name" validate:"required,max=100"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

func (h *Handlers) CreateStation(w http.ResponseWriter, r *http.Request) {
	var req stationRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	s := &station.Station{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := h.stations.Create(r.Context(), s); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, s)
}

func (h *Handlers) ListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.stations.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stations)
}

func (h *Handlers) GetStation(w http.ResponseWriter, r *http.Request) {
	s, err := h.stations.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handlers) UpdateStation(w http.ResponseWriter, r *http.Request) {
	var req stationRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	s := &station.Station{
		ID:        chi.URLParam(r, "id"),
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := h.stations.Update(r.Context(), s); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}

func (h *Handlers) DeleteStation(w http.ResponseWriter, r *http.Request) {
	if err := h.stations.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
