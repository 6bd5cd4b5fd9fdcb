package api

import (
	"net/http"

	"github.com/dissom/Train-Station-API-Service/internal/domain/train"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type trainTypeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type trainRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	CargoNum      int    `json:"cargo_num" validate:"required,gt=0"`
	PlacesInCargo int    `json:"places_in_cargo" validate:"required,gt=0"`
	TrainTypeID   string `json:"train_type_id" validate:"required,uuid4"`
}

func (h *Handlers) CreateTrainType(w http.ResponseWriter, r *http.Request) {
	var req trainTypeRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	tt := &train.TrainType{ID: uuid.New().String(), Name: req.Name}
	if err := h.trainTypes.Create(r.Context(), tt); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tt)
}

func (h *Handlers) ListTrainTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.trainTypes.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *Handlers) GetTrainType(w http.ResponseWriter, r *http.Request) {
	tt, err := h.trainTypes.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tt)
}

func (h *Handlers) UpdateTrainType(w http.ResponseWriter, r *http.Request) {
	var req trainTypeRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	tt := &train.TrainType{ID: chi.URLParam(r, "id"), Name: req.Name}
	if err := h.trainTypes.Update(r.Context(), tt); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tt)
}

func (h *Handlers) DeleteTrainType(w http.ResponseWriter, r *http.Request) {
	if err := h.trainTypes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) CreateTrain(w http.ResponseWriter, r *http.Request) {
	var req trainRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	t := &train.Train{
		ID:            uuid.New().String(),
		Name:          req.Name,
		CargoNum:      req.CargoNum,
		PlacesInCargo: req.PlacesInCargo,
		TrainTypeID:   req.TrainTypeID,
	}
	if err := h.trains.Create(r.Context(), t); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

// ListTrains supports ?types= filtering by type-name substring.
func (h *Handlers) ListTrains(w http.ResponseWriter, r *http.Request) {
	trains, err := h.trains.List(r.Context(), r.URL.Query().Get("types"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trains)
}

func (h *Handlers) GetTrain(w http.ResponseWriter, r *http.Request) {
	t, err := h.trains.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handlers) UpdateTrain(w http.ResponseWriter, r *http.Request) {
	var req trainRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	t := &train.Train{
		ID:            chi.URLParam(r, "id"),
		Name:          req.Name,
		CargoNum:      req.CargoNum,
		PlacesInCargo: req.PlacesInCargo,
		TrainTypeID:   req.TrainTypeID,
	}
	if err := h.trains.Update(r.Context(), t); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

func (h *Handlers) DeleteTrain(w http.ResponseWriter, r *http.Request) {
	if err := h.trains.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
