package api

import (
	"net/http"

	"github.com/dissom/Train-Station-API-Service/internal/domain/route"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type routeRequest struct {
	SourceID      string `json:"source_id" validate:"required,uuid4"`
	DestinationID string `json:"destination_id" validate:"required,uuid4"`
	Distance      int    `json:"distance" validate:"required,gt=0"`
}

func (h *Handlers) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	rt := &route.Route{
		ID:            uuid.New().String(),
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Distance:      req.Distance,
	}
	if err := rt.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if err := h.routes.Create(r.Context(), rt); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rt)
}

func (h *Handlers) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.routes.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routes)
}

func (h *Handlers) GetRoute(w http.ResponseWriter, r *http.Request) {
	rt, err := h.routes.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *Handlers) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	rt := &route.Route{
		ID:            chi.URLParam(r, "id"),
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Distance:      req.Distance,
	}
	if err := rt.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if err := h.routes.Update(r.Context(), rt); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rt)
}

func (h *Handlers) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	if err := h.routes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
