package api

import (
	"net/http"
	"strings"

	"github.com/dissom/Train-Station-API-Service/internal/domain/crew"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type crewRequest struct {
	FirstName  string   `json:"first_name" validate:"required,max=50"`
	LastName   string   `json:"last_name" validate:"required,max=50"`
	JourneyIDs []string `json:"journey_ids" validate:"dive,uuid4"`
}

func (h *Handlers) CreateCrewMember(w http.ResponseWriter, r *http.Request) {
	var req crewRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	m := &crew.Member{
		ID:         uuid.New().String(),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		JourneyIDs: req.JourneyIDs,
	}
	if err := h.crews.Create(r.Context(), m); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, m)
}

// ListCrew supports ?train_name=, ?journeys=id1,id2, ?departure= and
// ?arrival= filters.
func (h *Handlers) ListCrew(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	departure, err := parseDate(q.Get("departure"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	arrival, err := parseDate(q.Get("arrival"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	members, err := h.crews.List(r.Context(), postgres.CrewFilter{
		TrainName:     q.Get("train_name"),
		JourneyIDs:    splitIDs(q.Get("journeys")),
		DepartureDate: departure,
		ArrivalDate:   arrival,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, members)
}

func (h *Handlers) GetCrewMember(w http.ResponseWriter, r *http.Request) {
	m, err := h.crews.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handlers) UpdateCrewMember(w http.ResponseWriter, r *http.Request) {
	var req crewRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	m := &crew.Member{
		ID:         chi.URLParam(r, "id"),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		JourneyIDs: req.JourneyIDs,
	}
	if err := h.crews.Update(r.Context(), m); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

func (h *Handlers) DeleteCrewMember(w http.ResponseWriter, r *http.Request) {
	if err := h.crews.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// splitIDs parses a comma-separated id list query parameter.
func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
