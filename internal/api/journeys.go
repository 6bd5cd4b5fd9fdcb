package api

import (
	"net/http"
	"time"

	"github.com/dissom/Train-Station-API-Service/internal/domain/journey"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type journeyRequest struct {
	RouteID       string    `json:"route_id" validate:"required,uuid4"`
	TrainID       string    `json:"train_id" validate:"required,uuid4"`
	DepartureTime time.Time `json:"departure_time" validate:"required"`
	ArrivalTime   time.Time `json:"arrival_time" validate:"required"`
}

type journeyDetailResponse struct {
	*journey.Journey
	journey.Availability
}

func (h *Handlers) CreateJourney(w http.ResponseWriter, r *http.Request) {
	var req journeyRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	j := &journey.Journey{
		ID:            uuid.New().String(),
		RouteID:       req.RouteID,
		TrainID:       req.TrainID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}
	if err := j.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if err := h.journeys.Create(r.Context(), j); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, j)
}

// ListJourneys supports ?train_name=, ?departure= and ?arrival= filters.
// Every row is annotated with the live availability snapshot.
func (h *Handlers) ListJourneys(w http.ResponseWriter, r *http.Request) {
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

	journeys, err := h.journeys.List(r.Context(), postgres.JourneyFilter{
		TrainName:     q.Get("train_name"),
		DepartureDate: departure,
		ArrivalDate:   arrival,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, journeys)
}

func (h *Handlers) GetJourney(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	j, err := h.journeys.GetWithTrain(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	avail, err := h.journeys.Availability(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, journeyDetailResponse{Journey: j, Availability: *avail})
}

func (h *Handlers) UpdateJourney(w http.ResponseWriter, r *http.Request) {
	var req journeyRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	j := &journey.Journey{
		ID:            chi.URLParam(r, "id"),
		RouteID:       req.RouteID,
		TrainID:       req.TrainID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}
	if err := j.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if err := h.journeys.Update(r.Context(), j); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, j)
}

func (h *Handlers) DeleteJourney(w http.ResponseWriter, r *http.Request) {
	if err := h.journeys.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
