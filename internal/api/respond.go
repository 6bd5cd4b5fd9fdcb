package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dissom/Train-Station-API-Service/internal/domain/journey"
	"github.com/dissom/Train-Station-API-Service/internal/domain/order"
	"github.com/dissom/Train-Station-API-Service/internal/domain/route"
	"github.com/dissom/Train-Station-API-Service/internal/domain/train"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/postgres"

	"github.com/go-playground/validator/v10"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("encode response", "error", err)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses. Anything unmapped is a
// 500 with the detail kept out of the response body.
func writeError(w http.ResponseWriter, err error) {
	var (
		outOfRange *train.SeatOutOfRangeError
		seatTaken  *order.SeatTakenError
		validation validator.ValidationErrors
	)

	switch {
	case errors.As(err, &outOfRange):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: outOfRange.Error()})
	case errors.As(err, &seatTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: seatTaken.Error()})
	case errors.Is(err, order.ErrEmptyOrder):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, route.ErrSelfLoop),
		errors.Is(err, journey.ErrArrivalBeforeDeparture):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, postgres.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, postgres.ErrDuplicateName):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validation.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
