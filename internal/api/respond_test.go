package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dissom/Train-Station-API-Service/internal/domain/journey"
	"github.com/dissom/Train-Station-API-Service/internal/domain/order"
	"github.com/dissom/Train-Station-API-Service/internal/domain/route"
	"github.com/dissom/Train-Station-API-Service/internal/domain/train"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/postgres"

	"github.com/stretchr/testify/assert"
)

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			"seat out of range",
			&train.SeatOutOfRangeError{Field: "seat", Value: 7, Max: 3},
			http.StatusUnprocessableEntity,
		},
		{
			"seat taken",
			&order.SeatTakenError{JourneyID: "j-1", Cargo: 1, Seat: 1},
			http.StatusConflict,
		},
		{
			"seat taken wrapped by transaction",
			fmt.Errorf("transaction failed: %w", &order.SeatTakenError{JourneyID: "j-1", Cargo: 1, Seat: 1}),
			http.StatusConflict,
		},
		{"empty order", order.ErrEmptyOrder, http.StatusBadRequest},
		{"self loop route", route.ErrSelfLoop, http.StatusUnprocessableEntity},
		{"arrival before departure", journey.ErrArrivalBeforeDeparture, http.StatusUnprocessableEntity},
		{"not found", postgres.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("resolve journey x: %w", postgres.ErrNotFound), http.StatusNotFound},
		{"duplicate name", postgres.ErrDuplicateName, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}
