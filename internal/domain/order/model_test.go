package order

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatTakenError(t *testing.T) {
	err := &SeatTakenError{JourneyID: "j-1", Cargo: 2, Seat: 5}

	assert.Equal(t, "seat 5 in cargo 2 already taken for journey j-1", err.Error())

	// Must survive wrapping, handlers rely on errors.As.
	wrapped := fmt.Errorf("transaction failed: %w", err)
	var taken *SeatTakenError
	require.ErrorAs(t, wrapped, &taken)
	assert.Equal(t, 5, taken.Seat)
}

func TestErrEmptyOrder(t *testing.T) {
	wrapped := fmt.Errorf("create order: %w", ErrEmptyOrder)
	assert.True(t, errors.Is(wrapped, ErrEmptyOrder))
}
