package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/dissom/Train-Station-API-Service/internal/domain/journey"
)

// ErrEmptyOrder rejects order requests carrying no ticket requests.
var ErrEmptyOrder = errors.New("order must contain at least one ticket")

// SeatTakenError reports a (journey, cargo, seat) claim that lost to an
// already committed ticket. Safe to retry with a different seat.
type SeatTakenError struct {
	JourneyID string
	Cargo     int
	Seat      int
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat %d in cargo %d already taken for journey %s", e.Seat, e.Cargo, e.JourneyID)
}

type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []*Ticket `json:"tickets"`
}

type Ticket struct {
	ID        string `json:"id"`
	Cargo     int    `json:"cargo"`
	Seat      int    `json:"seat"`
	JourneyID string `json:"journey_id"`
	OrderID   string `json:"order_id"`

	// Populated on detail reads.
	Journey *journey.Journey `json:"journey,omitempty"`
}

// TicketRequest is one requested (journey, cargo, seat) claim inside an
// order submission.
type TicketRequest struct {
	JourneyID string `json:"journey_id" validate:"required,uuid4"`
	Cargo     int    `json:"cargo" validate:"required,gt=0"`
	Seat      int    `json:"seat" validate:"required,gt=0"`
}
