package journey

import (
	"errors"
	"time"

	"github.com/dissom/Train-Station-API-Service/internal/domain/train"
)

// ErrArrivalBeforeDeparture rejects journeys that would arrive before they leave.
var ErrArrivalBeforeDeparture = errors.New("arrival time must be after departure time")

type Journey struct {
	ID            string    `json:"id"`
	RouteID       string    `json:"route_id"`
	TrainID       string    `json:"train_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`

	// Populated on reads that join the train.
	Train *train.Train `json:"train,omitempty"`

	// Populated on list reads.
	TrainName     string `json:"train_name,omitempty"`
	RouteDistance int    `json:"route_distance,omitempty"`
}

// Availability is a point-in-time snapshot derived from the current ticket
// set, never stored.
type Availability struct {
	TicketsAvailable  int `json:"tickets_available"`
	CargoNumAvailable int `json:"cargo_num_available"`
}

// ListItem is the list-view shape: journey summary plus live availability.
type ListItem struct {
	Journey
	Availability
}

func (j *Journey) Validate() error {
	if !j.ArrivalTime.After(j.DepartureTime) {
		return ErrArrivalBeforeDeparture
	}
	return nil
}
