package route

import (
	"errors"

	"github.com/dissom/Train-Station-API-Service/internal/domain/station"
)

// ErrSelfLoop rejects routes whose source and destination are the same station.
var ErrSelfLoop = errors.New("route source and destination must differ")

type Route struct {
	ID            string `json:"id"`
	SourceID      string `json:"source_id"`
	DestinationID string `json:"destination_id"`
	Distance      int    `json:"distance"`

	// Populated on detail reads.
	Source      *station.Station `json:"source,omitempty"`
	Destination *station.Station `json:"destination,omitempty"`

	// Populated on list reads.
	SourceName      string `json:"source_name,omitempty"`
	DestinationName string `json:"destination_name,omitempty"`
}

func (r *Route) Validate() error {
	if r.SourceID == r.DestinationID {
		return ErrSelfLoop
	}
	return nil
}
