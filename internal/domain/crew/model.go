package crew

import "github.com/dissom/Train-Station-API-Service/internal/domain/journey"

type Member struct {
	ID         string   `json:"id"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	JourneyIDs []string `json:"journey_ids"`

	// Populated on list reads.
	Journeys []*journey.Journey `json:"journeys,omitempty"`
}

func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
