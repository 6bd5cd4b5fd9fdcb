package api

import (
	"fmt"
	"time"

	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/postgres"
	"github.com/dissom/Train-Station-API-Service/internal/usecase"

	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	stations   *postgres.StationRepository
	routes     *postgres.RouteRepository
	trainTypes *postgres.TrainTypeRepository
	trains     *postgres.TrainRepository
	journeys   *postgres.JourneyRepository
	crews      *postgres.CrewRepository
	orders     *postgres.OrderRepository

	createOrder *usecase.CreateOrder
	cancelOrder *usecase.CancelOrder

	validate *validator.Validate
}

func NewHandlers(
	stations *postgres.StationRepository,
	routes *postgres.RouteRepository,
	trainTypes *postgres.TrainTypeRepository,
	trains *postgres.TrainRepository,
	journeys *postgres.JourneyRepository,
	crews *postgres.CrewRepository,
	orders *postgres.OrderRepository,
	createOrder *usecase.CreateOrder,
	cancelOrder *usecase.CancelOrder,
) *Handlers {
	return &Handlers{
		stations:    stations,
		routes:      routes,
		trainTypes:  trainTypes,
		trains:      trains,
		journeys:    journeys,
		crews:       crews,
		orders:      orders,
		createOrder: createOrder,
		cancelOrder: cancelOrder,
		validate:    validator.New(),
	}
}

// parseDate parses an optional YYYY-MM-DD query parameter.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return &d, nil
}
