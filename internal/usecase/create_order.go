package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dissom/Train-Station-API-Service/internal/domain/journey"
	"github.com/dissom/Train-Station-API-Service/internal/domain/order"
	"github.com/dissom/Train-Station-API-Service/internal/domain/outbox"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/postgres"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const producerName = "train-station-api"

var (
	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_orders_created_total",
		Help: "The total number of successfully committed orders",
	})
	seatConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_seat_conflicts_total",
		Help: "The total number of orders rejected by the seat uniqueness constraint",
	})
)

type journeyStore interface {
	GetWithTrain(ctx context.Context, id string) (*journey.Journey, error)
}

type orderStore interface {
	Create(ctx context.Context, o *order.Order) error
}

type ticketStore interface {
	Create(ctx context.Context, t *order.Ticket) error
}

type outboxStore interface {
	Create(ctx context.Context, e *outbox.Event) error
}

type CreateOrder struct {
	txManager postgres.Transactor
	journeys  journeyStore
	orders    orderStore
	tickets   ticketStore
	outbox    outboxStore
}

func NewCreateOrder(
	txManager postgres.Transactor,
	journeys journeyStore,
	orders orderStore,
	tickets ticketStore,
	outboxRepo outboxStore,
) *CreateOrder {
	return &CreateOrder{
		txManager: txManager,
		journeys:  journeys,
		orders:    orders,
		tickets:   tickets,
		outbox:    outboxRepo,
	}
}

// Execute atomically reserves a batch of seats for one user. Every request is
// validated against the journey's train before anything is persisted, then
// the order, its tickets, and an OrderCreated outbox event are committed in a
// single transaction. Seat conflicts surface as *order.SeatTakenError from
// the constrained ticket insert; there is no availability pre-check, so the
// constraint is the only arbiter under concurrency.
func (uc *CreateOrder) Execute(ctx context.Context, userID string, requests []order.TicketRequest) (*order.Order, error) {
	if len(requests) == 0 {
		return nil, order.ErrEmptyOrder
	}

	journeys := make(map[string]*journey.Journey)
	for _, req := range requests {
		j, ok := journeys[req.JourneyID]
		if !ok {
			var err error
			j, err = uc.journeys.GetWithTrain(ctx, req.JourneyID)
			if err != nil {
				return nil, fmt.Errorf("resolve journey %s: %w", req.JourneyID, err)
			}
			journeys[req.JourneyID] = j
		}

		if err := j.Train.ValidateSeat(req.Cargo, req.Seat); err != nil {
			return nil, err
		}
	}

	newOrder := &order.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	for _, req := range requests {
		newOrder.Tickets = append(newOrder.Tickets, &order.Ticket{
			ID:        uuid.New().String(),
			Cargo:     req.Cargo,
			Seat:      req.Seat,
			JourneyID: req.JourneyID,
			OrderID:   newOrder.ID,
		})
	}

	payload, err := json.Marshal(newOrder)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	outboxEvent := &outbox.Event{
		ID:            uuid.New().String(),
		EventType:     outbox.EventOrderCreated,
		Payload:       payload,
		Status:        "new",
		CorrelationID: newOrder.ID,
		Producer:      producerName,
		CreatedAt:     time.Now().UTC(),
	}

	err = uc.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.orders.Create(txCtx, newOrder); err != nil {
			return err
		}

		for _, t := range newOrder.Tickets {
			if err := uc.tickets.Create(txCtx, t); err != nil {
				return err
			}
		}

		return uc.outbox.Create(txCtx, outboxEvent)
	})

	if err != nil {
		var taken *order.SeatTakenError
		if errors.As(err, &taken) {
			seatConflicts.Inc()
			return nil, taken
		}
		return nil, fmt.Errorf("transaction failed: %w", err)
	}

	ordersCreated.Inc()
	return newOrder, nil
}
