package outbox

import (
	"context"
	"time"
)

const (
	EventOrderCreated   = "OrderCreated"
	EventOrderCancelled = "OrderCancelled"
)

type Event struct {
	ID            string    `json:"id"`
	EventType     string    `json:"event_type"`
	Payload       []byte    `json:"payload"`
	Status        string    `json:"status"`
	CorrelationID string    `json:"correlation_id"`
	Producer      string    `json:"producer"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Repository interface {
	Create(ctx context.Context, event *Event) error
	FetchBatch(ctx context.Context, limit int) ([]*Event, error)
	MarkProcessed(ctx context.Context, ids []string) error
	MarkFailed(ctx context.Context, ids []string) error
}

// Message is the envelope published to the booking-events topic.
type Message struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	CorrelationID string    `json:"correlation_id"`
	Producer      string    `json:"producer"`
	OccurredAt    time.Time `json:"occurred_at"`
	Payload       []byte    `json:"payload"`
}
