package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dissom/Train-Station-API-Service/internal/domain/outbox"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/kafka"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/postgres"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	segkafka "github.com/segmentio/kafka-go"
)

var (
	eventsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_events_processed_total",
		Help: "The total number of booking events delivered",
	})
	eventsDuplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_events_duplicated_total",
		Help: "The total number of redelivered events dropped by the inbox",
	})
)

// Notifier consumes booking events and delivers notifications. Redeliveries
// are dropped via the processed_events inbox, so delivery is effectively
// once per event.
type Notifier struct {
	consumer  *kafka.Consumer
	processed *postgres.ProcessedEventRepository
}

func New(consumer *kafka.Consumer, processed *postgres.ProcessedEventRepository) *Notifier {
	return &Notifier{
		consumer:  consumer,
		processed: processed,
	}
}

func (n *Notifier) Run(ctx context.Context) error {
	for {
		msg, err := n.consumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Error("failed to fetch message", "error", err)
			time.Sleep(1 * time.Second)
			continue
		}

		var ev outbox.Message
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			// Not our envelope (or corrupt). Commit and move on.
			slog.Error("failed to unmarshal event envelope", "error", err)
			n.commit(ctx, msg)
			continue
		}

		isNew, err := n.processed.SaveIfNotExists(ctx, ev.ID)
		if err != nil {
			slog.Error("inbox check failed", "event_id", ev.ID, "error", err)
			continue
		}
		if !isNew {
			eventsDuplicated.Inc()
			n.commit(ctx, msg)
			continue
		}

		switch ev.Type {
		case outbox.EventOrderCreated:
			slog.Info("booking confirmed", "order_id", ev.CorrelationID)
		case outbox.EventOrderCancelled:
			slog.Info("booking cancelled", "order_id", ev.CorrelationID)
		default:
			slog.Warn("unknown event type", "type", ev.Type)
		}

		eventsProcessed.Inc()
		n.commit(ctx, msg)
	}
}

func (n *Notifier) commit(ctx context.Context, msg segkafka.Message) {
	if err := n.consumer.CommitMessages(ctx, msg); err != nil {
		slog.Error("failed to commit offset", "error", err)
	}
}
