package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dissom/Train-Station-API-Service/internal/domain/outbox"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/kafka"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worker_outbox_events_published_total",
		Help: "The total number of booking events published to Kafka",
	})
	publishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worker_outbox_publish_errors_total",
		Help: "The total number of failed publish attempts",
	})
)

const (
	pollInterval = 2 * time.Second
	batchSize    = 10
	sendTimeout  = 5 * time.Second
)

// OutboxPoller drains the booking outbox into Kafka. Claimed events that
// fail to publish are released back to 'new' for the next cycle.
type OutboxPoller struct {
	outboxRepo outbox.Repository
	producer   *kafka.Producer
}

func NewOutboxPoller(outboxRepo outbox.Repository, producer *kafka.Producer) *OutboxPoller {
	return &OutboxPoller{
		outboxRepo: outboxRepo,
		producer:   producer,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	slog.Info("outbox poller started", "topic", p.producer.GetTopic())

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil {
				slog.Error("failed to process batch", "error", err)
			}
		}
	}
}

func (p *OutboxPoller) processBatch(ctx context.Context) error {
	events, err := p.outboxRepo.FetchBatch(ctx, batchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	var processedIDs []string
	var failedIDs []string

	for _, e := range events {
		msg := outbox.Message{
			ID:            e.ID,
			Type:          e.EventType,
			CorrelationID: e.CorrelationID,
			Producer:      e.Producer,
			OccurredAt:    time.Now().UTC(),
			Payload:       e.Payload,
		}

		value, err := json.Marshal(msg)
		if err != nil {
			slog.Error("failed to marshal event", "event_id", e.ID, "error", err)
			publishErrors.Inc()
			failedIDs = append(failedIDs, e.ID)
			continue
		}

		key := []byte(e.CorrelationID)
		if len(key) == 0 {
			key = []byte(e.ID)
		}

		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		err = p.producer.SendMessage(sendCtx, key, value)
		cancel()

		if err != nil {
			slog.Error("failed to send event to kafka", "event_id", e.ID, "error", err)
			publishErrors.Inc()
			failedIDs = append(failedIDs, e.ID)
			continue
		}

		eventsPublished.Inc()
		processedIDs = append(processedIDs, e.ID)
	}

	if len(processedIDs) > 0 {
		if err := p.outboxRepo.MarkProcessed(ctx, processedIDs); err != nil {
			return err
		}
		slog.Info("published booking events", "count", len(processedIDs))
	}

	if len(failedIDs) > 0 {
		if err := p.outboxRepo.MarkFailed(ctx, failedIDs); err != nil {
			slog.Error("failed to release events", "error", err)
		}
	}

	return nil
}
