package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dissom/Train-Station-API-Service/internal/domain/outbox"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/postgres"

	"github.com/google/uuid"
)

type orderDeleter interface {
	Delete(ctx context.Context, userID, id string) error
}

type CancelOrder struct {
	txManager postgres.Transactor
	orders    orderDeleter
	outbox    outboxStore
}

func NewCancelOrder(txManager postgres.Transactor, orders orderDeleter, outboxRepo outboxStore) *CancelOrder {
	return &CancelOrder{
		txManager: txManager,
		orders:    orders,
		outbox:    outboxRepo,
	}
}

// Execute deletes the user's order; ticket rows cascade away, freeing the
// seats. The deletion and the OrderCancelled event commit together.
func (uc *CancelOrder) Execute(ctx context.Context, userID, orderID string) error {
	payload, err := json.Marshal(map[string]string{"order_id": orderID})
	if err != nil {
		return fmt.Errorf("marshal cancel event: %w", err)
	}

	outboxEvent := &outbox.Event{
		ID:            uuid.New().String(),
		EventType:     outbox.EventOrderCancelled,
		Payload:       payload,
		Status:        "new",
		CorrelationID: orderID,
		Producer:      producerName,
		CreatedAt:     time.Now().UTC(),
	}

	err = uc.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.orders.Delete(txCtx, userID, orderID); err != nil {
			return err
		}
		return uc.outbox.Create(txCtx, outboxEvent)
	})
	if err != nil {
		return fmt.Errorf("cancel order %s: %w", orderID, err)
	}

	return nil
}
