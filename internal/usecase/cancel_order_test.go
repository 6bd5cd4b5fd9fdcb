package usecase

import (
	"context"
	"testing"

	"github.com/dissom/Train-Station-API-Service/internal/domain/order"
	"github.com/dissom/Train-Station-API-Service/internal/domain/outbox"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderDeleter struct{ db *fakeDB }

func (f *fakeOrderDeleter) Delete(_ context.Context, userID, id string) error {
	o, ok := f.db.orders[id]
	if !ok || o.UserID != userID {
		return postgres.ErrNotFound
	}
	delete(f.db.orders, id)
	for key, ticketID := range f.db.seats {
		for _, tk := range o.Tickets {
			if tk.ID == ticketID {
				delete(f.db.seats, key)
			}
		}
	}
	return nil
}

func TestCancelOrderFreesSeats(t *testing.T) {
	j := sampleJourney("j-1", 2, 3)
	db := newFakeDB()
	create := newAllocator(db, fakeJourneyStore{j.ID: j})
	cancel := NewCancelOrder(&fakeTxManager{db: db}, &fakeOrderDeleter{db: db}, &fakeOutboxStore{db: db})

	o, err := create.Execute(context.Background(), "user-1", []order.TicketRequest{
		{JourneyID: j.ID, Cargo: 1, Seat: 1},
	})
	require.NoError(t, err)

	require.NoError(t, cancel.Execute(context.Background(), "user-1", o.ID))

	assert.Empty(t, db.orders)
	assert.Empty(t, db.seats, "cancelled order must release its seats")

	require.Len(t, db.events, 2)
	assert.Equal(t, outbox.EventOrderCancelled, db.events[1].EventType)
}

func TestCancelOrderWrongOwner(t *testing.T) {
	j := sampleJourney("j-1", 2, 3)
	db := newFakeDB()
	create := newAllocator(db, fakeJourneyStore{j.ID: j})
	cancel := NewCancelOrder(&fakeTxManager{db: db}, &fakeOrderDeleter{db: db}, &fakeOutboxStore{db: db})

	o, err := create.Execute(context.Background(), "user-1", []order.TicketRequest{
		{JourneyID: j.ID, Cargo: 1, Seat: 1},
	})
	require.NoError(t, err)

	err = cancel.Execute(context.Background(), "someone-else", o.ID)
	assert.ErrorIs(t, err, postgres.ErrNotFound)

	// Nothing rolled back for the owner.
	assert.Len(t, db.orders, 1)
	assert.Len(t, db.seats, 1)
	assert.Len(t, db.events, 1)
}
