package usecase

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"testing"

	"github.com/dissom/Train-Station-API-Service/internal/domain/journey"
	"github.com/dissom/Train-Station-API-Service/internal/domain/order"
	"github.com/dissom/Train-Station-API-Service/internal/domain/outbox"
	"github.com/dissom/Train-Station-API-Service/internal/domain/train"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seatID struct {
	journeyID string
	cargo     int
	seat      int
}

// fakeDB mimics the transactional store: the tx manager serializes
// transactions and restores a snapshot on error, and the ticket store
// enforces the (journey, cargo, seat) uniqueness constraint on insert.
type fakeDB struct {
	mu     sync.Mutex
	seats  map[seatID]string
	orders map[string]*order.Order
	events []*outbox.Event
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		seats:  make(map[seatID]string),
		orders: make(map[string]*order.Order),
	}
}

type fakeTxManager struct {
	db *fakeDB
}

func (m *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	seats := maps.Clone(m.db.seats)
	orders := maps.Clone(m.db.orders)
	events := slices.Clone(m.db.events)

	if err := fn(ctx); err != nil {
		m.db.seats, m.db.orders, m.db.events = seats, orders, events
		return err
	}
	return nil
}

type fakeOrderStore struct{ db *fakeDB }

func (f *fakeOrderStore) Create(_ context.Context, o *order.Order) error {
	f.db.orders[o.ID] = o
	return nil
}

type fakeTicketStore struct{ db *fakeDB }

func (f *fakeTicketStore) Create(_ context.Context, t *order.Ticket) error {
	key := seatID{journeyID: t.JourneyID, cargo: t.Cargo, seat: t.Seat}
	if _, exists := f.db.seats[key]; exists {
		return &order.SeatTakenError{JourneyID: t.JourneyID, Cargo: t.Cargo, Seat: t.Seat}
	}
	f.db.seats[key] = t.ID
	return nil
}

type fakeOutboxStore struct{ db *fakeDB }

func (f *fakeOutboxStore) Create(_ context.Context, e *outbox.Event) error {
	f.db.events = append(f.db.events, e)
	return nil
}

type fakeJourneyStore map[string]*journey.Journey

func (f fakeJourneyStore) GetWithTrain(_ context.Context, id string) (*journey.Journey, error) {
	j, ok := f[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return j, nil
}

// availability recomputes the §availability contract from the fake ticket set.
func availability(db *fakeDB, j *journey.Journey) journey.Availability {
	db.mu.Lock()
	defer db.mu.Unlock()

	sold := 0
	cargos := make(map[int]bool)
	for key := range db.seats {
		if key.journeyID == j.ID {
			sold++
			cargos[key.cargo] = true
		}
	}

	return journey.Availability{
		TicketsAvailable:  j.Train.Capacity() - sold,
		CargoNumAvailable: j.Train.CargoNum - len(cargos),
	}
}

func newAllocator(db *fakeDB, journeys fakeJourneyStore) *CreateOrder {
	return NewCreateOrder(
		&fakeTxManager{db: db},
		journeys,
		&fakeOrderStore{db: db},
		&fakeTicketStore{db: db},
		&fakeOutboxStore{db: db},
	)
}

func sampleJourney(id string, cargoNum, placesInCargo int) *journey.Journey {
	return &journey.Journey{
		ID: id,
		Train: &train.Train{
			ID:            "train-" + id,
			CargoNum:      cargoNum,
			PlacesInCargo: placesInCargo,
		},
	}
}

func TestCreateOrderEmpty(t *testing.T) {
	db := newFakeDB()
	uc := newAllocator(db, fakeJourneyStore{})

	_, err := uc.Execute(context.Background(), "user-1", nil)

	assert.ErrorIs(t, err, order.ErrEmptyOrder)
	assert.Empty(t, db.orders)
}

func TestCreateOrderJourneyNotFound(t *testing.T) {
	db := newFakeDB()
	uc := newAllocator(db, fakeJourneyStore{})

	_, err := uc.Execute(context.Background(), "user-1", []order.TicketRequest{
		{JourneyID: "missing", Cargo: 1, Seat: 1},
	})

	assert.ErrorIs(t, err, postgres.ErrNotFound)
	assert.Empty(t, db.orders)
	assert.Empty(t, db.seats)
}

func TestCreateOrderSeatOutOfRange(t *testing.T) {
	j := sampleJourney("j-1", 2, 3)
	db := newFakeDB()
	uc := newAllocator(db, fakeJourneyStore{j.ID: j})

	_, err := uc.Execute(context.Background(), "user-1", []order.TicketRequest{
		{JourneyID: j.ID, Cargo: 1, Seat: 1},
		{JourneyID: j.ID, Cargo: 1, Seat: 7},
	})

	var oor *train.SeatOutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, "seat", oor.Field)

	// Whole batch aborted before touching storage.
	assert.Empty(t, db.orders)
	assert.Empty(t, db.seats)
	assert.Empty(t, db.events)
}

func TestCreateOrderScenario(t *testing.T) {
	// Train with cargo_num=2, places_in_cargo=3: capacity 6.
	j := sampleJourney("j-1", 2, 3)
	db := newFakeDB()
	uc := newAllocator(db, fakeJourneyStore{j.ID: j})

	before := availability(db, j)
	assert.Equal(t, journey.Availability{TicketsAvailable: 6, CargoNumAvailable: 2}, before)

	o, err := uc.Execute(context.Background(), "user-1", []order.TicketRequest{
		{JourneyID: j.ID, Cargo: 1, Seat: 1},
		{JourneyID: j.ID, Cargo: 1, Seat: 2},
	})
	require.NoError(t, err)
	require.Len(t, o.Tickets, 2)
	assert.Equal(t, "user-1", o.UserID)
	for _, tk := range o.Tickets {
		assert.Equal(t, o.ID, tk.OrderID)
	}

	after := availability(db, j)
	assert.Equal(t, journey.Availability{TicketsAvailable: 4, CargoNumAvailable: 1}, after)

	// Availability reads are idempotent with no intervening writes.
	assert.Equal(t, after, availability(db, j))

	// The OrderCreated event committed with the order.
	require.Len(t, db.events, 1)
	assert.Equal(t, outbox.EventOrderCreated, db.events[0].EventType)
	assert.Equal(t, o.ID, db.events[0].CorrelationID)
}

func TestCreateOrderDuplicateWithinBatch(t *testing.T) {
	j := sampleJourney("j-1", 2, 3)
	db := newFakeDB()
	uc := newAllocator(db, fakeJourneyStore{j.ID: j})

	_, err := uc.Execute(context.Background(), "user-1", []order.TicketRequest{
		{JourneyID: j.ID, Cargo: 1, Seat: 1},
		{JourneyID: j.ID, Cargo: 1, Seat: 1},
	})

	var taken *order.SeatTakenError
	require.ErrorAs(t, err, &taken)

	// The whole transaction rolled back: zero tickets, zero orders.
	assert.Empty(t, db.seats)
	assert.Empty(t, db.orders)
	assert.Empty(t, db.events)
}

func TestCreateOrderSeatAlreadySold(t *testing.T) {
	j := sampleJourney("j-1", 2, 3)
	db := newFakeDB()
	db.seats[seatID{journeyID: j.ID, cargo: 1, seat: 1}] = "existing"
	uc := newAllocator(db, fakeJourneyStore{j.ID: j})

	_, err := uc.Execute(context.Background(), "user-2", []order.TicketRequest{
		{JourneyID: j.ID, Cargo: 2, Seat: 1},
		{JourneyID: j.ID, Cargo: 1, Seat: 1},
	})

	var taken *order.SeatTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, 1, taken.Cargo)
	assert.Equal(t, 1, taken.Seat)

	// The valid first ticket rolled back with the rest.
	assert.Len(t, db.seats, 1)
	assert.Empty(t, db.orders)
}

func TestCreateOrderConcurrentSameSeat(t *testing.T) {
	j := sampleJourney("j-1", 2, 3)
	db := newFakeDB()
	uc := newAllocator(db, fakeJourneyStore{j.ID: j})

	const callers = 8
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), "user", []order.TicketRequest{
				{JourneyID: j.ID, Cargo: 1, Seat: 1},
			})
		}(i)
	}
	wg.Wait()

	committed := 0
	for _, err := range errs {
		if err == nil {
			committed++
			continue
		}
		var taken *order.SeatTakenError
		assert.True(t, errors.As(err, &taken), "unexpected error: %v", err)
	}

	// Exactly one caller wins the seat.
	assert.Equal(t, 1, committed)
	assert.Len(t, db.seats, 1)
	assert.Len(t, db.orders, 1)
}
