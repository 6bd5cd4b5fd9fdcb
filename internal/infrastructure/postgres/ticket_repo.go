package postgres

import (
	"context"
	"fmt"

	"github.com/dissom/Train-Station-API-Service/internal/domain/order"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// seatConstraint is the composite unique constraint on (journey_id, cargo, seat).
// It is the sole mutual-exclusion mechanism for seat allocation: the allocator
// never pre-checks availability, it inserts and lets the constraint decide.
const seatConstraint = "tickets_journey_cargo_seat_key"

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

// Create inserts a ticket row. A unique violation on the seat constraint is
// reported as *order.SeatTakenError so the enclosing transaction rolls back
// the whole order.
func (r *TicketRepository) Create(ctx context.Context, t *order.Ticket) error {
	const sql = `
		INSERT INTO tickets (id, cargo, seat, journey_id, order_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	var executor interface {
		Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	} = r.pool

	if tx := GetTx(ctx); tx != nil {
		executor = tx
	}

	_, err := executor.Exec(ctx, sql, t.ID, t.Cargo, t.Seat, t.JourneyID, t.OrderID)
	if err != nil {
		if isUniqueViolation(err, seatConstraint) {
			return &order.SeatTakenError{JourneyID: t.JourneyID, Cargo: t.Cargo, Seat: t.Seat}
		}
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("insert ticket: %w", err)
	}

	return nil
}

// ListByJourney returns the tickets sold for one journey.
func (r *TicketRepository) ListByJourney(ctx context.Context, journeyID string) ([]*order.Ticket, error) {
	const sql = `
		SELECT id, cargo, seat, journey_id, order_id
		FROM tickets
		WHERE journey_id = $1
		ORDER BY cargo, seat
	`

	rows, err := r.pool.Query(ctx, sql, journeyID)
	if err != nil {
		return nil, fmt.Errorf("query tickets by journey: %w", err)
	}
	defer rows.Close()

	var tickets []*order.Ticket
	for rows.Next() {
		t := &order.Ticket{}
		if err := rows.Scan(&t.ID, &t.Cargo, &t.Seat, &t.JourneyID, &t.OrderID); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	return tickets, rows.Err()
}
