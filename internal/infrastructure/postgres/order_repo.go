package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dissom/Train-Station-API-Service/internal/domain/order"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// OrderFilter narrows order listings. Orders are always scoped to one user.
type OrderFilter struct {
	IDs         []string
	CreatedDate *time.Time
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	const sql = `
		INSERT INTO orders (id, user_id, created_at)
		VALUES ($1, $2, $3)
	`

	var executor interface {
		Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	} = r.pool

	if tx := GetTx(ctx); tx != nil {
		executor = tx
	}

	_, err := executor.Exec(ctx, sql, o.ID, o.UserID, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// GetByID returns the order with its tickets, scoped to the owning user.
func (r *OrderRepository) GetByID(ctx context.Context, userID, id string) (*order.Order, error) {
	const sql = `
		SELECT id, user_id, created_at
		FROM orders
		WHERE id = $1 AND user_id = $2
	`

	o := &order.Order{}
	err := r.pool.QueryRow(ctx, sql, id, userID).Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}

	if err := r.loadTickets(ctx, []*order.Order{o}); err != nil {
		return nil, err
	}

	return o, nil
}

// List returns the user's orders, newest first, with tickets attached.
func (r *OrderRepository) List(ctx context.Context, userID string, f OrderFilter) ([]*order.Order, error) {
	const sql = `
		SELECT id, user_id, created_at
		FROM orders
		WHERE user_id = $1
		  AND (cardinality($2::uuid[]) = 0 OR id = ANY($2::uuid[]))
		  AND ($3::date IS NULL OR created_at::date = $3::date)
		ORDER BY created_at DESC
	`

	ids := f.IDs
	if ids == nil {
		ids = []string{}
	}

	rows, err := r.pool.Query(ctx, sql, userID, ids, f.CreatedDate)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		o := &order.Order{}
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadTickets(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepository) loadTickets(ctx context.Context, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[string]*order.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	const sql = `
		SELECT id, cargo, seat, journey_id, order_id
		FROM tickets
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, cargo, seat
	`

	rows, err := r.pool.Query(ctx, sql, ids)
	if err != nil {
		return fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t := &order.Ticket{}
		if err := rows.Scan(&t.ID, &t.Cargo, &t.Seat, &t.JourneyID, &t.OrderID); err != nil {
			return fmt.Errorf("scan ticket: %w", err)
		}
		if o, ok := byID[t.OrderID]; ok {
			o.Tickets = append(o.Tickets, t)
		}
	}

	return rows.Err()
}

// Delete removes the order, scoped to the owning user. Tickets cascade.
func (r *OrderRepository) Delete(ctx context.Context, userID, id string) error {
	var executor interface {
		Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	} = r.pool

	if tx := GetTx(ctx); tx != nil {
		executor = tx
	}

	tag, err := executor.Exec(ctx, `DELETE FROM orders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
