package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProcessedEventRepository is the notifier-side inbox: events already handled
// are remembered so redeliveries are dropped.
type ProcessedEventRepository struct {
	pool *pgxpool.Pool
}

func NewProcessedEventRepository(pool *pgxpool.Pool) *ProcessedEventRepository {
	return &ProcessedEventRepository{pool: pool}
}

// SaveIfNotExists returns true if the event was saved (is new), false if it
// already existed.
func (r *ProcessedEventRepository) SaveIfNotExists(ctx context.Context, eventID string) (bool, error) {
	const sql = `
		INSERT INTO processed_events (event_id, processed_at)
		VALUES ($1, NOW())
		ON CONFLICT (event_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, sql, eventID)
	if err != nil {
		return false, fmt.Errorf("insert processed event: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
