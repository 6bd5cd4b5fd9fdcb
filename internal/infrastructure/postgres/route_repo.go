package postgres

import (
	"context"
	"fmt"

	"github.com/dissom/Train-Station-API-Service/internal/domain/route"
	"github.com/dissom/Train-Station-API-Service/internal/domain/station"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RouteRepository struct {
	pool *pgxpool.Pool
}

func NewRouteRepository(pool *pgxpool.Pool) *RouteRepository {
	return &RouteRepository{pool: pool}
}

func (r *RouteRepository) Create(ctx context.Context, rt *route.Route) error {
	const sql = `
		INSERT INTO routes (id, source_id, destination_id, distance)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, sql, rt.ID, rt.SourceID, rt.DestinationID, rt.Distance)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("insert route: %w", err)
	}

	return nil
}

// GetByID returns the route with both stations embedded (detail shape).
func (r *RouteRepository) GetByID(ctx context.Context, id string) (*route.Route, error) {
	const sql = `
		SELECT
			r.id, r.distance,
			src.id, src.name, src.latitude, src.longitude,
			dst.id, dst.name, dst.latitude, dst.longitude
		FROM routes r
		JOIN stations src ON src.id = r.source_id
		JOIN stations dst ON dst.id = r.destination_id
		WHERE r.id = $1
	`

	rt := &route.Route{
		Source:      &station.Station{},
		Destination: &station.Station{},
	}
	err := r.pool.QueryRow(ctx, sql, id).Scan(
		&rt.ID, &rt.Distance,
		&rt.Source.ID, &rt.Source.Name, &rt.Source.Latitude, &rt.Source.Longitude,
		&rt.Destination.ID, &rt.Destination.Name, &rt.Destination.Latitude, &rt.Destination.Longitude,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get route by id: %w", err)
	}

	rt.SourceID = rt.Source.ID
	rt.DestinationID = rt.Destination.ID
	return rt, nil
}

// List returns routes with station names only (list shape).
func (r *RouteRepository) List(ctx context.Context) ([]*route.Route, error) {
	const sql = `
		SELECT r.id, r.source_id, r.destination_id, r.distance, src.name, dst.name
		FROM routes r
		JOIN stations src ON src.id = r.source_id
		JOIN stations dst ON dst.id = r.destination_id
		ORDER BY r.id
	`

	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	defer rows.Close()

	var routes []*route.Route
	for rows.Next() {
		rt := &route.Route{}
		if err := rows.Scan(&rt.ID, &rt.SourceID, &rt.DestinationID, &rt.Distance, &rt.SourceName, &rt.DestinationName); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		routes = append(routes, rt)
	}

	return routes, rows.Err()
}

func (r *RouteRepository) Update(ctx context.Context, rt *route.Route) error {
	const sql = `
		UPDATE routes
		SET source_id = $2, destination_id = $3, distance = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, sql, rt.ID, rt.SourceID, rt.DestinationID, rt.Distance)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("update route: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *RouteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete route: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
